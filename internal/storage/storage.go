// Package storage acquires document bytes by locator. The pipeline only
// sees the Fetcher interface; scheme dispatch and credentials live in the
// composition root.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Fetcher retrieves one document's raw bytes and a display filename.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (data []byte, filename string, err error)
}

// Error describes a failed fetch for a specific locator.
type Error struct {
	Locator string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.Locator, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.Locator, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Resolver dispatches locators to the fetcher for their scheme.
type Resolver struct {
	gcs   Fetcher
	web   Fetcher
	local Fetcher
}

// NewResolver builds a Resolver. Any fetcher may be nil; locators for that
// scheme then fail with a configuration error instead of panicking.
func NewResolver(gcs, web, local Fetcher) *Resolver {
	return &Resolver{gcs: gcs, web: web, local: local}
}

// Fetch routes a locator by scheme: gs:// to object storage, http(s):// to
// the web fetcher, file:// and bare paths to the local fetcher.
func (r *Resolver) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	var f Fetcher
	var scheme string

	switch {
	case strings.HasPrefix(locator, "gs://"):
		f, scheme = r.gcs, "gs"
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		f, scheme = r.web, "http"
	default:
		f, scheme = r.local, "file"
	}

	if f == nil {
		return nil, "", &Error{
			Locator: locator,
			Message: fmt.Sprintf("no fetcher configured for %s locators", scheme),
		}
	}
	return f.Fetch(ctx, locator)
}
