package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalFetcher reads documents from the local filesystem. It backs the
// one-shot CLI; the server normally runs without it.
type LocalFetcher struct{}

// NewLocalFetcher creates a local filesystem fetcher.
func NewLocalFetcher() *LocalFetcher {
	return &LocalFetcher{}
}

// Fetch reads a file:// locator or a bare path.
func (f *LocalFetcher) Fetch(_ context.Context, locator string) ([]byte, string, error) {
	p := strings.TrimPrefix(locator, "file://")

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, "", &Error{Locator: locator, Message: "failed to read file", Cause: err}
	}
	return data, filepath.Base(p), nil
}
