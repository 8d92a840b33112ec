package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSFetcher retrieves objects from Google Cloud Storage by gs:// locator.
type GCSFetcher struct {
	client *gcs.Client
}

// NewGCSFetcher creates a GCS-backed fetcher. Credentials are resolved by
// the caller and passed as client options; the fetcher itself never reads
// ambient environment state.
func NewGCSFetcher(ctx context.Context, opts ...option.ClientOption) (*GCSFetcher, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

// Fetch downloads one object. The display filename is the final path
// segment of the object name.
func (f *GCSFetcher) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	bucket, object, err := parseGSLocator(locator)
	if err != nil {
		return nil, "", err
	}

	rc, err := f.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, "", &Error{Locator: locator, Message: "failed to open object", Cause: err}
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", &Error{Locator: locator, Message: "failed to read object", Cause: err}
	}

	return data, path.Base(object), nil
}

// Close releases the underlying client.
func (f *GCSFetcher) Close() error {
	return f.client.Close()
}

// parseGSLocator splits gs://bucket/path/to/object into bucket and object.
func parseGSLocator(locator string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(locator, "gs://")
	if !ok {
		return "", "", &Error{Locator: locator, Message: "not a gs:// locator"}
	}

	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", &Error{Locator: locator, Message: "locator must be gs://bucket/path"}
	}
	return bucket, object, nil
}
