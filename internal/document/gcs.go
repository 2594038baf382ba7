package document

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// IsGCSURI reports whether the source is a Google Cloud Storage object.
func IsGCSURI(uri string) bool {
	return strings.HasPrefix(uri, "gs://")
}

// ParseGCSURI splits a gs://bucket/path/to/object URI into its bucket and
// object names.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !IsGCSURI(uri) {
		return "", "", fmt.Errorf("invalid GCS URI %q: must start with gs://", uri)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI %q: expected gs://bucket/object", uri)
	}
	return parts[0], parts[1], nil
}

// FetchFromGCS downloads the object a gs:// URI points at. Statements are
// only ever read, so the client is scoped to read-only access.
func FetchFromGCS(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, option.WithScopes(storage.ScopeReadOnly))
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	defer client.Close()

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening gs://%s/%s: %w", bucket, object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("downloading gs://%s/%s: %w", bucket, object, err)
	}
	return data, nil
}

// Filename returns the base file name for a local path or gs:// URI.
func Filename(sourceURI string) string {
	if IsGCSURI(sourceURI) {
		return path.Base(strings.TrimPrefix(sourceURI, "gs://"))
	}
	return filepath.Base(sourceURI)
}
