package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		bucket  string
		object  string
		wantErr bool
	}{
		{"valid", "gs://statements/2024/january.pdf", "statements", "2024/january.pdf", false},
		{"no scheme", "statements/january.pdf", "", "", true},
		{"missing object", "gs://statements", "", "", true},
		{"empty object", "gs://statements/", "", "", true},
		{"empty bucket", "gs:///january.pdf", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := ParseGCSURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.object, object)
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "january.pdf", Filename("gs://statements/2024/january.pdf"))
	assert.Equal(t, "january.pdf", Filename("/tmp/statements/january.pdf"))
	assert.Equal(t, "january.pdf", Filename("january.pdf"))
}

func TestIsGCSURI(t *testing.T) {
	assert.True(t, IsGCSURI("gs://bucket/object.pdf"))
	assert.False(t, IsGCSURI("/local/object.pdf"))
	assert.False(t, IsGCSURI("https://example.com/object.pdf"))
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.pdf")
	content := []byte("%PDF-1.7 test statement body")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	doc, err := Load(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, doc.SourceURI)
	assert.Equal(t, "statement.pdf", doc.Filename)
	assert.Equal(t, content, doc.Data)
}

func TestLoadRejectsNonPDF(t *testing.T) {
	_, err := Load(context.Background(), "/tmp/statement.csv", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a PDF file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), 0)
	require.Error(t, err)
}

func TestLoadEnforcesSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "large.pdf")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 1<<20+1), 0o644))

	_, err := Load(context.Background(), path, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "above the 1 MB limit")
}
