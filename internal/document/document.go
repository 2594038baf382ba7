// Package document loads statement PDFs from the local filesystem or Google
// Cloud Storage and enforces the basic file constraints before any analysis
// starts.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/logger"
)

// DefaultMaxFileSizeMB is the largest statement the analysis will accept.
const DefaultMaxFileSizeMB = 50

// Document is a statement file held in memory, ready for analysis.
type Document struct {
	SourceURI string `json:"source_uri"`
	Filename  string `json:"filename"`
	Data      []byte `json:"-"`
}

// Load reads a statement from a local path or a gs:// URI. Only PDF files
// within the size limit are accepted; a maxSizeMB of zero or less falls back
// to DefaultMaxFileSizeMB.
func Load(ctx context.Context, sourceURI string, maxSizeMB int) (*Document, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxFileSizeMB
	}

	filename := Filename(sourceURI)
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return nil, fmt.Errorf("%s is not a PDF file", filename)
	}

	var (
		data []byte
		err  error
	)
	if IsGCSURI(sourceURI) {
		data, err = FetchFromGCS(ctx, sourceURI)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", sourceURI, err)
		}
	} else {
		data, err = os.ReadFile(sourceURI)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", sourceURI, err)
		}
	}

	if size := len(data); size > maxSizeMB<<20 {
		return nil, fmt.Errorf("%s is %.1f MB, above the %d MB limit",
			filename, float64(size)/(1<<20), maxSizeMB)
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("source", sourceURI).
		Int("bytes", len(data)).
		Msg("statement loaded")

	return &Document{
		SourceURI: sourceURI,
		Filename:  filename,
		Data:      data,
	}, nil
}
