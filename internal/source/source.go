// Package source fetches workbook bytes from the local file system or S3.
package source

import (
	"context"
	"fmt"
	"io"

	"catalog-import/internal/model"
)

// DefaultMaxBytes caps the size of a single source file.
const DefaultMaxBytes int64 = 32 << 20

// Loader defines the interface for acquiring workbook files.
type Loader interface {
	// Load reads the whole file at path and returns its bytes.
	Load(ctx context.Context, path string) ([]byte, error)
}

// readAll reads r up to maxBytes, failing with ErrSourceTooLarge beyond it.
func readAll(ctx context.Context, r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", model.ErrSourceTooLarge, maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
