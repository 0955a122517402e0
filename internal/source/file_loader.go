package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"catalog-import/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	maxBytes int64
	logger   zerolog.Logger
}

// NewFileLoader creates a new file-based workbook loader.
func NewFileLoader(maxBytes int64, logger zerolog.Logger) Loader {
	return &fileLoader{
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "file-loader").Logger(),
	}
}

// Load reads a workbook file from disk.
func (l *fileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Msg("loading workbook file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open workbook file")
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open workbook file %s: %w: %w", path, model.ErrSourceNotFound, err)
		}
		return nil, fmt.Errorf("failed to open workbook file %s: %w", path, err)
	}
	defer file.Close()

	data, err := readAll(ctx, file, l.maxBytes)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading workbook file")
		return nil, fmt.Errorf("error reading workbook file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("bytes", len(data)).
		Msg("workbook file loaded successfully")

	return data, nil
}
