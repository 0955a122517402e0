package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"catalog-import/internal/catalog"
	"catalog-import/internal/model"
	"catalog-import/internal/observability"
	"catalog-import/internal/repository"
	"catalog-import/internal/source"
	"catalog-import/internal/workbook"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// importService implements ImportService.
type importService struct {
	loader   source.Loader
	decoder  workbook.Decoder
	pipeline *catalog.Pipeline
	repo     repository.ProductRepository
	metrics  *observability.Metrics
	maxBytes int64
	logger   zerolog.Logger
}

// ImportOptions carries the optional collaborators of the import service.
type ImportOptions struct {
	// Repo stores imported products. Imports requesting persistence fail
	// with ErrStorageDisabled when it is nil.
	Repo repository.ProductRepository

	// Metrics receives run and row counters. May be nil.
	Metrics *observability.Metrics

	// MaxBytes caps uploaded workbooks read by ImportReader.
	MaxBytes int64
}

// NewImportService creates a new import service.
func NewImportService(
	loader source.Loader,
	decoder workbook.Decoder,
	pipeline *catalog.Pipeline,
	opts ImportOptions,
	logger zerolog.Logger,
) ImportService {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = source.DefaultMaxBytes
	}

	return &importService{
		loader:   loader,
		decoder:  decoder,
		pipeline: pipeline,
		repo:     opts.Repo,
		metrics:  opts.Metrics,
		maxBytes: maxBytes,
		logger:   logger.With().Str("service", "import").Logger(),
	}
}

// ImportFile loads, decodes and transforms the workbook at path.
func (s *importService) ImportFile(ctx context.Context, path string, persist bool) (*model.ImportResult, error) {
	start := time.Now()

	data, err := s.loader.Load(ctx, path)
	if err != nil {
		s.fail(start, path, err, "failed to load workbook")
		return nil, fmt.Errorf("failed to load workbook %s: %w", path, err)
	}

	return s.run(ctx, start, path, bytes.NewReader(data), persist)
}

// ImportReader decodes and transforms a workbook streamed from r.
func (s *importService) ImportReader(ctx context.Context, name string, r io.Reader, persist bool) (*model.ImportResult, error) {
	start := time.Now()

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		s.fail(start, name, err, "failed to read workbook")
		return nil, fmt.Errorf("failed to read workbook %s: %w", name, err)
	}
	if int64(len(data)) > s.maxBytes {
		err := fmt.Errorf("%w: limit is %d bytes", model.ErrSourceTooLarge, s.maxBytes)
		s.fail(start, name, err, "workbook exceeds size limit")
		return nil, err
	}

	return s.run(ctx, start, name, bytes.NewReader(data), persist)
}

func (s *importService) run(ctx context.Context, start time.Time, name string, r io.Reader, persist bool) (*model.ImportResult, error) {
	if persist && s.repo == nil {
		s.fail(start, name, model.ErrStorageDisabled, "persistence requested without storage")
		return nil, model.ErrStorageDisabled
	}

	rows, err := s.decoder.Decode(ctx, r)
	if err != nil {
		s.fail(start, name, err, "failed to decode workbook")
		return nil, fmt.Errorf("failed to decode workbook %s: %w", name, err)
	}

	out := s.pipeline.Run(rows)

	result := &model.ImportResult{
		ID:           uuid.New(),
		Source:       name,
		RowsRead:     out.RowsRead,
		RowsFiltered: out.RowsFiltered,
		RowsRejected: out.RowsRejected,
		Products:     out.Products,
		ImportedAt:   time.Now().UTC(),
	}

	if persist {
		if err := s.repo.Upsert(ctx, result.ID, result.Products); err != nil {
			s.fail(start, name, err, "failed to persist products")
			return nil, fmt.Errorf("failed to persist products from %s: %w", name, err)
		}
		result.Persisted = true
	}

	s.metrics.ObserveRows(out.RowsRead, out.RowsFiltered, out.RowsRejected, len(out.Products))
	s.metrics.ObserveRun(observability.StatusSuccess, time.Since(start).Seconds())

	s.logger.Info().
		Str("import_id", result.ID.String()).
		Str("source", name).
		Int("products", len(result.Products)).
		Bool("persisted", result.Persisted).
		Dur("duration", time.Since(start)).
		Msg("catalogue import completed")

	return result, nil
}

func (s *importService) fail(start time.Time, name string, err error, msg string) {
	s.metrics.ObserveRun(observability.StatusFailure, time.Since(start).Seconds())
	s.logger.Error().Err(err).Str("source", name).Msg(msg)
}
