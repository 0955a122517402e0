package catalog

import (
	"catalog-import/internal/model"

	"github.com/rs/zerolog"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Products     []model.Product
	RowsRead     int
	RowsFiltered int
	RowsRejected int
}

// Pipeline runs the row filter and the transformation over decoded rows.
// It holds no per-run state and is safe to reuse.
type Pipeline struct {
	logger zerolog.Logger
}

// NewPipeline creates a new pipeline.
func NewPipeline(logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With().Str("component", "catalog-pipeline").Logger(),
	}
}

// Run filters and transforms rows into products.
func (p *Pipeline) Run(rows []model.RawRow) Result {
	filtered := FilterRows(rows)
	products := Transform(filtered)

	result := Result{
		Products:     products,
		RowsRead:     len(rows),
		RowsFiltered: len(rows) - len(filtered),
		RowsRejected: len(filtered) - len(products),
	}

	p.logger.Info().
		Int("rows_read", result.RowsRead).
		Int("rows_filtered", result.RowsFiltered).
		Int("rows_rejected", result.RowsRejected).
		Int("products", len(products)).
		Msg("catalog rows transformed")

	return result
}
