// Package workbook decodes xlsx catalogue exports into loosely typed rows.
package workbook

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog-import/internal/model"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Decoder defines the interface for turning workbook bytes into rows.
type Decoder interface {
	// Decode reads the first sheet of the workbook. The first non-blank row
	// provides the column headers; every following non-blank row becomes a
	// RawRow keyed by those headers.
	Decode(ctx context.Context, r io.Reader) ([]model.RawRow, error)
}

// excelDecoder implements Decoder using excelize.
type excelDecoder struct {
	logger zerolog.Logger
}

// NewDecoder creates a new excelize-backed workbook decoder.
func NewDecoder(logger zerolog.Logger) Decoder {
	return &excelDecoder{
		logger: logger.With().Str("component", "workbook-decoder").Logger(),
	}
}

// Decode implements Decoder.
func (d *excelDecoder) Decode(ctx context.Context, r io.Reader) ([]model.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to open workbook")
		return nil, fmt.Errorf("failed to open workbook: %w: %w", model.ErrInvalidWorkbook, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			d.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, model.ErrEmptyWorkbook
	}
	sheet := sheets[0]

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		d.logger.Error().Err(err).Str("sheet", sheet).Msg("failed to read sheet rows")
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w: %w", sheet, model.ErrInvalidWorkbook, err)
	}

	headerIdx := -1
	for i, row := range cells {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		d.logger.Info().Str("sheet", sheet).Msg("sheet has no header row")
		return []model.RawRow{}, nil
	}
	headers := headerKeys(cells[headerIdx])

	rows := make([]model.RawRow, 0, len(cells)-headerIdx-1)
	for i := headerIdx + 1; i < len(cells); i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				d.logger.Warn().Str("sheet", sheet).Msg("workbook decoding cancelled")
				return nil, err
			}
		}

		values := cells[i]
		if isBlank(values) {
			continue
		}

		row := make(model.RawRow, len(headers))
		for col, raw := range values {
			if col >= len(headers) || headers[col] == "" || raw == "" {
				continue
			}
			row[headers[col]] = d.cellValue(f, sheet, col+1, i+1, raw)
		}
		rows = append(rows, row)
	}

	d.logger.Debug().
		Str("sheet", sheet).
		Int("columns", len(headers)).
		Int("rows", len(rows)).
		Msg("workbook decoded")

	return rows, nil
}

// cellValue returns numeric cells as float64 and everything else as text.
func (d *excelDecoder) cellValue(f *excelize.File, sheet string, col, row int, raw string) any {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		d.logger.Debug().Err(err).Str("cell", axis).Msg("failed to read cell type")
		return raw
	}
	if cellType != excelize.CellTypeUnset && cellType != excelize.CellTypeNumber {
		return raw
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return n
}

// headerKeys builds column keys from the header row. Repeated headers get a
// numeric suffix ("Name", "Name_1", ...) so no column is lost.
func headerKeys(row []string) []string {
	keys := make([]string, len(row))
	counts := make(map[string]int, len(row))
	for i, header := range row {
		if header == "" {
			continue
		}
		key := header
		if n := counts[header]; n > 0 {
			key = header + "_" + strconv.Itoa(n)
		}
		counts[header]++
		keys[i] = key
	}
	return keys
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
