package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a catalogue entry.
type Category string

const (
	CategoryProduct   Category = "product"
	CategoryEquipment Category = "equipment"
)

// Column headers recognised in a catalogue export.
const (
	ColumnName      = "Name"
	ColumnUpdatedOn = "UpdatedOn"
	ColumnPrices    = "Prices"
	ColumnRate      = "Rate %"
)

// RawRow is one decoded spreadsheet row keyed by column header.
// Values are string, float64 or absent.
type RawRow map[string]any

// Product represents a normalised catalogue record.
type Product struct {
	Name      string    `json:"name" db:"name"`
	UpdatedAt string    `json:"updated_at" db:"updated_at"`
	Prices    []float64 `json:"prices" db:"prices"`
	Rate      float64   `json:"rate" db:"rate"`
	Category  Category  `json:"category" db:"category"`
}

// ImportResult describes one completed import run.
type ImportResult struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	RowsRead     int       `json:"rowsRead"`
	RowsFiltered int       `json:"rowsFiltered"`
	RowsRejected int       `json:"rowsRejected"`
	Products     []Product `json:"products"`
	Persisted    bool      `json:"persisted"`
	ImportedAt   time.Time `json:"importedAt"`
}
