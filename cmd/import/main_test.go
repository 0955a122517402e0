package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"catalog-import/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Name", "UpdatedOn", "Prices", "Rate %"},
		{"Widget", 45000, "1,5;-2", 12.5},
		{"Lab Equipment", "3/2/2021", "10", "7%"},
		{"Widget", "01/01/2020", "3", nil},
	}
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), "catalogue.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("S3_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRun_PrintsImportResult(t *testing.T) {
	setEnv(t)
	path := writeWorkbook(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-file", path}, &out))

	var result model.ImportResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))

	assert.Equal(t, path, result.Source)
	assert.Equal(t, 3, result.RowsRead)
	assert.False(t, result.Persisted)
	require.Len(t, result.Products, 2)

	// The last occurrence of a name wins and output runs bottom-up.
	assert.Equal(t, model.Product{
		Name:      "Widget",
		UpdatedAt: "2020-01-01",
		Prices:    []float64{3},
		Rate:      0,
		Category:  model.CategoryProduct,
	}, result.Products[0])
	assert.Equal(t, model.Product{
		Name:      "Lab Equipment",
		UpdatedAt: "2021-02-03",
		Prices:    []float64{10},
		Rate:      7,
		Category:  model.CategoryEquipment,
	}, result.Products[1])
}

func TestRun_Pretty(t *testing.T) {
	setEnv(t)
	path := writeWorkbook(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-file", path, "-pretty"}, &out))

	assert.Contains(t, out.String(), "\n  \"id\"")
}

func TestRun_MissingFileFlag(t *testing.T) {
	setEnv(t)

	var out bytes.Buffer
	err := run([]string{}, &out)

	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRun_SourceNotFound(t *testing.T) {
	setEnv(t)

	var out bytes.Buffer
	err := run([]string{"-file", filepath.Join(t.TempDir(), "missing.xlsx")}, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSourceNotFound)
	assert.Empty(t, out.String())
}

func TestRun_PersistWithoutDatabase(t *testing.T) {
	setEnv(t)
	path := writeWorkbook(t)

	var out bytes.Buffer
	err := run([]string{"-file", path, "-persist"}, &out)

	assert.ErrorIs(t, err, model.ErrStorageDisabled)
}

func TestRun_InvalidWorkbook(t *testing.T) {
	setEnv(t)
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o600))

	var out bytes.Buffer
	err := run([]string{"-file", path}, &out)

	assert.ErrorIs(t, err, model.ErrInvalidWorkbook)
}
