package workbook

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"catalog-import/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into the default sheet of an in-memory workbook.
// A nil cell leaves the cell unset.
func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

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

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestDecoder_Decode_Success(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	buf := buildWorkbook(t, [][]any{
		{"Name", "UpdatedOn", "Prices", "Rate %"},
		{"Widget", "25/12/2023", "10,5;20", "12.5"},
		{"Drill Equipment", 45000, "5", 3.5},
	})

	rows, err := decoder.Decode(context.Background(), buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.RawRow{
		"Name":      "Widget",
		"UpdatedOn": "25/12/2023",
		"Prices":    "10,5;20",
		"Rate %":    "12.5",
	}, rows[0])
	assert.Equal(t, model.RawRow{
		"Name":      "Drill Equipment",
		"UpdatedOn": float64(45000),
		"Prices":    "5",
		"Rate %":    3.5,
	}, rows[1])
}

func TestDecoder_Decode_MissingCellsAreAbsent(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	buf := buildWorkbook(t, [][]any{
		{"Name", "UpdatedOn", "Prices", "Rate %"},
		{"Widget", nil, "1"},
	})

	rows, err := decoder.Decode(context.Background(), buf)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, hasUpdatedOn := rows[0]["UpdatedOn"]
	_, hasRate := rows[0]["Rate %"]
	assert.False(t, hasUpdatedOn)
	assert.False(t, hasRate)
	assert.Equal(t, "Widget", rows[0]["Name"])
}

func TestDecoder_Decode_SkipsBlankRows(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	buf := buildWorkbook(t, [][]any{
		{},
		{"Name", "UpdatedOn", "Prices"},
		{"A", "01/01/2024", "1"},
		{},
		{"B", "01/01/2024", "2"},
	})

	rows, err := decoder.Decode(context.Background(), buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0]["Name"])
	assert.Equal(t, "B", rows[1]["Name"])
}

func TestDecoder_Decode_KeepsRepeatedHeaderRows(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	buf := buildWorkbook(t, [][]any{
		{"Name", "UpdatedOn", "Prices"},
		{"name", "updated_on", "prices"},
		{"Widget", "01/01/2024", "1"},
	})

	rows, err := decoder.Decode(context.Background(), buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "updated_on", rows[0]["UpdatedOn"])
}

func TestDecoder_Decode_DuplicateHeaders(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	buf := buildWorkbook(t, [][]any{
		{"Name", "Name", "Prices"},
		{"First", "Second", "1"},
	})

	rows, err := decoder.Decode(context.Background(), buf)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "First", rows[0]["Name"])
	assert.Equal(t, "Second", rows[0]["Name_1"])
}

func TestDecoder_Decode_HeaderOnly(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	buf := buildWorkbook(t, [][]any{
		{"Name", "UpdatedOn", "Prices"},
	})

	rows, err := decoder.Decode(context.Background(), buf)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecoder_Decode_EmptySheet(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	rows, err := decoder.Decode(context.Background(), buildWorkbook(t, nil))

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecoder_Decode_InvalidWorkbook(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	rows, err := decoder.Decode(context.Background(), strings.NewReader("not a workbook"))

	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, model.ErrInvalidWorkbook)
	assert.Contains(t, err.Error(), "failed to open workbook")
}

func TestDecoder_Decode_ContextCancelled(t *testing.T) {
	decoder := NewDecoder(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := decoder.Decode(ctx, buildWorkbook(t, [][]any{{"Name"}, {"Widget"}}))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rows)
}

func TestHeaderKeys(t *testing.T) {
	assert.Equal(t,
		[]string{"Name", "", "Prices", "Name_1", "Name_2"},
		headerKeys([]string{"Name", "", "Prices", "Name", "Name"}),
	)
}
