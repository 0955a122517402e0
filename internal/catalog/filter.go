package catalog

import "catalog-import/internal/model"

const (
	headerName      = "name"
	headerUpdatedOn = "updated_on"
)

// FilterRows drops rows without a name and rows that repeat the raw column
// header. Only a textual UpdatedOn can mark a header row.
func FilterRows(rows []model.RawRow) []model.RawRow {
	filtered := make([]model.RawRow, 0, len(rows))
	for _, row := range rows {
		if isHeaderRow(row) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

func isHeaderRow(row model.RawRow) bool {
	name := row[model.ColumnName]
	if isFalsy(name) {
		return true
	}
	updatedOn, ok := row[model.ColumnUpdatedOn].(string)
	if !ok {
		return false
	}
	return updatedOn == headerUpdatedOn && cellText(name) == headerName
}
