package catalog

import "catalog-import/internal/model"

// Transform assembles products from filtered rows. Rows are visited last to
// first so the latest occurrence of a name wins; the output keeps that
// reversed order. Incomplete rows are skipped.
func Transform(rows []model.RawRow) []model.Product {
	seen := make(map[string]struct{}, len(rows))
	products := make([]model.Product, 0, len(rows))

	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if isFalsy(row[model.ColumnName]) || isFalsy(row[model.ColumnUpdatedOn]) || isFalsy(row[model.ColumnPrices]) {
			continue
		}

		name := cellText(row[model.ColumnName])
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		products = append(products, model.Product{
			Name:      name,
			UpdatedAt: FormatDate(row[model.ColumnUpdatedOn]),
			Prices:    NormalizePrices(row[model.ColumnPrices]),
			Rate:      ParseRate(row[model.ColumnRate]),
			Category:  DeduceCategory(name),
		})
	}

	return products
}
