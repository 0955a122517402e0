package service

import (
	"context"
	"io"

	"catalog-import/internal/model"
)

// ImportService defines operations for turning catalogue workbooks into products.
type ImportService interface {
	// ImportFile loads the workbook at path through the configured loader.
	ImportFile(ctx context.Context, path string, persist bool) (*model.ImportResult, error)

	// ImportReader imports a workbook read from r, named name in logs and results.
	ImportReader(ctx context.Context, name string, r io.Reader, persist bool) (*model.ImportResult, error)
}

// ProductService defines read operations over stored products.
type ProductService interface {
	// GetAll retrieves products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByName retrieves a single product by its name.
	GetByName(ctx context.Context, name string) (*model.Product, error)
}
