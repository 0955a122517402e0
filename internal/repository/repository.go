package repository

import (
	"context"

	"catalog-import/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for catalogue product storage.
type ProductRepository interface {
	// Upsert stores products from one import in a single transaction. An
	// existing record with the same name is replaced.
	Upsert(ctx context.Context, importID uuid.UUID, products []model.Product) error

	// GetAll retrieves products ordered by name with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByName retrieves a single product. It returns nil when absent.
	GetByName(ctx context.Context, name string) (*model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)
}
