package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog-import/internal/database"
	"catalog-import/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a migrated connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPoolFromURL(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestProductRepository_UpsertAndGetByName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	products := []model.Product{
		{Name: "Widget", UpdatedAt: "2023-12-25", Prices: []float64{10.5, 0}, Rate: 12.5, Category: model.CategoryProduct},
		{Name: "Heavy Equipment", UpdatedAt: "", Prices: []float64{}, Rate: 0, Category: model.CategoryEquipment},
	}

	require.NoError(t, repo.Upsert(ctx, uuid.New(), products))

	widget, err := repo.GetByName(ctx, "Widget")
	require.NoError(t, err)
	require.NotNil(t, widget)
	assert.Equal(t, products[0], *widget)

	equipment, err := repo.GetByName(ctx, "Heavy Equipment")
	require.NoError(t, err)
	require.NotNil(t, equipment)
	assert.Equal(t, products[1], *equipment)

	missing, err := repo.GetByName(ctx, "Gadget")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_UpsertReplacesExisting(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()

	require.NoError(t, repo.Upsert(ctx, first, []model.Product{
		{Name: "Widget", UpdatedAt: "2023-01-01", Prices: []float64{1}, Category: model.CategoryProduct},
	}))
	require.NoError(t, repo.Upsert(ctx, second, []model.Product{
		{Name: "Widget", UpdatedAt: "2024-01-01", Prices: []float64{2, 3}, Rate: 5, Category: model.CategoryProduct},
	}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	widget, err := repo.GetByName(ctx, "Widget")
	require.NoError(t, err)
	require.NotNil(t, widget)
	assert.Equal(t, "2024-01-01", widget.UpdatedAt)
	assert.Equal(t, []float64{2, 3}, widget.Prices)
	assert.Equal(t, 5.0, widget.Rate)

	var importID uuid.UUID
	require.NoError(t, pool.QueryRow(ctx, `SELECT import_id FROM catalog_products WHERE name = $1`, "Widget").Scan(&importID))
	assert.Equal(t, second, importID)
}

func TestProductRepository_UpsertEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, uuid.New(), nil))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestProductRepository_UpsertRollsBackOnError(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	err := repo.Upsert(ctx, uuid.New(), []model.Product{
		{Name: "Widget", Prices: []float64{1}, Category: model.CategoryProduct},
		{Name: "Broken", Prices: []float64{1}, Category: "unknown"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert products")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestProductRepository_GetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())
	ctx := context.Background()

	products := make([]model.Product, 0, 5)
	for i := 5; i >= 1; i-- {
		products = append(products, model.Product{
			Name:      fmt.Sprintf("Product %c", 'A'+i-1),
			UpdatedAt: "2024-01-01",
			Prices:    []float64{float64(i)},
			Category:  model.CategoryProduct,
		})
	}
	require.NoError(t, repo.Upsert(ctx, uuid.New(), products))

	tests := []struct {
		name          string
		limit         int
		offset        int
		expectedNames []string
	}{
		{
			name:          "Get all products",
			limit:         10,
			offset:        0,
			expectedNames: []string{"Product A", "Product B", "Product C", "Product D", "Product E"},
		},
		{
			name:          "Get first page",
			limit:         2,
			offset:        0,
			expectedNames: []string{"Product A", "Product B"},
		},
		{
			name:          "Get second page",
			limit:         2,
			offset:        2,
			expectedNames: []string{"Product C", "Product D"},
		},
		{
			name:          "Offset beyond total",
			limit:         10,
			offset:        10,
			expectedNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.GetAll(ctx, tt.limit, tt.offset)
			require.NoError(t, err)

			names := make([]string, 0, len(result))
			for _, p := range result {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestProductRepository_ContextCancelled(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(pool, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAll(ctx, 10, 0)
	assert.Error(t, err)

	err = repo.Upsert(ctx, uuid.New(), []model.Product{{Name: "Widget", Category: model.CategoryProduct}})
	assert.Error(t, err)
}
