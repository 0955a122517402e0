package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-import/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const upsertProductQuery = `
	INSERT INTO catalog_products (name, updated_at, prices, rate, category, import_id, imported_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (name) DO UPDATE SET
		updated_at  = EXCLUDED.updated_at,
		prices      = EXCLUDED.prices,
		rate        = EXCLUDED.rate,
		category    = EXCLUDED.category,
		import_id   = EXCLUDED.import_id,
		imported_at = EXCLUDED.imported_at
`

// Upsert stores products from one import in a single transaction.
func (r *productRepository) Upsert(ctx context.Context, importID uuid.UUID, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	batch := &pgx.Batch{}
	for _, p := range products {
		prices := p.Prices
		if prices == nil {
			prices = []float64{}
		}
		batch.Queue(upsertProductQuery, p.Name, p.UpdatedAt, prices, p.Rate, string(p.Category), importID)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).
			Str("import_id", importID.String()).
			Int("count", len(products)).
			Msg("failed to upsert products")
		return fmt.Errorf("failed to upsert products: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("import_id", importID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info().
		Str("import_id", importID.String()).
		Int("count", len(products)).
		Msg("products upserted")

	return nil
}

// GetAll retrieves products ordered by name with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT name, updated_at, prices, rate, category
		FROM catalog_products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByName retrieves a single product by its name.
func (r *productRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	query := `
		SELECT name, updated_at, prices, rate, category
		FROM catalog_products
		WHERE name = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("name", name).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p        model.Product
		category string
	)
	if err := row.Scan(&p.Name, &p.UpdatedAt, &p.Prices, &p.Rate, &category); err != nil {
		return model.Product{}, err
	}
	if p.Prices == nil {
		p.Prices = []float64{}
	}
	p.Category = model.Category(category)
	return p, nil
}
