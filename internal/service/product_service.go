package service

import (
	"context"
	"fmt"

	"catalog-import/internal/model"
	"catalog-import/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service. A nil repository makes
// every read fail with model.ErrStorageDisabled.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if s.productRepo == nil {
		return nil, model.ErrStorageDisabled
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByName retrieves a single product by name.
func (s *productService) GetByName(ctx context.Context, name string) (*model.Product, error) {
	if name == "" {
		s.logger.Warn().Msg("product name is empty")
		return nil, model.ErrProductNotFound
	}
	if s.productRepo == nil {
		return nil, model.ErrStorageDisabled
	}

	product, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to get product by name")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("name", name).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}
