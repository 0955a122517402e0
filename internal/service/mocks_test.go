package service

import (
	"context"
	"errors"
	"io"

	"catalog-import/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Upsert(ctx context.Context, importID uuid.UUID, products []model.Product) error {
	args := m.Called(ctx, importID, products)
	return args.Error(0)
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDecoder is a mock implementation of workbook.Decoder.
type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(ctx context.Context, r io.Reader) ([]model.RawRow, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawRow), args.Error(1)
}

// mockLoader is a mock implementation of source.Loader.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]byte, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}
