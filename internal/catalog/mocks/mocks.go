package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skinshop/domain"
	"skinshop/internal/service/token"
)

// MockCatalogRepository - мок репозитория каталога
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListAvailable(ctx context.Context) ([]domain.Skin, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Skin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListOwned(ctx context.Context, accountID int64) ([]domain.Skin, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Skin), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCatalogUsecase - мок usecase каталога
type MockCatalogUsecase struct {
	mock.Mock
}

func (m *MockCatalogUsecase) ListAvailable(ctx context.Context) ([]domain.Skin, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Skin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) ListOwned(ctx context.Context, identity token.Identity) ([]domain.Skin, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Skin), args.Error(1)
	}
	return nil, args.Error(1)
}
