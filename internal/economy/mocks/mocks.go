package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skinshop/domain"
	"skinshop/internal/service/token"
)

// MockEconomyRepository - мок репозитория баланса и покупок
type MockEconomyRepository struct {
	mock.Mock
}

func (m *MockEconomyRepository) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyRepository) GrantCoins(ctx context.Context, accountID int64, amount int64) (int64, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyRepository) PurchaseSkin(ctx context.Context, accountID int64, skinID int64) (*domain.Skin, error) {
	args := m.Called(ctx, accountID, skinID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Skin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEconomyRepository) ListLedger(ctx context.Context, accountID int64) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LedgerEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEconomyRepository) GetSummary(ctx context.Context, accountID int64) (domain.AccountSummary, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.AccountSummary), args.Error(1)
}

// MockEconomyUsecase - мок usecase баланса и покупок
type MockEconomyUsecase struct {
	mock.Mock
}

func (m *MockEconomyUsecase) GetBalance(ctx context.Context, identity token.Identity) (int64, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyUsecase) GrantCoins(ctx context.Context, identity token.Identity, amount int64) (int64, error) {
	args := m.Called(ctx, identity, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyUsecase) PurchaseSkin(ctx context.Context, identity token.Identity, skinID int64) (*domain.Skin, error) {
	args := m.Called(ctx, identity, skinID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Skin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEconomyUsecase) History(ctx context.Context, identity token.Identity) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LedgerEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEconomyUsecase) Summary(ctx context.Context, identity token.Identity) (domain.AccountSummary, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(domain.AccountSummary), args.Error(1)
}
