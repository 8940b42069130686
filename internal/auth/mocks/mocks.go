package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"skinshop/domain"
)

// MockAuthRepository - мок репозитория аутентификации
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	args := m.Called(ctx, login)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) CreateAccount(ctx context.Context, login string, passwordHash string, coins int64) (*domain.Account, error) {
	args := m.Called(ctx, login, passwordHash, coins)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error {
	args := m.Called(ctx, accountID, passwordHash)
	return args.Error(0)
}

func (m *MockAuthRepository) SaveSession(ctx context.Context, accountID int64, sessionID string, expiresAt time.Time) error {
	args := m.Called(ctx, accountID, sessionID, expiresAt)
	return args.Error(0)
}

// MockAuthUsecase - мок usecase для аутентификации
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, login string, secret string) (domain.AuthResult, error) {
	args := m.Called(ctx, login, secret)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, login string, secret string) (domain.AuthResult, error) {
	args := m.Called(ctx, login, secret)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

// MockSessionStore - мок хранилища сессий
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, accountID int64, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, accountID, sessionID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Current(ctx context.Context, accountID int64) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}
