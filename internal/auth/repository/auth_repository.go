package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skinshop/domain"
	"skinshop/internal/service/database"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) domain.AuthRepository {
	return &authRepository{
		db: db,
	}
}

func (r *authRepository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("FindByLogin called", zap.String("request_id", requestID), zap.String("login", login))

	var account domain.Account
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(domain.ErrNotFound, "account not found")
		}
		logger.DBLogger.Error("Error getting account", zap.String("request_id", requestID), zap.String("login", login), zap.Error(err))
		return nil, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch account")
	}
	return &account, nil
}

// CreateAccount relies on the unique index on login; a concurrent duplicate
// insert fails here with ErrConflict.
func (r *authRepository) CreateAccount(ctx context.Context, login string, passwordHash string, coins int64) (*domain.Account, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateAccount called", zap.String("request_id", requestID), zap.String("login", login))

	account := domain.Account{
		Login:        login,
		PasswordHash: passwordHash,
		Coins:        coins,
	}
	if err := r.db.WithContext(ctx).Create(&account).Error; err != nil {
		if database.IsUniqueViolation(err) {
			logger.DBLogger.Warn("Login already taken", zap.String("request_id", requestID), zap.String("login", login))
			return nil, pkgerrors.Wrap(domain.ErrConflict, "login already exists")
		}
		logger.DBLogger.Error("Error creating account", zap.String("request_id", requestID), zap.String("login", login), zap.Error(err))
		return nil, pkgerrors.Wrap(domain.ErrInternal, "failed to create account")
	}

	logger.DBLogger.Info("Successfully created account", zap.String("request_id", requestID), zap.Int64("account_id", account.ID))
	return &account, nil
}

func (r *authRepository) UpdatePasswordHash(ctx context.Context, accountID int64, passwordHash string) error {
	requestID := middleware.GetRequestID(ctx)

	if err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("id = ?", accountID).Update("password_hash", passwordHash).Error; err != nil {
		logger.DBLogger.Error("Error updating password hash", zap.String("request_id", requestID), zap.Int64("account_id", accountID), zap.Error(err))
		return pkgerrors.Wrap(domain.ErrInternal, "failed to update password hash")
	}
	return nil
}

// SaveSession mirrors the latest issued token id and expiry onto the account row.
func (r *authRepository) SaveSession(ctx context.Context, accountID int64, sessionID string, expiresAt time.Time) error {
	requestID := middleware.GetRequestID(ctx)

	err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("id = ?", accountID).Updates(map[string]interface{}{
		"session_id":         sessionID,
		"session_expires_at": expiresAt,
	}).Error
	if err != nil {
		logger.DBLogger.Error("Error saving session", zap.String("request_id", requestID), zap.Int64("account_id", accountID), zap.Error(err))
		return pkgerrors.Wrap(domain.ErrInternal, "failed to save session")
	}
	return nil
}
