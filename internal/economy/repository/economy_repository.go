package repository

import (
	"context"
	"errors"
	"math"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skinshop/domain"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
)

type economyRepository struct {
	db *gorm.DB
}

func NewEconomyRepository(db *gorm.DB) domain.EconomyRepository {
	return &economyRepository{
		db: db,
	}
}

func (r *economyRepository) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetBalance called", zap.String("request_id", requestID), zap.Int64("account_id", accountID))

	var account domain.Account
	if err := r.db.WithContext(ctx).Select("coins").Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Account not found", zap.String("request_id", requestID), zap.Int64("account_id", accountID))
			return 0, pkgerrors.Wrap(domain.ErrNotFound, "account not found")
		}
		logger.DBLogger.Error("Failed to get balance", zap.String("request_id", requestID), zap.Error(err))
		return 0, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch balance")
	}
	return account.Coins, nil
}

func (r *economyRepository) GrantCoins(ctx context.Context, accountID int64, amount int64) (int64, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GrantCoins called", zap.String("request_id", requestID), zap.Int64("account_id", accountID), zap.Int64("amount", amount))

	var balance int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, requestID, accountID)
		if err != nil {
			return err
		}

		if account.Coins > math.MaxInt64-amount {
			logger.DBLogger.Warn("Balance would overflow", zap.String("request_id", requestID), zap.Int64("account_id", accountID))
			return pkgerrors.Wrap(domain.ErrInvalidInput, "balance limit exceeded")
		}

		if err := tx.Model(&domain.Account{}).Where("id = ?", accountID).
			Update("coins", gorm.Expr("coins + ?", amount)).Error; err != nil {
			logger.DBLogger.Error("Failed to update account coins", zap.String("request_id", requestID), zap.Error(err))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to update balance")
		}

		balance = account.Coins + amount
		return nil
	})
	if err != nil {
		return 0, classify(err, requestID)
	}

	logger.DBLogger.Info("Coins granted", zap.String("request_id", requestID), zap.Int64("account_id", accountID), zap.Int64("balance", balance))
	return balance, nil
}

// PurchaseSkin debits the price, assigns the owner and appends a ledger entry
// in one transaction. Both rows are locked before any check.
func (r *economyRepository) PurchaseSkin(ctx context.Context, accountID int64, skinID int64) (*domain.Skin, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("PurchaseSkin called", zap.String("request_id", requestID), zap.Int64("account_id", accountID), zap.Int64("skin_id", skinID))

	var skin domain.Skin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, requestID, accountID)
		if err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", skinID).First(&skin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Warn("Skin not found", zap.String("request_id", requestID), zap.Int64("skin_id", skinID))
				return pkgerrors.Wrap(domain.ErrNotFound, "item not found")
			}
			logger.DBLogger.Error("Failed to get skin", zap.String("request_id", requestID), zap.Error(err))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to fetch item")
		}

		if skin.OwnerID != nil {
			logger.DBLogger.Warn("Skin already owned", zap.String("request_id", requestID), zap.Int64("skin_id", skinID))
			return pkgerrors.Wrap(domain.ErrConflict, "item already owned")
		}

		if account.Coins < skin.Price {
			logger.DBLogger.Warn("Not enough coins", zap.String("request_id", requestID), zap.Int64("account_id", accountID))
			return pkgerrors.Wrap(domain.ErrInsufficientFunds, "not enough coins")
		}

		debit := tx.Model(&domain.Account{}).Where("id = ? AND coins >= ?", accountID, skin.Price).
			Update("coins", gorm.Expr("coins - ?", skin.Price))
		if debit.Error != nil {
			logger.DBLogger.Error("Failed to debit account", zap.String("request_id", requestID), zap.Error(debit.Error))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to update balance")
		}
		if debit.RowsAffected == 0 {
			return pkgerrors.Wrap(domain.ErrInsufficientFunds, "not enough coins")
		}

		assign := tx.Model(&domain.Skin{}).Where("id = ? AND owner_id IS NULL", skinID).Update("owner_id", accountID)
		if assign.Error != nil {
			logger.DBLogger.Error("Failed to assign owner", zap.String("request_id", requestID), zap.Error(assign.Error))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to assign item")
		}
		if assign.RowsAffected == 0 {
			logger.DBLogger.Warn("Skin taken concurrently", zap.String("request_id", requestID), zap.Int64("skin_id", skinID))
			return pkgerrors.Wrap(domain.ErrConflict, "item already owned")
		}

		entry := domain.LedgerEntry{
			AccountID: accountID,
			SkinID:    skinID,
			Price:     skin.Price,
		}
		if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
			logger.DBLogger.Error("Failed to create ledger entry", zap.String("request_id", requestID), zap.Error(err))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to record purchase")
		}

		skin.OwnerID = &accountID
		return nil
	})
	if err != nil {
		return nil, classify(err, requestID)
	}

	logger.DBLogger.Info("Skin successfully purchased", zap.String("request_id", requestID), zap.Int64("account_id", accountID), zap.Int64("skin_id", skinID))
	return &skin, nil
}

func (r *economyRepository) ListLedger(ctx context.Context, accountID int64) ([]domain.LedgerEntry, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListLedger called", zap.String("request_id", requestID), zap.Int64("account_id", accountID))

	entries := make([]domain.LedgerEntry, 0)
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		logger.DBLogger.Error("Failed to get ledger", zap.String("request_id", requestID), zap.Error(err))
		return nil, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch history")
	}
	return entries, nil
}

// GetSummary reads the account, its skins and its ledger in one transaction.
func (r *economyRepository) GetSummary(ctx context.Context, accountID int64) (domain.AccountSummary, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetSummary called", zap.String("request_id", requestID), zap.Int64("account_id", accountID))

	summary := domain.AccountSummary{
		Items:   make([]domain.Skin, 0),
		History: make([]domain.LedgerEntry, 0),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account domain.Account
		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Warn("Account not found", zap.String("request_id", requestID), zap.Int64("account_id", accountID))
				return pkgerrors.Wrap(domain.ErrNotFound, "account not found")
			}
			logger.DBLogger.Error("Failed to get account", zap.String("request_id", requestID), zap.Error(err))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to fetch account")
		}
		summary.Coins = account.Coins

		if err := tx.Where("owner_id = ?", accountID).Order("id").Find(&summary.Items).Error; err != nil {
			logger.DBLogger.Error("Failed to get owned skins", zap.String("request_id", requestID), zap.Error(err))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to fetch owned items")
		}

		if err := tx.Where("account_id = ?", accountID).Order("created_at DESC, id DESC").Find(&summary.History).Error; err != nil {
			logger.DBLogger.Error("Failed to get ledger", zap.String("request_id", requestID), zap.Error(err))
			return pkgerrors.Wrap(domain.ErrInternal, "failed to fetch history")
		}
		return nil
	})
	if err != nil {
		return domain.AccountSummary{}, classify(err, requestID)
	}
	return summary, nil
}

func lockAccount(tx *gorm.DB, requestID string, accountID int64) (domain.Account, error) {
	var account domain.Account
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Account not found", zap.String("request_id", requestID), zap.Int64("account_id", accountID))
			return account, pkgerrors.Wrap(domain.ErrNotFound, "account not found")
		}
		logger.DBLogger.Error("Failed to get account", zap.String("request_id", requestID), zap.Error(err))
		return account, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch account")
	}
	return account, nil
}

// classify keeps domain errors from the transaction body and turns anything
// else, such as a failed commit, into ErrInternal.
func classify(err error, requestID string) error {
	for _, kind := range []error{
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrInsufficientFunds,
		domain.ErrInvalidInput,
		domain.ErrInternal,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	logger.DBLogger.Error("Transaction failed", zap.String("request_id", requestID), zap.Error(err))
	return pkgerrors.Wrap(domain.ErrInternal, "transaction failed")
}
