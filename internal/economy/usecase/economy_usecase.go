package usecase

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/metrics"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/token"
)

const DefaultMaxGrantAmount int64 = 1_000_000

// EconomyUsecase applies balance operations on behalf of a validated identity.
type EconomyUsecase interface {
	GetBalance(ctx context.Context, identity token.Identity) (int64, error)
	GrantCoins(ctx context.Context, identity token.Identity, amount int64) (int64, error)
	PurchaseSkin(ctx context.Context, identity token.Identity, skinID int64) (*domain.Skin, error)
	History(ctx context.Context, identity token.Identity) ([]domain.LedgerEntry, error)
	Summary(ctx context.Context, identity token.Identity) (domain.AccountSummary, error)
}

type economyUsecase struct {
	economyRepository domain.EconomyRepository
	maxGrantAmount    int64
}

func NewEconomyUsecase(economyRepository domain.EconomyRepository, maxGrantAmount int64) EconomyUsecase {
	if maxGrantAmount <= 0 {
		maxGrantAmount = DefaultMaxGrantAmount
	}
	return &economyUsecase{
		economyRepository: economyRepository,
		maxGrantAmount:    maxGrantAmount,
	}
}

func (uc *economyUsecase) GetBalance(ctx context.Context, identity token.Identity) (int64, error) {
	if identity.IsZero() {
		return 0, domain.ErrUnauthorized
	}
	return uc.economyRepository.GetBalance(ctx, identity.AccountID())
}

func (uc *economyUsecase) GrantCoins(ctx context.Context, identity token.Identity, amount int64) (int64, error) {
	requestID := middleware.GetRequestID(ctx)

	if identity.IsZero() {
		return 0, domain.ErrUnauthorized
	}
	if amount <= 0 {
		logger.AccessLogger.Warn("Non-positive grant amount", zap.String("request_id", requestID), zap.Int64("amount", amount))
		return 0, pkgerrors.Wrap(domain.ErrInvalidInput, "amount must be positive")
	}
	if amount > uc.maxGrantAmount {
		logger.AccessLogger.Warn("Grant amount above limit", zap.String("request_id", requestID), zap.Int64("amount", amount))
		return 0, pkgerrors.Wrap(domain.ErrInvalidInput, "amount exceeds limit")
	}

	balance, err := uc.economyRepository.GrantCoins(ctx, identity.AccountID(), amount)
	if err != nil {
		return 0, err
	}
	metrics.RecordGrant(amount)
	return balance, nil
}

func (uc *economyUsecase) PurchaseSkin(ctx context.Context, identity token.Identity, skinID int64) (*domain.Skin, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if skinID <= 0 {
		metrics.RecordPurchase(outcome(domain.ErrInvalidInput))
		return nil, pkgerrors.Wrap(domain.ErrInvalidInput, "invalid item id")
	}

	skin, err := uc.economyRepository.PurchaseSkin(ctx, identity.AccountID(), skinID)
	metrics.RecordPurchase(outcome(err))
	if err != nil {
		return nil, err
	}

	logger.AccessLogger.Info("Skin purchased",
		zap.String("request_id", middleware.GetRequestID(ctx)),
		zap.Int64("account_id", identity.AccountID()),
		zap.Int64("skin_id", skin.ID),
		zap.Int64("price", skin.Price),
	)
	return skin, nil
}

func (uc *economyUsecase) History(ctx context.Context, identity token.Identity) ([]domain.LedgerEntry, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return uc.economyRepository.ListLedger(ctx, identity.AccountID())
}

func (uc *economyUsecase) Summary(ctx context.Context, identity token.Identity) (domain.AccountSummary, error) {
	if identity.IsZero() {
		return domain.AccountSummary{}, domain.ErrUnauthorized
	}
	return uc.economyRepository.GetSummary(ctx, identity.AccountID())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
