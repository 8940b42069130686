package repository

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skinshop/domain"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func (r *catalogRepository) ListAvailable(ctx context.Context) ([]domain.Skin, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListAvailable called", zap.String("request_id", requestID))

	skins := make([]domain.Skin, 0)
	if err := r.db.WithContext(ctx).Where("owner_id IS NULL").Order("id").Find(&skins).Error; err != nil {
		logger.DBLogger.Error("Failed to list available skins", zap.String("request_id", requestID), zap.Error(err))
		return nil, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch catalog")
	}
	return skins, nil
}

func (r *catalogRepository) ListOwned(ctx context.Context, accountID int64) ([]domain.Skin, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListOwned called", zap.String("request_id", requestID), zap.Int64("account_id", accountID))

	skins := make([]domain.Skin, 0)
	if err := r.db.WithContext(ctx).Where("owner_id = ?", accountID).Order("id").Find(&skins).Error; err != nil {
		logger.DBLogger.Error("Failed to list owned skins", zap.String("request_id", requestID), zap.Error(err))
		return nil, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch owned items")
	}
	return skins, nil
}
