package controller

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/catalog/usecase"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/response"
)

type CatalogHandler struct {
	usecase usecase.CatalogUsecase
}

func NewCatalogHandler(usecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{
		usecase: usecase,
	}
}

func (h *CatalogHandler) AvailableItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received AvailableItems request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	skins, err := h.usecase.ListAvailable(ctx)
	if err != nil {
		response.Error(w, err, requestID)
		return
	}
	if skins == nil {
		skins = []domain.Skin{}
	}

	response.JSON(w, http.StatusOK, skins, requestID)

	logger.AccessLogger.Info("Completed AvailableItems request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *CatalogHandler) OwnedItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received OwnedItems request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, domain.ErrUnauthorized, requestID)
		return
	}

	skins, err := h.usecase.ListOwned(ctx, identity)
	if err != nil {
		response.Error(w, err, requestID)
		return
	}
	if skins == nil {
		skins = []domain.Skin{}
	}

	response.JSON(w, http.StatusOK, skins, requestID)

	logger.AccessLogger.Info("Completed OwnedItems request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}
