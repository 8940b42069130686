package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/economy/usecase"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/response"
)

const maxBodySize = 1 << 16

type EconomyHandler struct {
	usecase usecase.EconomyUsecase
}

func NewEconomyHandler(usecase usecase.EconomyUsecase) *EconomyHandler {
	return &EconomyHandler{
		usecase: usecase,
	}
}

func (h *EconomyHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetBalance request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.handleError(w, domain.ErrUnauthorized, requestID)
		return
	}

	coins, err := h.usecase.GetBalance(ctx, identity)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, domain.BalanceResponse{Coins: coins}, requestID)

	logger.AccessLogger.Info("Completed GetBalance request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *EconomyHandler) AddCoins(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received AddCoins request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.handleError(w, domain.ErrUnauthorized, requestID)
		return
	}

	var data domain.GrantRequest
	if err := decode(r.Body, &data); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	coins, err := h.usecase.GrantCoins(ctx, identity, data.Amount)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, domain.BalanceResponse{Coins: coins}, requestID)

	logger.AccessLogger.Info("Completed AddCoins request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

// Purchase takes the item id from the {itemId} route variable when present,
// otherwise from the JSON body.
func (h *EconomyHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received Purchase request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.handleError(w, domain.ErrUnauthorized, requestID)
		return
	}

	var data domain.PurchaseRequest
	if raw, found := mux.Vars(r)["itemId"]; found {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.handleError(w, pkgerrors.Wrap(domain.ErrInvalidInput, "invalid item id"), requestID)
			return
		}
		data.ItemID = id
	} else if err := decode(r.Body, &data); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	skin, err := h.usecase.PurchaseSkin(ctx, identity, data.ItemID)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, skin, requestID)

	logger.AccessLogger.Info("Completed Purchase request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *EconomyHandler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received History request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.handleError(w, domain.ErrUnauthorized, requestID)
		return
	}

	entries, err := h.usecase.History(ctx, identity)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}

	response.JSON(w, http.StatusOK, entries, requestID)

	logger.AccessLogger.Info("Completed History request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *EconomyHandler) Info(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received Info request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.handleError(w, domain.ErrUnauthorized, requestID)
		return
	}

	summary, err := h.usecase.Summary(ctx, identity)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, summary, requestID)

	logger.AccessLogger.Info("Completed Info request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func decode(body io.Reader, dst interface{}) error {
	if body == nil {
		return pkgerrors.Wrap(domain.ErrInvalidInput, "empty request body")
	}
	if err := json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(dst); err != nil {
		return pkgerrors.Wrap(domain.ErrInvalidInput, "invalid request body")
	}
	return nil
}

func (h *EconomyHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	response.Error(w, err, requestID)
}
