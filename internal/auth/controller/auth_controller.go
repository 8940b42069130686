package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/auth/usecase"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/response"
)

const maxBodySize = 1 << 16

type AuthHandler struct {
	usecase usecase.AuthUsecase
}

func NewAuthHandler(usecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{usecase: usecase}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received Register request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	creds, err := decodeCredentials(r.Body)
	if err != nil {
		logger.AccessLogger.Warn("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, err, requestID)
		return
	}

	result, err := h.usecase.Register(ctx, creds.Login, creds.Password)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, result, requestID)

	logger.AccessLogger.Info("Completed Register request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received Login request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	creds, err := decodeCredentials(r.Body)
	if err != nil {
		logger.AccessLogger.Warn("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, err, requestID)
		return
	}

	result, err := h.usecase.Login(ctx, creds.Login, creds.Password)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, result, requestID)

	logger.AccessLogger.Info("Completed Login request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func decodeCredentials(body io.Reader) (domain.Credentials, error) {
	var creds domain.Credentials
	if body == nil {
		return creds, pkgerrors.Wrap(domain.ErrInvalidInput, "empty request body")
	}
	if err := json.NewDecoder(io.LimitReader(body, maxBodySize)).Decode(&creds); err != nil {
		return creds, pkgerrors.Wrap(domain.ErrInvalidInput, "invalid request body")
	}
	return creds, nil
}

func (h *AuthHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	response.Error(w, err, requestID)
}
