// Package response writes JSON bodies and maps domain errors to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/service/logger"
)

const internalMessage = "internal error"

func JSON(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

// StatusFor maps an error to its HTTP status and the message safe to return.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

func Error(w http.ResponseWriter, err error, requestID string) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.AccessLogger.Error("Handling error",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	} else {
		logger.AccessLogger.Warn("Handling error",
			zap.String("request_id", requestID),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	JSON(w, status, map[string]string{"error": message}, requestID)
}
