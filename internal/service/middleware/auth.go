package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/response"
	"skinshop/internal/service/session"
	"skinshop/internal/service/token"
)

const (
	identityKey key = 1

	maxTokenBody = 1 << 20
)

type Authenticator struct {
	tokens   token.Service
	sessions session.Store
}

// NewAuthenticator builds the auth gate. A nil session store means tokens are
// trusted on signature and expiry alone.
func NewAuthenticator(tokens token.Service, sessions session.Store) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		tokenString, err := extractToken(r)
		if err != nil || tokenString == "" {
			logger.AccessLogger.Warn("Missing bearer token", zap.String("request_id", requestID))
			response.Error(w, domain.ErrUnauthorized, requestID)
			return
		}

		identity, err := a.Authenticate(r.Context(), tokenString)
		if err != nil {
			logger.AccessLogger.Warn("Rejected bearer token", zap.String("request_id", requestID))
			response.Error(w, err, requestID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Authenticate validates the token and, when sessions are enforced, checks it
// is the latest session issued for the account.
func (a *Authenticator) Authenticate(ctx context.Context, tokenString string) (token.Identity, error) {
	identity, err := a.tokens.Validate(tokenString)
	if err != nil {
		return token.Identity{}, domain.ErrUnauthorized
	}
	if a.sessions == nil {
		return identity, nil
	}

	current, err := a.sessions.Current(ctx, identity.AccountID())
	if err != nil {
		logger.AccessLogger.Error("Failed to read session",
			zap.String("request_id", GetRequestID(ctx)),
			zap.Int64("account_id", identity.AccountID()),
			zap.Error(err),
		)
		return token.Identity{}, domain.ErrInternal
	}
	if current == "" || current != identity.SessionID() {
		return token.Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}

func WithIdentity(ctx context.Context, identity token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(token.Identity)
	if !ok || identity.IsZero() {
		return token.Identity{}, false
	}
	return identity, true
}

// extractToken looks at the Authorization header, then the JWT-Token header,
// then a "token" field of a JSON body. The body is restored for the handler.
func extractToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", nil
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if header := r.Header.Get("JWT-Token"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), nil
	}

	if r.Body == nil || r.Method == http.MethodGet {
		return "", nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBody))
	if err != nil {
		return "", err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Token string `json:"token"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return "", nil
	}
	return payload.Token, nil
}
