package usecase

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/metrics"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/password"
	"skinshop/internal/service/session"
	"skinshop/internal/service/token"
	"skinshop/internal/service/validation"
)

// maxInputLen caps login input in characters and stays above the registration maxima.
const maxInputLen = 100

type AuthUsecase interface {
	Register(ctx context.Context, login string, secret string) (domain.AuthResult, error)
	Login(ctx context.Context, login string, secret string) (domain.AuthResult, error)
}

type Options struct {
	StartingCoins int64
	// AutoLogin issues a token as part of a successful registration.
	AutoLogin bool
}

type authUsecase struct {
	authRepository domain.AuthRepository
	tokens         token.Service
	sessions       session.Store
	opts           Options
}

// NewAuthUsecase wires registration and login. sessions may be nil when the
// single-active-session policy is off.
func NewAuthUsecase(authRepository domain.AuthRepository, tokens token.Service, sessions session.Store, opts Options) AuthUsecase {
	return &authUsecase{
		authRepository: authRepository,
		tokens:         tokens,
		sessions:       sessions,
		opts:           opts,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnVerify spends the same time as a real verification so unknown logins
// are not distinguishable by latency.
func burnVerify(secret string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = password.Hash("placeholder-secret")
	})
	password.Verify(secret, dummyHash)
}

func (uc *authUsecase) Register(ctx context.Context, login string, secret string) (domain.AuthResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateLogin(login) {
		logger.AccessLogger.Warn("not correct login", zap.String("request_id", requestID))
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrInvalidInput, "not correct login")
	}
	if !validation.ValidatePassword(secret) {
		logger.AccessLogger.Warn("not correct password", zap.String("request_id", requestID))
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrInvalidInput, "not correct password")
	}

	// Fast path only: the unique index in CreateAccount is the real guard.
	_, err := uc.authRepository.FindByLogin(ctx, login)
	switch {
	case err == nil:
		metrics.RecordAuth("register", false)
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrConflict, "login already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return domain.AuthResult{}, err
	}

	hash, err := password.Hash(secret)
	if err != nil {
		logger.AccessLogger.Error("Failed to hash password", zap.String("request_id", requestID), zap.Error(err))
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrInternal, "failed to hash password")
	}

	account, err := uc.authRepository.CreateAccount(ctx, login, hash, uc.opts.StartingCoins)
	if err != nil {
		metrics.RecordAuth("register", false)
		return domain.AuthResult{}, err
	}
	metrics.RecordAuth("register", true)

	result := domain.AuthResult{Coins: account.Coins}
	if !uc.opts.AutoLogin {
		return result, nil
	}

	result.Token, err = uc.issue(ctx, account.ID)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return result, nil
}

func (uc *authUsecase) Login(ctx context.Context, login string, secret string) (domain.AuthResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if login == "" || secret == "" {
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrInvalidInput, "login and password are required")
	}
	if utf8.RuneCountInString(login) > maxInputLen || utf8.RuneCountInString(secret) > maxInputLen {
		logger.AccessLogger.Warn("Input exceeds character limit", zap.String("request_id", requestID))
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrInvalidInput, "input exceeds character limit")
	}

	account, err := uc.authRepository.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			burnVerify(secret)
			metrics.RecordAuth("login", false)
			return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrUnauthorized, "invalid credentials")
		}
		return domain.AuthResult{}, err
	}

	if !password.Verify(secret, account.PasswordHash) {
		metrics.RecordAuth("login", false)
		return domain.AuthResult{}, pkgerrors.Wrap(domain.ErrUnauthorized, "invalid credentials")
	}
	metrics.RecordAuth("login", true)

	if password.NeedsRehash(account.PasswordHash) {
		uc.rehash(ctx, account.ID, secret)
	}

	tokenString, err := uc.issue(ctx, account.ID)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{Token: tokenString, Coins: account.Coins}, nil
}

func (uc *authUsecase) rehash(ctx context.Context, accountID int64, secret string) {
	requestID := middleware.GetRequestID(ctx)
	hash, err := password.Hash(secret)
	if err == nil {
		err = uc.authRepository.UpdatePasswordHash(ctx, accountID, hash)
	}
	if err != nil {
		logger.AccessLogger.Warn("Failed to upgrade password hash",
			zap.String("request_id", requestID),
			zap.Int64("account_id", accountID),
			zap.Error(err),
		)
	}
}

// issue signs a token for the account, records it as the active session when
// sessions are enforced, and mirrors it onto the account row.
func (uc *authUsecase) issue(ctx context.Context, accountID int64) (string, error) {
	requestID := middleware.GetRequestID(ctx)

	issued, err := uc.tokens.Issue(accountID)
	if err != nil {
		logger.AccessLogger.Error("Failed to create JWT token", zap.String("request_id", requestID), zap.Error(err))
		return "", pkgerrors.Wrap(domain.ErrInternal, "failed to create token")
	}

	if uc.sessions != nil {
		if err := uc.sessions.Save(ctx, accountID, issued.SessionID, time.Until(issued.ExpiresAt)); err != nil {
			logger.AccessLogger.Error("Failed to store session",
				zap.String("request_id", requestID),
				zap.Int64("account_id", accountID),
				zap.Error(err),
			)
			return "", pkgerrors.Wrap(domain.ErrInternal, "failed to store session")
		}
	}

	if err := uc.authRepository.SaveSession(ctx, accountID, issued.SessionID, issued.ExpiresAt); err != nil {
		logger.AccessLogger.Warn("Failed to mirror session on account",
			zap.String("request_id", requestID),
			zap.Int64("account_id", accountID),
			zap.Error(err),
		)
	}

	return issued.Token, nil
}
