// Package token issues and validates the bearer credentials used by every
// account-scoped endpoint.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"skinshop/domain"
)

const (
	DefaultTTL      = 7 * 24 * time.Hour
	MinSecretLength = 32
)

var ErrWeakSecret = errors.New("token: signing secret is too short")

// Identity is the authenticated caller. Only Validate can produce a
// non-zero value, so holding one proves the token checks passed.
type Identity struct {
	accountID int64
	sessionID string
	expiresAt time.Time
}

func (i Identity) AccountID() int64     { return i.accountID }
func (i Identity) SessionID() string    { return i.sessionID }
func (i Identity) ExpiresAt() time.Time { return i.expiresAt }

func (i Identity) IsZero() bool { return i.accountID == 0 }

type Issued struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

type Service interface {
	Issue(accountID int64) (Issued, error)
	Validate(tokenString string) (Identity, error)
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret []byte, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Manager{secret: key, ttl: ttl, now: time.Now}, nil
}

func (m *Manager) Issue(accountID int64) (Issued, error) {
	if accountID <= 0 {
		return Issued{}, errors.New("token: invalid account id")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	sessionID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(accountID, 10),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Issued{}, err
	}

	return Issued{Token: signed, SessionID: sessionID, ExpiresAt: time.Unix(expiresAt.Unix(), 0)}, nil
}

// Validate checks signature, expiry and subject. Every failure is reported as
// domain.ErrUnauthorized so callers cannot tell which check failed.
func (m *Manager) Validate(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, domain.ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, m.secretGetter,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, domain.ErrUnauthorized
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return Identity{}, domain.ErrUnauthorized
	}

	return Identity{
		accountID: accountID,
		sessionID: claims.ID,
		expiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (m *Manager) secretGetter(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("bad sign method")
	}
	return m.secret, nil
}
