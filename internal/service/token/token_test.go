package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinshop/domain"
)

var (
	testSecret  = []byte("0123456789abcdef0123456789abcdef")
	otherSecret = []byte("fedcba9876543210fedcba9876543210")
)

func newTestManager(t *testing.T, secret []byte) *Manager {
	m, err := NewManager(secret, DefaultTTL)
	require.NoError(t, err)
	return m
}

func signClaims(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key interface{}) string {
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestNewManager(t *testing.T) {
	_, err := NewManager([]byte("short"), time.Hour)
	assert.ErrorIs(t, err, ErrWeakSecret)

	m, err := NewManager(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, m.ttl)
}

func TestIssueAndValidate(t *testing.T) {
	m := newTestManager(t, testSecret)

	issued, err := m.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.SessionID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.ExpiresAt, 5*time.Second)

	identity, err := m.Validate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.AccountID())
	assert.Equal(t, issued.SessionID, identity.SessionID())
	assert.Equal(t, issued.ExpiresAt.Unix(), identity.ExpiresAt().Unix())
	assert.False(t, identity.IsZero())
}

func TestIssueInvalidAccount(t *testing.T) {
	m := newTestManager(t, testSecret)
	_, err := m.Issue(0)
	assert.Error(t, err)
}

func TestIssueUniqueSessions(t *testing.T) {
	m := newTestManager(t, testSecret)
	first, err := m.Issue(1)
	require.NoError(t, err)
	second, err := m.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestValidateRejects(t *testing.T) {
	m := newTestManager(t, testSecret)
	now := time.Now()

	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "7",
			ID:        "session",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	expired := valid()
	expired.IssuedAt = jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour))
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	noSubject := valid()
	noSubject.Subject = ""

	textSubject := valid()
	textSubject.Subject = "alice"

	negativeSubject := valid()
	negativeSubject.Subject = "-3"

	foreign := newTestManager(t, otherSecret)
	foreignIssued, err := foreign.Issue(7)
	require.NoError(t, err)

	own, err := m.Issue(7)
	require.NoError(t, err)
	parts := strings.Split(own.Token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	cases := map[string]string{
		"Empty":            "",
		"Garbage":          "not-a-token",
		"Expired":          signClaims(t, jwt.SigningMethodHS256, expired, testSecret),
		"No Expiry":        signClaims(t, jwt.SigningMethodHS256, noExpiry, testSecret),
		"No Subject":       signClaims(t, jwt.SigningMethodHS256, noSubject, testSecret),
		"Non Numeric":      signClaims(t, jwt.SigningMethodHS256, textSubject, testSecret),
		"Negative Subject": signClaims(t, jwt.SigningMethodHS256, negativeSubject, testSecret),
		"Other Key":        foreignIssued.Token,
		"HS512":            signClaims(t, jwt.SigningMethodHS512, valid(), testSecret),
		"None Alg":         signClaims(t, jwt.SigningMethodNone, valid(), jwt.UnsafeAllowNoneSignatureType),
		"Tampered":         tampered,
	}

	for name, tokenString := range cases {
		t.Run(name, func(t *testing.T) {
			identity, err := m.Validate(tokenString)
			assert.Equal(t, domain.ErrUnauthorized, err)
			assert.True(t, identity.IsZero())
		})
	}
}

func TestValidateExpiresWithClock(t *testing.T) {
	m := newTestManager(t, testSecret)
	issued, err := m.Issue(5)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Minute) }
	_, err = m.Validate(issued.Token)
	assert.Equal(t, domain.ErrUnauthorized, err)
}
