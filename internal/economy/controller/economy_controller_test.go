package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/economy/mocks"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/token"
)

func identityFor(t *testing.T, accountID int64) token.Identity {
	t.Helper()
	m, err := token.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	issued, err := m.Issue(accountID)
	require.NoError(t, err)
	identity, err := m.Validate(issued.Token)
	require.NoError(t, err)
	return identity
}

func authenticated(r *http.Request, identity token.Identity) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), identity))
}

func TestGetBalance(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	identity := identityFor(t, 1)

	t.Run("Success", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("GetBalance", mock.Anything, identity).Return(int64(50), nil)

		r, w := createTestRequest(http.MethodGet, "/api/balance", nil)
		h.GetBalance(w, authenticated(r, identity))

		assert.Equal(t, http.StatusOK, w.Code)
		var body domain.BalanceResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, int64(50), body.Coins)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Missing Identity", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		r, w := createTestRequest(http.MethodGet, "/api/balance", nil)
		h.GetBalance(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUsecase.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
	})

	t.Run("Account Missing", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("GetBalance", mock.Anything, identity).
			Return(int64(0), pkgerrors.Wrap(domain.ErrNotFound, "account not found"))

		r, w := createTestRequest(http.MethodPost, "/api/balance", nil)
		h.GetBalance(w, authenticated(r, identity))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAddCoins(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	identity := identityFor(t, 1)

	t.Run("Success", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("GrantCoins", mock.Anything, identity, int64(100)).Return(int64(150), nil)

		body, _ := json.Marshal(domain.GrantRequest{Amount: 100})
		r, w := createTestRequest(http.MethodPost, "/api/add-coins", body)
		h.AddCoins(w, authenticated(r, identity))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp domain.BalanceResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(150), resp.Coins)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("GrantCoins", mock.Anything, identity, int64(-5)).
			Return(int64(0), pkgerrors.Wrap(domain.ErrInvalidInput, "amount must be positive"))

		body, _ := json.Marshal(domain.GrantRequest{Amount: -5})
		r, w := createTestRequest(http.MethodPost, "/api/add-coins", body)
		h.AddCoins(w, authenticated(r, identity))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		r, w := createTestRequest(http.MethodPost, "/api/add-coins", []byte(`{"amount":"lots"}`))
		h.AddCoins(w, authenticated(r, identity))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUsecase.AssertNotCalled(t, "GrantCoins", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPurchase(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	identity := identityFor(t, 1)
	owner := int64(1)

	t.Run("Success From Body", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("PurchaseSkin", mock.Anything, identity, int64(7)).
			Return(&domain.Skin{ID: 7, Name: "sword", Price: 30, OwnerID: &owner}, nil)

		body, _ := json.Marshal(domain.PurchaseRequest{ItemID: 7})
		r, w := createTestRequest(http.MethodPost, "/api/purchase", body)
		h.Purchase(w, authenticated(r, identity))

		assert.Equal(t, http.StatusOK, w.Code)
		var skin domain.Skin
		require.NoError(t, json.NewDecoder(w.Body).Decode(&skin))
		assert.Equal(t, int64(7), skin.ID)
		require.NotNil(t, skin.OwnerID)
		assert.Equal(t, owner, *skin.OwnerID)
	})

	t.Run("Success From Route", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("PurchaseSkin", mock.Anything, identity, int64(9)).
			Return(&domain.Skin{ID: 9, Name: "shield", Price: 10, OwnerID: &owner}, nil)

		r, w := createTestRequest(http.MethodPost, "/api/purchase/9", nil)
		r = mux.SetURLVars(r, map[string]string{"itemId": "9"})
		h.Purchase(w, authenticated(r, identity))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Bad Route Id", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		r, w := createTestRequest(http.MethodPost, "/api/purchase/abc", nil)
		r = mux.SetURLVars(r, map[string]string{"itemId": "abc"})
		h.Purchase(w, authenticated(r, identity))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
	}{
		{"Insufficient Funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"Already Owned", domain.ErrConflict, http.StatusConflict},
		{"Not Found", domain.ErrNotFound, http.StatusNotFound},
		{"Internal", domain.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUsecase := new(mocks.MockEconomyUsecase)
			h := NewEconomyHandler(mockUsecase)

			mockUsecase.On("PurchaseSkin", mock.Anything, identity, int64(7)).
				Return(nil, pkgerrors.Wrap(tc.err, "purchase failed"))

			body, _ := json.Marshal(domain.PurchaseRequest{ItemID: 7})
			r, w := createTestRequest(http.MethodPost, "/api/purchase", body)
			h.Purchase(w, authenticated(r, identity))

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestHistory(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	identity := identityFor(t, 1)

	t.Run("Empty List", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("History", mock.Anything, identity).Return(nil, nil)

		r, w := createTestRequest(http.MethodGet, "/api/history", nil)
		h.History(w, authenticated(r, identity))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Entries", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("History", mock.Anything, identity).
			Return([]domain.LedgerEntry{{ID: 1, AccountID: 1, SkinID: 7, Price: 30}}, nil)

		r, w := createTestRequest(http.MethodGet, "/api/history", nil)
		h.History(w, authenticated(r, identity))

		var entries []domain.LedgerEntry
		require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
		require.Len(t, entries, 1)
		assert.Equal(t, int64(7), entries[0].SkinID)
	})
}

func TestInfo(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	identity := identityFor(t, 1)
	owner := int64(1)

	t.Run("Success", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("Summary", mock.Anything, identity).Return(domain.AccountSummary{
			Coins:   20,
			Items:   []domain.Skin{{ID: 7, Name: "sword", Price: 30, OwnerID: &owner}},
			History: []domain.LedgerEntry{{ID: 1, AccountID: 1, SkinID: 7, Price: 30}},
		}, nil)

		r, w := createTestRequest(http.MethodGet, "/api/info", nil)
		h.Info(w, authenticated(r, identity))

		assert.Equal(t, http.StatusOK, w.Code)
		var summary domain.AccountSummary
		require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
		assert.Equal(t, int64(20), summary.Coins)
		require.Len(t, summary.Items, 1)
		require.Len(t, summary.History, 1)
	})

	t.Run("Account Missing", func(t *testing.T) {
		mockUsecase := new(mocks.MockEconomyUsecase)
		h := NewEconomyHandler(mockUsecase)

		mockUsecase.On("Summary", mock.Anything, identity).
			Return(domain.AccountSummary{}, pkgerrors.Wrap(domain.ErrNotFound, "account not found"))

		r, w := createTestRequest(http.MethodGet, "/api/info", nil)
		h.Info(w, authenticated(r, identity))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func createTestRequest(method, url string, body []byte) (*http.Request, *httptest.ResponseRecorder) {
	r := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	r.Header.Set("Content-Type", "application/json")
	return r, httptest.NewRecorder()
}
