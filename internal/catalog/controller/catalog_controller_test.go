package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skinshop/domain"
	"skinshop/internal/catalog/mocks"
	"skinshop/internal/service/logger"
	"skinshop/internal/service/middleware"
	"skinshop/internal/service/token"
)

func TestAvailableItems(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	t.Run("Success", func(t *testing.T) {
		mockUsecase := new(mocks.MockCatalogUsecase)
		h := NewCatalogHandler(mockUsecase)

		mockUsecase.On("ListAvailable", mock.Anything).Return([]domain.Skin{
			{ID: 1, Name: "sword", Price: 30},
			{ID: 2, Name: "shield", Price: 10},
		}, nil)

		w := httptest.NewRecorder()
		h.AvailableItems(w, httptest.NewRequest(http.MethodGet, "/api/available-items", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var skins []domain.Skin
		require.NoError(t, json.NewDecoder(w.Body).Decode(&skins))
		require.Len(t, skins, 2)
		assert.Equal(t, "shield", skins[1].Name)
	})

	t.Run("Empty Renders Array", func(t *testing.T) {
		mockUsecase := new(mocks.MockCatalogUsecase)
		h := NewCatalogHandler(mockUsecase)

		mockUsecase.On("ListAvailable", mock.Anything).Return(nil, nil)

		w := httptest.NewRecorder()
		h.AvailableItems(w, httptest.NewRequest(http.MethodPost, "/api/available-items", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Store Failure", func(t *testing.T) {
		mockUsecase := new(mocks.MockCatalogUsecase)
		h := NewCatalogHandler(mockUsecase)

		mockUsecase.On("ListAvailable", mock.Anything).Return(nil, pkgerrors.Wrap(domain.ErrInternal, "failed to fetch catalog"))

		w := httptest.NewRecorder()
		h.AvailableItems(w, httptest.NewRequest(http.MethodGet, "/api/available-items", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestOwnedItems(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	m, err := token.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	issued, err := m.Issue(5)
	require.NoError(t, err)
	identity, err := m.Validate(issued.Token)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mockUsecase := new(mocks.MockCatalogUsecase)
		h := NewCatalogHandler(mockUsecase)
		owner := int64(5)

		mockUsecase.On("ListOwned", mock.Anything, identity).Return([]domain.Skin{{ID: 3, Name: "crown", OwnerID: &owner}}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/owned-items", nil)
		w := httptest.NewRecorder()
		h.OwnedItems(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))

		assert.Equal(t, http.StatusOK, w.Code)
		var skins []domain.Skin
		require.NoError(t, json.NewDecoder(w.Body).Decode(&skins))
		require.Len(t, skins, 1)
		assert.Equal(t, "crown", skins[0].Name)
	})

	t.Run("Missing Identity", func(t *testing.T) {
		mockUsecase := new(mocks.MockCatalogUsecase)
		h := NewCatalogHandler(mockUsecase)

		w := httptest.NewRecorder()
		h.OwnedItems(w, httptest.NewRequest(http.MethodGet, "/api/owned-items", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
