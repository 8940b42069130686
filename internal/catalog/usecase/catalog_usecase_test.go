package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skinshop/domain"
	"skinshop/internal/catalog/mocks"
	"skinshop/internal/service/token"
)

func TestListAvailable(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	uc := NewCatalogUsecase(repo)

	repo.On("ListAvailable", mock.Anything).Return([]domain.Skin{{ID: 1, Name: "sword", Price: 30}}, nil)

	skins, err := uc.ListAvailable(context.Background())

	require.NoError(t, err)
	assert.Len(t, skins, 1)
	repo.AssertExpectations(t)
}

func TestListOwned(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m, err := token.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
		require.NoError(t, err)
		issued, err := m.Issue(4)
		require.NoError(t, err)
		identity, err := m.Validate(issued.Token)
		require.NoError(t, err)

		repo := new(mocks.MockCatalogRepository)
		uc := NewCatalogUsecase(repo)
		owner := int64(4)
		repo.On("ListOwned", mock.Anything, int64(4)).Return([]domain.Skin{{ID: 2, OwnerID: &owner}}, nil)

		skins, err := uc.ListOwned(context.Background(), identity)

		require.NoError(t, err)
		require.Len(t, skins, 1)
		assert.Equal(t, int64(2), skins[0].ID)
	})

	t.Run("Zero Identity", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepository)
		uc := NewCatalogUsecase(repo)

		_, err := uc.ListOwned(context.Background(), token.Identity{})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "ListOwned", mock.Anything, mock.Anything)
	})
}
