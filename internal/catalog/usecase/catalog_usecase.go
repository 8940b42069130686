package usecase

import (
	"context"

	"skinshop/domain"
	"skinshop/internal/service/token"
)

type CatalogUsecase interface {
	ListAvailable(ctx context.Context) ([]domain.Skin, error)
	ListOwned(ctx context.Context, identity token.Identity) ([]domain.Skin, error)
}

type catalogUsecase struct {
	catalogRepository domain.CatalogRepository
}

func NewCatalogUsecase(catalogRepository domain.CatalogRepository) CatalogUsecase {
	return &catalogUsecase{
		catalogRepository: catalogRepository,
	}
}

func (uc *catalogUsecase) ListAvailable(ctx context.Context) ([]domain.Skin, error) {
	return uc.catalogRepository.ListAvailable(ctx)
}

func (uc *catalogUsecase) ListOwned(ctx context.Context, identity token.Identity) ([]domain.Skin, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return uc.catalogRepository.ListOwned(ctx, identity.AccountID())
}
