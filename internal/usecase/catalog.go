package usecase

import (
	"context"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

type CatalogUsecase struct {
	repo CatalogRepository
}

func NewCatalogUsecase(repo CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

func (uc *CatalogUsecase) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return uc.repo.ListTags(ctx)
}

func (uc *CatalogUsecase) GetTag(ctx context.Context, id int64) (domain.Tag, error) {
	return uc.repo.GetTag(ctx, id)
}

func (uc *CatalogUsecase) ListIngredients(ctx context.Context, search string) ([]domain.Ingredient, error) {
	return uc.repo.ListIngredients(ctx, search)
}

func (uc *CatalogUsecase) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	return uc.repo.GetIngredient(ctx, id)
}
