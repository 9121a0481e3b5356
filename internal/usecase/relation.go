package usecase

import (
	"context"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// RelationUsecase implements the favorite and shopping-cart toggles.
// Each operation acts on exactly one (user, recipe) pair; the unique
// constraint backs the existence check, so a racing duplicate insert
// still comes back as a conflict rather than a crash.
type RelationUsecase struct {
	recipes   RecipeRepository
	relations RelationRepository
}

func NewRelationUsecase(recipes RecipeRepository, relations RelationRepository) *RelationUsecase {
	return &RelationUsecase{recipes: recipes, relations: relations}
}

func (uc *RelationUsecase) AddFavorite(ctx context.Context, userID, recipeID int64) (domain.ShortRecipeView, error) {
	recipe, err := uc.recipes.Get(ctx, recipeID)
	if err != nil {
		return domain.ShortRecipeView{}, err
	}
	if err := uc.relations.AddFavorite(ctx, userID, recipeID); err != nil {
		return domain.ShortRecipeView{}, err
	}
	return recipe.ShortView(), nil
}

func (uc *RelationUsecase) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := uc.recipes.Get(ctx, recipeID); err != nil {
		return err
	}
	return uc.relations.RemoveFavorite(ctx, userID, recipeID)
}

func (uc *RelationUsecase) AddCart(ctx context.Context, userID, recipeID int64) (domain.ShortRecipeView, error) {
	recipe, err := uc.recipes.Get(ctx, recipeID)
	if err != nil {
		return domain.ShortRecipeView{}, err
	}
	if err := uc.relations.AddCart(ctx, userID, recipeID); err != nil {
		return domain.ShortRecipeView{}, err
	}
	return recipe.ShortView(), nil
}

func (uc *RelationUsecase) RemoveCart(ctx context.Context, userID, recipeID int64) error {
	if _, err := uc.recipes.Get(ctx, recipeID); err != nil {
		return err
	}
	return uc.relations.RemoveCart(ctx, userID, recipeID)
}
