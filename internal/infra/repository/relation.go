package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/infra/database/models"
)

// RelationRepository persists the per-user (user, recipe) pair sets:
// favorites and the shopping cart. Both tables carry a composite unique
// constraint, so a racing duplicate insert surfaces as a conflict.
type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

func (r *RelationRepository) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&models.FavoriteRecipe{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Message: "recipe already in favorites"}
	}
	return err
}

func (r *RelationRepository) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.FavoriteRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "favorite"}
	}
	return nil
}

func (r *RelationRepository) AddCart(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Create(&models.RecipeShoppingCart{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Message: "recipe already in shopping cart"}
	}
	return err
}

func (r *RelationRepository) RemoveCart(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "shopping cart entry"}
	}
	return nil
}

// FavoritedSet reports which of the given recipes the user has
// favorited, in one query.
func (r *RelationRepository) FavoritedSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return r.pairSet(ctx, &models.FavoriteRecipe{}, userID, recipeIDs)
}

// CartSet reports which of the given recipes are in the user's cart.
func (r *RelationRepository) CartSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return r.pairSet(ctx, &models.RecipeShoppingCart{}, userID, recipeIDs)
}

func (r *RelationRepository) pairSet(ctx context.Context, model any, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	result := map[int64]bool{}
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var found []int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &found).Error
	if err != nil {
		return nil, err
	}

	for _, id := range found {
		result[id] = true
	}
	return result, nil
}

// ShoppingList flattens every RecipeIngredient row of the user's cart
// recipes and sums amounts per (ingredient name, unit). Rows come back
// ordered by ingredient name ascending so the export is deterministic.
func (r *RelationRepository) ShoppingList(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	err := r.db.WithContext(ctx).
		Model(&models.RecipeShoppingCart{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipe_shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
