package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/infra/database/models"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts the recipe and both association sets in one
// transaction. The caller has already validated tag/ingredient
// existence, uniqueness and amounts.
func (r *RecipeRepository) Create(ctx context.Context, recipe domain.Recipe, tagIDs []int64, ingredients []domain.IngredientAmount) (domain.Recipe, error) {
	row := models.Recipe{
		AuthorID:    recipe.AuthorID,
		Name:        recipe.Name,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Image:       recipe.Image,
		Created:     time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return insertAssociations(tx, row.ID, tagIDs, ingredients)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Recipe{}, domain.ConflictError{Message: "recipe name already exists"}
	}
	if err != nil {
		return domain.Recipe{}, pkgerrors.Wrap(err, "RecipeRepository.Create")
	}

	return recipeToDomain(row), nil
}

// Update rewrites the scalar fields and replaces both association sets
// wholesale: delete-all then bulk insert, inside one transaction, so a
// reader can never observe a partially replaced set. Author and Created
// are never touched.
func (r *RecipeRepository) Update(ctx context.Context, recipe domain.Recipe, tagIDs []int64, ingredients []domain.IngredientAmount) (domain.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError{Resource: "recipe"}
		}

		if err := tx.Delete(&models.RecipeTag{}, "recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeIngredient{}, "recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return insertAssociations(tx, recipe.ID, tagIDs, ingredients)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Recipe{}, domain.ConflictError{Message: "recipe name already exists"}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Recipe{}, err
	}
	if err != nil {
		return domain.Recipe{}, pkgerrors.Wrap(err, "RecipeRepository.Update")
	}

	return r.Get(ctx, recipe.ID)
}

func insertAssociations(tx *gorm.DB, recipeID int64, tagIDs []int64, ingredients []domain.IngredientAmount) error {
	recipeTags := make([]models.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		recipeTags = append(recipeTags, models.RecipeTag{
			RecipeID: recipeID,
			TagID:    tagID,
		})
	}
	if err := tx.Create(&recipeTags).Error; err != nil {
		return err
	}

	recipeIngredients := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, entry := range ingredients {
		recipeIngredients = append(recipeIngredients, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: entry.IngredientID,
			Amount:       entry.Amount,
		})
	}
	return tx.Create(&recipeIngredients).Error
}

func (r *RecipeRepository) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	var row models.Recipe
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Recipe{}, domain.NotFoundError{Resource: "recipe"}
	}
	if err != nil {
		return domain.Recipe{}, err
	}
	return recipeToDomain(row), nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	// Join rows are deleted explicitly so the cascade does not depend
	// on dialect-level foreign key enforcement.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeTag{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeIngredient{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.FavoriteRecipe{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeShoppingCart{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError{Resource: "recipe"}
		}
		return nil
	})
}

// List returns recipes ordered newest first, narrowed by the filter.
func (r *RecipeRepository) List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.Where(
			"recipes.id IN (?)",
			r.db.Model(&models.RecipeTag{}).
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs),
		)
	}
	if filter.FavoritedBy != nil {
		query = query.Where(
			"recipes.id IN (?)",
			r.db.Model(&models.FavoriteRecipe{}).
				Select("recipe_id").
				Where("user_id = ?", *filter.FavoritedBy),
		)
	}
	if filter.InCartOf != nil {
		query = query.Where(
			"recipes.id IN (?)",
			r.db.Model(&models.RecipeShoppingCart{}).
				Select("recipe_id").
				Where("user_id = ?", *filter.InCartOf),
		)
	}

	query = query.Order("created DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []models.Recipe
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		result = append(result, recipeToDomain(row))
	}
	return result, nil
}

// TagsOf returns the recipe's tags ordered by tag id ascending.
func (r *RecipeRepository) TagsOf(ctx context.Context, recipeID int64) ([]domain.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("recipe_tags.recipe_id = ?", recipeID).
		Order("tags.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		result = append(result, tagToDomain(tag))
	}
	return result, nil
}

// IngredientsOf returns the recipe's ingredients with amounts, ordered
// by ingredient id ascending.
func (r *RecipeRepository) IngredientsOf(ctx context.Context, recipeID int64) ([]domain.IngredientView, error) {
	var rows []struct {
		models.Ingredient
		Amount int
	}
	err := r.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.*, recipe_ingredients.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Order("ingredients.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.IngredientView, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.IngredientView{
			Ingredient: ingredientToDomain(row.Ingredient),
			Amount:     row.Amount,
		})
	}
	return result, nil
}

// ListByAuthor returns the author's recipes newest first. limit <= 0
// means no limit.
func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.Recipe
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		result = append(result, recipeToDomain(row))
	}
	return result, nil
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func recipeToDomain(row models.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:          row.ID,
		AuthorID:    row.AuthorID,
		Name:        row.Name,
		Text:        row.Text,
		CookingTime: row.CookingTime,
		Image:       row.Image,
		Created:     row.Created,
	}
}
