package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/infra/database/models"
)

// CatalogRepository serves tags and ingredients. Both are immutable
// reference data, so by-id lookups go through a short-lived in-process
// cache.
type CatalogRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		db:    db,
		cache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (r *CatalogRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Order("id ASC").
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

func (r *CatalogRepository) GetTag(ctx context.Context, id int64) (domain.Tag, error) {
	cacheKey := fmt.Sprintf("tag:%d", id)
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.(domain.Tag), nil
	}

	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Tag{}, domain.NotFoundError{Resource: "tag"}
	}
	if err != nil {
		return domain.Tag{}, err
	}

	result := tagToDomain(tag)
	r.cache.SetDefault(cacheKey, result)
	return result, nil
}

// GetTagsByIDs resolves every id or fails; the result preserves the
// requested order.
func (r *CatalogRepository) GetTagsByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	result := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := r.GetTag(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, nil
}

func (r *CatalogRepository) ListIngredients(ctx context.Context, search string) ([]domain.Ingredient, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if search != "" {
		query = query.Where("name LIKE ?", search+"%")
	}

	var ingredients []models.Ingredient
	err := query.Find(&ingredients).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, ingredientToDomain(ingredient))
	}
	return result, nil
}

func (r *CatalogRepository) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	cacheKey := fmt.Sprintf("ingredient:%d", id)
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.(domain.Ingredient), nil
	}

	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Ingredient{}, domain.NotFoundError{Resource: "ingredient"}
	}
	if err != nil {
		return domain.Ingredient{}, err
	}

	result := ingredientToDomain(ingredient)
	r.cache.SetDefault(cacheKey, result)
	return result, nil
}

func (r *CatalogRepository) GetIngredientsByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	result := make([]domain.Ingredient, 0, len(ids))
	for _, id := range ids {
		ingredient, err := r.GetIngredient(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, ingredient)
	}
	return result, nil
}

func tagToDomain(tag models.Tag) domain.Tag {
	return domain.Tag{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func ingredientToDomain(ingredient models.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
