package usecase

import (
	"context"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// CatalogRepository serves tag and ingredient reference data.
type CatalogRepository interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTag(ctx context.Context, id int64) (domain.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
	ListIngredients(ctx context.Context, search string) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error)
	GetIngredientsByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
}

// RecipeRepository persists the recipe aggregate. Create and Update
// must write the recipe and both association sets atomically.
type RecipeRepository interface {
	Create(ctx context.Context, recipe domain.Recipe, tagIDs []int64, ingredients []domain.IngredientAmount) (domain.Recipe, error)
	Update(ctx context.Context, recipe domain.Recipe, tagIDs []int64, ingredients []domain.IngredientAmount) (domain.Recipe, error)
	Get(ctx context.Context, id int64) (domain.Recipe, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error)
	TagsOf(ctx context.Context, recipeID int64) ([]domain.Tag, error)
	IngredientsOf(ctx context.Context, recipeID int64) ([]domain.IngredientView, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// RelationRepository persists the favorite and shopping-cart pair sets
// and answers the aggregated shopping list.
type RelationRepository interface {
	AddFavorite(ctx context.Context, userID, recipeID int64) error
	RemoveFavorite(ctx context.Context, userID, recipeID int64) error
	AddCart(ctx context.Context, userID, recipeID int64) error
	RemoveCart(ctx context.Context, userID, recipeID int64) error
	FavoritedSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	CartSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	ShoppingList(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error)
}

// SubscriptionRepository persists subscriber→target pairs.
type SubscriptionRepository interface {
	Add(ctx context.Context, subscriberID, targetID int64) error
	Remove(ctx context.Context, subscriberID, targetID int64) error
	SubscribedSet(ctx context.Context, subscriberID int64, targetIDs []int64) (map[int64]bool, error)
	Targets(ctx context.Context, subscriberID int64) ([]int64, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// ImageStore accepts a base64 data URI and returns the stored public
// path.
type ImageStore interface {
	Save(dataURI string) (string, error)
}
