package domain

import "time"

// Recipe is the aggregate root. It owns its tag and ingredient
// association sets; those are only ever written through the aggregate,
// never as free-standing entities.
type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	CookingTime int
	Image       string
	Created     time.Time
}

// IngredientAmount is one validated (ingredient, amount) entry of a
// recipe write.
type IngredientAmount struct {
	IngredientID int64
	Amount       int
}

// RecipeView is the full representation rendered for a specific viewer.
type RecipeView struct {
	ID               int64            `json:"id"`
	Author           UserView         `json:"author"`
	Name             string           `json:"name"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
	Image            string           `json:"image"`
	Tags             []Tag            `json:"tags"`
	Ingredients      []IngredientView `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
}

// IngredientView is an ingredient together with the amount used by the
// recipe it is rendered under.
type IngredientView struct {
	Ingredient
	Amount int `json:"amount"`
}

// ShortRecipeView is the compact representation used by relation
// toggles and subscription listings.
type ShortRecipeView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ShoppingListItem is one aggregated row of a user's shopping list:
// amounts of the same ingredient are summed across all cart recipes.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int64  `json:"total"`
}

// RecipeFilter narrows a recipe listing before pagination. Nil/empty
// fields are ignored.
type RecipeFilter struct {
	AuthorID    *int64
	TagSlugs    []string
	FavoritedBy *int64
	InCartOf    *int64
	Limit       int
	Offset      int
}

// ShortView renders the compact representation of a recipe.
func (r Recipe) ShortView() ShortRecipeView {
	return ShortRecipeView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
