package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// ShoppingListFileName is the fixed name of the downloadable artifact.
const ShoppingListFileName = "shopping_cart.txt"

type ShoppingListUsecase struct {
	relations RelationRepository
}

func NewShoppingListUsecase(relations RelationRepository) *ShoppingListUsecase {
	return &ShoppingListUsecase{relations: relations}
}

// Build aggregates the user's cart: all ingredient rows of the cart
// recipes, grouped by (name, unit), amounts summed, ordered by
// ingredient name ascending.
func (uc *ShoppingListUsecase) Build(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	return uc.relations.ShoppingList(ctx, userID)
}

// Render formats the list as newline-separated "<name> <total><unit>"
// lines. Amount and unit are concatenated without a separator for
// compatibility with existing clients of the export.
func (uc *ShoppingListUsecase) Render(items []domain.ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s %d%s", item.Name, item.Total, item.MeasurementUnit))
	}
	return strings.Join(lines, "\n")
}
