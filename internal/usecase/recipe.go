package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// RecipeInput carries the validated-shape fields of a recipe write.
// Semantic validation (existence, duplicates, ranges) happens in the
// usecase before any mutation.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	TagIDs      []int64
	Ingredients []domain.IngredientAmount
}

type RecipeUsecase struct {
	recipes       RecipeRepository
	catalog       CatalogRepository
	relations     RelationRepository
	subscriptions SubscriptionRepository
	users         UserRepository
	images        ImageStore
}

func NewRecipeUsecase(
	recipes RecipeRepository,
	catalog CatalogRepository,
	relations RelationRepository,
	subscriptions SubscriptionRepository,
	users UserRepository,
	images ImageStore,
) *RecipeUsecase {
	return &RecipeUsecase{
		recipes:       recipes,
		catalog:       catalog,
		relations:     relations,
		subscriptions: subscriptions,
		users:         users,
		images:        images,
	}
}

func (uc *RecipeUsecase) Create(ctx context.Context, author domain.User, input RecipeInput) (domain.RecipeView, error) {
	if err := uc.validateInput(ctx, input); err != nil {
		return domain.RecipeView{}, err
	}

	imagePath, err := uc.images.Save(input.Image)
	if err != nil {
		return domain.RecipeView{}, err
	}

	recipe, err := uc.recipes.Create(ctx, domain.Recipe{
		AuthorID:    author.ID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       imagePath,
	}, input.TagIDs, input.Ingredients)
	if err != nil {
		return domain.RecipeView{}, err
	}

	return uc.buildView(ctx, recipe, &author.ID)
}

func (uc *RecipeUsecase) Update(ctx context.Context, recipeID int64, actor domain.User, input RecipeInput) (domain.RecipeView, error) {
	existing, err := uc.recipes.Get(ctx, recipeID)
	if err != nil {
		return domain.RecipeView{}, err
	}
	if existing.AuthorID != actor.ID && !actor.IsStaff {
		return domain.RecipeView{}, domain.PermissionError{Message: "only the author may modify the recipe"}
	}

	if err := uc.validateInput(ctx, input); err != nil {
		return domain.RecipeView{}, err
	}

	imagePath, err := uc.images.Save(input.Image)
	if err != nil {
		return domain.RecipeView{}, err
	}

	recipe, err := uc.recipes.Update(ctx, domain.Recipe{
		ID:          recipeID,
		AuthorID:    existing.AuthorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       imagePath,
	}, input.TagIDs, input.Ingredients)
	if err != nil {
		return domain.RecipeView{}, err
	}

	return uc.buildView(ctx, recipe, &actor.ID)
}

func (uc *RecipeUsecase) Delete(ctx context.Context, recipeID int64, actor domain.User) error {
	existing, err := uc.recipes.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actor.ID && !actor.IsStaff {
		return domain.PermissionError{Message: "only the author may delete the recipe"}
	}
	return uc.recipes.Delete(ctx, recipeID)
}

func (uc *RecipeUsecase) Get(ctx context.Context, recipeID int64, viewerID *int64) (domain.RecipeView, error) {
	recipe, err := uc.recipes.Get(ctx, recipeID)
	if err != nil {
		return domain.RecipeView{}, err
	}
	return uc.buildView(ctx, recipe, viewerID)
}

func (uc *RecipeUsecase) List(ctx context.Context, filter domain.RecipeFilter, viewerID *int64) ([]domain.RecipeView, error) {
	recipes, err := uc.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.buildViews(ctx, recipes, viewerID)
}

// validateInput enforces every rule before any write: non-empty and
// duplicate-free tag/ingredient lists, resolvable foreign ids, amounts
// and cooking time at least 1.
func (uc *RecipeUsecase) validateInput(ctx context.Context, input RecipeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.ValidationError{Message: "name is required"}
	}
	if strings.TrimSpace(input.Text) == "" {
		return domain.ValidationError{Message: "text is required"}
	}
	if input.CookingTime < 1 {
		return domain.ValidationError{Message: "cooking time must be greater than or equal to 1"}
	}

	if len(input.TagIDs) == 0 {
		return domain.ValidationError{Message: "a recipe must have at least one tag"}
	}
	seenTags := make(map[int64]struct{}, len(input.TagIDs))
	for _, id := range input.TagIDs {
		if _, ok := seenTags[id]; ok {
			return domain.ValidationError{Message: "tag list contains duplicates"}
		}
		seenTags[id] = struct{}{}
	}
	if _, err := uc.catalog.GetTagsByIDs(ctx, input.TagIDs); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ValidationError{Message: "no such tag"}
		}
		return err
	}

	if len(input.Ingredients) == 0 {
		return domain.ValidationError{Message: "a recipe must have at least one ingredient"}
	}
	seenIngredients := make(map[int64]struct{}, len(input.Ingredients))
	ids := make([]int64, 0, len(input.Ingredients))
	for _, entry := range input.Ingredients {
		if _, ok := seenIngredients[entry.IngredientID]; ok {
			return domain.ValidationError{Message: "ingredient list contains duplicates"}
		}
		seenIngredients[entry.IngredientID] = struct{}{}
		if entry.Amount < 1 {
			return domain.ValidationError{Message: "amount must be greater than or equal to 1"}
		}
		ids = append(ids, entry.IngredientID)
	}
	if _, err := uc.catalog.GetIngredientsByIDs(ctx, ids); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ValidationError{Message: "no such ingredient"}
		}
		return err
	}

	return nil
}

func (uc *RecipeUsecase) buildView(ctx context.Context, recipe domain.Recipe, viewerID *int64) (domain.RecipeView, error) {
	views, err := uc.buildViews(ctx, []domain.Recipe{recipe}, viewerID)
	if err != nil {
		return domain.RecipeView{}, err
	}
	return views[0], nil
}

// buildViews renders recipes for a viewer. The computed flags are a
// pure function of (recipe, viewer): anonymous viewers get false
// without any existence query.
func (uc *RecipeUsecase) buildViews(ctx context.Context, recipes []domain.Recipe, viewerID *int64) ([]domain.RecipeView, error) {
	recipeIDs := make([]int64, 0, len(recipes))
	authorIDSet := map[int64]struct{}{}
	authorIDs := []int64{}
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		if _, ok := authorIDSet[recipe.AuthorID]; !ok {
			authorIDSet[recipe.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, recipe.AuthorID)
		}
	}

	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	subscribed := map[int64]bool{}
	if viewerID != nil {
		var err error
		favorited, err = uc.relations.FavoritedSet(ctx, *viewerID, recipeIDs)
		if err != nil {
			return nil, err
		}
		inCart, err = uc.relations.CartSet(ctx, *viewerID, recipeIDs)
		if err != nil {
			return nil, err
		}
		subscribed, err = uc.subscriptions.SubscribedSet(ctx, *viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	authors, err := uc.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[int64]domain.User, len(authors))
	for _, author := range authors {
		authorByID[author.ID] = author
	}

	views := make([]domain.RecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		tags, err := uc.recipes.TagsOf(ctx, recipe.ID)
		if err != nil {
			return nil, err
		}
		ingredients, err := uc.recipes.IngredientsOf(ctx, recipe.ID)
		if err != nil {
			return nil, err
		}

		author := authorByID[recipe.AuthorID]
		views = append(views, domain.RecipeView{
			ID:               recipe.ID,
			Author:           author.View(subscribed[author.ID]),
			Name:             recipe.Name,
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
			Image:            recipe.Image,
			Tags:             tags,
			Ingredients:      ingredients,
			IsFavorited:      favorited[recipe.ID],
			IsInShoppingCart: inCart[recipe.ID],
		})
	}
	return views, nil
}
