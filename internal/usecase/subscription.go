package usecase

import (
	"context"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

type SubscriptionUsecase struct {
	subscriptions SubscriptionRepository
	users         UserRepository
	recipes       RecipeRepository
}

func NewSubscriptionUsecase(
	subscriptions SubscriptionRepository,
	users UserRepository,
	recipes RecipeRepository,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subscriptions: subscriptions,
		users:         users,
		recipes:       recipes,
	}
}

func (uc *SubscriptionUsecase) Subscribe(ctx context.Context, subscriberID, targetID int64) (domain.SubscriptionView, error) {
	if subscriberID == targetID {
		return domain.SubscriptionView{}, domain.ValidationError{Message: "cannot subscribe to yourself"}
	}
	target, err := uc.users.Get(ctx, targetID)
	if err != nil {
		return domain.SubscriptionView{}, err
	}
	if err := uc.subscriptions.Add(ctx, subscriberID, targetID); err != nil {
		return domain.SubscriptionView{}, err
	}
	return uc.buildView(ctx, target, nil)
}

func (uc *SubscriptionUsecase) Unsubscribe(ctx context.Context, subscriberID, targetID int64) error {
	if _, err := uc.users.Get(ctx, targetID); err != nil {
		return err
	}
	return uc.subscriptions.Remove(ctx, subscriberID, targetID)
}

// List returns a SubscriptionView for every user the subscriber
// follows. recipesLimit truncates each target's recipe list; nil means
// the full list. RecipesCount is always the untruncated total.
func (uc *SubscriptionUsecase) List(ctx context.Context, subscriberID int64, recipesLimit *int) ([]domain.SubscriptionView, error) {
	targetIDs, err := uc.subscriptions.Targets(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	targets, err := uc.users.GetByIDs(ctx, targetIDs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.SubscriptionView, 0, len(targets))
	for _, target := range targets {
		view, err := uc.buildView(ctx, target, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (uc *SubscriptionUsecase) buildView(ctx context.Context, target domain.User, recipesLimit *int) (domain.SubscriptionView, error) {
	var recipes []domain.Recipe
	var err error
	if recipesLimit == nil {
		recipes, err = uc.recipes.ListByAuthor(ctx, target.ID, 0)
	} else if *recipesLimit > 0 {
		recipes, err = uc.recipes.ListByAuthor(ctx, target.ID, *recipesLimit)
	}
	if err != nil {
		return domain.SubscriptionView{}, err
	}
	count, err := uc.recipes.CountByAuthor(ctx, target.ID)
	if err != nil {
		return domain.SubscriptionView{}, err
	}

	shorts := make([]domain.ShortRecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		shorts = append(shorts, recipe.ShortView())
	}

	// The caller follows the target, so the flag is true by
	// construction.
	return domain.SubscriptionView{
		UserView:     target.View(true),
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}
