package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// RegisterInput is the registration payload; shape rules are enforced
// with validator tags before the password is hashed.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

type UserUsecase struct {
	users         UserRepository
	subscriptions SubscriptionRepository
	validate      *validator.Validate
}

func NewUserUsecase(users UserRepository, subscriptions SubscriptionRepository) *UserUsecase {
	return &UserUsecase{
		users:         users,
		subscriptions: subscriptions,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (uc *UserUsecase) Register(ctx context.Context, input RegisterInput) (domain.UserView, error) {
	if err := uc.validate.Struct(input); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return domain.UserView{}, err
		}
		return domain.UserView{}, domain.ValidationError{Message: err.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserView{}, err
	}

	user, err := uc.users.Create(ctx, domain.User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.UserView{}, err
	}

	return user.View(false), nil
}

func (uc *UserUsecase) Get(ctx context.Context, id int64, viewerID *int64) (domain.UserView, error) {
	user, err := uc.users.Get(ctx, id)
	if err != nil {
		return domain.UserView{}, err
	}

	isSubscribed := false
	if viewerID != nil {
		set, err := uc.subscriptions.SubscribedSet(ctx, *viewerID, []int64{user.ID})
		if err != nil {
			return domain.UserView{}, err
		}
		isSubscribed = set[user.ID]
	}

	return user.View(isSubscribed), nil
}

func (uc *UserUsecase) List(ctx context.Context, viewerID *int64, limit, offset int) ([]domain.UserView, error) {
	users, err := uc.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	subscribed := map[int64]bool{}
	if viewerID != nil {
		ids := make([]int64, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.ID)
		}
		subscribed, err = uc.subscriptions.SubscribedSet(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]domain.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.View(subscribed[user.ID]))
	}
	return views, nil
}
