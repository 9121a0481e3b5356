package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

func TestRegisterHashesPassword(t *testing.T) {
	users := newMockUserRepo()
	uc := NewUserUsecase(users, newMockSubscriptionRepo())

	view, err := uc.Register(context.Background(), RegisterInput{
		Email:    "chef@example.com",
		Username: "chef",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored := users.users[view.ID]
	if stored.PasswordHash == "correct horse" {
		t.Fatalf("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	uc := NewUserUsecase(newMockUserRepo(), newMockSubscriptionRepo())

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Username: "chef",
		Password: "correct horse",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newMockUserRepo()
	uc := NewUserUsecase(users, newMockSubscriptionRepo())

	input := RegisterInput{Email: "chef@example.com", Username: "chef", Password: "correct horse"}
	if _, err := uc.Register(context.Background(), input); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := uc.Register(context.Background(), input); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserGetSubscribedFlag(t *testing.T) {
	users := newMockUserRepo()
	subscriptions := newMockSubscriptionRepo()
	uc := NewUserUsecase(users, subscriptions)

	target := users.add(domain.User{Email: "chef@example.com", Username: "chef"})
	viewer := users.add(domain.User{Email: "fan@example.com", Username: "fan"})
	subscriptions.pairs[pair{viewer.ID, target.ID}] = true

	view, err := uc.Get(context.Background(), target.ID, &viewer.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !view.IsSubscribed {
		t.Fatalf("expected is_subscribed true")
	}

	anonymous, err := uc.Get(context.Background(), target.ID, nil)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if anonymous.IsSubscribed {
		t.Fatalf("anonymous viewer must see is_subscribed false")
	}
}
