package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

func TestFavoriteToggle(t *testing.T) {
	f := newRecipeFixture()
	created, err := f.uc.Create(context.Background(), f.author, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	uc := NewRelationUsecase(f.recipes, f.relations)
	userID := f.author.ID

	short, err := uc.AddFavorite(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	if short.ID != created.ID || short.Name != "Soup" {
		t.Fatalf("unexpected short view: %+v", short)
	}

	_, err = uc.AddFavorite(context.Background(), userID, created.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second add must conflict, got %v", err)
	}

	if err := uc.RemoveFavorite(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("remove favorite failed: %v", err)
	}
	err = uc.RemoveFavorite(context.Background(), userID, created.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("removing absent pair must be not-found, got %v", err)
	}
}

func TestCartToggle(t *testing.T) {
	f := newRecipeFixture()
	created, err := f.uc.Create(context.Background(), f.author, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	uc := NewRelationUsecase(f.recipes, f.relations)
	userID := f.author.ID

	if _, err := uc.AddCart(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("add cart failed: %v", err)
	}
	if _, err := uc.AddCart(context.Background(), userID, created.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second add must conflict, got %v", err)
	}
	if err := uc.RemoveCart(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("remove cart failed: %v", err)
	}
	if err := uc.RemoveCart(context.Background(), userID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("removing absent pair must be not-found, got %v", err)
	}
}

func TestRelationUnknownRecipe(t *testing.T) {
	f := newRecipeFixture()
	uc := NewRelationUsecase(f.recipes, f.relations)

	if _, err := uc.AddFavorite(context.Background(), f.author.ID, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found for unknown recipe, got %v", err)
	}
	if err := uc.RemoveCart(context.Background(), f.author.ID, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found for unknown recipe, got %v", err)
	}
}
