package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/repository"
)

// IngredientService mirrors TagService for ingredients: list, rename,
// delete; creation happens only through recipe writes.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Rename(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	return s.repo.ListForUser(ctx, userID, assignedOnly)
}

func (s *ingredientService) Rename(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ingredient.Name = name
	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uint) error {
	ingredient, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ingredient); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}

func (s *ingredientService) find(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}
