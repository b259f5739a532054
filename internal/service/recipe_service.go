package service

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/repository"
)

// ImageStore abstracts image file persistence for recipe uploads.
type ImageStore interface {
	Save(src io.Reader) (string, error)
	Remove(path string) error
}

// RecipeCreate carries the fields for a new recipe. Tags and Ingredients
// are bare names, resolved per-user through get-or-create.
type RecipeCreate struct {
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Description string
	Tags        []string
	Ingredients []string
}

// RecipeUpdate carries a partial update. Nil pointers mean the field was
// absent and stays unchanged. For Tags and Ingredients the distinction
// matters most: a nil slice pointer leaves the association set alone,
// while a pointer to an empty slice detaches everything.
type RecipeUpdate struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Description *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeService owns the recipe CRUD contract: ownership scoping,
// tag/ingredient normalization and image upload.
type RecipeService interface {
	List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, userID uint, input RecipeCreate) (*model.Recipe, error)
	Update(ctx context.Context, userID, id uint, input RecipeUpdate) (*model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	UploadImage(ctx context.Context, userID, id uint, src io.Reader) (*model.Recipe, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	images         ImageStore
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	images ImageStore,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		images:         images,
	}
}

// List returns the caller's recipes, newest first, optionally restricted
// to those referencing at least one of the given tag or ingredient ids.
func (s *recipeService) List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error) {
	return s.recipeRepo.ListForUser(ctx, userID, tagIDs, ingredientIDs)
}

// Get returns the caller's recipe with tags and ingredients loaded.
// Another user's recipe is reported as not found, never as forbidden.
func (s *recipeService) Get(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// Create persists a recipe owned by userID. The owner is always the
// caller; nothing in the input can redirect it. Tag and ingredient names
// resolve to the caller's existing rows or to freshly created ones.
func (s *recipeService) Create(ctx context.Context, userID uint, input RecipeCreate) (*model.Recipe, error) {
	recipe := &model.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		Description: input.Description,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	tags, err := s.resolveTags(ctx, userID, input.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
		return nil, fmt.Errorf("attach tags: %w", err)
	}

	ingredients, err := s.resolveIngredients(ctx, userID, input.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
		return nil, fmt.Errorf("attach ingredients: %w", err)
	}

	return recipe, nil
}

// Update applies the present fields of input to the caller's recipe.
// A client-sent owner field never reaches this layer; ownership is
// silently preserved rather than rejected. When the Tags (respectively
// Ingredients) key was present the whole association set is replaced,
// empty list meaning detach-all.
func (s *recipeService) Update(ctx context.Context, userID, id uint, input RecipeUpdate) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if input.Tags != nil {
		tags, err := s.resolveTags(ctx, userID, *input.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, fmt.Errorf("replace tags: %w", err)
		}
	}
	if input.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, userID, *input.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return nil, fmt.Errorf("replace ingredients: %w", err)
		}
	}

	return recipe, nil
}

// Delete removes the caller's recipe, its association rows, and its
// stored image file. Tag and ingredient rows survive.
func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if err := s.images.Remove(recipe.Image); err != nil {
		return err
	}
	return nil
}

// UploadImage stores the payload as the recipe's image, replacing any
// previous file. Non-image payloads fail without touching the recipe.
func (s *recipeService) UploadImage(ctx context.Context, userID, id uint, src io.Reader) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	path, err := s.images.Save(src)
	if err != nil {
		return nil, err
	}

	if err := s.recipeRepo.UpdateImage(ctx, recipe.ID, path); err != nil {
		return nil, fmt.Errorf("update recipe image: %w", err)
	}

	old := recipe.Image
	recipe.Image = path
	if old != "" {
		if err := s.images.Remove(old); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// resolveTags maps names to the caller's tag rows via get-or-create.
// Exact, case-sensitive matching; no trimming or casefolding.
func (s *recipeService) resolveTags(ctx context.Context, userID uint, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.FindOrCreateByName(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, userID uint, names []string) ([]model.Ingredient, error) {
	ingredients := make([]model.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient, err := s.ingredientRepo.FindOrCreateByName(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}
