package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/smith-matt-7272/recipe-app-api/internal/model"
)

// IngredientRepository defines ingredient persistence operations, scoped
// to a single owning user like TagRepository.
type IngredientRepository interface {
	FindOrCreateByName(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Ingredient, error)
	ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Update(ctx context.Context, ingredient *model.Ingredient) error
	Delete(ctx context.Context, ingredient *model.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// FindOrCreateByName mirrors the tag variant: exact case-sensitive name
// match per user, insert on miss, duplicates under races tolerated.
func (r *ingredientRepository) FindOrCreateByName(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = BINARY ?", userID, name).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	ingredient = model.Ingredient{UserID: userID, Name: name}
	if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListForUser returns the user's ingredients ordered by name descending,
// optionally restricted to those attached to at least one recipe.
func (r *ingredientRepository) ListForUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").Distinct()
	}

	var ingredients []model.Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Delete removes the ingredient and any join rows pointing at it.
func (r *ingredientRepository) Delete(ctx context.Context, ingredient *model.Ingredient) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(ingredient).Error
}
