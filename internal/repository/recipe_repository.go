package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/smith-matt-7272/recipe-app-api/internal/model"
)

// RecipeRepository defines recipe persistence operations. All reads are
// scoped to the owning user; a recipe owned by someone else behaves
// exactly like a missing row.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Recipe, error)
	ListForUser(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error)
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
	UpdateImage(ctx context.Context, id uint, path string) error
	Delete(ctx context.Context, recipe *model.Recipe) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe row. Associations are attached afterwards
// through ReplaceTags / ReplaceIngredients against already-persisted
// tag and ingredient rows.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Create(recipe).Error
}

// Update persists scalar fields only; associations are managed through
// ReplaceTags / ReplaceIngredients so an untouched set stays untouched.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Save(recipe).Error
}

// FindByIDForUser loads the full recipe, tags and ingredients included.
func (r *recipeRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListForUser returns the user's recipes newest-first. Non-empty tagIDs
// or ingredientIDs restrict the result to recipes referencing at least
// one of the given ids in that dimension; the joins can fan out, so the
// select is DISTINCT.
func (r *recipeRepository) ListForUser(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}
	if len(tagIDs) > 0 || len(ingredientIDs) > 0 {
		q = q.Distinct()
	}

	var recipes []model.Recipe
	if err := q.Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceTags swaps the recipe's tag set for the given one. An empty
// slice clears every association.
func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return err
	}
	recipe.Tags = tags
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient set for the given one.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	return nil
}

// UpdateImage stores the uploaded file path on the recipe row.
func (r *recipeRepository) UpdateImage(ctx context.Context, id uint, path string) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Update("image", path).Error
}

// Delete removes the recipe and its association rows. Tag and ingredient
// rows are left alone.
func (r *recipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}
