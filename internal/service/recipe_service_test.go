package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
)

func newTestRecipeService(t *testing.T) (RecipeService, *MockRecipeRepository, *MockTagRepository, *MockIngredientRepository, *MockImageStore) {
	t.Helper()
	recipeRepo := new(MockRecipeRepository)
	tagRepo := new(MockTagRepository)
	ingredientRepo := new(MockIngredientRepository)
	images := new(MockImageStore)
	svc := NewRecipeService(recipeRepo, tagRepo, ingredientRepo, images)
	return svc, recipeRepo, tagRepo, ingredientRepo, images
}

func TestRecipeService_Create_NewTags(t *testing.T) {
	svc, recipeRepo, tagRepo, ingredientRepo, _ := newTestRecipeService(t)
	const userID = uint(1)

	recipeRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).
		Run(func(args mock.Arguments) {
			recipe := args.Get(1).(*model.Recipe)
			recipe.ID = 10
			// owner is always the caller
			assert.Equal(t, userID, recipe.UserID)
		}).Return(nil)

	// neither tag exists yet: both get created for the caller
	tagRepo.On("FindOrCreateByName", mock.Anything, userID, "Thai").
		Return(&model.Tag{ID: 1, UserID: userID, Name: "Thai"}, nil)
	tagRepo.On("FindOrCreateByName", mock.Anything, userID, "Dinner").
		Return(&model.Tag{ID: 2, UserID: userID, Name: "Dinner"}, nil)
	recipeRepo.On("ReplaceTags", mock.Anything, mock.AnythingOfType("*model.Recipe"),
		mock.MatchedBy(func(tags []model.Tag) bool { return len(tags) == 2 })).Return(nil)
	recipeRepo.On("ReplaceIngredients", mock.Anything, mock.AnythingOfType("*model.Recipe"), []model.Ingredient{}).Return(nil)

	recipe, err := svc.Create(context.Background(), userID, RecipeCreate{
		Title:       "Thai prawn curry",
		TimeMinutes: 30,
		Price:       decimal.NewFromFloat(12.50),
		Tags:        []string{"Thai", "Dinner"},
	})

	assert.NoError(t, err)
	assert.Equal(t, userID, recipe.UserID)
	assert.Len(t, recipe.Tags, 2)
	tagRepo.AssertNumberOfCalls(t, "FindOrCreateByName", 2)
	recipeRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
	ingredientRepo.AssertExpectations(t)
}

func TestRecipeService_Create_ReusesExistingTag(t *testing.T) {
	svc, recipeRepo, tagRepo, _, _ := newTestRecipeService(t)
	const userID = uint(1)

	existing := &model.Tag{ID: 42, UserID: userID, Name: "Dessert"}

	recipeRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)
	tagRepo.On("FindOrCreateByName", mock.Anything, userID, "Dessert").Return(existing, nil)
	recipeRepo.On("ReplaceTags", mock.Anything, mock.AnythingOfType("*model.Recipe"), []model.Tag{*existing}).Return(nil)
	recipeRepo.On("ReplaceIngredients", mock.Anything, mock.AnythingOfType("*model.Recipe"), []model.Ingredient{}).Return(nil)

	recipe, err := svc.Create(context.Background(), userID, RecipeCreate{
		Title:       "Chocolate cheesecake",
		TimeMinutes: 90,
		Price:       decimal.NewFromFloat(15.00),
		Tags:        []string{"Dessert"},
	})

	assert.NoError(t, err)
	assert.Len(t, recipe.Tags, 1)
	assert.Equal(t, uint(42), recipe.Tags[0].ID)
	tagRepo.AssertNumberOfCalls(t, "FindOrCreateByName", 1)
}

func TestRecipeService_Update_TagSemantics(t *testing.T) {
	// a present tags key replaces the set (empty list detaches all);
	// an absent key leaves the set alone
	tests := []struct {
		name           string
		tags           *[]string
		expectReplace  bool
		expectedResult []model.Tag
	}{
		{
			name:          "absent tags key leaves associations untouched",
			tags:          nil,
			expectReplace: false,
		},
		{
			name:           "empty tags list detaches all",
			tags:           &[]string{},
			expectReplace:  true,
			expectedResult: []model.Tag{},
		},
		{
			name:           "tags list replaces the set",
			tags:           &[]string{"Vegan"},
			expectReplace:  true,
			expectedResult: []model.Tag{{ID: 9, UserID: 1, Name: "Vegan"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, recipeRepo, tagRepo, _, _ := newTestRecipeService(t)
			const userID = uint(1)

			stored := &model.Recipe{
				ID:     5,
				UserID: userID,
				Title:  "Avocado toast",
				Tags:   []model.Tag{{ID: 3, UserID: userID, Name: "Breakfast"}},
			}
			recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), userID).Return(stored, nil)
			recipeRepo.On("Update", mock.Anything, stored).Return(nil)

			if tt.expectReplace {
				for _, tag := range tt.expectedResult {
					tagRepo.On("FindOrCreateByName", mock.Anything, userID, tag.Name).Return(&tag, nil)
				}
				recipeRepo.On("ReplaceTags", mock.Anything, stored, tt.expectedResult).Return(nil)
			}

			title := "Avocado toast deluxe"
			recipe, err := svc.Update(context.Background(), userID, 5, RecipeUpdate{
				Title: &title,
				Tags:  tt.tags,
			})

			assert.NoError(t, err)
			assert.Equal(t, title, recipe.Title)
			if tt.expectReplace {
				assert.Equal(t, tt.expectedResult, recipe.Tags)
			} else {
				recipeRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
				assert.Equal(t, "Breakfast", recipe.Tags[0].Name)
			}
			recipeRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_Update_OwnerUnchanged(t *testing.T) {
	svc, recipeRepo, _, _, _ := newTestRecipeService(t)
	const ownerID = uint(1)

	stored := &model.Recipe{ID: 5, UserID: ownerID, Title: "Original"}
	recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), ownerID).Return(stored, nil)
	recipeRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
		return r.UserID == ownerID
	})).Return(nil)

	title := "Renamed"
	recipe, err := svc.Update(context.Background(), ownerID, 5, RecipeUpdate{Title: &title})

	// nothing in the update input can carry an owner, so the stored
	// owner survives and the call still succeeds
	assert.NoError(t, err)
	assert.Equal(t, ownerID, recipe.UserID)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_Get_OtherUsersRecipeIsNotFound(t *testing.T) {
	svc, recipeRepo, _, _, _ := newTestRecipeService(t)

	// the scoped query cannot see other users' rows at all
	recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(2)).
		Return(nil, gorm.ErrRecordNotFound)

	recipe, err := svc.Get(context.Background(), 2, 5)
	assert.Equal(t, apperrors.ErrRecipeNotFound, err)
	assert.Nil(t, recipe)
}

func TestRecipeService_List_PassesFilters(t *testing.T) {
	svc, recipeRepo, _, _, _ := newTestRecipeService(t)

	recipeRepo.On("ListForUser", mock.Anything, uint(1), []uint{1, 2}, []uint(nil)).
		Return([]model.Recipe{{ID: 4, UserID: 1}, {ID: 3, UserID: 1}}, nil)

	recipes, err := svc.List(context.Background(), 1, []uint{1, 2}, nil)
	assert.NoError(t, err)
	assert.Len(t, recipes, 2)
	recipeRepo.AssertExpectations(t)
}

func TestRecipeService_Delete(t *testing.T) {
	t.Run("removes recipe and stored image", func(t *testing.T) {
		svc, recipeRepo, _, _, images := newTestRecipeService(t)

		stored := &model.Recipe{ID: 5, UserID: 1, Image: "uploads/abc.jpg"}
		recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(1)).Return(stored, nil)
		recipeRepo.On("Delete", mock.Anything, stored).Return(nil)
		images.On("Remove", "uploads/abc.jpg").Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), 1, 5))
		recipeRepo.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("other user's recipe is not found", func(t *testing.T) {
		svc, recipeRepo, _, _, images := newTestRecipeService(t)

		recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(2)).
			Return(nil, gorm.ErrRecordNotFound)

		assert.Equal(t, apperrors.ErrRecipeNotFound, svc.Delete(context.Background(), 2, 5))
		recipeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		images.AssertNotCalled(t, "Remove", mock.Anything)
	})
}

func TestRecipeService_UploadImage(t *testing.T) {
	t.Run("stores image and replaces previous file", func(t *testing.T) {
		svc, recipeRepo, _, _, images := newTestRecipeService(t)

		stored := &model.Recipe{ID: 5, UserID: 1, Image: "uploads/old.jpg"}
		recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(1)).Return(stored, nil)
		images.On("Save", mock.Anything).Return("uploads/new.png", nil)
		recipeRepo.On("UpdateImage", mock.Anything, uint(5), "uploads/new.png").Return(nil)
		images.On("Remove", "uploads/old.jpg").Return(nil)

		recipe, err := svc.UploadImage(context.Background(), 1, 5, strings.NewReader("payload"))
		assert.NoError(t, err)
		assert.Equal(t, "uploads/new.png", recipe.Image)
		images.AssertExpectations(t)
		recipeRepo.AssertExpectations(t)
	})

	t.Run("non-image payload leaves recipe untouched", func(t *testing.T) {
		svc, recipeRepo, _, _, images := newTestRecipeService(t)

		stored := &model.Recipe{ID: 5, UserID: 1}
		recipeRepo.On("FindByIDForUser", mock.Anything, uint(5), uint(1)).Return(stored, nil)
		images.On("Save", mock.Anything).Return("", apperrors.ErrNotAnImage)

		recipe, err := svc.UploadImage(context.Background(), 1, 5, strings.NewReader("definitely text"))
		assert.Equal(t, apperrors.ErrNotAnImage, err)
		assert.Nil(t, recipe)
		recipeRepo.AssertNotCalled(t, "UpdateImage", mock.Anything, mock.Anything, mock.Anything)
	})
}
