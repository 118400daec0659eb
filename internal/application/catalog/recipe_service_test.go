package catalog

import (
	"context"
	"testing"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recipeFixture struct {
	recipeRepo *MockRecipeRepository
	itemRepo   *MockItemRepository
	publisher  *MockEventPublisher
	service    *RecipeService
}

func newRecipeFixture() *recipeFixture {
	f := &recipeFixture{
		recipeRepo: new(MockRecipeRepository),
		itemRepo:   new(MockItemRepository),
		publisher:  NewMockEventPublisher(),
	}
	f.service = NewRecipeService(f.recipeRepo, f.itemRepo, zap.NewNop())
	f.service.SetEventPublisher(f.publisher)
	return f
}

func TestRecipeService_CreateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("creates recipe with ingredient names from the catalog", func(t *testing.T) {
		f := newRecipeFixture()
		rice := existingItem(t)

		f.recipeRepo.On("ExistsByDishName", ctx, "Chicken Biryani").Return(false, nil)
		f.itemRepo.On("FindByIDs", ctx, []uuid.UUID{rice.ID}).Return([]catalog.Item{*rice}, nil)
		f.recipeRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Recipe")).Return(nil)

		resp, err := f.service.CreateRecipe(ctx, managementActor(), CreateRecipePayload{
			DishName: "Chicken Biryani",
			Ingredients: []IngredientPayload{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(200), Unit: "G"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Chicken Biryani", resp.DishName)
		require.Len(t, resp.Ingredients, 1)
		assert.Equal(t, "Basmati Rice", resp.Ingredients[0].ItemName)
		assert.Len(t, f.publisher.GetEventsByType(catalog.EventTypeRecipeCreated), 1)
	})

	t.Run("duplicate dish name is rejected", func(t *testing.T) {
		f := newRecipeFixture()
		f.recipeRepo.On("ExistsByDishName", ctx, "Chicken Biryani").Return(true, nil)

		_, err := f.service.CreateRecipe(ctx, managementActor(), CreateRecipePayload{
			DishName: "Chicken Biryani",
			Ingredients: []IngredientPayload{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(200), Unit: "G"},
			},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.recipeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown ingredient item fails", func(t *testing.T) {
		f := newRecipeFixture()
		unknownID := uuid.New()

		f.recipeRepo.On("ExistsByDishName", ctx, "Mystery Curry").Return(false, nil)
		f.itemRepo.On("FindByIDs", ctx, []uuid.UUID{unknownID}).Return([]catalog.Item{}, nil)

		_, err := f.service.CreateRecipe(ctx, managementActor(), CreateRecipePayload{
			DishName: "Mystery Curry",
			Ingredients: []IngredientPayload{
				{ItemID: unknownID, Quantity: decimal.NewFromInt(100), Unit: "G"},
			},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("duplicate ingredient within the recipe fails", func(t *testing.T) {
		f := newRecipeFixture()
		rice := existingItem(t)

		f.recipeRepo.On("ExistsByDishName", ctx, "Double Rice").Return(false, nil)
		f.itemRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Item{*rice}, nil)

		_, err := f.service.CreateRecipe(ctx, managementActor(), CreateRecipePayload{
			DishName: "Double Rice",
			Ingredients: []IngredientPayload{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(100), Unit: "G"},
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(50), Unit: "G"},
			},
		})
		require.Error(t, err)
	})

	t.Run("hotel managers cannot create recipes", func(t *testing.T) {
		f := newRecipeFixture()
		_, err := f.service.CreateRecipe(ctx, hotelManagerActor(), CreateRecipePayload{
			DishName: "Chicken Biryani",
			Ingredients: []IngredientPayload{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(200), Unit: "G"},
			},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestRecipeService_DeleteRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing recipe", func(t *testing.T) {
		f := newRecipeFixture()
		recipe, err := catalog.NewRecipe("Chicken Biryani")
		require.NoError(t, err)

		f.recipeRepo.On("FindByID", ctx, recipe.ID).Return(recipe, nil)
		f.recipeRepo.On("Delete", ctx, recipe.ID).Return(nil)

		require.NoError(t, f.service.DeleteRecipe(ctx, managementActor(), recipe.ID))
	})

	t.Run("missing recipe surfaces not found", func(t *testing.T) {
		f := newRecipeFixture()
		recipeID := uuid.New()
		f.recipeRepo.On("FindByID", ctx, recipeID).Return(nil, shared.ErrNotFound)

		err := f.service.DeleteRecipe(ctx, managementActor(), recipeID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
