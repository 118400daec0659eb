package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	t.Run("creates recipe with trimmed dish name", func(t *testing.T) {
		recipe, err := NewRecipe("  Paneer Tikka ")
		require.NoError(t, err)
		assert.Equal(t, "Paneer Tikka", recipe.DishName)
		assert.Empty(t, recipe.Ingredients)
	})

	t.Run("rejects empty dish name", func(t *testing.T) {
		_, err := NewRecipe("   ")
		assert.Error(t, err)
	})
}

func TestRecipeAddIngredient(t *testing.T) {
	t.Run("appends ingredient with normalized unit", func(t *testing.T) {
		recipe, err := NewRecipe("Paratha")
		require.NoError(t, err)

		require.NoError(t, recipe.AddIngredient(uuid.New(), "Flour", decimal.NewFromInt(50), "g"))
		require.Len(t, recipe.Ingredients, 1)
		assert.Equal(t, "G", recipe.Ingredients[0].Unit)
	})

	t.Run("rejects duplicate ingredient", func(t *testing.T) {
		recipe, err := NewRecipe("Paratha")
		require.NoError(t, err)
		itemID := uuid.New()

		require.NoError(t, recipe.AddIngredient(itemID, "Flour", decimal.NewFromInt(50), "G"))
		assert.Error(t, recipe.AddIngredient(itemID, "Flour", decimal.NewFromInt(20), "G"))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		recipe, err := NewRecipe("Paratha")
		require.NoError(t, err)
		assert.Error(t, recipe.AddIngredient(uuid.New(), "Flour", decimal.Zero, "G"))
	})
}

func TestRecipeIngredientBaseQuantity(t *testing.T) {
	t.Run("recognized unit converts to family base", func(t *testing.T) {
		ing := RecipeIngredient{QuantityRequired: decimal.NewFromFloat(0.05), Unit: "KG"}
		base, recognized := ing.RequiredBaseQuantity()
		assert.True(t, recognized)
		assert.True(t, base.Equal(decimal.NewFromInt(50)))
	})

	t.Run("unknown unit passes through", func(t *testing.T) {
		ing := RecipeIngredient{QuantityRequired: decimal.NewFromInt(2), Unit: "PINCH"}
		base, recognized := ing.RequiredBaseQuantity()
		assert.False(t, recognized)
		assert.True(t, base.Equal(decimal.NewFromInt(2)))
	})
}
