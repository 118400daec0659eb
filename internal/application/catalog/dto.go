package catalog

import (
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemPayload creates a catalog item
type CreateItemPayload struct {
	Code          string               `json:"code" binding:"required,max=50"`
	Name          string               `json:"name" binding:"required,max=200"`
	Category      catalog.ItemCategory `json:"category" binding:"required,oneof=food beverage bar housekeeping other"`
	Unit          string               `json:"unit" binding:"required,max=20"`
	BottleSizeML  *decimal.Decimal     `json:"bottle_size_ml" binding:"omitempty"`
	GSTApplicable bool                 `json:"gst_applicable"`
}

// UpdateItemPayload updates mutable item attributes. Unit changes are
// rejected once stock balances or recipes reference the item.
type UpdateItemPayload struct {
	Name          *string          `json:"name" binding:"omitempty,max=200"`
	Unit          *string          `json:"unit" binding:"omitempty,max=20"`
	BottleSizeML  *decimal.Decimal `json:"bottle_size_ml" binding:"omitempty"`
	GSTApplicable *bool            `json:"gst_applicable" binding:"omitempty"`
}

// VendorPriceResponse is one vendor's price for an item
type VendorPriceResponse struct {
	VendorID  uuid.UUID       `json:"vendor_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID            uuid.UUID             `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	Category      catalog.ItemCategory  `json:"category"`
	Unit          string                `json:"unit"`
	BottleSizeML  *decimal.Decimal      `json:"bottle_size_ml,omitempty"`
	GSTApplicable bool                  `json:"gst_applicable"`
	VendorPrices  []VendorPriceResponse `json:"vendor_prices"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToItemResponse converts an item to its response form
func ToItemResponse(item *catalog.Item) ItemResponse {
	prices := make([]VendorPriceResponse, 0, len(item.VendorPrices))
	for _, price := range item.VendorPrices {
		prices = append(prices, VendorPriceResponse{
			VendorID:  price.VendorID,
			UnitPrice: price.UnitPrice,
		})
	}
	return ItemResponse{
		ID:            item.ID,
		Code:          item.Code,
		Name:          item.Name,
		Category:      item.Category,
		Unit:          item.Unit,
		BottleSizeML:  item.BottleSizeML,
		GSTApplicable: item.GSTApplicable,
		VendorPrices:  prices,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// IngredientPayload is one ingredient line when creating a recipe
type IngredientPayload struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required,max=20"`
}

// CreateRecipePayload creates a recipe for a dish
type CreateRecipePayload struct {
	DishName    string              `json:"dish_name" binding:"required,max=200"`
	Ingredients []IngredientPayload `json:"ingredients" binding:"required,min=1,dive"`
}

// IngredientResponse is one ingredient line in API responses
type IngredientResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// RecipeResponse represents a recipe in API responses
type RecipeResponse struct {
	ID          uuid.UUID            `json:"id"`
	DishName    string               `json:"dish_name"`
	Ingredients []IngredientResponse `json:"ingredients"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToRecipeResponse converts a recipe to its response form
func ToRecipeResponse(recipe *catalog.Recipe) RecipeResponse {
	ingredients := make([]IngredientResponse, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, IngredientResponse{
			ItemID:   ing.ItemID,
			ItemName: ing.ItemName,
			Quantity: ing.QuantityRequired,
			Unit:     ing.Unit,
		})
	}
	return RecipeResponse{
		ID:          recipe.ID,
		DishName:    recipe.DishName,
		Ingredients: ingredients,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}
