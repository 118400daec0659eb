package catalog

import (
	"strings"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe maps a dish to the ingredient quantities one serving draws from
// the store. Dish names are unique; recipes are read-only input to the
// expected-consumption projector.
type Recipe struct {
	shared.BaseAggregateRoot
	DishName string `gorm:"type:varchar(200);not null;uniqueIndex"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;references:ID"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is one ingredient line of a recipe
type RecipeIngredient struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecipeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	QuantityRequired decimal.Decimal `gorm:"type:decimal(18,4);not null"` // per serving, in Unit
	Unit             string          `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// NewRecipe creates a new recipe for a dish
func NewRecipe(dishName string) (*Recipe, error) {
	dishName = strings.TrimSpace(dishName)
	if dishName == "" {
		return nil, shared.NewValidationError("dishName", "cannot be empty")
	}
	if len(dishName) > 200 {
		return nil, shared.NewValidationError("dishName", "cannot exceed 200 characters")
	}

	recipe := &Recipe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DishName:          dishName,
		Ingredients:       make([]RecipeIngredient, 0),
	}

	recipe.AddDomainEvent(NewRecipeCreatedEvent(recipe))

	return recipe, nil
}

// AddIngredient appends an ingredient line. Duplicate items are rejected.
func (r *Recipe) AddIngredient(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string) error {
	if itemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantityRequired", "must be positive")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewValidationError("unit", "cannot be empty")
	}
	for _, ing := range r.Ingredients {
		if ing.ItemID == itemID {
			return shared.NewDomainError("ALREADY_EXISTS", "Ingredient already present in recipe")
		}
	}

	r.Ingredients = append(r.Ingredients, RecipeIngredient{
		ID:               uuid.New(),
		RecipeID:         r.ID,
		ItemID:           itemID,
		ItemName:         itemName,
		QuantityRequired: quantity,
		Unit:             valueobject.NormalizeUnitCode(unit),
		CreatedAt:        time.Now(),
	})
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// RequiredBaseQuantity returns the ingredient's per-serving requirement
// converted to its unit family base. The bool reports whether the unit was
// recognized (pass-through otherwise).
func (ing RecipeIngredient) RequiredBaseQuantity() (decimal.Decimal, bool) {
	return valueobject.ToBaseUnits(ing.QuantityRequired, ing.Unit)
}
