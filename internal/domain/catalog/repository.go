package catalog

import (
	"context"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByCode finds an item by its unique code
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindByNameAndCategory finds an item by exact name within a category
	// (bar-item fallback lookup for the expected-consumption projector)
	FindByNameAndCategory(ctx context.Context, name string, category ItemCategory) (*Item, error)

	// FindByIDs finds multiple items by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an item with its vendor prices
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// IsReferenced reports whether stock balances or recipes reference
	// the item (guards canonical-unit immutability)
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	// FindByID finds a recipe by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// FindByDishName finds a recipe by its unique dish name
	FindByDishName(ctx context.Context, dishName string) (*Recipe, error)

	// FindAll finds all recipes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Recipe, error)

	// Count counts recipes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a recipe with its ingredient lines
	Save(ctx context.Context, recipe *Recipe) error

	// Delete deletes a recipe
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByDishName checks dish-name uniqueness
	ExistsByDishName(ctx context.Context, dishName string) (bool, error)
}
