package catalog

import (
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeItem   = "Item"
	AggregateTypeRecipe = "Recipe"
)

// Event type constants
const (
	EventTypeItemCreated   = "ItemCreated"
	EventTypeRecipeCreated = "RecipeCreated"
)

// ItemCreatedEvent is raised when a catalog item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID    `json:"item_id"`
	Code     string       `json:"code"`
	Name     string       `json:"name"`
	Category ItemCategory `json:"category"`
	Unit     string       `json:"unit"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, AggregateTypeItem, item.ID),
		ItemID:          item.ID,
		Code:            item.Code,
		Name:            item.Name,
		Category:        item.Category,
		Unit:            item.Unit,
	}
}

// EventType returns the event type name
func (e *ItemCreatedEvent) EventType() string {
	return EventTypeItemCreated
}

// RecipeCreatedEvent is raised when a recipe is created
type RecipeCreatedEvent struct {
	shared.BaseDomainEvent
	RecipeID uuid.UUID `json:"recipe_id"`
	DishName string    `json:"dish_name"`
}

// NewRecipeCreatedEvent creates a new RecipeCreatedEvent
func NewRecipeCreatedEvent(recipe *Recipe) *RecipeCreatedEvent {
	return &RecipeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeCreated, AggregateTypeRecipe, recipe.ID),
		RecipeID:        recipe.ID,
		DishName:        recipe.DishName,
	}
}

// EventType returns the event type name
func (e *RecipeCreatedEvent) EventType() string {
	return EventTypeRecipeCreated
}
