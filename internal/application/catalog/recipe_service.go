package catalog

import (
	"context"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeService manages dish recipes. Dish names are unique since the
// expected-consumption projector resolves sales by name.
type RecipeService struct {
	recipeRepo     catalog.RecipeRepository
	itemRepo       catalog.ItemRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(recipeRepo catalog.RecipeRepository, itemRepo catalog.ItemRepository, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		itemRepo:   itemRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RecipeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRecipe creates a recipe with its ingredient lines
func (s *RecipeService) CreateRecipe(ctx context.Context, actor shared.Actor, payload CreateRecipePayload) (*RecipeResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.recipeRepo.ExistsByDishName(ctx, payload.DishName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Recipe already exists for dish: "+payload.DishName)
	}

	itemIDs := make([]uuid.UUID, 0, len(payload.Ingredients))
	for _, ing := range payload.Ingredients {
		itemIDs = append(itemIDs, ing.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*catalog.Item, len(items))
	for idx := range items {
		itemsByID[items[idx].ID] = &items[idx]
	}

	recipe, err := catalog.NewRecipe(payload.DishName)
	if err != nil {
		return nil, err
	}
	for _, ing := range payload.Ingredients {
		item, ok := itemsByID[ing.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Item not found: "+ing.ItemID.String())
		}
		if err := recipe.AddIngredient(ing.ItemID, item.Name, ing.Quantity, ing.Unit); err != nil {
			return nil, err
		}
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, recipe)

	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("dish_name", recipe.DishName))

	resp := ToRecipeResponse(recipe)
	return &resp, nil
}

// DeleteRecipe removes a recipe; future sales of the dish fall back to
// the bar-item lookup or are skipped.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actor shared.Actor, recipeID uuid.UUID) error {
	if !actor.IsManagement() {
		return shared.ErrForbidden
	}
	if _, err := s.recipeRepo.FindByID(ctx, recipeID); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

// GetRecipe returns one recipe with its ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(recipe)
	return &resp, nil
}

// ListRecipes returns a paginated recipe listing
func (s *RecipeService) ListRecipes(ctx context.Context, filter shared.Filter) (*shared.Paginated[RecipeResponse], error) {
	recipes, err := s.recipeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.recipeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]RecipeResponse, 0, len(recipes))
	for idx := range recipes {
		result = append(result, ToRecipeResponse(&recipes[idx]))
	}
	paginated := shared.NewPaginated(result, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

func (s *RecipeService) publishEvents(ctx context.Context, recipe *catalog.Recipe) {
	if s.eventPublisher == nil {
		return
	}
	events := recipe.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	recipe.ClearDomainEvents()
}
