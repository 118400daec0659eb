package reporting

import (
	"context"
	"errors"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ExpectedConsumptionProjector folds customer-order submissions into the
// per-hotel per-day expected-consumption document. It runs as an event
// handler after the submission commits; a sale maps through its recipe's
// ingredients, or falls back to a bottle-sized bar item of the same name.
// Dishes matching neither are skipped, never failed.
type ExpectedConsumptionProjector struct {
	expectedRepo reporting.ExpectedConsumptionRepository
	recipeRepo   catalog.RecipeRepository
	itemRepo     catalog.ItemRepository
	logger       *zap.Logger
}

// NewExpectedConsumptionProjector creates a new ExpectedConsumptionProjector
func NewExpectedConsumptionProjector(
	expectedRepo reporting.ExpectedConsumptionRepository,
	recipeRepo catalog.RecipeRepository,
	itemRepo catalog.ItemRepository,
	logger *zap.Logger,
) *ExpectedConsumptionProjector {
	return &ExpectedConsumptionProjector{
		expectedRepo: expectedRepo,
		recipeRepo:   recipeRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (p *ExpectedConsumptionProjector) EventTypes() []string {
	return []string{reporting.EventTypeCustomerOrdersRecorded}
}

// Handle folds one customer-orders event into the projection. Per-sale
// failures are logged and skipped so one bad dish never blocks the rest
// of the submission.
func (p *ExpectedConsumptionProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	orders, ok := event.(*reporting.CustomerOrdersRecordedEvent)
	if !ok {
		return nil
	}

	for _, sale := range orders.Sales {
		contributions, err := p.contributionsFor(ctx, sale)
		if err != nil {
			p.logger.Error("failed to resolve dish sale",
				zap.String("hotel_id", orders.HotelID.String()),
				zap.String("dish", sale.DishName),
				zap.Error(err))
			continue
		}
		if contributions == nil {
			p.logger.Debug("dish has no recipe or bar item, skipping",
				zap.String("hotel_id", orders.HotelID.String()),
				zap.String("dish", sale.DishName))
			continue
		}

		for _, contribution := range contributions {
			if err := p.expectedRepo.MergeContribution(ctx, orders.HotelID, orders.OrderDate, contribution); err != nil {
				p.logger.Error("failed to merge expected consumption",
					zap.String("hotel_id", orders.HotelID.String()),
					zap.String("dish", sale.DishName),
					zap.String("item_id", contribution.ItemID.String()),
					zap.Error(err))
			}
		}
	}
	return nil
}

// contributionsFor resolves one dish sale. A recipe wins over the bar-item
// fallback; nil with no error means the dish maps to nothing.
func (p *ExpectedConsumptionProjector) contributionsFor(ctx context.Context, sale reporting.DishSale) ([]reporting.Contribution, error) {
	recipe, err := p.recipeRepo.FindByDishName(ctx, sale.DishName)
	if err == nil {
		return p.fromRecipe(recipe, sale), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item, err := p.itemRepo.FindByNameAndCategory(ctx, sale.DishName, catalog.ItemCategoryBar)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !item.IsBottleItem() {
		return nil, nil
	}
	return p.fromBottleItem(item, sale), nil
}

func (p *ExpectedConsumptionProjector) fromRecipe(recipe *catalog.Recipe, sale reporting.DishSale) []reporting.Contribution {
	contributions := make([]reporting.Contribution, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		perUnit, recognized := ingredient.RequiredBaseQuantity()
		if !recognized {
			p.logger.Warn("unrecognized ingredient unit, treating as base",
				zap.String("dish", sale.DishName),
				zap.String("unit", ingredient.Unit))
		}

		baseUnit := ingredient.Unit
		if unit, ok := valueobject.ResolveUnit(ingredient.Unit); ok {
			baseUnit = unit.Family().BaseUnitCode()
		}

		contributions = append(contributions, reporting.Contribution{
			ItemID:           ingredient.ItemID,
			ItemName:         ingredient.ItemName,
			BaseUnit:         baseUnit,
			DishName:         sale.DishName,
			QuantitySold:     sale.QuantitySold,
			PerUnitQuantity:  ingredient.QuantityRequired,
			PerUnitUnit:      ingredient.Unit,
			ComputedQuantity: perUnit.Mul(sale.QuantitySold),
		})
	}
	return contributions
}

// fromBottleItem treats each sold unit as one bottle of the item's size,
// contributing in millilitres.
func (p *ExpectedConsumptionProjector) fromBottleItem(item *catalog.Item, sale reporting.DishSale) []reporting.Contribution {
	bottleSize := *item.BottleSizeML
	return []reporting.Contribution{{
		ItemID:           item.ID,
		ItemName:         item.Name,
		BaseUnit:         valueobject.UnitCodeML,
		DishName:         sale.DishName,
		QuantitySold:     sale.QuantitySold,
		PerUnitQuantity:  bottleSize,
		PerUnitUnit:      valueobject.UnitCodeML,
		ComputedQuantity: bottleSize.Mul(sale.QuantitySold),
	}}
}

var _ shared.EventHandler = (*ExpectedConsumptionProjector)(nil)
