package catalog

import (
	"context"
	"errors"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemService manages the item catalog. All mutations are restricted to
// store-side roles; hotels read the catalog but never change it.
type ItemService struct {
	itemRepo       catalog.ItemRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, logger *zap.Logger) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateItem creates a catalog item with a unique code
func (s *ItemService) CreateItem(ctx context.Context, actor shared.Actor, payload CreateItemPayload) (*ItemResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	existing, err := s.itemRepo.FindByCode(ctx, payload.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item code already exists: "+payload.Code)
	}

	item, err := catalog.NewItem(payload.Code, payload.Name, payload.Category, payload.Unit)
	if err != nil {
		return nil, err
	}
	if payload.BottleSizeML != nil {
		if err := item.SetBottleSize(*payload.BottleSizeML); err != nil {
			return nil, err
		}
	}
	item.SetGSTApplicable(payload.GSTApplicable)

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	s.logger.Info("item created",
		zap.String("item_id", item.ID.String()),
		zap.String("code", item.Code))

	resp := ToItemResponse(item)
	return &resp, nil
}

// UpdateItem updates mutable item attributes. The canonical unit is
// immutable once stock balances or recipes reference the item.
func (s *ItemService) UpdateItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID, payload UpdateItemPayload) (*ItemResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if payload.Unit != nil && *payload.Unit != item.Unit {
		referenced, err := s.itemRepo.IsReferenced(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if err := item.ChangeUnit(*payload.Unit, referenced); err != nil {
			return nil, err
		}
	}
	if payload.Name != nil {
		if err := item.Rename(*payload.Name); err != nil {
			return nil, err
		}
	}
	if payload.BottleSizeML != nil {
		if err := item.SetBottleSize(*payload.BottleSizeML); err != nil {
			return nil, err
		}
	}
	if payload.GSTApplicable != nil {
		item.SetGSTApplicable(*payload.GSTApplicable)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// DeleteItem removes an unreferenced item from the catalog
func (s *ItemService) DeleteItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID) error {
	if !actor.IsManagement() {
		return shared.ErrForbidden
	}

	referenced, err := s.itemRepo.IsReferenced(ctx, itemID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("INVALID_STATE", "Item is referenced by stock or recipes")
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// GetItem returns one item with its vendor prices
func (s *ItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns a paginated item listing
func (s *ItemService) ListItems(ctx context.Context, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]ItemResponse, 0, len(items))
	for idx := range items {
		result = append(result, ToItemResponse(&items[idx]))
	}
	paginated := shared.NewPaginated(result, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

func (s *ItemService) publishEvents(ctx context.Context, item *catalog.Item) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	item.ClearDomainEvents()
}
