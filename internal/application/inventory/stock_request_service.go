package inventory

import (
	"context"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockRequestService handles the request side of the two request-based
// issuance flows. Fulfillment itself runs through the IssuanceService.
type StockRequestService struct {
	requestRepo    inventory.StockRequestRepository
	itemRepo       catalog.ItemRepository
	hotelRepo      partner.HotelRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockRequestService creates a new StockRequestService
func NewStockRequestService(
	requestRepo inventory.StockRequestRepository,
	itemRepo catalog.ItemRepository,
	hotelRepo partner.HotelRepository,
	logger *zap.Logger,
) *StockRequestService {
	return &StockRequestService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		hotelRepo:   hotelRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockRequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRequest raises a pending stock or outward request. A hotel manager
// may only raise requests for their own property.
func (s *StockRequestService) CreateRequest(ctx context.Context, actor shared.Actor, payload CreateStockRequestPayload) (*StockRequestResponse, error) {
	if !actor.CanAccessHotel(payload.HotelID) {
		return nil, shared.ErrForbidden
	}

	hotel, err := s.hotelRepo.FindByID(ctx, payload.HotelID)
	if err != nil {
		return nil, err
	}
	if !hotel.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Hotel is inactive")
	}

	itemIDs := make([]uuid.UUID, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		itemIDs = append(itemIDs, line.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*catalog.Item, len(items))
	for idx := range items {
		itemsByID[items[idx].ID] = &items[idx]
	}

	request, err := inventory.NewStockRequest(payload.Kind, payload.HotelID, actor.ID, payload.Remark)
	if err != nil {
		return nil, err
	}
	for _, line := range payload.Lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Item not found: "+line.ItemID.String())
		}
		if err := request.AddLine(line.ItemID, item.Name, line.Quantity, line.Unit); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	resp := ToStockRequestResponse(request)
	return &resp, nil
}

// RejectRequest moves a pending request to rejected. Store-side roles only.
func (s *StockRequestService) RejectRequest(ctx context.Context, actor shared.Actor, requestID uuid.UUID, reason string) (*StockRequestResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	expectedVersion := request.Version
	if err := request.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.requestRepo.SaveWithLock(ctx, request, expectedVersion); err != nil {
		return nil, err
	}

	resp := ToStockRequestResponse(request)
	return &resp, nil
}

// GetRequest returns one stock request, hotel-scoped for hotel managers
func (s *StockRequestService) GetRequest(ctx context.Context, actor shared.Actor, requestID uuid.UUID) (*StockRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessHotel(request.HotelID) {
		return nil, shared.ErrForbidden
	}
	resp := ToStockRequestResponse(request)
	return &resp, nil
}

// ListRequests returns a paginated list. Hotel managers see only their own
// property's requests.
func (s *StockRequestService) ListRequests(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[StockRequestResponse], error) {
	var requests []inventory.StockRequest
	var total int64
	var err error

	if actor.Role == shared.RoleHotelManager {
		if actor.HotelID == nil {
			return nil, shared.ErrForbidden
		}
		requests, err = s.requestRepo.FindByHotel(ctx, *actor.HotelID, filter)
	} else {
		requests, err = s.requestRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err = s.requestRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StockRequestResponse, 0, len(requests))
	for idx := range requests {
		items = append(items, ToStockRequestResponse(&requests[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *StockRequestService) publishEvents(ctx context.Context, request *inventory.StockRequest) {
	if s.eventPublisher == nil {
		return
	}
	events := request.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	request.ClearDomainEvents()
}
