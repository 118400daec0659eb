package reporting

import (
	"context"
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConsumptionService accepts the two daily submissions a hotel makes:
// customer orders (dish sales) and actual consumption. Customer orders
// feed the expected-consumption projector through an event; consumption
// submissions are stored directly with computed running balances.
type ConsumptionService struct {
	consumptionRepo reporting.ConsumptionRecordRepository
	expectedRepo    reporting.ExpectedConsumptionRepository
	issuanceRepo    inventorySums
	itemRepo        catalog.ItemRepository
	hotelRepo       partner.HotelRepository
	conversion      *service.UnitConversionService
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// inventorySums is the slice of the issuance ledger the reporting side
// reads: cumulative issued quantities per item.
type inventorySums interface {
	SumIssuedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)
}

// NewConsumptionService creates a new ConsumptionService
func NewConsumptionService(
	consumptionRepo reporting.ConsumptionRecordRepository,
	expectedRepo reporting.ExpectedConsumptionRepository,
	issuanceRepo inventorySums,
	itemRepo catalog.ItemRepository,
	hotelRepo partner.HotelRepository,
	conversion *service.UnitConversionService,
	logger *zap.Logger,
) *ConsumptionService {
	return &ConsumptionService{
		consumptionRepo: consumptionRepo,
		expectedRepo:    expectedRepo,
		issuanceRepo:    issuanceRepo,
		itemRepo:        itemRepo,
		hotelRepo:       hotelRepo,
		conversion:      conversion,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ConsumptionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordCustomerOrders accepts a hotel's dish sales for a day. The
// submission itself is the projector's trigger: the event is published
// after validation and the expected-consumption document updates
// asynchronously. Projector failures never bounce the submission.
func (s *ConsumptionService) RecordCustomerOrders(ctx context.Context, actor shared.Actor, payload RecordCustomerOrdersPayload) error {
	if !actor.CanAccessHotel(payload.HotelID) {
		return shared.ErrForbidden
	}

	hotel, err := s.hotelRepo.FindByID(ctx, payload.HotelID)
	if err != nil {
		return err
	}
	if !hotel.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Hotel is inactive")
	}

	sales := make([]reporting.DishSale, 0, len(payload.Sales))
	for _, sale := range payload.Sales {
		if sale.QuantitySold.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("quantitySold", "must be positive")
		}
		sales = append(sales, reporting.DishSale{
			DishName:     sale.DishName,
			QuantitySold: sale.QuantitySold,
		})
	}

	if s.eventPublisher == nil {
		return shared.NewDomainError("INVALID_STATE", "Order recording is not wired to a publisher")
	}
	event := reporting.NewCustomerOrdersRecordedEvent(payload.HotelID, payload.OrderDate, sales)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		return err
	}
	return nil
}

// SubmitConsumption stores a hotel's actual consumption for a day.
// Opening balances come from cumulative issued through the record day
// minus cumulative consumed before it; closing is opening minus this
// submission, all in base units.
func (s *ConsumptionService) SubmitConsumption(ctx context.Context, actor shared.Actor, payload SubmitConsumptionPayload) (*ConsumptionRecordResponse, error) {
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

	// opening balance is everything issued minus everything consumed
	// strictly before the record day, both bounds cut at the same instant
	day := payload.RecordDate.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	issuedBefore, err := s.issuanceRepo.SumIssuedByItem(ctx, payload.HotelID, time.Time{}, dayStart)
	if err != nil {
		return nil, err
	}
	consumedBefore, err := s.consumptionRepo.SumConsumedByItem(ctx, payload.HotelID, time.Time{}, dayStart)
	if err != nil {
		return nil, err
	}

	record, err := reporting.NewConsumptionRecord(payload.HotelID, actor.ID, payload.RecordDate, payload.Remark)
	if err != nil {
		return nil, err
	}
	for _, line := range payload.Lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Item not found: "+line.ItemID.String())
		}

		conv, err := s.conversion.ToBase(line.Quantity, line.Unit)
		if err != nil {
			return nil, err
		}
		if !conv.Recognized {
			s.logger.Warn("unrecognized unit on consumption line, treating as base",
				zap.String("item_id", line.ItemID.String()),
				zap.String("unit", line.Unit))
		}

		opening := issuedBefore[line.ItemID].Sub(consumedBefore[line.ItemID])
		closing := opening.Sub(conv.BaseQuantity)
		if err := record.AddLine(line.ItemID, item.Name, line.Quantity, line.Unit, opening, closing); err != nil {
			return nil, err
		}
	}

	if err := s.consumptionRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	resp := ToConsumptionRecordResponse(record)
	return &resp, nil
}

// GetExpectedConsumption returns the projection document for a hotel and day
func (s *ConsumptionService) GetExpectedConsumption(ctx context.Context, actor shared.Actor, hotelID uuid.UUID, date time.Time) (*ExpectedConsumptionResponse, error) {
	if !actor.CanAccessHotel(hotelID) {
		return nil, shared.ErrForbidden
	}
	record, err := s.expectedRepo.FindByHotelAndDate(ctx, hotelID, date)
	if err != nil {
		return nil, err
	}
	resp := ToExpectedConsumptionResponse(record)
	return &resp, nil
}

// ListConsumption returns a hotel's consumption submissions within [from, to)
func (s *ConsumptionService) ListConsumption(ctx context.Context, actor shared.Actor, hotelID uuid.UUID, from, to time.Time) ([]ConsumptionRecordResponse, error) {
	if !actor.CanAccessHotel(hotelID) {
		return nil, shared.ErrForbidden
	}
	records, err := s.consumptionRepo.FindByHotelAndDateRange(ctx, hotelID, from, to)
	if err != nil {
		return nil, err
	}
	result := make([]ConsumptionRecordResponse, 0, len(records))
	for idx := range records {
		result = append(result, ToConsumptionRecordResponse(&records[idx]))
	}
	return result, nil
}
