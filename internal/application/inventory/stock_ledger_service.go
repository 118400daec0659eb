package inventory

import (
	"context"
	"errors"

	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockLedgerService is the single writer authority for quantity-on-hand.
// All credits and debits in the system go through it; nothing else writes
// stock balances. Quantities are stored in the base unit of each item's
// unit family.
type StockLedgerService struct {
	balanceRepo    inventory.StockBalanceRepository
	conversion     *service.UnitConversionService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockLedgerService creates a new StockLedgerService
func NewStockLedgerService(
	balanceRepo inventory.StockBalanceRepository,
	conversion *service.UnitConversionService,
	logger *zap.Logger,
) *StockLedgerService {
	return &StockLedgerService{
		balanceRepo: balanceRepo,
		conversion:  conversion,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockLedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Credit increases an item's quantity on hand, creating the balance row
// lazily on first credit. The quantity is converted from the given unit to
// the family base before applying. Called by the procurement pipeline once
// per received bill line.
func (s *StockLedgerService) Credit(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal, unit string) (*StockBalanceResponse, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	conv, err := s.conversion.ToBase(quantity, unit)
	if err != nil {
		return nil, err
	}
	if !conv.Recognized {
		s.logger.Warn("unrecognized unit on stock credit, treating as base",
			zap.String("item_id", itemID.String()),
			zap.String("unit", unit))
	}

	// The repository applies the credit as a single relative upsert, so
	// concurrent credits for the same item cannot overwrite each other.
	balance, err := s.balanceRepo.CreditConditional(ctx, itemID, conv.BaseQuantity)
	if err != nil {
		return nil, err
	}

	balance.AddDomainEvent(inventory.NewStockCreditedEvent(balance, conv.BaseQuantity))
	s.publishEvents(ctx, balance)

	resp := ToStockBalanceResponse(balance)
	return &resp, nil
}

// GetBalance returns the current quantity on hand in base units, zero when
// no balance row exists for the item.
func (s *StockLedgerService) GetBalance(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	balance, err := s.balanceRepo.FindByItemID(ctx, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return balance.QuantityOnHand, nil
}

// GetBalanceDetail returns the full balance row for an item
func (s *StockLedgerService) GetBalanceDetail(ctx context.Context, itemID uuid.UUID) (*StockBalanceResponse, error) {
	balance, err := s.balanceRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ToStockBalanceResponse(balance)
	return &resp, nil
}

// ListBalances returns a paginated snapshot of all stock balances
func (s *StockLedgerService) ListBalances(ctx context.Context, filter shared.Filter) (*shared.Paginated[StockBalanceResponse], error) {
	balances, err := s.balanceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.balanceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StockBalanceResponse, 0, len(balances))
	for idx := range balances {
		items = append(items, ToStockBalanceResponse(&balances[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListBelowMinimum returns balances currently under their threshold
func (s *StockLedgerService) ListBelowMinimum(ctx context.Context) ([]StockBalanceResponse, error) {
	balances, err := s.balanceRepo.FindBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]StockBalanceResponse, 0, len(balances))
	for idx := range balances {
		items = append(items, ToStockBalanceResponse(&balances[idx]))
	}
	return items, nil
}

// SetMinimumStockLevel sets the low-stock threshold for an item, in base
// units of the given unit's family.
func (s *StockLedgerService) SetMinimumStockLevel(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal, unit string) error {
	conv, err := s.conversion.ToBase(quantity, unit)
	if err != nil {
		return err
	}
	if !conv.Recognized {
		s.logger.Warn("unrecognized unit on minimum stock level, treating as base",
			zap.String("item_id", itemID.String()),
			zap.String("unit", unit))
	}

	balance, err := s.balanceRepo.FindByItemID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		balance, err = inventory.NewStockBalance(itemID)
		if err != nil {
			return err
		}
	}

	if err := balance.SetMinimumStockLevel(conv.BaseQuantity); err != nil {
		return err
	}
	return s.balanceRepo.Save(ctx, balance)
}

func (s *StockLedgerService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}
