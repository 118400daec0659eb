package inventory

import (
	"context"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockBalanceRepository defines the interface for stock balance persistence
type StockBalanceRepository interface {
	// FindByID finds a stock balance by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockBalance, error)

	// FindByItemID finds the balance row for an item
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*StockBalance, error)

	// FindByItemIDs finds balance rows for multiple items
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]StockBalance, error)

	// FindAll finds all stock balances matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockBalance, error)

	// FindBelowMinimum finds balances currently under their minimum stock level
	FindBelowMinimum(ctx context.Context) ([]StockBalance, error)

	// Count counts stock balances matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a stock balance
	Save(ctx context.Context, balance *StockBalance) error

	// CreditConditional atomically increments quantity on hand, creating the
	// balance row when the item has none yet. The increment and high-water
	// mark advance happen in a single statement so concurrent credits never
	// lose each other's quantity. Quantity is in the item's base unit.
	CreditConditional(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*StockBalance, error)

	// DebitConditional atomically decrements quantity on hand only when the
	// stored balance covers the requested quantity. It returns the resulting
	// balance, or ErrInsufficientStock when the guard rejects the debit.
	// Quantity is in the item's base unit.
	DebitConditional(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*StockBalance, error)
}

// IssuanceRecordRepository defines the interface for issuance persistence.
// Issuance records are append-only; there is no update or delete.
type IssuanceRecordRepository interface {
	// FindByID finds an issuance record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*IssuanceRecord, error)

	// FindByIssueNumber finds an issuance record by its issue number
	FindByIssueNumber(ctx context.Context, issueNumber string) (*IssuanceRecord, error)

	// FindByHotelAndDateRange finds issuances for a hotel issued within
	// [from, to)
	FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]IssuanceRecord, error)

	// FindAll finds all issuance records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]IssuanceRecord, error)

	// Count counts issuance records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save appends an issuance record with its lines
	Save(ctx context.Context, record *IssuanceRecord) error

	// SumIssuedByItem sums base-unit quantities issued per item for a hotel
	// within [from, to)
	SumIssuedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)
}

// StockRequestRepository defines the interface for stock request persistence
type StockRequestRepository interface {
	// FindByID finds a stock request by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRequest, error)

	// FindByHotel finds requests raised for a hotel
	FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]StockRequest, error)

	// FindPending finds requests that are still actionable
	FindPending(ctx context.Context, kind StockRequestKind) ([]StockRequest, error)

	// FindAll finds all stock requests matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRequest, error)

	// Count counts stock requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a stock request with its lines
	Save(ctx context.Context, request *StockRequest) error

	// SaveWithLock updates a stock request with optimistic concurrency control
	SaveWithLock(ctx context.Context, request *StockRequest, expectedVersion int) error
}
