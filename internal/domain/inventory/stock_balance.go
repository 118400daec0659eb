package inventory

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockBalance is the single source of truth for central-store
// quantity-on-hand per item. It is mutated exclusively through the credit
// and debit entry points; no other component writes QuantityOnHand.
type StockBalance struct {
	shared.BaseAggregateRoot
	ItemID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	QuantityOnHand    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // never negative
	MinimumStockLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PreviousMaxStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // high-water mark
	LastUpdated       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockBalance) TableName() string {
	return "stock_balances"
}

// NewStockBalance creates a zero balance for an item. Balances are created
// lazily on first procurement credit.
func NewStockBalance(itemID uuid.UUID) (*StockBalance, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("itemId", "cannot be empty")
	}

	return &StockBalance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		QuantityOnHand:    decimal.Zero,
		MinimumStockLevel: decimal.Zero,
		PreviousMaxStock:  decimal.Zero,
		LastUpdated:       time.Now(),
	}, nil
}

// Credit increases quantity on hand and advances the high-water mark.
// Credits never fail for a positive quantity.
func (b *StockBalance) Credit(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}

	b.QuantityOnHand = b.QuantityOnHand.Add(quantity)
	if b.QuantityOnHand.GreaterThan(b.PreviousMaxStock) {
		b.PreviousMaxStock = b.QuantityOnHand
	}
	b.LastUpdated = time.Now()
	b.UpdatedAt = b.LastUpdated
	b.IncrementVersion()

	b.AddDomainEvent(NewStockCreditedEvent(b, quantity))

	return nil
}

// Debit decreases quantity on hand. A debit exceeding the balance is
// rejected whole; there is no partial debit. The persistence layer
// enforces the same invariant with a conditional update so concurrent
// debits cannot race past the check.
func (b *StockBalance) Debit(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}
	if quantity.GreaterThan(b.QuantityOnHand) {
		return shared.NewInsufficientStockError(b.ItemID.String(), quantity.String(), b.QuantityOnHand.String())
	}

	b.QuantityOnHand = b.QuantityOnHand.Sub(quantity)
	b.LastUpdated = time.Now()
	b.UpdatedAt = b.LastUpdated
	b.IncrementVersion()

	b.AddDomainEvent(NewStockDebitedEvent(b, quantity))

	if b.IsBelowMinimum() {
		b.AddDomainEvent(NewStockBelowMinimumEvent(b))
	}

	return nil
}

// SetMinimumStockLevel sets the low-stock threshold
func (b *StockBalance) SetMinimumStockLevel(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewValidationError("minimumStockLevel", "cannot be negative")
	}
	b.MinimumStockLevel = quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// CanFulfill returns true if the balance covers the requested quantity
func (b *StockBalance) CanFulfill(quantity decimal.Decimal) bool {
	return b.QuantityOnHand.GreaterThanOrEqual(quantity)
}

// IsBelowMinimum returns true if quantity on hand is under the threshold
func (b *StockBalance) IsBelowMinimum() bool {
	return b.MinimumStockLevel.GreaterThan(decimal.Zero) && b.QuantityOnHand.LessThan(b.MinimumStockLevel)
}
