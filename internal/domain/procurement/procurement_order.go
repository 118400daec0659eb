package procurement

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcurementOrderStatus represents the status of a vendor order
type ProcurementOrderStatus string

const (
	ProcurementOrderStatusOrdered           ProcurementOrderStatus = "ordered"
	ProcurementOrderStatusPartiallyReceived ProcurementOrderStatus = "partially_received"
	ProcurementOrderStatusCompleted         ProcurementOrderStatus = "completed"
	ProcurementOrderStatusCancelled         ProcurementOrderStatus = "cancelled"
)

// IsValid checks if the status is recognized
func (s ProcurementOrderStatus) IsValid() bool {
	switch s {
	case ProcurementOrderStatusOrdered, ProcurementOrderStatusPartiallyReceived,
		ProcurementOrderStatusCompleted, ProcurementOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s ProcurementOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ProcurementOrderStatus) CanTransitionTo(target ProcurementOrderStatus) bool {
	switch s {
	case ProcurementOrderStatusOrdered:
		return target == ProcurementOrderStatusPartiallyReceived || target == ProcurementOrderStatusCompleted ||
			target == ProcurementOrderStatusCancelled
	case ProcurementOrderStatusPartiallyReceived:
		return target == ProcurementOrderStatusPartiallyReceived || target == ProcurementOrderStatusCompleted
	case ProcurementOrderStatusCompleted, ProcurementOrderStatusCancelled:
		return false // terminal
	}
	return false
}

// CanReceive returns true if bills may still be recorded against this status
func (s ProcurementOrderStatus) CanReceive() bool {
	return s == ProcurementOrderStatusOrdered || s == ProcurementOrderStatusPartiallyReceived
}

// ProcurementOrderLine is one item line of a vendor order
type ProcurementOrderLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"` // OrderedQuantity * UnitCost
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProcurementOrderLine) TableName() string {
	return "procurement_order_lines"
}

// RemainingQuantity returns the quantity still to be received
func (l *ProcurementOrderLine) RemainingQuantity() decimal.Decimal {
	remaining := l.OrderedQuantity.Sub(l.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (l *ProcurementOrderLine) IsFullyReceived() bool {
	return l.ReceivedQuantity.GreaterThanOrEqual(l.OrderedQuantity)
}

// ProcurementOrder is an order placed with a vendor for an approved request.
// Receiving goes through bill upload; received quantities accumulate per
// line until the order completes.
type ProcurementOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string                 `gorm:"type:varchar(40);not null;index"`
	RequestID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	VendorID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	VendorName   string                 `gorm:"type:varchar(200);not null"`
	Status       ProcurementOrderStatus `gorm:"type:varchar(20);not null;default:'ordered';index"`
	TotalAmount  decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	OrderedBy    uuid.UUID              `gorm:"type:uuid;not null"`
	OrderedAt    time.Time              `gorm:"not null"`
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`

	Lines []ProcurementOrderLine `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (ProcurementOrder) TableName() string {
	return "procurement_orders"
}

// NewProcurementOrder creates an order against an approved request
func NewProcurementOrder(requestID, vendorID uuid.UUID, vendorName string, orderedBy uuid.UUID) (*ProcurementOrder, error) {
	if requestID == uuid.Nil {
		return nil, shared.NewValidationError("requestId", "cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendorId", "cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewValidationError("vendorName", "cannot be empty")
	}
	if orderedBy == uuid.Nil {
		return nil, shared.NewValidationError("orderedBy", "cannot be empty")
	}

	now := time.Now()
	order := &ProcurementOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       GenerateDocumentNumber("PO", now),
		RequestID:         requestID,
		VendorID:          vendorID,
		VendorName:        vendorName,
		Status:            ProcurementOrderStatusOrdered,
		TotalAmount:       decimal.Zero,
		OrderedBy:         orderedBy,
		OrderedAt:         now,
		Lines:             make([]ProcurementOrderLine, 0),
	}

	order.AddDomainEvent(NewProcurementOrderCreatedEvent(order))

	return order, nil
}

// AddLine appends an item line. Lines can only be added before anything
// has been received.
func (o *ProcurementOrder) AddLine(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string, unitCost valueobject.Money) error {
	if o.Status != ProcurementOrderStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", "Cannot add lines after receiving has started")
	}
	if itemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}
	if unitCost.Amount().IsNegative() {
		return shared.NewValidationError("unitCost", "cannot be negative")
	}
	for _, line := range o.Lines {
		if line.ItemID == itemID {
			return shared.NewDomainError("ALREADY_EXISTS", "Item already on order, update quantity instead")
		}
	}

	now := time.Now()
	o.Lines = append(o.Lines, ProcurementOrderLine{
		ID:               uuid.New(),
		OrderID:          o.ID,
		ItemID:           itemID,
		ItemName:         itemName,
		OrderedQuantity:  quantity,
		ReceivedQuantity: decimal.Zero,
		Unit:             valueobject.NormalizeUnitCode(unit),
		UnitCost:         unitCost.Amount(),
		Amount:           quantity.Mul(unitCost.Amount()),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	o.recalculateTotal()
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// RecordReceipt accumulates received quantities against order lines and
// recomputes the status. Called once per uploaded bill, inside the same
// transaction that credits the stock ledger.
func (o *ProcurementOrder) RecordReceipt(received map[uuid.UUID]decimal.Decimal) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive goods in status %s", o.Status))
	}
	if len(received) == 0 {
		return shared.NewValidationError("items", "cannot be empty")
	}

	now := time.Now()
	for itemID, quantity := range received {
		if quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("quantity", "must be positive")
		}
		found := false
		for idx := range o.Lines {
			if o.Lines[idx].ItemID == itemID {
				newReceived := o.Lines[idx].ReceivedQuantity.Add(quantity)
				if newReceived.GreaterThan(o.Lines[idx].OrderedQuantity) {
					return shared.NewDomainError("QUANTITY_EXCEEDED",
						fmt.Sprintf("Cannot receive %s of %s, only %s remaining",
							quantity.String(), o.Lines[idx].ItemName, o.Lines[idx].RemainingQuantity().String()))
				}
				o.Lines[idx].ReceivedQuantity = newReceived
				o.Lines[idx].UpdatedAt = now
				found = true
				break
			}
		}
		if !found {
			return shared.NewDomainError("NOT_FOUND", "Received item is not part of this order")
		}
	}

	o.recomputeStatus(now)
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels the order before anything has been received
func (o *ProcurementOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(ProcurementOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in status %s", o.Status))
	}

	now := time.Now()
	o.Status = ProcurementOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewProcurementOrderCancelledEvent(o, reason))

	return nil
}

func (o *ProcurementOrder) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}

func (o *ProcurementOrder) recomputeStatus(now time.Time) {
	fullyReceived := 0
	for _, line := range o.Lines {
		if line.IsFullyReceived() {
			fullyReceived++
		}
	}

	if len(o.Lines) > 0 && fullyReceived == len(o.Lines) {
		o.Status = ProcurementOrderStatusCompleted
		o.CompletedAt = &now
		o.AddDomainEvent(NewProcurementOrderCompletedEvent(o))
		return
	}
	o.Status = ProcurementOrderStatusPartiallyReceived
}

const documentNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateDocumentNumber builds a prefixed, date-stamped document number
// like PO-20260901-7KQ4TX. Best-effort unique, a human-facing reference.
func GenerateDocumentNumber(prefix string, at time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = documentNumberCharset[rand.Intn(len(documentNumberCharset))]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), string(suffix))
}
