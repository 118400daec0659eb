package inventory

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRequestKind distinguishes the two request-based issuance flows
type StockRequestKind string

const (
	// StockRequestKindRestaurant is a restaurant-initiated stock request
	StockRequestKindRestaurant StockRequestKind = "restaurant"
	// StockRequestKindOutward is an outward material request
	StockRequestKindOutward StockRequestKind = "outward"
)

// IsValid checks if the kind is recognized
func (k StockRequestKind) IsValid() bool {
	return k == StockRequestKindRestaurant || k == StockRequestKindOutward
}

// StockRequestStatus represents the lifecycle of a request-based flow
type StockRequestStatus string

const (
	StockRequestStatusPending         StockRequestStatus = "pending"
	StockRequestStatusPartiallyIssued StockRequestStatus = "partially_issued"
	StockRequestStatusFulfilled       StockRequestStatus = "fulfilled"
	StockRequestStatusRejected        StockRequestStatus = "rejected"
)

// IsTerminal returns true for statuses that accept no further issuance
func (s StockRequestStatus) IsTerminal() bool {
	return s == StockRequestStatusFulfilled || s == StockRequestStatusRejected
}

// StockRequest is a hotel/restaurant demand for central-store stock.
// Fulfillment goes through the issuance engine; per-line issued quantities
// accumulate until every line is covered.
type StockRequest struct {
	shared.BaseAggregateRoot
	Kind        StockRequestKind   `gorm:"type:varchar(20);not null"`
	HotelID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	RequestedBy uuid.UUID          `gorm:"type:uuid;not null"`
	Status      StockRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remark      string             `gorm:"type:varchar(500)"`

	Lines []StockRequestLine `gorm:"foreignKey:RequestID;references:ID"`
}

// TableName returns the table name for GORM
func (StockRequest) TableName() string {
	return "stock_requests"
}

// StockRequestLine is one requested item line
type StockRequestLine struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequestID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID            uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName          string          `gorm:"type:varchar(200);not null"`
	RequestedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IssuedQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit              string          `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockRequestLine) TableName() string {
	return "stock_request_lines"
}

// IsFulfilled returns true when the line's issued quantity covers the request
func (l StockRequestLine) IsFulfilled() bool {
	return l.IssuedQuantity.GreaterThanOrEqual(l.RequestedQuantity)
}

// Outstanding returns the quantity still to issue
func (l StockRequestLine) Outstanding() decimal.Decimal {
	remaining := l.RequestedQuantity.Sub(l.IssuedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// NewStockRequest creates a pending request
func NewStockRequest(kind StockRequestKind, hotelID, requestedBy uuid.UUID, remark string) (*StockRequest, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", "unrecognized request kind")
	}
	if hotelID == uuid.Nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewValidationError("requestedBy", "cannot be empty")
	}

	request := &StockRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		HotelID:           hotelID,
		RequestedBy:       requestedBy,
		Status:            StockRequestStatusPending,
		Remark:            remark,
		Lines:             make([]StockRequestLine, 0),
	}

	request.AddDomainEvent(NewStockRequestCreatedEvent(request))

	return request, nil
}

// AddLine appends a requested item line. Only pending requests may grow.
func (r *StockRequest) AddLine(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string) error {
	if r.Status != StockRequestStatusPending {
		return shared.ErrInvalidState
	}
	if itemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}
	for _, line := range r.Lines {
		if line.ItemID == itemID {
			return shared.NewDomainError("ALREADY_EXISTS", "Item already requested")
		}
	}

	now := time.Now()
	r.Lines = append(r.Lines, StockRequestLine{
		ID:                uuid.New(),
		RequestID:         r.ID,
		ItemID:            itemID,
		ItemName:          itemName,
		RequestedQuantity: quantity,
		IssuedQuantity:    decimal.Zero,
		Unit:              valueobject.NormalizeUnitCode(unit),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// RecordIssuance accumulates issued quantities against the request's lines
// and recomputes the overall status: fulfilled when every line is covered,
// partially_issued when some are, otherwise unchanged.
func (r *StockRequest) RecordIssuance(issued map[uuid.UUID]decimal.Decimal) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Request is already in a terminal state")
	}
	if len(issued) == 0 {
		return shared.NewValidationError("items", "cannot be empty")
	}

	now := time.Now()
	for itemID, quantity := range issued {
		found := false
		for idx := range r.Lines {
			if r.Lines[idx].ItemID == itemID {
				r.Lines[idx].IssuedQuantity = r.Lines[idx].IssuedQuantity.Add(quantity)
				r.Lines[idx].UpdatedAt = now
				found = true
				break
			}
		}
		if !found {
			return shared.NewDomainError("NOT_FOUND", "Issued item is not part of this request")
		}
	}

	r.recomputeStatus()
	r.UpdatedAt = now
	r.IncrementVersion()

	if r.Status == StockRequestStatusFulfilled {
		r.AddDomainEvent(NewStockRequestFulfilledEvent(r))
	}

	return nil
}

// Reject moves a pending request to rejected
func (r *StockRequest) Reject(reason string) error {
	if r.Status != StockRequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending requests can be rejected")
	}
	r.Status = StockRequestStatusRejected
	if reason != "" {
		r.Remark = reason
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

func (r *StockRequest) recomputeStatus() {
	fulfilled := 0
	touched := 0
	for _, line := range r.Lines {
		if line.IsFulfilled() {
			fulfilled++
		}
		if line.IssuedQuantity.GreaterThan(decimal.Zero) {
			touched++
		}
	}

	switch {
	case len(r.Lines) > 0 && fulfilled == len(r.Lines):
		r.Status = StockRequestStatusFulfilled
	case touched > 0:
		r.Status = StockRequestStatusPartiallyIssued
	}
}
