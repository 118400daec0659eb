package inventory

import (
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeStockBalance   = "StockBalance"
	AggregateTypeIssuanceRecord = "IssuanceRecord"
	AggregateTypeStockRequest   = "StockRequest"
)

// Event type constants
const (
	EventTypeStockCredited         = "StockCredited"
	EventTypeStockDebited          = "StockDebited"
	EventTypeStockBelowMinimum     = "StockBelowMinimum"
	EventTypeStockIssued           = "StockIssued"
	EventTypeStockRequestCreated   = "StockRequestCreated"
	EventTypeStockRequestFulfilled = "StockRequestFulfilled"
)

// StockCreditedEvent is raised when the ledger is credited (procurement receipt)
type StockCreditedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewStockCreditedEvent creates a new StockCreditedEvent
func NewStockCreditedEvent(balance *StockBalance, quantity decimal.Decimal) *StockCreditedEvent {
	return &StockCreditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCredited, AggregateTypeStockBalance, balance.ID),
		ItemID:          balance.ItemID,
		Quantity:        quantity,
		NewBalance:      balance.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockCreditedEvent) EventType() string {
	return EventTypeStockCredited
}

// StockDebitedEvent is raised when the ledger is debited (issuance)
type StockDebitedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewStockDebitedEvent creates a new StockDebitedEvent
func NewStockDebitedEvent(balance *StockBalance, quantity decimal.Decimal) *StockDebitedEvent {
	return &StockDebitedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDebited, AggregateTypeStockBalance, balance.ID),
		ItemID:          balance.ItemID,
		Quantity:        quantity,
		NewBalance:      balance.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockDebitedEvent) EventType() string {
	return EventTypeStockDebited
}

// StockBelowMinimumEvent is raised when a debit takes the balance under
// its minimum stock level
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ItemID            uuid.UUID       `json:"item_id"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	MinimumStockLevel decimal.Decimal `json:"minimum_stock_level"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(balance *StockBalance) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeStockBalance, balance.ID),
		ItemID:            balance.ItemID,
		QuantityOnHand:    balance.QuantityOnHand,
		MinimumStockLevel: balance.MinimumStockLevel,
	}
}

// EventType returns the event type name
func (e *StockBelowMinimumEvent) EventType() string {
	return EventTypeStockBelowMinimum
}

// StockIssuedEvent is raised once per successful issuance
type StockIssuedEvent struct {
	shared.BaseDomainEvent
	IssuanceRecordID uuid.UUID      `json:"issuance_record_id"`
	IssueNumber      string         `json:"issue_number"`
	HotelID          uuid.UUID      `json:"hotel_id"`
	Origin           IssuanceOrigin `json:"origin"`
	LineCount        int            `json:"line_count"`
}

// NewStockIssuedEvent creates a new StockIssuedEvent
func NewStockIssuedEvent(record *IssuanceRecord) *StockIssuedEvent {
	return &StockIssuedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockIssued, AggregateTypeIssuanceRecord, record.ID),
		IssuanceRecordID: record.ID,
		IssueNumber:      record.IssueNumber,
		HotelID:          record.HotelID,
		Origin:           record.Origin,
		LineCount:        len(record.Lines),
	}
}

// EventType returns the event type name
func (e *StockIssuedEvent) EventType() string {
	return EventTypeStockIssued
}

// StockRequestCreatedEvent is raised when a request-based flow starts
type StockRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID        `json:"request_id"`
	Kind      StockRequestKind `json:"kind"`
	HotelID   uuid.UUID        `json:"hotel_id"`
}

// NewStockRequestCreatedEvent creates a new StockRequestCreatedEvent
func NewStockRequestCreatedEvent(request *StockRequest) *StockRequestCreatedEvent {
	return &StockRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRequestCreated, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		Kind:            request.Kind,
		HotelID:         request.HotelID,
	}
}

// EventType returns the event type name
func (e *StockRequestCreatedEvent) EventType() string {
	return EventTypeStockRequestCreated
}

// StockRequestFulfilledEvent is raised when every line of a request is covered
type StockRequestFulfilledEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID        `json:"request_id"`
	Kind      StockRequestKind `json:"kind"`
	HotelID   uuid.UUID        `json:"hotel_id"`
}

// NewStockRequestFulfilledEvent creates a new StockRequestFulfilledEvent
func NewStockRequestFulfilledEvent(request *StockRequest) *StockRequestFulfilledEvent {
	return &StockRequestFulfilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRequestFulfilled, AggregateTypeStockRequest, request.ID),
		RequestID:       request.ID,
		Kind:            request.Kind,
		HotelID:         request.HotelID,
	}
}

// EventType returns the event type name
func (e *StockRequestFulfilledEvent) EventType() string {
	return EventTypeStockRequestFulfilled
}
