package procurement

import (
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeProcurementRequest = "ProcurementRequest"
	AggregateTypeProcurementOrder   = "ProcurementOrder"
	AggregateTypeProcurementBill    = "ProcurementBill"
)

// Event type constants
const (
	EventTypeProcurementRequestCreated  = "ProcurementRequestCreated"
	EventTypeProcurementRequestApproved = "ProcurementRequestApproved"
	EventTypeProcurementRequestRejected = "ProcurementRequestRejected"
	EventTypeProcurementOrderCreated    = "ProcurementOrderCreated"
	EventTypeProcurementOrderCompleted  = "ProcurementOrderCompleted"
	EventTypeProcurementOrderCancelled  = "ProcurementOrderCancelled"
	EventTypeProcurementBillRecorded    = "ProcurementBillRecorded"
)

// ProcurementRequestCreatedEvent is raised when a request enters the pipeline
type ProcurementRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID  `json:"request_id"`
	RequestNumber string     `json:"request_number"`
	HotelID       *uuid.UUID `json:"hotel_id,omitempty"`
	RequestedBy   uuid.UUID  `json:"requested_by"`
}

// NewProcurementRequestCreatedEvent creates a new ProcurementRequestCreatedEvent
func NewProcurementRequestCreatedEvent(request *ProcurementRequest) *ProcurementRequestCreatedEvent {
	return &ProcurementRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementRequestCreated, AggregateTypeProcurementRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		HotelID:         request.HotelID,
		RequestedBy:     request.RequestedBy,
	}
}

// EventType returns the event type name
func (e *ProcurementRequestCreatedEvent) EventType() string {
	return EventTypeProcurementRequestCreated
}

// ProcurementRequestApprovedEvent is raised on managing-director approval
type ProcurementRequestApprovedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID `json:"request_id"`
	RequestNumber string    `json:"request_number"`
	ApprovedBy    uuid.UUID `json:"approved_by"`
}

// NewProcurementRequestApprovedEvent creates a new ProcurementRequestApprovedEvent
func NewProcurementRequestApprovedEvent(request *ProcurementRequest) *ProcurementRequestApprovedEvent {
	var approvedBy uuid.UUID
	if request.DecidedBy != nil {
		approvedBy = *request.DecidedBy
	}
	return &ProcurementRequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementRequestApproved, AggregateTypeProcurementRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		ApprovedBy:      approvedBy,
	}
}

// EventType returns the event type name
func (e *ProcurementRequestApprovedEvent) EventType() string {
	return EventTypeProcurementRequestApproved
}

// ProcurementRequestRejectedEvent is raised on managing-director rejection
type ProcurementRequestRejectedEvent struct {
	shared.BaseDomainEvent
	RequestID     uuid.UUID `json:"request_id"`
	RequestNumber string    `json:"request_number"`
	Note          string    `json:"note,omitempty"`
}

// NewProcurementRequestRejectedEvent creates a new ProcurementRequestRejectedEvent
func NewProcurementRequestRejectedEvent(request *ProcurementRequest) *ProcurementRequestRejectedEvent {
	return &ProcurementRequestRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementRequestRejected, AggregateTypeProcurementRequest, request.ID),
		RequestID:       request.ID,
		RequestNumber:   request.RequestNumber,
		Note:            request.DecisionNote,
	}
}

// EventType returns the event type name
func (e *ProcurementRequestRejectedEvent) EventType() string {
	return EventTypeProcurementRequestRejected
}

// ProcurementOrderCreatedEvent is raised when an order is placed with a vendor
type ProcurementOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	RequestID   uuid.UUID `json:"request_id"`
	VendorID    uuid.UUID `json:"vendor_id"`
}

// NewProcurementOrderCreatedEvent creates a new ProcurementOrderCreatedEvent
func NewProcurementOrderCreatedEvent(order *ProcurementOrder) *ProcurementOrderCreatedEvent {
	return &ProcurementOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementOrderCreated, AggregateTypeProcurementOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		RequestID:       order.RequestID,
		VendorID:        order.VendorID,
	}
}

// EventType returns the event type name
func (e *ProcurementOrderCreatedEvent) EventType() string {
	return EventTypeProcurementOrderCreated
}

// ProcurementOrderCompletedEvent is raised when every line is fully received
type ProcurementOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewProcurementOrderCompletedEvent creates a new ProcurementOrderCompletedEvent
func NewProcurementOrderCompletedEvent(order *ProcurementOrder) *ProcurementOrderCompletedEvent {
	return &ProcurementOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementOrderCompleted, AggregateTypeProcurementOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *ProcurementOrderCompletedEvent) EventType() string {
	return EventTypeProcurementOrderCompleted
}

// ProcurementOrderCancelledEvent is raised when an order is cancelled
type ProcurementOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason,omitempty"`
}

// NewProcurementOrderCancelledEvent creates a new ProcurementOrderCancelledEvent
func NewProcurementOrderCancelledEvent(order *ProcurementOrder, reason string) *ProcurementOrderCancelledEvent {
	return &ProcurementOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementOrderCancelled, AggregateTypeProcurementOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *ProcurementOrderCancelledEvent) EventType() string {
	return EventTypeProcurementOrderCancelled
}

// ProcurementBillRecordedEvent is raised once per uploaded bill, after the
// stock ledger credits have been applied
type ProcurementBillRecordedEvent struct {
	shared.BaseDomainEvent
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	OrderID     uuid.UUID       `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineCount   int             `json:"line_count"`
}

// NewProcurementBillRecordedEvent creates a new ProcurementBillRecordedEvent
func NewProcurementBillRecordedEvent(bill *ProcurementBill) *ProcurementBillRecordedEvent {
	return &ProcurementBillRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProcurementBillRecorded, AggregateTypeProcurementBill, bill.ID),
		BillID:          bill.ID,
		BillNumber:      bill.BillNumber,
		OrderID:         bill.OrderID,
		TotalAmount:     bill.TotalAmount,
		LineCount:       len(bill.Lines),
	}
}

// EventType returns the event type name
func (e *ProcurementBillRecordedEvent) EventType() string {
	return EventTypeProcurementBillRecorded
}
