package reporting

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeConsumptionRecord   = "ConsumptionRecord"
	AggregateTypeExpectedConsumption = "ExpectedConsumptionRecord"
	AggregateTypeLeakageAlert        = "LeakageAlert"
)

// Event type constants
const (
	EventTypeCustomerOrdersRecorded    = "CustomerOrdersRecorded"
	EventTypeLeakageAlertRaised        = "LeakageAlertRaised"
	EventTypeLeakageAlertStatusChanged = "LeakageAlertStatusChanged"
)

// DishSale is one sold dish line inside a customer-orders submission
type DishSale struct {
	DishName     string          `json:"dish_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
}

// CustomerOrdersRecordedEvent is raised after a hotel's customer orders are
// persisted. The expected-consumption projector consumes it post-commit;
// projector failures never surface to the submitting caller.
type CustomerOrdersRecordedEvent struct {
	shared.BaseDomainEvent
	HotelID   uuid.UUID  `json:"hotel_id"`
	OrderDate time.Time  `json:"order_date"`
	Sales     []DishSale `json:"sales"`
}

// NewCustomerOrdersRecordedEvent creates a new CustomerOrdersRecordedEvent
func NewCustomerOrdersRecordedEvent(hotelID uuid.UUID, orderDate time.Time, sales []DishSale) *CustomerOrdersRecordedEvent {
	return &CustomerOrdersRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerOrdersRecorded, AggregateTypeExpectedConsumption, hotelID),
		HotelID:         hotelID,
		OrderDate:       orderDate,
		Sales:           sales,
	}
}

// EventType returns the event type name
func (e *CustomerOrdersRecordedEvent) EventType() string {
	return EventTypeCustomerOrdersRecorded
}

// LeakageAlertRaisedEvent is raised when alert generation creates an alert
type LeakageAlertRaisedEvent struct {
	shared.BaseDomainEvent
	AlertID        uuid.UUID       `json:"alert_id"`
	HotelID        uuid.UUID       `json:"hotel_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	LeakagePercent decimal.Decimal `json:"leakage_percent"`
	Severity       Severity        `json:"severity"`
}

// NewLeakageAlertRaisedEvent creates a new LeakageAlertRaisedEvent
func NewLeakageAlertRaisedEvent(alert *LeakageAlert) *LeakageAlertRaisedEvent {
	return &LeakageAlertRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeakageAlertRaised, AggregateTypeLeakageAlert, alert.ID),
		AlertID:         alert.ID,
		HotelID:         alert.HotelID,
		ItemID:          alert.ItemID,
		LeakagePercent:  alert.LeakagePercent,
		Severity:        alert.Severity,
	}
}

// EventType returns the event type name
func (e *LeakageAlertRaisedEvent) EventType() string {
	return EventTypeLeakageAlertRaised
}

// LeakageAlertStatusChangedEvent is raised on every alert status transition
type LeakageAlertStatusChangedEvent struct {
	shared.BaseDomainEvent
	AlertID   uuid.UUID   `json:"alert_id"`
	NewStatus AlertStatus `json:"new_status"`
}

// NewLeakageAlertStatusChangedEvent creates a new LeakageAlertStatusChangedEvent
func NewLeakageAlertStatusChangedEvent(alert *LeakageAlert, status AlertStatus) *LeakageAlertStatusChangedEvent {
	return &LeakageAlertStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeakageAlertStatusChanged, AggregateTypeLeakageAlert, alert.ID),
		AlertID:         alert.ID,
		NewStatus:       status,
	}
}

// EventType returns the event type name
func (e *LeakageAlertStatusChangedEvent) EventType() string {
	return EventTypeLeakageAlertStatusChanged
}
