package reporting

import (
	"fmt"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertPeriod is the granularity an alert was generated for
type AlertPeriod string

const (
	AlertPeriodDaily   AlertPeriod = "daily"
	AlertPeriodWeekly  AlertPeriod = "weekly"
	AlertPeriodMonthly AlertPeriod = "monthly"
)

// IsValid checks if the period is recognized
func (p AlertPeriod) IsValid() bool {
	switch p {
	case AlertPeriodDaily, AlertPeriodWeekly, AlertPeriodMonthly:
		return true
	}
	return false
}

// AlertStatus represents the investigation lifecycle of a leakage alert
type AlertStatus string

const (
	AlertStatusActive        AlertStatus = "active"
	AlertStatusInvestigating AlertStatus = "investigating"
	AlertStatusResolved      AlertStatus = "resolved"
	AlertStatusDismissed     AlertStatus = "dismissed"
)

// IsValid checks if the status is recognized
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusInvestigating, AlertStatusResolved, AlertStatusDismissed:
		return true
	}
	return false
}

// String returns the string representation
func (s AlertStatus) String() string {
	return string(s)
}

// IsOpen returns true while the alert still blocks regeneration for its scope
func (s AlertStatus) IsOpen() bool {
	return s == AlertStatusActive || s == AlertStatusInvestigating
}

// CanTransitionTo checks if the status can transition to the target status.
// Active and investigating flip between each other and close to resolved or
// dismissed; closed alerts never reopen.
func (s AlertStatus) CanTransitionTo(target AlertStatus) bool {
	switch s {
	case AlertStatusActive:
		return target == AlertStatusInvestigating || target == AlertStatusResolved || target == AlertStatusDismissed
	case AlertStatusInvestigating:
		return target == AlertStatusActive || target == AlertStatusResolved || target == AlertStatusDismissed
	case AlertStatusResolved, AlertStatusDismissed:
		return false // terminal
	}
	return false
}

// AlertNote is one append-only investigation note
type AlertNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AlertID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Note      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AlertNote) TableName() string {
	return "leakage_alert_notes"
}

// LeakageAlert is a derived, non-authoritative flag raised by alert
// generation for a (hotel, item, period, date range) scope. A partial
// unique index on that scope, restricted to open statuses, backs the
// dedup rule: regeneration never doubles an open alert, but a fresh alert
// may follow a resolved or dismissed one.
type LeakageAlert struct {
	shared.BaseAggregateRoot
	HotelID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	Period           AlertPeriod     `gorm:"type:varchar(20);not null"`
	StartDate        time.Time       `gorm:"type:date;not null"`
	EndDate          time.Time       `gorm:"type:date;not null"`
	IssuedQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // base units
	ConsumedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // base units
	LeakageQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LeakagePercent   decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Severity         Severity        `gorm:"type:varchar(10);not null"`
	EstimatedLoss    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // INR
	Status           AlertStatus     `gorm:"type:varchar(20);not null;default:'active';index"`
	ResolvedBy       *uuid.UUID      `gorm:"type:uuid"`
	ResolvedAt       *time.Time

	Notes []AlertNote `gorm:"foreignKey:AlertID;references:ID"`
}

// TableName returns the table name for GORM
func (LeakageAlert) TableName() string {
	return "leakage_alerts"
}

// NewLeakageAlert creates an active alert from a reconciliation result
func NewLeakageAlert(hotelID, itemID uuid.UUID, itemName string, period AlertPeriod, startDate, endDate time.Time, result LeakageResult, estimatedLoss decimal.Decimal) (*LeakageAlert, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("itemId", "cannot be empty")
	}
	if !period.IsValid() {
		return nil, shared.NewValidationError("period", "unrecognized alert period")
	}
	if startDate.IsZero() || endDate.IsZero() || endDate.Before(startDate) {
		return nil, shared.NewValidationError("dateRange", "invalid date range")
	}
	if estimatedLoss.IsNegative() {
		return nil, shared.NewValidationError("estimatedLoss", "cannot be negative")
	}

	alert := &LeakageAlert{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HotelID:           hotelID,
		ItemID:            itemID,
		ItemName:          itemName,
		Period:            period,
		StartDate:         truncateToDay(startDate),
		EndDate:           truncateToDay(endDate),
		IssuedQuantity:    result.Issued,
		ConsumedQuantity:  result.Consumed,
		LeakageQuantity:   result.Leakage,
		LeakagePercent:    result.LeakagePercent,
		Severity:          result.Severity,
		EstimatedLoss:     estimatedLoss,
		Status:            AlertStatusActive,
		Notes:             make([]AlertNote, 0),
	}

	alert.AddDomainEvent(NewLeakageAlertRaisedEvent(alert))

	return alert, nil
}

// TransitionTo moves the alert through its restricted status table. A
// transition to resolved stamps the resolver and time. An optional note is
// appended to the investigation log.
func (a *LeakageAlert) TransitionTo(target AlertStatus, actorID uuid.UUID, note string) error {
	if !target.IsValid() {
		return shared.NewValidationError("status", "unrecognized alert status")
	}
	if actorID == uuid.Nil {
		return shared.NewValidationError("actorId", "cannot be empty")
	}
	if !a.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move alert from %s to %s", a.Status, target))
	}

	now := time.Now()
	a.Status = target
	if target == AlertStatusResolved {
		a.ResolvedBy = &actorID
		a.ResolvedAt = &now
	}
	if note != "" {
		a.appendNote(actorID, note, now)
	}
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewLeakageAlertStatusChangedEvent(a, target))

	return nil
}

// AddNote appends an investigation note without changing status
func (a *LeakageAlert) AddNote(actorID uuid.UUID, note string) error {
	if actorID == uuid.Nil {
		return shared.NewValidationError("actorId", "cannot be empty")
	}
	if note == "" {
		return shared.NewValidationError("note", "cannot be empty")
	}
	now := time.Now()
	a.appendNote(actorID, note, now)
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

func (a *LeakageAlert) appendNote(actorID uuid.UUID, note string, at time.Time) {
	a.Notes = append(a.Notes, AlertNote{
		ID:        uuid.New(),
		AlertID:   a.ID,
		AuthorID:  actorID,
		Note:      note,
		CreatedAt: at,
	})
}
