package procurement

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcurementRequestStatus represents the approval lifecycle of a request
type ProcurementRequestStatus string

const (
	ProcurementRequestStatusPending  ProcurementRequestStatus = "pending"
	ProcurementRequestStatusApproved ProcurementRequestStatus = "approved"
	ProcurementRequestStatusRejected ProcurementRequestStatus = "rejected"
)

// IsValid checks if the status is recognized
func (s ProcurementRequestStatus) IsValid() bool {
	switch s {
	case ProcurementRequestStatusPending, ProcurementRequestStatusApproved, ProcurementRequestStatusRejected:
		return true
	}
	return false
}

// String returns the string representation
func (s ProcurementRequestStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that accept no further decision
func (s ProcurementRequestStatus) IsTerminal() bool {
	return s == ProcurementRequestStatusApproved || s == ProcurementRequestStatusRejected
}

// ProcurementRequestLine is one requested item line
type ProcurementRequestLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequestID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit      string          `gorm:"type:varchar(20);not null"`
	Remark    string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProcurementRequestLine) TableName() string {
	return "procurement_request_lines"
}

// ProcurementRequest is a demand for purchasing raised by a hotel or store
// manager. No stock is credited at request or approval time; credits happen
// only when a bill records received goods.
type ProcurementRequest struct {
	shared.BaseAggregateRoot
	RequestNumber string                   `gorm:"type:varchar(40);not null;index"`
	HotelID       *uuid.UUID               `gorm:"type:uuid;index"` // nil for central-store requests
	RequestedBy   uuid.UUID                `gorm:"type:uuid;not null"`
	Status        ProcurementRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remark        string                   `gorm:"type:varchar(500)"`
	DecidedBy     *uuid.UUID               `gorm:"type:uuid"`
	DecidedAt     *time.Time
	DecisionNote  string `gorm:"type:varchar(500)"`

	Lines []ProcurementRequestLine `gorm:"foreignKey:RequestID;references:ID"`
}

// TableName returns the table name for GORM
func (ProcurementRequest) TableName() string {
	return "procurement_requests"
}

// NewProcurementRequest creates a pending request
func NewProcurementRequest(hotelID *uuid.UUID, requestedBy uuid.UUID, remark string) (*ProcurementRequest, error) {
	if requestedBy == uuid.Nil {
		return nil, shared.NewValidationError("requestedBy", "cannot be empty")
	}
	if hotelID != nil && *hotelID == uuid.Nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}

	request := &ProcurementRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequestNumber:     GenerateDocumentNumber("PRQ", time.Now()),
		HotelID:           hotelID,
		RequestedBy:       requestedBy,
		Status:            ProcurementRequestStatusPending,
		Remark:            remark,
		Lines:             make([]ProcurementRequestLine, 0),
	}

	request.AddDomainEvent(NewProcurementRequestCreatedEvent(request))

	return request, nil
}

// AddLine appends a requested item line. Only pending requests may grow.
func (r *ProcurementRequest) AddLine(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit, remark string) error {
	if r.Status != ProcurementRequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add lines to a decided request")
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

	r.Lines = append(r.Lines, ProcurementRequestLine{
		ID:        uuid.New(),
		RequestID: r.ID,
		ItemID:    itemID,
		ItemName:  itemName,
		Quantity:  quantity,
		Unit:      valueobject.NormalizeUnitCode(unit),
		Remark:    remark,
		CreatedAt: time.Now(),
	})
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Approve records the managing director's approval. Only pending requests
// with at least one line can be approved.
func (r *ProcurementRequest) Approve(approvedBy uuid.UUID, note string) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Request is already decided")
	}
	if approvedBy == uuid.Nil {
		return shared.NewValidationError("approvedBy", "cannot be empty")
	}
	if len(r.Lines) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot approve a request without lines")
	}

	now := time.Now()
	r.Status = ProcurementRequestStatusApproved
	r.DecidedBy = &approvedBy
	r.DecidedAt = &now
	r.DecisionNote = note
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewProcurementRequestApprovedEvent(r))

	return nil
}

// Reject records the managing director's rejection
func (r *ProcurementRequest) Reject(rejectedBy uuid.UUID, note string) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Request is already decided")
	}
	if rejectedBy == uuid.Nil {
		return shared.NewValidationError("rejectedBy", "cannot be empty")
	}

	now := time.Now()
	r.Status = ProcurementRequestStatusRejected
	r.DecidedBy = &rejectedBy
	r.DecidedAt = &now
	r.DecisionNote = note
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewProcurementRequestRejectedEvent(r))

	return nil
}

// IsApproved returns true once the managing director has signed off
func (r *ProcurementRequest) IsApproved() bool {
	return r.Status == ProcurementRequestStatusApproved
}
