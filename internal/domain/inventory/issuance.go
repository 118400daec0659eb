package inventory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IssuanceOrigin identifies which flow produced an issuance
type IssuanceOrigin string

const (
	IssuanceOriginManual         IssuanceOrigin = "manual"
	IssuanceOriginStockRequest   IssuanceOrigin = "stock_request"
	IssuanceOriginOutwardRequest IssuanceOrigin = "outward_request"
)

// IsValid checks if the origin is recognized
func (o IssuanceOrigin) IsValid() bool {
	switch o {
	case IssuanceOriginManual, IssuanceOriginStockRequest, IssuanceOriginOutwardRequest:
		return true
	}
	return false
}

// IssuanceRecord is the immutable log entry written once per successful
// issuance of stock to a hotel. It is never mutated after creation.
type IssuanceRecord struct {
	shared.BaseAggregateRoot
	IssueNumber string         `gorm:"type:varchar(40);not null;index"`
	HotelID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	IssuedBy    uuid.UUID      `gorm:"type:uuid;not null"`
	Origin      IssuanceOrigin `gorm:"type:varchar(30);not null"`
	// SourceRequestID references the originating stock/outward request,
	// nil for manual issues
	SourceRequestID *uuid.UUID `gorm:"type:uuid;index"`
	IssuedAt        time.Time  `gorm:"not null;index"`

	Lines []IssuanceLine `gorm:"foreignKey:IssuanceRecordID;references:ID"`
}

// TableName returns the table name for GORM
func (IssuanceRecord) TableName() string {
	return "issuance_records"
}

// IssuanceLine is one item line of an issuance record
type IssuanceLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	IssuanceRecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	QuantityIssued   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	// BalanceAfterIssue is the central-store balance right after this
	// line's debit, stamped from the ledger's conditional update
	BalanceAfterIssue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IssuanceLine) TableName() string {
	return "issuance_lines"
}

// BaseQuantityIssued returns the issued quantity converted to the line
// unit's family base. The bool reports whether the unit was recognized.
func (l IssuanceLine) BaseQuantityIssued() (decimal.Decimal, bool) {
	return valueobject.ToBaseUnits(l.QuantityIssued, l.Unit)
}

// NewIssuanceRecord creates an immutable issuance record. Lines must carry
// post-debit balances; the record is written once and never updated.
func NewIssuanceRecord(hotelID, issuedBy uuid.UUID, origin IssuanceOrigin, sourceRequestID *uuid.UUID) (*IssuanceRecord, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if issuedBy == uuid.Nil {
		return nil, shared.NewValidationError("issuedBy", "cannot be empty")
	}
	if !origin.IsValid() {
		return nil, shared.NewValidationError("origin", "unrecognized issuance origin")
	}
	if origin == IssuanceOriginManual && sourceRequestID != nil {
		return nil, shared.NewValidationError("sourceRequestId", "manual issues have no source request")
	}

	now := time.Now()
	record := &IssuanceRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IssueNumber:       GenerateIssueNumber(now),
		HotelID:           hotelID,
		IssuedBy:          issuedBy,
		Origin:            origin,
		SourceRequestID:   sourceRequestID,
		IssuedAt:          now,
		Lines:             make([]IssuanceLine, 0),
	}

	return record, nil
}

// AddLine appends an item line with its post-debit balance
func (r *IssuanceRecord) AddLine(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string, balanceAfter decimal.Decimal) error {
	if itemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}
	if balanceAfter.IsNegative() {
		return shared.NewValidationError("balanceAfterIssue", "cannot be negative")
	}

	r.Lines = append(r.Lines, IssuanceLine{
		ID:                uuid.New(),
		IssuanceRecordID:  r.ID,
		ItemID:            itemID,
		ItemName:          itemName,
		QuantityIssued:    quantity,
		Unit:              valueobject.NormalizeUnitCode(unit),
		BalanceAfterIssue: balanceAfter,
		CreatedAt:         time.Now(),
	})
	return nil
}

const issueNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateIssueNumber builds a date-prefixed, randomly-suffixed issue
// number like ISS-20260901-7KQ4TX. Uniqueness is best-effort: the suffix
// keeps collision probability low but non-zero, so the number is a
// human-readable reference, not a primary key.
func GenerateIssueNumber(at time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = issueNumberCharset[rand.Intn(len(issueNumberCharset))]
	}
	return fmt.Sprintf("ISS-%s-%s", at.Format("20060102"), string(suffix))
}
