package reporting

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionLine is one consumed item line of a hotel's daily submission.
// Opening and closing balances are in base units, computed from cumulative
// issued minus cumulative consumed prior to the record's date.
type ConsumptionLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecordID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	QuantityConsumed decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	OpeningBalance   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ClosingBalance   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConsumptionLine) TableName() string {
	return "consumption_lines"
}

// BaseQuantityConsumed returns the consumed quantity converted to the line
// unit's family base. The bool reports whether the unit was recognized.
func (l ConsumptionLine) BaseQuantityConsumed() (decimal.Decimal, bool) {
	return valueobject.ToBaseUnits(l.QuantityConsumed, l.Unit)
}

// ConsumptionRecord is a hotel-reported consumption submission for one day.
// Records are append-only; several may exist for the same hotel and day,
// unlike expected consumption which is one document per hotel and day.
type ConsumptionRecord struct {
	shared.BaseAggregateRoot
	HotelID     uuid.UUID `gorm:"type:uuid;not null;index:idx_consumption_hotel_date"`
	RecordDate  time.Time `gorm:"type:date;not null;index:idx_consumption_hotel_date"`
	SubmittedBy uuid.UUID `gorm:"type:uuid;not null"`
	Remark      string    `gorm:"type:varchar(500)"`

	Lines []ConsumptionLine `gorm:"foreignKey:RecordID;references:ID"`
}

// TableName returns the table name for GORM
func (ConsumptionRecord) TableName() string {
	return "consumption_records"
}

// NewConsumptionRecord creates a consumption submission for a hotel and day
func NewConsumptionRecord(hotelID, submittedBy uuid.UUID, recordDate time.Time, remark string) (*ConsumptionRecord, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if submittedBy == uuid.Nil {
		return nil, shared.NewValidationError("submittedBy", "cannot be empty")
	}
	if recordDate.IsZero() {
		return nil, shared.NewValidationError("recordDate", "cannot be empty")
	}

	return &ConsumptionRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HotelID:           hotelID,
		RecordDate:        truncateToDay(recordDate),
		SubmittedBy:       submittedBy,
		Remark:            remark,
		Lines:             make([]ConsumptionLine, 0),
	}, nil
}

// AddLine appends a consumed item line with its computed balances
func (r *ConsumptionRecord) AddLine(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string, openingBalance, closingBalance decimal.Decimal) error {
	if itemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}
	for _, line := range r.Lines {
		if line.ItemID == itemID {
			return shared.NewDomainError("ALREADY_EXISTS", "Item already on this submission")
		}
	}

	r.Lines = append(r.Lines, ConsumptionLine{
		ID:               uuid.New(),
		RecordID:         r.ID,
		ItemID:           itemID,
		ItemName:         itemName,
		QuantityConsumed: quantity,
		Unit:             valueobject.NormalizeUnitCode(unit),
		OpeningBalance:   openingBalance,
		ClosingBalance:   closingBalance,
		CreatedAt:        time.Now(),
	})
	return nil
}

// truncateToDay normalizes to UTC first so the (hotel, date) identity does
// not depend on the zone the caller submitted in.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
