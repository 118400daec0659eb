package reporting

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpectedConsumptionItem is one item's accumulated expected quantity for a
// hotel and day, always in the item's base unit.
type ExpectedConsumptionItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecordID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	ExpectedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BaseUnit         string          `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpectedConsumptionItem) TableName() string {
	return "expected_consumption_items"
}

// ProvenanceEntry records which dish sale contributed what to an item's
// expected quantity. Entries are append-only.
type ProvenanceEntry struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecordID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null"`
	DishName         string          `gorm:"type:varchar(200);not null"`
	QuantitySold     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PerUnitQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PerUnitUnit      string          `gorm:"type:varchar(20);not null"`
	ComputedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // base units
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProvenanceEntry) TableName() string {
	return "expected_consumption_provenance"
}

// ExpectedConsumptionRecord is the single projection document per hotel and
// day. The (hotel, date) pair carries a unique constraint; concurrent
// submissions merge into the same record through upsert-and-accumulate at
// the persistence layer.
type ExpectedConsumptionRecord struct {
	shared.BaseAggregateRoot
	HotelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_expected_hotel_date"`
	RecordDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_expected_hotel_date"`

	Items      []ExpectedConsumptionItem `gorm:"foreignKey:RecordID;references:ID"`
	Provenance []ProvenanceEntry         `gorm:"foreignKey:RecordID;references:ID"`
}

// TableName returns the table name for GORM
func (ExpectedConsumptionRecord) TableName() string {
	return "expected_consumption_records"
}

// NewExpectedConsumptionRecord creates an empty projection document
func NewExpectedConsumptionRecord(hotelID uuid.UUID, recordDate time.Time) (*ExpectedConsumptionRecord, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if recordDate.IsZero() {
		return nil, shared.NewValidationError("recordDate", "cannot be empty")
	}

	return &ExpectedConsumptionRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HotelID:           hotelID,
		RecordDate:        truncateToDay(recordDate),
		Items:             make([]ExpectedConsumptionItem, 0),
		Provenance:        make([]ProvenanceEntry, 0),
	}, nil
}

// Contribution is one dish sale's computed addition to an item's expected
// quantity, already converted to base units.
type Contribution struct {
	ItemID           uuid.UUID
	ItemName         string
	BaseUnit         string
	DishName         string
	QuantitySold     decimal.Decimal
	PerUnitQuantity  decimal.Decimal
	PerUnitUnit      string
	ComputedQuantity decimal.Decimal
}

// Merge accumulates a contribution: existing item totals grow, new items
// append, and a provenance entry is always recorded. Existing totals are
// never overwritten.
func (r *ExpectedConsumptionRecord) Merge(c Contribution) error {
	if c.ItemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if c.ComputedQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("computedQuantity", "must be positive")
	}

	now := time.Now()
	found := false
	for idx := range r.Items {
		if r.Items[idx].ItemID == c.ItemID {
			r.Items[idx].ExpectedQuantity = r.Items[idx].ExpectedQuantity.Add(c.ComputedQuantity)
			r.Items[idx].UpdatedAt = now
			found = true
			break
		}
	}
	if !found {
		r.Items = append(r.Items, ExpectedConsumptionItem{
			ID:               uuid.New(),
			RecordID:         r.ID,
			ItemID:           c.ItemID,
			ItemName:         c.ItemName,
			ExpectedQuantity: c.ComputedQuantity,
			BaseUnit:         c.BaseUnit,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	r.Provenance = append(r.Provenance, ProvenanceEntry{
		ID:               uuid.New(),
		RecordID:         r.ID,
		ItemID:           c.ItemID,
		DishName:         c.DishName,
		QuantitySold:     c.QuantitySold,
		PerUnitQuantity:  c.PerUnitQuantity,
		PerUnitUnit:      c.PerUnitUnit,
		ComputedQuantity: c.ComputedQuantity,
		CreatedAt:        now,
	})

	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// ExpectedQuantityFor returns the accumulated expected quantity for an item
func (r *ExpectedConsumptionRecord) ExpectedQuantityFor(itemID uuid.UUID) decimal.Decimal {
	for _, item := range r.Items {
		if item.ItemID == itemID {
			return item.ExpectedQuantity
		}
	}
	return decimal.Zero
}
