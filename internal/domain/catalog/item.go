package catalog

import (
	"strings"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemCategory classifies items into procurement/consumption groups
type ItemCategory string

const (
	ItemCategoryFood      ItemCategory = "food"
	ItemCategoryBeverage  ItemCategory = "beverage"
	ItemCategoryBar       ItemCategory = "bar"
	ItemCategoryHousekeep ItemCategory = "housekeeping"
	ItemCategoryOther     ItemCategory = "other"
)

// IsValid checks if the category is a recognized ItemCategory
func (c ItemCategory) IsValid() bool {
	switch c {
	case ItemCategoryFood, ItemCategoryBeverage, ItemCategoryBar, ItemCategoryHousekeep, ItemCategoryOther:
		return true
	}
	return false
}

// Item represents an item in the central store catalog.
// It is the aggregate root for item master data.
type Item struct {
	shared.BaseAggregateRoot
	Code     string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string       `gorm:"type:varchar(200);not null;index"`
	Category ItemCategory `gorm:"type:varchar(30);not null;index"`
	// Unit is the canonical unit the item is stocked and issued in.
	// It must not change once stock balances or recipes reference the item.
	Unit string `gorm:"type:varchar(20);not null"`
	// BottleSizeML is the bottle volume in millilitres for bottle-based
	// bar items; nil for everything else. Used by the expected-consumption
	// projector when no recipe covers a sold dish.
	BottleSizeML  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	GSTApplicable bool             `gorm:"not null;default:false"`

	// Associations - loaded lazily
	VendorPrices []VendorPrice `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// VendorPrice is a per-vendor price entry for an item
type VendorPrice struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_price_item_vendor,priority:1"`
	VendorID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_price_item_vendor,priority:2"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"` // price per canonical unit
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VendorPrice) TableName() string {
	return "vendor_prices"
}

// NewItem creates a new catalog item
func NewItem(code, name string, category ItemCategory, unit string) (*Item, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewValidationError("code", "cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("code", "cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("category", "unrecognized item category")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewValidationError("unit", "cannot be empty")
	}

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Category:          category,
		Unit:              valueobject.NormalizeUnitCode(unit),
	}

	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// SetBottleSize marks the item as a bottle-based bar item with the given
// bottle volume in millilitres
func (i *Item) SetBottleSize(sizeML decimal.Decimal) error {
	if sizeML.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("bottleSizeML", "must be positive")
	}
	i.BottleSizeML = &sizeML
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsBottleItem returns true if the item is a bottle-based bar item
func (i *Item) IsBottleItem() bool {
	return i.BottleSizeML != nil && i.BottleSizeML.GreaterThan(decimal.Zero)
}

// Rename changes the display name. The code stays fixed.
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "cannot exceed 200 characters")
	}
	i.Name = name
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetGSTApplicable toggles GST applicability
func (i *Item) SetGSTApplicable(applicable bool) {
	i.GSTApplicable = applicable
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// ChangeUnit replaces the canonical unit. The caller must verify that no
// stock balance or recipe references the item; once referenced the unit is
// immutable and this returns INVALID_STATE.
func (i *Item) ChangeUnit(unit string, referenced bool) error {
	if strings.TrimSpace(unit) == "" {
		return shared.NewValidationError("unit", "cannot be empty")
	}
	if referenced {
		return shared.NewDomainError("INVALID_STATE", "Unit cannot change once stock or recipes reference this item")
	}
	i.Unit = valueobject.NormalizeUnitCode(unit)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// UpsertVendorPrice adds or updates the price entry for a vendor
func (i *Item) UpsertVendorPrice(vendorID uuid.UUID, unitPrice valueobject.Money) error {
	if vendorID == uuid.Nil {
		return shared.NewValidationError("vendorId", "cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("unitPrice", "cannot be negative")
	}

	now := time.Now()
	for idx := range i.VendorPrices {
		if i.VendorPrices[idx].VendorID == vendorID {
			i.VendorPrices[idx].UnitPrice = unitPrice.Amount()
			i.VendorPrices[idx].UpdatedAt = now
			i.UpdatedAt = now
			i.IncrementVersion()
			return nil
		}
	}

	i.VendorPrices = append(i.VendorPrices, VendorPrice{
		ID:        uuid.New(),
		ItemID:    i.ID,
		VendorID:  vendorID,
		UnitPrice: unitPrice.Amount(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// BestVendorPrice returns the lowest vendor price per canonical unit,
// or zero money when no vendor prices exist. Used for estimating the
// monetary loss behind a leakage alert.
func (i *Item) BestVendorPrice() valueobject.Money {
	best := decimal.Zero
	for _, vp := range i.VendorPrices {
		if best.IsZero() || vp.UnitPrice.LessThan(best) {
			best = vp.UnitPrice
		}
	}
	return valueobject.NewMoneyINR(best)
}

// PricePerBaseUnit returns the best vendor price expressed per base unit
// of the item's unit family (e.g. per gram when stocked in KG).
func (i *Item) PricePerBaseUnit() valueobject.Money {
	u, _ := valueobject.ResolveUnit(i.Unit)
	factor := u.BaseFactor()
	if factor.IsZero() {
		return valueobject.ZeroMoney()
	}
	return valueobject.NewMoneyINR(i.BestVendorPrice().Amount().DivRound(factor, 8))
}
