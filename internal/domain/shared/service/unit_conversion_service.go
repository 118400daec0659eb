package service

import (
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// UnitConversionResult represents the result of a unit conversion
type UnitConversionResult struct {
	// The quantity in the source unit (what was input)
	SourceQuantity decimal.Decimal
	// The unit code of the source unit
	SourceUnitCode string
	// Whether the source unit was recognized by the conversion table.
	// Unrecognized units pass the quantity through unchanged; callers
	// should log the miss.
	Recognized bool
	// The quantity in base units
	BaseQuantity decimal.Decimal
	// The base unit code of the source unit's family (empty when unrecognized)
	BaseUnitCode string
}

// UnitConversionService provides unit conversion operations over the static
// unit table. This is a domain service as it operates across multiple
// aggregates; it holds no state and is safe for concurrent use.
type UnitConversionService struct{}

// NewUnitConversionService creates a new unit conversion service
func NewUnitConversionService() *UnitConversionService {
	return &UnitConversionService{}
}

// ToBase converts a quantity from a given unit to its family base unit.
// An unrecognized unit code is treated as already-base (lenient fallback);
// the result's Recognized flag tells the caller to log a warning.
func (s *UnitConversionService) ToBase(quantity decimal.Decimal, unitCode string) (*UnitConversionResult, error) {
	if quantity.IsNegative() {
		return nil, shared.NewValidationError("quantity", "cannot be negative")
	}

	u, ok := valueobject.ResolveUnit(unitCode)
	return &UnitConversionResult{
		SourceQuantity: quantity,
		SourceUnitCode: u.Code(),
		Recognized:     ok,
		BaseQuantity:   u.ToBase(quantity),
		BaseUnitCode:   u.Family().BaseUnitCode(),
	}, nil
}

// FromBase converts a base-unit quantity into the target unit.
// An unrecognized unit code passes the quantity through unchanged.
func (s *UnitConversionService) FromBase(baseQuantity decimal.Decimal, targetUnitCode string) (*UnitConversionResult, error) {
	if baseQuantity.IsNegative() {
		return nil, shared.NewValidationError("quantity", "cannot be negative")
	}

	u, ok := valueobject.ResolveUnit(targetUnitCode)
	return &UnitConversionResult{
		SourceQuantity: u.FromBase(baseQuantity),
		SourceUnitCode: u.Code(),
		Recognized:     ok,
		BaseQuantity:   baseQuantity,
		BaseUnitCode:   u.Family().BaseUnitCode(),
	}, nil
}

// Convert converts a quantity between two units of the same family,
// going through the base unit as intermediary.
func (s *UnitConversionService) Convert(quantity decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, shared.NewValidationError("quantity", "cannot be negative")
	}
	return valueobject.ConvertUnits(quantity, fromCode, toCode)
}

// AreCompatible reports whether two unit codes belong to the same
// measurement family. Required before any cross-record addition or
// subtraction; unknown codes are leniently compatible.
func (s *UnitConversionService) AreCompatible(codeA, codeB string) bool {
	return valueobject.AreCompatible(codeA, codeB)
}

// PricePerUnit converts a price per base unit into a price per the given
// unit. For example at 0.05 INR per gram, a kilogram prices at 50 INR.
func (s *UnitConversionService) PricePerUnit(basePrice valueobject.Money, unitCode string) valueobject.Money {
	u, _ := valueobject.ResolveUnit(unitCode)
	return basePrice.Mul(u.BaseFactor())
}

// PricePerBaseUnit converts a price per unit into a price per base unit.
func (s *UnitConversionService) PricePerBaseUnit(unitPrice valueobject.Money, unitCode string) valueobject.Money {
	u, _ := valueobject.ResolveUnit(unitCode)
	if u.BaseFactor().IsZero() {
		return valueobject.ZeroMoney()
	}
	return unitPrice.Mul(decimal.NewFromInt(1).DivRound(u.BaseFactor(), 8))
}
