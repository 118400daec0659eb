package valueobject

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitFamily identifies the measurement family a unit belongs to.
// Arithmetic across records is only meaningful within one family.
type UnitFamily string

const (
	UnitFamilyMass    UnitFamily = "MASS"   // base unit: gram
	UnitFamilyVolume  UnitFamily = "VOLUME" // base unit: millilitre
	UnitFamilyCount   UnitFamily = "COUNT"  // base unit: piece
	UnitFamilyUnknown UnitFamily = "UNKNOWN"
)

// BaseUnitCode returns the canonical base unit code for the family.
func (f UnitFamily) BaseUnitCode() string {
	switch f {
	case UnitFamilyMass:
		return UnitCodeG
	case UnitFamilyVolume:
		return UnitCodeML
	case UnitFamilyCount:
		return UnitCodePiece
	}
	return ""
}

// Recognized unit codes
const (
	UnitCodeMG     = "MG"
	UnitCodeG      = "G"
	UnitCodeKG     = "KG"
	UnitCodeTON    = "TON"
	UnitCodeML     = "ML"
	UnitCodeL      = "L"
	UnitCodeKL     = "KL"
	UnitCodePiece  = "PIECE"
	UnitCodeDozen  = "DOZEN"
	UnitCodeBox    = "BOX"
	UnitCodePacket = "PACKET"
	UnitCodeBottle = "BOTTLE"
	UnitCodePlate  = "PLATE"
)

// Unit is an immutable value object representing a unit of measurement.
// It carries the measurement family and the multiplicative factor to the
// family's base unit (grams, millilitres, or pieces).
type Unit struct {
	code   string
	name   string
	family UnitFamily
	toBase decimal.Decimal
}

// unitTable is the static conversion table. One entry per recognized unit;
// factors express how many base units make up 1 of this unit.
var unitTable = map[string]Unit{
	UnitCodeMG:     {UnitCodeMG, "Milligram", UnitFamilyMass, decimal.NewFromFloat(0.001)},
	UnitCodeG:      {UnitCodeG, "Gram", UnitFamilyMass, decimal.NewFromInt(1)},
	UnitCodeKG:     {UnitCodeKG, "Kilogram", UnitFamilyMass, decimal.NewFromInt(1000)},
	UnitCodeTON:    {UnitCodeTON, "Metric Ton", UnitFamilyMass, decimal.NewFromInt(1000000)},
	UnitCodeML:     {UnitCodeML, "Millilitre", UnitFamilyVolume, decimal.NewFromInt(1)},
	UnitCodeL:      {UnitCodeL, "Litre", UnitFamilyVolume, decimal.NewFromInt(1000)},
	UnitCodeKL:     {UnitCodeKL, "Kilolitre", UnitFamilyVolume, decimal.NewFromInt(1000000)},
	UnitCodePiece:  {UnitCodePiece, "Piece", UnitFamilyCount, decimal.NewFromInt(1)},
	UnitCodeDozen:  {UnitCodeDozen, "Dozen", UnitFamilyCount, decimal.NewFromInt(12)},
	UnitCodeBox:    {UnitCodeBox, "Box", UnitFamilyCount, decimal.NewFromInt(1)},
	UnitCodePacket: {UnitCodePacket, "Packet", UnitFamilyCount, decimal.NewFromInt(1)},
	UnitCodeBottle: {UnitCodeBottle, "Bottle", UnitFamilyCount, decimal.NewFromInt(1)},
	UnitCodePlate:  {UnitCodePlate, "Plate", UnitFamilyCount, decimal.NewFromInt(1)},
}

// NormalizeUnitCode trims and uppercases a unit code.
func NormalizeUnitCode(code string) string {
	return strings.TrimSpace(strings.ToUpper(code))
}

// ResolveUnit looks up a unit code in the static table.
// An unrecognized code returns a pass-through unit (factor 1, family
// UNKNOWN) and false. Treating unknown units as already-base is a
// deliberate lenient fallback so a unit typo on one record does not abort
// a whole transaction; callers are expected to log the miss.
func ResolveUnit(code string) (Unit, bool) {
	normalized := NormalizeUnitCode(code)
	if u, ok := unitTable[normalized]; ok {
		return u, true
	}
	return Unit{
		code:   normalized,
		name:   normalized,
		family: UnitFamilyUnknown,
		toBase: decimal.NewFromInt(1),
	}, false
}

// MustResolveUnit resolves a unit code and panics on an unrecognized code.
// Use only for table-driven constants in tests and seeds.
func MustResolveUnit(code string) Unit {
	u, ok := ResolveUnit(code)
	if !ok {
		panic(fmt.Sprintf("unrecognized unit code %q", code))
	}
	return u
}

// Code returns the unit code (normalized to uppercase).
func (u Unit) Code() string {
	return u.code
}

// Name returns the unit name.
func (u Unit) Name() string {
	return u.name
}

// Family returns the measurement family.
func (u Unit) Family() UnitFamily {
	return u.family
}

// IsRecognized returns true if the unit came from the static table.
func (u Unit) IsRecognized() bool {
	return u.family != UnitFamilyUnknown
}

// BaseFactor returns how many base units make up 1 of this unit.
func (u Unit) BaseFactor() decimal.Decimal {
	return u.toBase
}

// IsBaseUnit returns true if this is the base unit of its family.
func (u Unit) IsBaseUnit() bool {
	return u.toBase.Equal(decimal.NewFromInt(1))
}

// ToBase converts a quantity in this unit to the family base unit.
func (u Unit) ToBase(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(u.toBase).Round(4)
}

// FromBase converts a quantity in the family base unit to this unit.
func (u Unit) FromBase(baseQuantity decimal.Decimal) decimal.Decimal {
	if u.toBase.IsZero() {
		return decimal.Zero
	}
	return baseQuantity.DivRound(u.toBase, 4)
}

// Equals returns true if both units have the same code.
func (u Unit) Equals(other Unit) bool {
	return u.code == other.code
}

// String returns a string representation of the Unit.
func (u Unit) String() string {
	return fmt.Sprintf("%s (%s)", u.code, u.name)
}

// Value implements driver.Valuer; only the code is stored.
func (u Unit) Value() (driver.Value, error) {
	return u.code, nil
}

// Scan implements sql.Scanner; re-resolves the stored code against the table.
func (u *Unit) Scan(value any) error {
	if value == nil {
		*u = Unit{}
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Unit", value)
	}

	resolved, _ := ResolveUnit(strVal)
	*u = resolved
	return nil
}

// ToBaseUnits converts a (quantity, unit code) pair to the unit's family
// base. The second return reports whether the code was recognized; an
// unrecognized code passes the quantity through unchanged.
func ToBaseUnits(quantity decimal.Decimal, unitCode string) (decimal.Decimal, bool) {
	u, ok := ResolveUnit(unitCode)
	return u.ToBase(quantity), ok
}

// FromBaseUnits converts a base-unit quantity into the target unit.
// An unrecognized code passes the quantity through unchanged.
func FromBaseUnits(baseQuantity decimal.Decimal, unitCode string) (decimal.Decimal, bool) {
	u, ok := ResolveUnit(unitCode)
	return u.FromBase(baseQuantity), ok
}

// ConvertUnits converts a quantity between two recognized units of the
// same family, going through the base unit as intermediary.
func ConvertUnits(quantity decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	from, fromOK := ResolveUnit(fromCode)
	to, toOK := ResolveUnit(toCode)
	if !fromOK {
		return decimal.Zero, fmt.Errorf("unrecognized source unit %q", fromCode)
	}
	if !toOK {
		return decimal.Zero, fmt.Errorf("unrecognized target unit %q", toCode)
	}
	if from.family != to.family {
		return decimal.Zero, fmt.Errorf("incompatible unit families: %s is %s, %s is %s", from.code, from.family, to.code, to.family)
	}
	return to.FromBase(from.ToBase(quantity)), nil
}

// AreCompatible reports whether two unit codes resolve to the same
// measurement family. An unrecognized code on either side is treated as
// compatible, matching the lenient pass-through behavior of ResolveUnit.
func AreCompatible(codeA, codeB string) bool {
	a, aOK := ResolveUnit(codeA)
	b, bOK := ResolveUnit(codeB)
	if !aOK || !bOK {
		return true
	}
	return a.family == b.family
}
