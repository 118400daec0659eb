package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is a value object pairing an amount with a unit code.
// It is immutable - all operations return new Quantity instances.
type Quantity struct {
	value decimal.Decimal
	unit  string
}

// NewQuantity creates a new Quantity with the specified value and unit code.
func NewQuantity(value decimal.Decimal, unitCode string) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{
		value: value,
		unit:  NormalizeUnitCode(unitCode),
	}, nil
}

// NewQuantityFromFloat creates a Quantity from a float64 value.
func NewQuantityFromFloat(value float64, unitCode string) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(value), unitCode)
}

// MustNewQuantity creates a Quantity and panics on error.
func MustNewQuantity(value decimal.Decimal, unitCode string) Quantity {
	q, err := NewQuantity(value, unitCode)
	if err != nil {
		panic(err)
	}
	return q
}

// ZeroQuantity returns a zero quantity with the specified unit code.
func ZeroQuantity(unitCode string) Quantity {
	return Quantity{value: decimal.Zero, unit: NormalizeUnitCode(unitCode)}
}

// Value returns the numeric amount.
func (q Quantity) Value() decimal.Decimal {
	return q.value
}

// Unit returns the unit code.
func (q Quantity) Unit() string {
	return q.unit
}

// IsZero returns true if the amount is zero.
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// ToBase converts the amount to the unit family's base unit.
// Unrecognized units pass through unchanged (see ResolveUnit).
func (q Quantity) ToBase() decimal.Decimal {
	base, _ := ToBaseUnits(q.value, q.unit)
	return base
}

// InBase returns an equivalent Quantity expressed in the family base unit.
func (q Quantity) InBase() Quantity {
	u, ok := ResolveUnit(q.unit)
	if !ok {
		return q
	}
	return Quantity{value: u.ToBase(q.value), unit: u.Family().BaseUnitCode()}
}

// Add returns the sum of two quantities in base units.
// Fails if the unit families are incompatible.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if !AreCompatible(q.unit, other.unit) {
		return Quantity{}, fmt.Errorf("cannot add %s to %s: incompatible unit families", other.unit, q.unit)
	}
	base := q.InBase()
	return Quantity{value: base.value.Add(other.ToBase()), unit: base.unit}, nil
}

// Sub returns the difference of two quantities in base units.
// The result may not be negative.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if !AreCompatible(q.unit, other.unit) {
		return Quantity{}, fmt.Errorf("cannot subtract %s from %s: incompatible unit families", other.unit, q.unit)
	}
	base := q.InBase()
	result := base.value.Sub(other.ToBase())
	if result.IsNegative() {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: result, unit: base.unit}, nil
}

// Mul returns the quantity scaled by a factor.
func (q Quantity) Mul(factor decimal.Decimal) Quantity {
	return Quantity{value: q.value.Mul(factor).Round(4), unit: q.unit}
}

// Equals returns true if both quantities are equal when expressed in base units.
func (q Quantity) Equals(other Quantity) bool {
	return AreCompatible(q.unit, other.unit) && q.ToBase().Equal(other.ToBase())
}

// String returns a string representation like "2.5 KG".
func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.value.String(), q.unit)
}

// MarshalJSON implements json.Marshaler.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value string `json:"value"`
		Unit  string `json:"unit"`
	}{
		Value: q.value.String(),
		Unit:  q.unit,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v struct {
		Value string `json:"value"`
		Unit  string `json:"unit"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	value, err := decimal.NewFromString(v.Value)
	if err != nil {
		return fmt.Errorf("invalid quantity value: %w", err)
	}

	parsed, err := NewQuantity(value, v.Unit)
	if err != nil {
		return err
	}

	*q = parsed
	return nil
}
