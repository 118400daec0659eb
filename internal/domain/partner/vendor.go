package partner

import (
	"strings"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor represents a supplier the central store procures from
type Vendor struct {
	shared.BaseAggregateRoot
	Code          string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string       `gorm:"type:varchar(200);not null"`
	ContactPerson string       `gorm:"type:varchar(100)"`
	Phone         string       `gorm:"type:varchar(30)"`
	Email         string       `gorm:"type:varchar(100)"`
	GSTNumber     string       `gorm:"type:varchar(30)"`
	Status        VendorStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor
func NewVendor(code, name string) (*Vendor, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewValidationError("code", "cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}

	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Status:            VendorStatusActive,
	}, nil
}

// SetContact updates contact details
func (v *Vendor) SetContact(person, phone, email string) {
	v.ContactPerson = strings.TrimSpace(person)
	v.Phone = strings.TrimSpace(phone)
	v.Email = strings.TrimSpace(email)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Deactivate marks the vendor inactive
func (v *Vendor) Deactivate() {
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}
