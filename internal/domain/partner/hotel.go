package partner

import (
	"strings"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
)

// HotelStatus represents the operating status of a hotel
type HotelStatus string

const (
	HotelStatusActive   HotelStatus = "active"
	HotelStatusInactive HotelStatus = "inactive"
)

// Hotel represents a hotel/restaurant property that stock is issued to.
// It is the aggregate root for hotel master data.
type Hotel struct {
	shared.BaseAggregateRoot
	Code     string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string      `gorm:"type:varchar(200);not null"`
	Location string      `gorm:"type:varchar(200)"`
	Status   HotelStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Hotel) TableName() string {
	return "hotels"
}

// NewHotel creates a new hotel
func NewHotel(code, name, location string) (*Hotel, error) {
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

	return &Hotel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Location:          strings.TrimSpace(location),
		Status:            HotelStatusActive,
	}, nil
}

// Deactivate marks the hotel inactive; issuance to inactive hotels is rejected
func (h *Hotel) Deactivate() {
	h.Status = HotelStatusInactive
	h.UpdatedAt = time.Now()
	h.IncrementVersion()
}

// IsActive returns true if the hotel is active
func (h *Hotel) IsActive() bool {
	return h.Status == HotelStatusActive
}
