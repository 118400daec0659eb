package partner

import (
	"time"

	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateHotelPayload registers a hotel property
type CreateHotelPayload struct {
	Code     string `json:"code" binding:"required,max=50"`
	Name     string `json:"name" binding:"required,max=200"`
	Location string `json:"location" binding:"omitempty,max=200"`
}

// HotelResponse represents a hotel in API responses
type HotelResponse struct {
	ID        uuid.UUID           `json:"id"`
	Code      string              `json:"code"`
	Name      string              `json:"name"`
	Location  string              `json:"location,omitempty"`
	Status    partner.HotelStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToHotelResponse converts a hotel to its response form
func ToHotelResponse(hotel *partner.Hotel) HotelResponse {
	return HotelResponse{
		ID:        hotel.ID,
		Code:      hotel.Code,
		Name:      hotel.Name,
		Location:  hotel.Location,
		Status:    hotel.Status,
		CreatedAt: hotel.CreatedAt,
		UpdatedAt: hotel.UpdatedAt,
	}
}

// CreateVendorPayload registers a supplier
type CreateVendorPayload struct {
	Code          string `json:"code" binding:"required,max=50"`
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         string `json:"phone" binding:"omitempty,max=30"`
	Email         string `json:"email" binding:"omitempty,email,max=100"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID            uuid.UUID            `json:"id"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	ContactPerson string               `json:"contact_person,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	Email         string               `json:"email,omitempty"`
	GSTNumber     string               `json:"gst_number,omitempty"`
	Status        partner.VendorStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ToVendorResponse converts a vendor to its response form
func ToVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:            vendor.ID,
		Code:          vendor.Code,
		Name:          vendor.Name,
		ContactPerson: vendor.ContactPerson,
		Phone:         vendor.Phone,
		Email:         vendor.Email,
		GSTNumber:     vendor.GSTNumber,
		Status:        vendor.Status,
		CreatedAt:     vendor.CreatedAt,
		UpdatedAt:     vendor.UpdatedAt,
	}
}
