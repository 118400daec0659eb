package shared

import "github.com/google/uuid"

// Role is the coarse access role carried by every authenticated actor
type Role string

const (
	RoleManagingDirector Role = "managing_director"
	RoleStoreManager     Role = "store_manager"
	RoleHotelManager     Role = "hotel_manager"
)

// IsValid checks if the role is recognized
func (r Role) IsValid() bool {
	switch r {
	case RoleManagingDirector, RoleStoreManager, RoleHotelManager:
		return true
	}
	return false
}

// Actor identifies who is performing an operation. The identity layer
// authenticates and supplies it; services only enforce scoping.
type Actor struct {
	ID   uuid.UUID
	Role Role
	// HotelID binds a hotel manager to their property; nil for roles with
	// global scope
	HotelID *uuid.UUID
}

// CanAccessHotel reports whether the actor may act on the given hotel.
// Hotel managers are confined to their own property; other roles are not
// hotel-scoped.
func (a Actor) CanAccessHotel(hotelID uuid.UUID) bool {
	if a.Role != RoleHotelManager {
		return true
	}
	return a.HotelID != nil && *a.HotelID == hotelID
}

// IsManagement reports whether the actor holds a centrally-scoped role
func (a Actor) IsManagement() bool {
	return a.Role == RoleManagingDirector || a.Role == RoleStoreManager
}
