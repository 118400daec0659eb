package partner

import (
	"context"

	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HotelService manages hotel master data. Only the managing director
// registers or deactivates properties.
type HotelService struct {
	hotelRepo partner.HotelRepository
	logger    *zap.Logger
}

// NewHotelService creates a new HotelService
func NewHotelService(hotelRepo partner.HotelRepository, logger *zap.Logger) *HotelService {
	return &HotelService{hotelRepo: hotelRepo, logger: logger}
}

// CreateHotel registers a hotel with a unique code
func (s *HotelService) CreateHotel(ctx context.Context, actor shared.Actor, payload CreateHotelPayload) (*HotelResponse, error) {
	if actor.Role != shared.RoleManagingDirector {
		return nil, shared.ErrForbidden
	}

	exists, err := s.hotelRepo.ExistsByCode(ctx, payload.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Hotel code already exists: "+payload.Code)
	}

	hotel, err := partner.NewHotel(payload.Code, payload.Name, payload.Location)
	if err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Save(ctx, hotel); err != nil {
		return nil, err
	}

	s.logger.Info("hotel registered",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("code", hotel.Code))

	resp := ToHotelResponse(hotel)
	return &resp, nil
}

// DeactivateHotel stops issuance and submissions for a property. Balances
// and history remain readable.
func (s *HotelService) DeactivateHotel(ctx context.Context, actor shared.Actor, hotelID uuid.UUID) (*HotelResponse, error) {
	if actor.Role != shared.RoleManagingDirector {
		return nil, shared.ErrForbidden
	}

	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	hotel.Deactivate()
	if err := s.hotelRepo.Save(ctx, hotel); err != nil {
		return nil, err
	}

	resp := ToHotelResponse(hotel)
	return &resp, nil
}

// GetHotel returns one hotel
func (s *HotelService) GetHotel(ctx context.Context, actor shared.Actor, hotelID uuid.UUID) (*HotelResponse, error) {
	if !actor.CanAccessHotel(hotelID) {
		return nil, shared.ErrForbidden
	}
	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	resp := ToHotelResponse(hotel)
	return &resp, nil
}

// ListHotels returns a paginated hotel listing
func (s *HotelService) ListHotels(ctx context.Context, filter shared.Filter) (*shared.Paginated[HotelResponse], error) {
	hotels, err := s.hotelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.hotelRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]HotelResponse, 0, len(hotels))
	for idx := range hotels {
		result = append(result, ToHotelResponse(&hotels[idx]))
	}
	paginated := shared.NewPaginated(result, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// VendorService manages supplier master data for the central store
type VendorService struct {
	vendorRepo partner.VendorRepository
	logger     *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{vendorRepo: vendorRepo, logger: logger}
}

// CreateVendor registers a vendor with a unique code
func (s *VendorService) CreateVendor(ctx context.Context, actor shared.Actor, payload CreateVendorPayload) (*VendorResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.vendorRepo.ExistsByCode(ctx, payload.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor code already exists: "+payload.Code)
	}

	vendor, err := partner.NewVendor(payload.Code, payload.Name)
	if err != nil {
		return nil, err
	}
	vendor.SetContact(payload.ContactPerson, payload.Phone, payload.Email)

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("vendor registered",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("code", vendor.Code))

	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// DeactivateVendor blocks new procurement orders against the vendor
func (s *VendorService) DeactivateVendor(ctx context.Context, actor shared.Actor, vendorID uuid.UUID) (*VendorResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	vendor.Deactivate()
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetVendor returns one vendor
func (s *VendorService) GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// ListVendors returns a paginated vendor listing
func (s *VendorService) ListVendors(ctx context.Context, filter shared.Filter) (*shared.Paginated[VendorResponse], error) {
	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.vendorRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]VendorResponse, 0, len(vendors))
	for idx := range vendors {
		result = append(result, ToVendorResponse(&vendors[idx]))
	}
	paginated := shared.NewPaginated(result, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
