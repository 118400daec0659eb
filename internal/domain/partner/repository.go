package partner

import (
	"context"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// HotelRepository defines the interface for hotel persistence
type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
	FindByCode(ctx context.Context, code string) (*Hotel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Hotel, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, hotel *Hotel) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByCode(ctx context.Context, code string) (*Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, vendor *Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
