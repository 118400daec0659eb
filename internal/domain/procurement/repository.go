package procurement

import (
	"context"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProcurementRequestRepository defines the interface for request persistence
type ProcurementRequestRepository interface {
	// FindByID finds a procurement request by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProcurementRequest, error)

	// FindByStatus finds requests in a given status
	FindByStatus(ctx context.Context, status ProcurementRequestStatus, filter shared.Filter) ([]ProcurementRequest, error)

	// FindByHotel finds requests raised for a hotel
	FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]ProcurementRequest, error)

	// FindAll finds all requests matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ProcurementRequest, error)

	// Count counts requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a request with its lines
	Save(ctx context.Context, request *ProcurementRequest) error

	// SaveWithLock updates a request with optimistic concurrency control
	SaveWithLock(ctx context.Context, request *ProcurementRequest, expectedVersion int) error
}

// ProcurementOrderRepository defines the interface for order persistence
type ProcurementOrderRepository interface {
	// FindByID finds a procurement order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProcurementOrder, error)

	// FindByRequestID finds orders placed against a request
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]ProcurementOrder, error)

	// FindByVendor finds orders placed with a vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ProcurementOrder, error)

	// FindReceivable finds orders still accepting bills
	FindReceivable(ctx context.Context) ([]ProcurementOrder, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ProcurementOrder, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an order with its lines
	Save(ctx context.Context, order *ProcurementOrder) error

	// SaveWithLock updates an order with optimistic concurrency control
	SaveWithLock(ctx context.Context, order *ProcurementOrder, expectedVersion int) error
}

// ProcurementBillRepository defines the interface for bill persistence.
// Bills are append-only once recorded.
type ProcurementBillRepository interface {
	// FindByID finds a bill by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProcurementBill, error)

	// FindByOrderID finds bills recorded against an order
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]ProcurementBill, error)

	// FindAll finds all bills matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ProcurementBill, error)

	// Count counts bills matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save appends a bill with its lines
	Save(ctx context.Context, bill *ProcurementBill) error
}
