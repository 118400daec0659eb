package procurement

import (
	"context"
	"sync"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		events: make([]shared.DomainEvent, 0),
	}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockProcurementRequestRepository is a mock implementation of procurement.ProcurementRequestRepository
type MockProcurementRequestRepository struct {
	mock.Mock
}

func (m *MockProcurementRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.ProcurementRequest), args.Error(1)
}

func (m *MockProcurementRequestRepository) FindByStatus(ctx context.Context, status procurement.ProcurementRequestStatus, filter shared.Filter) ([]procurement.ProcurementRequest, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementRequest), args.Error(1)
}

func (m *MockProcurementRequestRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]procurement.ProcurementRequest, error) {
	args := m.Called(ctx, hotelID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementRequest), args.Error(1)
}

func (m *MockProcurementRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementRequest), args.Error(1)
}

func (m *MockProcurementRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcurementRequestRepository) Save(ctx context.Context, request *procurement.ProcurementRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockProcurementRequestRepository) SaveWithLock(ctx context.Context, request *procurement.ProcurementRequest, expectedVersion int) error {
	args := m.Called(ctx, request, expectedVersion)
	return args.Error(0)
}

// MockProcurementOrderRepository is a mock implementation of procurement.ProcurementOrderRepository
type MockProcurementOrderRepository struct {
	mock.Mock
}

func (m *MockProcurementOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.ProcurementOrder), args.Error(1)
}

func (m *MockProcurementOrderRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]procurement.ProcurementOrder, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementOrder), args.Error(1)
}

func (m *MockProcurementOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]procurement.ProcurementOrder, error) {
	args := m.Called(ctx, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementOrder), args.Error(1)
}

func (m *MockProcurementOrderRepository) FindReceivable(ctx context.Context) ([]procurement.ProcurementOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementOrder), args.Error(1)
}

func (m *MockProcurementOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementOrder), args.Error(1)
}

func (m *MockProcurementOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcurementOrderRepository) Save(ctx context.Context, order *procurement.ProcurementOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockProcurementOrderRepository) SaveWithLock(ctx context.Context, order *procurement.ProcurementOrder, expectedVersion int) error {
	args := m.Called(ctx, order, expectedVersion)
	return args.Error(0)
}

// MockProcurementBillRepository is a mock implementation of procurement.ProcurementBillRepository
type MockProcurementBillRepository struct {
	mock.Mock
}

func (m *MockProcurementBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.ProcurementBill), args.Error(1)
}

func (m *MockProcurementBillRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.ProcurementBill, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementBill), args.Error(1)
}

func (m *MockProcurementBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementBill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementBill), args.Error(1)
}

func (m *MockProcurementBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcurementBillRepository) Save(ctx context.Context, bill *procurement.ProcurementBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByNameAndCategory(ctx context.Context, name string, category catalog.ItemCategory) (*catalog.Item, error) {
	args := m.Called(ctx, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByCode(ctx context.Context, code string) (*partner.Vendor, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockHotelRepository is a mock implementation of partner.HotelRepository
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Hotel), args.Error(1)
}

func (m *MockHotelRepository) FindByCode(ctx context.Context, code string) (*partner.Hotel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Hotel), args.Error(1)
}

func (m *MockHotelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Hotel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHotelRepository) Save(ctx context.Context, hotel *partner.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockHotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHotelRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockStockBalanceRepository is a mock implementation of inventory.StockBalanceRepository
type MockStockBalanceRepository struct {
	mock.Mock
}

func (m *MockStockBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockBalance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockBalance), args.Error(1)
}

func (m *MockStockBalanceRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*inventory.StockBalance, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockBalance), args.Error(1)
}

func (m *MockStockBalanceRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]inventory.StockBalance, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockBalance), args.Error(1)
}

func (m *MockStockBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockBalance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockBalance), args.Error(1)
}

func (m *MockStockBalanceRepository) FindBelowMinimum(ctx context.Context) ([]inventory.StockBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockBalance), args.Error(1)
}

func (m *MockStockBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockBalanceRepository) Save(ctx context.Context, balance *inventory.StockBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockStockBalanceRepository) CreditConditional(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*inventory.StockBalance, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockBalance), args.Error(1)
}

func (m *MockStockBalanceRepository) DebitConditional(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*inventory.StockBalance, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockBalance), args.Error(1)
}
