package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/partner"
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

func (m *MockEventPublisher) GetEvents() []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, len(m.events))
	copy(result, m.events)
	return result
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

// MockIssuanceRecordRepository is a mock implementation of inventory.IssuanceRecordRepository
type MockIssuanceRecordRepository struct {
	mock.Mock
}

func (m *MockIssuanceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.IssuanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.IssuanceRecord), args.Error(1)
}

func (m *MockIssuanceRecordRepository) FindByIssueNumber(ctx context.Context, issueNumber string) (*inventory.IssuanceRecord, error) {
	args := m.Called(ctx, issueNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.IssuanceRecord), args.Error(1)
}

func (m *MockIssuanceRecordRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]inventory.IssuanceRecord, error) {
	args := m.Called(ctx, hotelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.IssuanceRecord), args.Error(1)
}

func (m *MockIssuanceRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.IssuanceRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.IssuanceRecord), args.Error(1)
}

func (m *MockIssuanceRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIssuanceRecordRepository) Save(ctx context.Context, record *inventory.IssuanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIssuanceRecordRepository) SumIssuedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, hotelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

// MockStockRequestRepository is a mock implementation of inventory.StockRequestRepository
type MockStockRequestRepository struct {
	mock.Mock
}

func (m *MockStockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]inventory.StockRequest, error) {
	args := m.Called(ctx, hotelID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindPending(ctx context.Context, kind inventory.StockRequestKind) ([]inventory.StockRequest, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockRequest), args.Error(1)
}

func (m *MockStockRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRequestRepository) Save(ctx context.Context, request *inventory.StockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockStockRequestRepository) SaveWithLock(ctx context.Context, request *inventory.StockRequest, expectedVersion int) error {
	args := m.Called(ctx, request, expectedVersion)
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
