package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
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

func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = m.events[:0]
}

// MockConsumptionRecordRepository is a mock for ConsumptionRecordRepository
type MockConsumptionRecordRepository struct {
	mock.Mock
}

func (m *MockConsumptionRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.ConsumptionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ConsumptionRecord), args.Error(1)
}

func (m *MockConsumptionRecordRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]reporting.ConsumptionRecord, error) {
	args := m.Called(ctx, hotelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.ConsumptionRecord), args.Error(1)
}

func (m *MockConsumptionRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reporting.ConsumptionRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.ConsumptionRecord), args.Error(1)
}

func (m *MockConsumptionRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConsumptionRecordRepository) Save(ctx context.Context, record *reporting.ConsumptionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConsumptionRecordRepository) SumConsumedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, hotelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

// MockExpectedConsumptionRepository is a mock for ExpectedConsumptionRepository
type MockExpectedConsumptionRepository struct {
	mock.Mock
}

func (m *MockExpectedConsumptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.ExpectedConsumptionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ExpectedConsumptionRecord), args.Error(1)
}

func (m *MockExpectedConsumptionRepository) FindByHotelAndDate(ctx context.Context, hotelID uuid.UUID, date time.Time) (*reporting.ExpectedConsumptionRecord, error) {
	args := m.Called(ctx, hotelID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ExpectedConsumptionRecord), args.Error(1)
}

func (m *MockExpectedConsumptionRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]reporting.ExpectedConsumptionRecord, error) {
	args := m.Called(ctx, hotelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.ExpectedConsumptionRecord), args.Error(1)
}

func (m *MockExpectedConsumptionRepository) MergeContribution(ctx context.Context, hotelID uuid.UUID, date time.Time, contribution reporting.Contribution) error {
	args := m.Called(ctx, hotelID, date, contribution)
	return args.Error(0)
}

// MockLeakageAlertRepository is a mock for LeakageAlertRepository
type MockLeakageAlertRepository struct {
	mock.Mock
}

func (m *MockLeakageAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.LeakageAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.LeakageAlert), args.Error(1)
}

func (m *MockLeakageAlertRepository) FindByStatus(ctx context.Context, status reporting.AlertStatus, filter shared.Filter) ([]reporting.LeakageAlert, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.LeakageAlert), args.Error(1)
}

func (m *MockLeakageAlertRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]reporting.LeakageAlert, error) {
	args := m.Called(ctx, hotelID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.LeakageAlert), args.Error(1)
}

func (m *MockLeakageAlertRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reporting.LeakageAlert, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.LeakageAlert), args.Error(1)
}

func (m *MockLeakageAlertRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeakageAlertRepository) ExistsOpen(ctx context.Context, hotelID, itemID uuid.UUID, period reporting.AlertPeriod, startDate, endDate time.Time) (bool, error) {
	args := m.Called(ctx, hotelID, itemID, period, startDate, endDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeakageAlertRepository) Save(ctx context.Context, alert *reporting.LeakageAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockLeakageAlertRepository) SaveWithLock(ctx context.Context, alert *reporting.LeakageAlert, expectedVersion int) error {
	args := m.Called(ctx, alert, expectedVersion)
	return args.Error(0)
}

// MockIssuanceSums is a mock for the issued-quantity aggregation
type MockIssuanceSums struct {
	mock.Mock
}

func (m *MockIssuanceSums) SumIssuedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, hotelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

// MockItemRepository is a mock for catalog.ItemRepository
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

// MockRecipeRepository is a mock for catalog.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByDishName(ctx context.Context, dishName string) (*catalog.Recipe, error) {
	args := m.Called(ctx, dishName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) Save(ctx context.Context, recipe *catalog.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) ExistsByDishName(ctx context.Context, dishName string) (bool, error) {
	args := m.Called(ctx, dishName)
	return args.Bool(0), args.Error(1)
}

// MockHotelRepository is a mock for partner.HotelRepository
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
