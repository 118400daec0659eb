package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type consumptionFixture struct {
	consumptionRepo *MockConsumptionRecordRepository
	expectedRepo    *MockExpectedConsumptionRepository
	issuanceRepo    *MockIssuanceSums
	itemRepo        *MockItemRepository
	hotelRepo       *MockHotelRepository
	publisher       *MockEventPublisher
	service         *ConsumptionService
}

func newConsumptionFixture() *consumptionFixture {
	f := &consumptionFixture{
		consumptionRepo: new(MockConsumptionRecordRepository),
		expectedRepo:    new(MockExpectedConsumptionRepository),
		issuanceRepo:    new(MockIssuanceSums),
		itemRepo:        new(MockItemRepository),
		hotelRepo:       new(MockHotelRepository),
		publisher:       NewMockEventPublisher(),
	}
	f.service = NewConsumptionService(
		f.consumptionRepo, f.expectedRepo, f.issuanceRepo,
		f.itemRepo, f.hotelRepo,
		service.NewUnitConversionService(), zap.NewNop(),
	)
	f.service.SetEventPublisher(f.publisher)
	return f
}

func activeHotel(t *testing.T) *partner.Hotel {
	t.Helper()
	hotel, err := partner.NewHotel("HTL-01", "Seaside Palace", "Kochi")
	require.NoError(t, err)
	return hotel
}

func foodItem(t *testing.T, name string, unit string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("ITM-"+name, name, catalog.ItemCategoryFood, unit)
	require.NoError(t, err)
	return item
}

func propertyActor(hotelID uuid.UUID) shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: shared.RoleHotelManager, HotelID: &hotelID}
}

func storeActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: shared.RoleStoreManager}
}

func TestConsumptionService_RecordCustomerOrders(t *testing.T) {
	ctx := context.Background()
	orderDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("publishes customer orders event", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)

		err := f.service.RecordCustomerOrders(ctx, propertyActor(hotel.ID), RecordCustomerOrdersPayload{
			HotelID:   hotel.ID,
			OrderDate: orderDate,
			Sales: []DishSalePayload{
				{DishName: "Chicken Biryani", QuantitySold: decimal.NewFromInt(12)},
				{DishName: "Masala Dosa", QuantitySold: decimal.NewFromInt(30)},
			},
		})
		require.NoError(t, err)

		events := f.publisher.GetEventsByType(reporting.EventTypeCustomerOrdersRecorded)
		require.Len(t, events, 1)
		recorded := events[0].(*reporting.CustomerOrdersRecordedEvent)
		assert.Equal(t, hotel.ID, recorded.HotelID)
		assert.Len(t, recorded.Sales, 2)
		assert.Equal(t, "Chicken Biryani", recorded.Sales[0].DishName)
	})

	t.Run("hotel manager cannot report for another property", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)

		err := f.service.RecordCustomerOrders(ctx, propertyActor(uuid.New()), RecordCustomerOrdersPayload{
			HotelID:   hotel.ID,
			OrderDate: orderDate,
			Sales:     []DishSalePayload{{DishName: "Chicken Biryani", QuantitySold: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Empty(t, f.publisher.GetEvents())
	})

	t.Run("inactive hotel is rejected", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		hotel.Deactivate()
		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)

		err := f.service.RecordCustomerOrders(ctx, storeActor(), RecordCustomerOrdersPayload{
			HotelID:   hotel.ID,
			OrderDate: orderDate,
			Sales:     []DishSalePayload{{DishName: "Chicken Biryani", QuantitySold: decimal.NewFromInt(1)}},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("non positive quantity is rejected", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)

		err := f.service.RecordCustomerOrders(ctx, storeActor(), RecordCustomerOrdersPayload{
			HotelID:   hotel.ID,
			OrderDate: orderDate,
			Sales:     []DishSalePayload{{DishName: "Chicken Biryani", QuantitySold: decimal.Zero}},
		})
		require.Error(t, err)
		assert.Empty(t, f.publisher.GetEvents())
	})
}

func TestConsumptionService_SubmitConsumption(t *testing.T) {
	ctx := context.Background()
	recordDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("computes running balances in base units", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		rice := foodItem(t, "Rice", "KG")

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, []uuid.UUID{rice.ID}).Return([]catalog.Item{*rice}, nil)
		// 10 KG issued and 2 KG consumed strictly before the record day,
		// both sums cut at the same instant
		f.issuanceRepo.On("SumIssuedByItem", ctx, hotel.ID, time.Time{}, recordDate).
			Return(map[uuid.UUID]decimal.Decimal{rice.ID: decimal.NewFromInt(10000)}, nil)
		f.consumptionRepo.On("SumConsumedByItem", ctx, hotel.ID, time.Time{}, recordDate).
			Return(map[uuid.UUID]decimal.Decimal{rice.ID: decimal.NewFromInt(2000)}, nil)
		f.consumptionRepo.On("Save", ctx, mock.AnythingOfType("*reporting.ConsumptionRecord")).Return(nil)

		actor := propertyActor(hotel.ID)
		resp, err := f.service.SubmitConsumption(ctx, actor, SubmitConsumptionPayload{
			HotelID:    hotel.ID,
			RecordDate: recordDate,
			Lines: []SubmitConsumptionLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(3), Unit: "KG"},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)

		line := resp.Lines[0]
		assert.Equal(t, "Rice", line.ItemName)
		assert.True(t, line.OpeningBalance.Equal(decimal.NewFromInt(8000)), "10000 issued minus 2000 consumed")
		assert.True(t, line.ClosingBalance.Equal(decimal.NewFromInt(5000)), "opening minus 3 KG")
		assert.Equal(t, actor.ID, resp.SubmittedBy)
	})

	t.Run("a zoned record date cuts the opening balance at UTC midnight", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		rice := foodItem(t, "Rice", "KG")
		ist := time.FixedZone("IST", 5*3600+1800)
		zonedDate := time.Date(2025, 3, 10, 9, 0, 0, 0, ist)
		utcMidnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, []uuid.UUID{rice.ID}).Return([]catalog.Item{*rice}, nil)
		f.issuanceRepo.On("SumIssuedByItem", ctx, hotel.ID, time.Time{}, utcMidnight).
			Return(map[uuid.UUID]decimal.Decimal{rice.ID: decimal.NewFromInt(5000)}, nil)
		f.consumptionRepo.On("SumConsumedByItem", ctx, hotel.ID, time.Time{}, utcMidnight).
			Return(map[uuid.UUID]decimal.Decimal{}, nil)
		f.consumptionRepo.On("Save", ctx, mock.AnythingOfType("*reporting.ConsumptionRecord")).Return(nil)

		_, err := f.service.SubmitConsumption(ctx, propertyActor(hotel.ID), SubmitConsumptionPayload{
			HotelID:    hotel.ID,
			RecordDate: zonedDate,
			Lines: []SubmitConsumptionLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(1), Unit: "KG"},
			},
		})
		require.NoError(t, err)
		f.issuanceRepo.AssertExpectations(t)
		f.consumptionRepo.AssertExpectations(t)
	})

	t.Run("unknown item fails the submission", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		unknownID := uuid.New()

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, []uuid.UUID{unknownID}).Return([]catalog.Item{}, nil)
		f.issuanceRepo.On("SumIssuedByItem", ctx, hotel.ID, mock.Anything, mock.Anything).
			Return(map[uuid.UUID]decimal.Decimal{}, nil)
		f.consumptionRepo.On("SumConsumedByItem", ctx, hotel.ID, mock.Anything, mock.Anything).
			Return(map[uuid.UUID]decimal.Decimal{}, nil)

		_, err := f.service.SubmitConsumption(ctx, storeActor(), SubmitConsumptionPayload{
			HotelID:    hotel.ID,
			RecordDate: recordDate,
			Lines:      []SubmitConsumptionLine{{ItemID: unknownID, Quantity: decimal.NewFromInt(1), Unit: "KG"}},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		f.consumptionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cross property submission is forbidden", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)

		_, err := f.service.SubmitConsumption(ctx, propertyActor(uuid.New()), SubmitConsumptionPayload{
			HotelID:    hotel.ID,
			RecordDate: recordDate,
			Lines:      []SubmitConsumptionLine{{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Unit: "KG"}},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unrecognized unit passes through as base", func(t *testing.T) {
		f := newConsumptionFixture()
		hotel := activeHotel(t)
		charcoal := foodItem(t, "Charcoal", "KG")

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, []uuid.UUID{charcoal.ID}).Return([]catalog.Item{*charcoal}, nil)
		f.issuanceRepo.On("SumIssuedByItem", ctx, hotel.ID, mock.Anything, mock.Anything).
			Return(map[uuid.UUID]decimal.Decimal{charcoal.ID: decimal.NewFromInt(500)}, nil)
		f.consumptionRepo.On("SumConsumedByItem", ctx, hotel.ID, mock.Anything, mock.Anything).
			Return(map[uuid.UUID]decimal.Decimal{}, nil)
		f.consumptionRepo.On("Save", ctx, mock.AnythingOfType("*reporting.ConsumptionRecord")).Return(nil)

		resp, err := f.service.SubmitConsumption(ctx, storeActor(), SubmitConsumptionPayload{
			HotelID:    hotel.ID,
			RecordDate: recordDate,
			Lines:      []SubmitConsumptionLine{{ItemID: charcoal.ID, Quantity: decimal.NewFromInt(40), Unit: "SACK"}},
		})
		require.NoError(t, err)
		assert.True(t, resp.Lines[0].ClosingBalance.Equal(decimal.NewFromInt(460)))
	})
}

func TestConsumptionService_GetExpectedConsumption(t *testing.T) {
	ctx := context.Background()
	recordDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("returns the projection document", func(t *testing.T) {
		f := newConsumptionFixture()
		hotelID := uuid.New()

		record, err := reporting.NewExpectedConsumptionRecord(hotelID, recordDate)
		require.NoError(t, err)
		require.NoError(t, record.Merge(reporting.Contribution{
			ItemID:           uuid.New(),
			ItemName:         "Rice",
			BaseUnit:         "G",
			DishName:         "Chicken Biryani",
			QuantitySold:     decimal.NewFromInt(4),
			PerUnitQuantity:  decimal.NewFromInt(200),
			PerUnitUnit:      "G",
			ComputedQuantity: decimal.NewFromInt(800),
		}))
		f.expectedRepo.On("FindByHotelAndDate", ctx, hotelID, recordDate).Return(record, nil)

		resp, err := f.service.GetExpectedConsumption(ctx, propertyActor(hotelID), hotelID, recordDate)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].ExpectedQuantity.Equal(decimal.NewFromInt(800)))
		require.Len(t, resp.Provenance, 1)
		assert.Equal(t, "Chicken Biryani", resp.Provenance[0].DishName)
	})

	t.Run("cross property read is forbidden", func(t *testing.T) {
		f := newConsumptionFixture()
		_, err := f.service.GetExpectedConsumption(ctx, propertyActor(uuid.New()), uuid.New(), recordDate)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
