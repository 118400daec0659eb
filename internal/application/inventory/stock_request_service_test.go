package inventory

import (
	"context"
	"testing"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type requestFixture struct {
	service     *StockRequestService
	requestRepo *MockStockRequestRepository
	itemRepo    *MockItemRepository
	hotelRepo   *MockHotelRepository
	publisher   *MockEventPublisher
}

func newRequestFixture() *requestFixture {
	requestRepo := new(MockStockRequestRepository)
	itemRepo := new(MockItemRepository)
	hotelRepo := new(MockHotelRepository)
	publisher := NewMockEventPublisher()

	svc := NewStockRequestService(requestRepo, itemRepo, hotelRepo, zap.NewNop())
	svc.SetEventPublisher(publisher)

	return &requestFixture{
		service:     svc,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		hotelRepo:   hotelRepo,
		publisher:   publisher,
	}
}

func TestStockRequestService_CreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("hotel manager raises a restaurant request for their own property", func(t *testing.T) {
		f := newRequestFixture()
		hotel := testHotel(t)
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Item{*rice}, nil)
		f.requestRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockRequest")).Return(nil)

		resp, err := f.service.CreateRequest(ctx, hotelActor(hotel.ID), CreateStockRequestPayload{
			Kind:    inventory.StockRequestKindRestaurant,
			HotelID: hotel.ID,
			Lines: []CreateStockRequestLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(5), Unit: valueobject.UnitCodeKG},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, inventory.StockRequestStatusPending, resp.Status)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, "Basmati Rice", resp.Lines[0].ItemName)
		assert.True(t, resp.Lines[0].Outstanding.Equal(decimal.NewFromInt(5)))

		created := f.publisher.GetEventsByType(inventory.EventTypeStockRequestCreated)
		assert.Len(t, created, 1)
	})

	t.Run("hotel manager cannot raise requests for another property", func(t *testing.T) {
		f := newRequestFixture()
		hotelID := uuid.New()

		_, err := f.service.CreateRequest(ctx, hotelActor(uuid.New()), CreateStockRequestPayload{
			Kind:    inventory.StockRequestKindRestaurant,
			HotelID: hotelID,
			Lines: []CreateStockRequestLine{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Unit: valueobject.UnitCodeKG},
			},
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.hotelRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects requests against an inactive hotel", func(t *testing.T) {
		f := newRequestFixture()
		hotel := testHotel(t)
		hotel.Deactivate()

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)

		_, err := f.service.CreateRequest(ctx, managerActor(), CreateStockRequestPayload{
			Kind:    inventory.StockRequestKindOutward,
			HotelID: hotel.ID,
			Lines: []CreateStockRequestLine{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Unit: valueobject.UnitCodeKG},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("rejects unknown items", func(t *testing.T) {
		f := newRequestFixture()
		hotel := testHotel(t)

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Item{}, nil)

		_, err := f.service.CreateRequest(ctx, managerActor(), CreateStockRequestPayload{
			Kind:    inventory.StockRequestKindRestaurant,
			HotelID: hotel.ID,
			Lines: []CreateStockRequestLine{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Unit: valueobject.UnitCodeKG},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		f.requestRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStockRequestService_RejectRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("store manager rejects a pending request with optimistic lock", func(t *testing.T) {
		f := newRequestFixture()
		hotel := testHotel(t)
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request, err := inventory.NewStockRequest(inventory.StockRequestKindRestaurant, hotel.ID, uuid.New(), "")
		require.NoError(t, err)
		require.NoError(t, request.AddLine(rice.ID, rice.Name, decimal.NewFromInt(2), rice.Unit))
		expectedVersion := request.Version

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.requestRepo.On("SaveWithLock", ctx, request, expectedVersion).Return(nil)

		resp, err := f.service.RejectRequest(ctx, managerActor(), request.ID, "duplicate request")

		require.NoError(t, err)
		assert.Equal(t, inventory.StockRequestStatusRejected, resp.Status)
		f.requestRepo.AssertExpectations(t)
	})

	t.Run("hotel manager cannot reject requests", func(t *testing.T) {
		f := newRequestFixture()

		_, err := f.service.RejectRequest(ctx, hotelActor(uuid.New()), uuid.New(), "no")

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("concurrency conflict from the lock surfaces to the caller", func(t *testing.T) {
		f := newRequestFixture()
		hotel := testHotel(t)
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request, err := inventory.NewStockRequest(inventory.StockRequestKindRestaurant, hotel.ID, uuid.New(), "")
		require.NoError(t, err)
		require.NoError(t, request.AddLine(rice.ID, rice.Name, decimal.NewFromInt(2), rice.Unit))

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.requestRepo.On("SaveWithLock", ctx, request, mock.Anything).Return(shared.ErrConcurrencyConflict)

		_, err = f.service.RejectRequest(ctx, managerActor(), request.ID, "race")

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestStockRequestService_GetRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("hotel manager cannot read another property's request", func(t *testing.T) {
		f := newRequestFixture()
		hotel := testHotel(t)
		request, err := inventory.NewStockRequest(inventory.StockRequestKindRestaurant, hotel.ID, uuid.New(), "")
		require.NoError(t, err)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		_, err = f.service.GetRequest(ctx, hotelActor(uuid.New()), request.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestStockRequestService_ListRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("hotel manager lists via hotel-scoped lookup", func(t *testing.T) {
		f := newRequestFixture()
		hotelID := uuid.New()

		f.requestRepo.On("FindByHotel", ctx, hotelID, mock.Anything).Return([]inventory.StockRequest{}, nil)
		f.requestRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		result, err := f.service.ListRequests(ctx, hotelActor(hotelID), shared.DefaultFilter())

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		f.requestRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("store roles list everything", func(t *testing.T) {
		f := newRequestFixture()

		f.requestRepo.On("FindAll", ctx, mock.Anything).Return([]inventory.StockRequest{}, nil)
		f.requestRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		_, err := f.service.ListRequests(ctx, managerActor(), shared.DefaultFilter())

		require.NoError(t, err)
		f.requestRepo.AssertNotCalled(t, "FindByHotel", mock.Anything, mock.Anything, mock.Anything)
	})
}
