package procurement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type procurementFixture struct {
	service     *ProcurementService
	requestRepo *MockProcurementRequestRepository
	orderRepo   *MockProcurementOrderRepository
	billRepo    *MockProcurementBillRepository
	itemRepo    *MockItemRepository
	vendorRepo  *MockVendorRepository
	hotelRepo   *MockHotelRepository
	balanceRepo *MockStockBalanceRepository
	scope       *trackingReceiptScope
	publisher   *MockEventPublisher
}

// trackingReceiptScope records scope executions so tests can assert that
// the order receipt, the bill and the credits all share one scope, and
// that a failing callback surfaces its error to the caller.
type trackingReceiptScope struct {
	inner      *NoOpReceiptScope
	executions int
	lastErr    error
}

func (s *trackingReceiptScope) Execute(ctx context.Context, fn func(repos ReceiptRepositories) error) error {
	s.executions++
	s.lastErr = s.inner.Execute(ctx, fn)
	return s.lastErr
}

func newProcurementFixture() *procurementFixture {
	requestRepo := new(MockProcurementRequestRepository)
	orderRepo := new(MockProcurementOrderRepository)
	billRepo := new(MockProcurementBillRepository)
	itemRepo := new(MockItemRepository)
	vendorRepo := new(MockVendorRepository)
	hotelRepo := new(MockHotelRepository)
	balanceRepo := new(MockStockBalanceRepository)
	publisher := NewMockEventPublisher()

	scope := &trackingReceiptScope{inner: NewNoOpReceiptScope(orderRepo, billRepo, balanceRepo)}
	svc := NewProcurementService(requestRepo, orderRepo, billRepo, itemRepo, vendorRepo, hotelRepo,
		scope, service.NewUnitConversionService(), zap.NewNop())
	svc.SetEventPublisher(publisher)

	return &procurementFixture{
		service:     svc,
		requestRepo: requestRepo,
		orderRepo:   orderRepo,
		billRepo:    billRepo,
		itemRepo:    itemRepo,
		vendorRepo:  vendorRepo,
		hotelRepo:   hotelRepo,
		balanceRepo: balanceRepo,
		scope:       scope,
		publisher:   publisher,
	}
}

func directorActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: shared.RoleManagingDirector}
}

func storeActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: shared.RoleStoreManager}
}

func propertyActor(hotelID uuid.UUID) shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: shared.RoleHotelManager, HotelID: &hotelID}
}

func testItem(t *testing.T, name, unit string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("ITM-"+name, name, catalog.ItemCategoryFood, unit)
	require.NoError(t, err)
	return item
}

func testVendor(t *testing.T) *partner.Vendor {
	t.Helper()
	vendor, err := partner.NewVendor("VND-01", "Malabar Traders")
	require.NoError(t, err)
	return vendor
}

func approvedRequest(t *testing.T, item *catalog.Item) *procurement.ProcurementRequest {
	t.Helper()
	request, err := procurement.NewProcurementRequest(nil, uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, request.AddLine(item.ID, item.Name, decimal.NewFromInt(10), item.Unit, ""))
	require.NoError(t, request.Approve(uuid.New(), ""))
	request.ClearDomainEvents()
	return request
}

func orderedWith(t *testing.T, item *catalog.Item, quantity int64, unitCost float64) *procurement.ProcurementOrder {
	t.Helper()
	order, err := procurement.NewProcurementOrder(uuid.New(), uuid.New(), "Malabar Traders", uuid.New())
	require.NoError(t, err)
	require.NoError(t, order.AddLine(item.ID, item.Name, decimal.NewFromInt(quantity), item.Unit,
		valueobject.NewMoneyINRFromFloat(unitCost)))
	order.ClearDomainEvents()
	return order
}

func TestProcurementService_CreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("store manager raises a central-store request", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)

		f.itemRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Item{*rice}, nil)
		f.requestRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementRequest")).Return(nil)

		resp, err := f.service.CreateRequest(ctx, storeActor(), CreateRequestPayload{
			Lines: []CreateRequestLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(50), Unit: valueobject.UnitCodeKG},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, procurement.ProcurementRequestStatusPending, resp.Status)
		assert.Nil(t, resp.HotelID)
		assert.Contains(t, resp.RequestNumber, "PRQ-")

		created := f.publisher.GetEventsByType(procurement.EventTypeProcurementRequestCreated)
		assert.Len(t, created, 1)
	})

	t.Run("hotel manager cannot raise central-store requests", func(t *testing.T) {
		f := newProcurementFixture()

		_, err := f.service.CreateRequest(ctx, propertyActor(uuid.New()), CreateRequestPayload{
			Lines: []CreateRequestLine{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Unit: valueobject.UnitCodeKG},
			},
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("hotel manager raises a request for their own property", func(t *testing.T) {
		f := newProcurementFixture()
		hotel, err := partner.NewHotel("HTL-01", "Seaside Palace", "Kochi")
		require.NoError(t, err)
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)

		f.hotelRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
		f.itemRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Item{*rice}, nil)
		f.requestRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementRequest")).Return(nil)

		resp, err := f.service.CreateRequest(ctx, propertyActor(hotel.ID), CreateRequestPayload{
			HotelID: &hotel.ID,
			Lines: []CreateRequestLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(20), Unit: valueobject.UnitCodeKG},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, resp.HotelID)
		assert.Equal(t, hotel.ID, *resp.HotelID)
	})
}

func TestProcurementService_ApproveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("only the managing director decides", func(t *testing.T) {
		f := newProcurementFixture()

		_, err := f.service.ApproveRequest(ctx, storeActor(), uuid.New(), DecideRequestPayload{})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.requestRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("approval stamps the decision and does not touch stock", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request, err := procurement.NewProcurementRequest(nil, uuid.New(), "")
		require.NoError(t, err)
		require.NoError(t, request.AddLine(rice.ID, rice.Name, decimal.NewFromInt(10), rice.Unit, ""))
		request.ClearDomainEvents()
		expectedVersion := request.Version
		director := directorActor()

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.requestRepo.On("SaveWithLock", ctx, request, expectedVersion).Return(nil)

		resp, err := f.service.ApproveRequest(ctx, director, request.ID, DecideRequestPayload{Note: "seasonal stock-up"})

		require.NoError(t, err)
		assert.Equal(t, procurement.ProcurementRequestStatusApproved, resp.Status)
		require.NotNil(t, resp.DecidedBy)
		assert.Equal(t, director.ID, *resp.DecidedBy)
		assert.Equal(t, "seasonal stock-up", resp.DecisionNote)
		f.balanceRepo.AssertNotCalled(t, "CreditConditional", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("decided requests cannot be decided again", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request := approvedRequest(t, rice)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		_, err := f.service.RejectRequest(ctx, directorActor(), request.ID, DecideRequestPayload{})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestProcurementService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("places an order against an approved request and remembers vendor prices", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request := approvedRequest(t, rice)
		vendor := testVendor(t)

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		f.itemRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Item{*rice}, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementOrder")).Return(nil)
		f.itemRepo.On("Save", ctx, mock.MatchedBy(func(item *catalog.Item) bool {
			return item.ID == rice.ID && len(item.VendorPrices) == 1
		})).Return(nil)

		resp, err := f.service.CreateOrder(ctx, storeActor(), CreateOrderPayload{
			RequestID: request.ID,
			VendorID:  vendor.ID,
			Lines: []CreateOrderLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(10), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, procurement.ProcurementOrderStatusOrdered, resp.Status)
		assert.Equal(t, vendor.Name, resp.VendorName)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(800)))
		assert.Contains(t, resp.OrderNumber, "PO-")
		f.itemRepo.AssertExpectations(t)
	})

	t.Run("pending requests cannot be ordered against", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request, err := procurement.NewProcurementRequest(nil, uuid.New(), "")
		require.NoError(t, err)
		require.NoError(t, request.AddLine(rice.ID, rice.Name, decimal.NewFromInt(10), rice.Unit, ""))

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)

		_, err = f.service.CreateOrder(ctx, storeActor(), CreateOrderPayload{
			RequestID: request.ID,
			VendorID:  uuid.New(),
			Lines: []CreateOrderLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(10), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("inactive vendors are rejected", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		request := approvedRequest(t, rice)
		vendor := testVendor(t)
		vendor.Deactivate()

		f.requestRepo.On("FindByID", ctx, request.ID).Return(request, nil)
		f.vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)

		_, err := f.service.CreateOrder(ctx, storeActor(), CreateOrderPayload{
			RequestID: request.ID,
			VendorID:  vendor.ID,
			Lines: []CreateOrderLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(10), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestProcurementService_UploadBill(t *testing.T) {
	ctx := context.Background()

	t.Run("bill upload receives goods and credits stock once per line", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		order := orderedWith(t, rice, 10, 80)
		expectedVersion := order.Version

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order, expectedVersion).Return(nil)
		f.billRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementBill")).Return(nil)
		// 4 KG credited in grams, the base unit of the mass family
		f.balanceRepo.On("CreditConditional", ctx, rice.ID, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(decimal.NewFromInt(4000))
		})).Return(&inventory.StockBalance{ItemID: rice.ID, QuantityOnHand: decimal.NewFromInt(4000)}, nil)

		resp, err := f.service.UploadBill(ctx, storeActor(), UploadBillPayload{
			OrderID:  order.ID,
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(4), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.NoError(t, err)
		assert.Contains(t, resp.BillNumber, "BILL-")
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(320)))
		assert.Equal(t, procurement.ProcurementOrderStatusPartiallyReceived, order.Status)
		assert.True(t, order.Lines[0].ReceivedQuantity.Equal(decimal.NewFromInt(4)))
		f.balanceRepo.AssertNumberOfCalls(t, "CreditConditional", 1)
		assert.Equal(t, 1, f.scope.executions)

		recorded := f.publisher.GetEventsByType(procurement.EventTypeProcurementBillRecorded)
		assert.Len(t, recorded, 1)
	})

	t.Run("bill in a compatible unit converts to the order line unit", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		order := orderedWith(t, rice, 10, 80)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order, mock.Anything).Return(nil)
		f.billRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementBill")).Return(nil)
		f.balanceRepo.On("CreditConditional", ctx, rice.ID, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(decimal.NewFromInt(3000))
		})).Return(&inventory.StockBalance{ItemID: rice.ID}, nil)

		// 3000 g billed against a KG order line
		_, err := f.service.UploadBill(ctx, storeActor(), UploadBillPayload{
			OrderID:  order.ID,
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(3000), Unit: valueobject.UnitCodeG, UnitCost: decimal.NewFromFloat(0.08)},
			},
		})

		require.NoError(t, err)
		f.balanceRepo.AssertExpectations(t)
	})

	t.Run("completing the last line completes the order", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		order := orderedWith(t, rice, 10, 80)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order, mock.Anything).Return(nil)
		f.billRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementBill")).Return(nil)
		f.balanceRepo.On("CreditConditional", ctx, rice.ID, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(decimal.NewFromInt(10000))
		})).Return(&inventory.StockBalance{ItemID: rice.ID}, nil)

		_, err := f.service.UploadBill(ctx, storeActor(), UploadBillPayload{
			OrderID:  order.ID,
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(10), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, procurement.ProcurementOrderStatusCompleted, order.Status)

		completed := f.publisher.GetEventsByType(procurement.EventTypeProcurementOrderCompleted)
		assert.Len(t, completed, 1)
	})

	t.Run("over-receipt is rejected and nothing is credited", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		order := orderedWith(t, rice, 10, 80)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.UploadBill(ctx, storeActor(), UploadBillPayload{
			OrderID:  order.ID,
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(12), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
		f.balanceRepo.AssertNotCalled(t, "CreditConditional", mock.Anything, mock.Anything, mock.Anything)
		f.billRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a failed stock credit fails the whole upload", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		order := orderedWith(t, rice, 10, 80)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order, mock.Anything).Return(nil)
		f.billRepo.On("Save", ctx, mock.AnythingOfType("*procurement.ProcurementBill")).Return(nil)
		creditErr := errors.New("connection reset")
		f.balanceRepo.On("CreditConditional", ctx, rice.ID, mock.Anything).Return(nil, creditErr)

		_, err := f.service.UploadBill(ctx, storeActor(), UploadBillPayload{
			OrderID:  order.ID,
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(4), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.ErrorIs(t, err, creditErr)
		// the credit failure surfaces from inside the receipt scope, so a
		// transactional scope rolls back the order receipt and the bill
		assert.Equal(t, 1, f.scope.executions)
		assert.ErrorIs(t, f.scope.lastErr, creditErr)
		recorded := f.publisher.GetEventsByType(procurement.EventTypeProcurementBillRecorded)
		assert.Empty(t, recorded)
	})

	t.Run("cancelled orders do not accept bills", func(t *testing.T) {
		f := newProcurementFixture()
		rice := testItem(t, "Basmati Rice", valueobject.UnitCodeKG)
		order := orderedWith(t, rice, 10, 80)
		require.NoError(t, order.Cancel("vendor out of stock"))

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.UploadBill(ctx, storeActor(), UploadBillPayload{
			OrderID:  order.ID,
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: rice.ID, Quantity: decimal.NewFromInt(1), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(80)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("hotel managers cannot upload bills", func(t *testing.T) {
		f := newProcurementFixture()

		_, err := f.service.UploadBill(ctx, propertyActor(uuid.New()), UploadBillPayload{
			OrderID:  uuid.New(),
			BillDate: time.Now(),
			Lines: []UploadBillLine{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Unit: valueobject.UnitCodeKG, UnitCost: decimal.NewFromInt(1)},
			},
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
