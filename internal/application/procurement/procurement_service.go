package procurement

import (
	"context"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcurementService drives the request -> approval -> order -> bill
// pipeline. Stock is credited exactly once, at bill upload, never at
// request or approval time.
type ProcurementService struct {
	requestRepo    procurement.ProcurementRequestRepository
	orderRepo      procurement.ProcurementOrderRepository
	billRepo       procurement.ProcurementBillRepository
	itemRepo       catalog.ItemRepository
	vendorRepo     partner.VendorRepository
	hotelRepo      partner.HotelRepository
	receipts       ReceiptScope
	conversion     *service.UnitConversionService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(
	requestRepo procurement.ProcurementRequestRepository,
	orderRepo procurement.ProcurementOrderRepository,
	billRepo procurement.ProcurementBillRepository,
	itemRepo catalog.ItemRepository,
	vendorRepo partner.VendorRepository,
	hotelRepo partner.HotelRepository,
	receipts ReceiptScope,
	conversion *service.UnitConversionService,
	logger *zap.Logger,
) *ProcurementService {
	return &ProcurementService{
		requestRepo: requestRepo,
		orderRepo:   orderRepo,
		billRepo:    billRepo,
		itemRepo:    itemRepo,
		vendorRepo:  vendorRepo,
		hotelRepo:   hotelRepo,
		receipts:    receipts,
		conversion:  conversion,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProcurementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRequest raises a pending procurement request. Hotel managers may
// only raise requests for their own property; central-store requests
// (nil hotel) are reserved for store-side roles.
func (s *ProcurementService) CreateRequest(ctx context.Context, actor shared.Actor, payload CreateRequestPayload) (*RequestResponse, error) {
	if payload.HotelID == nil {
		if !actor.IsManagement() {
			return nil, shared.ErrForbidden
		}
	} else {
		if !actor.CanAccessHotel(*payload.HotelID) {
			return nil, shared.ErrForbidden
		}
		hotel, err := s.hotelRepo.FindByID(ctx, *payload.HotelID)
		if err != nil {
			return nil, err
		}
		if !hotel.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Hotel is inactive")
		}
	}

	itemsByID, err := s.loadItems(ctx, len(payload.Lines), func(i int) uuid.UUID { return payload.Lines[i].ItemID })
	if err != nil {
		return nil, err
	}

	request, err := procurement.NewProcurementRequest(payload.HotelID, actor.ID, payload.Remark)
	if err != nil {
		return nil, err
	}
	for _, line := range payload.Lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Item not found: "+line.ItemID.String())
		}
		if err := request.AddLine(line.ItemID, item.Name, line.Quantity, line.Unit, line.Remark); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	resp := ToRequestResponse(request)
	return &resp, nil
}

// ApproveRequest records the managing director's approval. Approval does
// not touch stock.
func (s *ProcurementService) ApproveRequest(ctx context.Context, actor shared.Actor, requestID uuid.UUID, payload DecideRequestPayload) (*RequestResponse, error) {
	return s.decideRequest(ctx, actor, requestID, func(r *procurement.ProcurementRequest) error {
		return r.Approve(actor.ID, payload.Note)
	})
}

// RejectRequest records the managing director's rejection
func (s *ProcurementService) RejectRequest(ctx context.Context, actor shared.Actor, requestID uuid.UUID, payload DecideRequestPayload) (*RequestResponse, error) {
	return s.decideRequest(ctx, actor, requestID, func(r *procurement.ProcurementRequest) error {
		return r.Reject(actor.ID, payload.Note)
	})
}

func (s *ProcurementService) decideRequest(ctx context.Context, actor shared.Actor, requestID uuid.UUID, decide func(*procurement.ProcurementRequest) error) (*RequestResponse, error) {
	if actor.Role != shared.RoleManagingDirector {
		return nil, shared.ErrForbidden
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	expectedVersion := request.Version
	if err := decide(request); err != nil {
		return nil, err
	}
	if err := s.requestRepo.SaveWithLock(ctx, request, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	resp := ToRequestResponse(request)
	return &resp, nil
}

// GetRequest returns one procurement request, hotel-scoped for hotel managers
func (s *ProcurementService) GetRequest(ctx context.Context, actor shared.Actor, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.HotelID != nil && !actor.CanAccessHotel(*request.HotelID) {
		return nil, shared.ErrForbidden
	}
	if request.HotelID == nil && !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}
	resp := ToRequestResponse(request)
	return &resp, nil
}

// ListRequests returns a paginated list. Hotel managers see only their own
// property's requests.
func (s *ProcurementService) ListRequests(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[RequestResponse], error) {
	var requests []procurement.ProcurementRequest
	var err error

	if actor.Role == shared.RoleHotelManager {
		if actor.HotelID == nil {
			return nil, shared.ErrForbidden
		}
		requests, err = s.requestRepo.FindByHotel(ctx, *actor.HotelID, filter)
	} else {
		requests, err = s.requestRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RequestResponse, 0, len(requests))
	for idx := range requests {
		items = append(items, ToRequestResponse(&requests[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// CreateOrder places an order with a vendor against an approved request.
// The negotiated per-line costs are remembered as the vendor's current
// prices for the ordered items.
func (s *ProcurementService) CreateOrder(ctx context.Context, actor shared.Actor, payload CreateOrderPayload) (*OrderResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	request, err := s.requestRepo.FindByID(ctx, payload.RequestID)
	if err != nil {
		return nil, err
	}
	if !request.IsApproved() {
		return nil, shared.NewDomainError("INVALID_STATE", "Orders can only be placed against approved requests")
	}

	vendor, err := s.vendorRepo.FindByID(ctx, payload.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Vendor is inactive")
	}

	itemsByID, err := s.loadItems(ctx, len(payload.Lines), func(i int) uuid.UUID { return payload.Lines[i].ItemID })
	if err != nil {
		return nil, err
	}

	order, err := procurement.NewProcurementOrder(request.ID, vendor.ID, vendor.Name, actor.ID)
	if err != nil {
		return nil, err
	}
	for _, line := range payload.Lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Item not found: "+line.ItemID.String())
		}
		cost := valueobject.NewMoneyINR(line.UnitCost)
		if err := order.AddLine(line.ItemID, item.Name, line.Quantity, line.Unit, cost); err != nil {
			return nil, err
		}
		if err := item.UpsertVendorPrice(vendor.ID, cost); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	for _, item := range itemsByID {
		if err := s.itemRepo.Save(ctx, item); err != nil {
			s.logger.Warn("failed to record vendor price",
				zap.String("item_id", item.ID.String()),
				zap.Error(err))
		}
	}

	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// CancelOrder cancels an order nothing has been received against
func (s *ProcurementService) CancelOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expectedVersion := order.Version
	if err := order.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetOrder returns one procurement order
func (s *ProcurementService) GetOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListOrders returns a paginated list of procurement orders
func (s *ProcurementService) ListOrders(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		items = append(items, ToOrderResponse(&orders[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UploadBill records an itemized vendor bill against an order. This is the
// receiving act: order lines accumulate the billed quantities and stock is
// credited once per line. Quantities billed in a different unit of the
// same family are converted to the order line's unit first. The order
// receipt, the bill and the credits run in one receipt scope; a failure
// on any line rolls back the whole upload.
func (s *ProcurementService) UploadBill(ctx context.Context, actor shared.Actor, payload UploadBillPayload) (*BillResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	var order *procurement.ProcurementOrder
	var bill *procurement.ProcurementBill
	var credited []*inventory.StockBalance
	err := s.receipts.Execute(ctx, func(repos ReceiptRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, payload.OrderID)
		if err != nil {
			return err
		}
		if !order.Status.CanReceive() {
			return shared.NewDomainError("INVALID_STATE", "Order is not accepting bills")
		}

		bill, err = procurement.NewProcurementBill(order.ID, actor.ID, payload.VendorBillNumber, payload.BillDate)
		if err != nil {
			return err
		}
		bill.Remark = payload.Remark
		if payload.GSTAmount != nil {
			if err := bill.SetGSTAmount(valueobject.NewMoneyINR(*payload.GSTAmount)); err != nil {
				return err
			}
		}

		for _, line := range payload.Lines {
			orderLine := findOrderLine(order, line.ItemID)
			if orderLine == nil {
				return shared.NewDomainError("NOT_FOUND", "Billed item is not part of this order")
			}
			quantity, err := s.conversion.Convert(line.Quantity, line.Unit, orderLine.Unit)
			if err != nil {
				return err
			}
			cost := valueobject.NewMoneyINR(line.UnitCost)
			if err := bill.AddLine(line.ItemID, orderLine.ItemName, quantity, orderLine.Unit, cost); err != nil {
				return err
			}
		}

		expectedVersion := order.Version
		if err := order.RecordReceipt(bill.ReceivedQuantities()); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, order, expectedVersion); err != nil {
			return err
		}
		if err := repos.BillRepo().Save(ctx, bill); err != nil {
			return err
		}

		for _, line := range bill.Lines {
			conv, err := s.conversion.ToBase(line.ReceivedQuantity, line.Unit)
			if err != nil {
				return err
			}
			balance, err := repos.BalanceRepo().CreditConditional(ctx, line.ItemID, conv.BaseQuantity)
			if err != nil {
				return err
			}
			balance.AddDomainEvent(inventory.NewStockCreditedEvent(balance, conv.BaseQuantity))
			credited = append(credited, balance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	for _, balance := range credited {
		s.publishEvents(ctx, balance)
	}
	s.publishBillRecorded(ctx, bill)

	resp := ToBillResponse(bill)
	return &resp, nil
}

// GetBill returns one recorded bill
func (s *ProcurementService) GetBill(ctx context.Context, actor shared.Actor, billID uuid.UUID) (*BillResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill)
	return &resp, nil
}

// ListBillsForOrder returns all bills recorded against an order
func (s *ProcurementService) ListBillsForOrder(ctx context.Context, actor shared.Actor, orderID uuid.UUID) ([]BillResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}
	bills, err := s.billRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result := make([]BillResponse, 0, len(bills))
	for idx := range bills {
		result = append(result, ToBillResponse(&bills[idx]))
	}
	return result, nil
}

func (s *ProcurementService) loadItems(ctx context.Context, count int, idAt func(int) uuid.UUID) (map[uuid.UUID]*catalog.Item, error) {
	itemIDs := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		itemIDs = append(itemIDs, idAt(i))
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*catalog.Item, len(items))
	for idx := range items {
		itemsByID[items[idx].ID] = &items[idx]
	}
	return itemsByID, nil
}

func (s *ProcurementService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}

func (s *ProcurementService) publishBillRecorded(ctx context.Context, bill *procurement.ProcurementBill) {
	if s.eventPublisher == nil {
		return
	}
	event := procurement.NewProcurementBillRecordedEvent(bill)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish bill event", zap.Error(err))
	}
}

func findOrderLine(order *procurement.ProcurementOrder, itemID uuid.UUID) *procurement.ProcurementOrderLine {
	for idx := range order.Lines {
		if order.Lines[idx].ItemID == itemID {
			return &order.Lines[idx]
		}
	}
	return nil
}
