package procurement

import (
	"time"

	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequestLine is one requested item line
type CreateRequestLine struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
	Remark   string          `json:"remark" binding:"omitempty,max=500"`
}

// CreateRequestPayload is the payload for raising a procurement request.
// HotelID is nil for central-store replenishment.
type CreateRequestPayload struct {
	HotelID *uuid.UUID          `json:"hotel_id"`
	Lines   []CreateRequestLine `json:"lines" binding:"required,min=1,dive"`
	Remark  string              `json:"remark" binding:"omitempty,max=500"`
}

// DecideRequestPayload carries the managing director's decision note
type DecideRequestPayload struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

// RequestLineResponse represents one requested line in API responses
type RequestLineResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Remark   string          `json:"remark,omitempty"`
}

// RequestResponse represents a procurement request in API responses
type RequestResponse struct {
	ID            uuid.UUID                            `json:"id"`
	RequestNumber string                               `json:"request_number"`
	HotelID       *uuid.UUID                           `json:"hotel_id,omitempty"`
	RequestedBy   uuid.UUID                            `json:"requested_by"`
	Status        procurement.ProcurementRequestStatus `json:"status"`
	Remark        string                               `json:"remark,omitempty"`
	DecidedBy     *uuid.UUID                           `json:"decided_by,omitempty"`
	DecidedAt     *time.Time                           `json:"decided_at,omitempty"`
	DecisionNote  string                               `json:"decision_note,omitempty"`
	CreatedAt     time.Time                            `json:"created_at"`
	Lines         []RequestLineResponse                `json:"lines"`
}

// ToRequestResponse converts a procurement request to its response form
func ToRequestResponse(request *procurement.ProcurementRequest) RequestResponse {
	lines := make([]RequestLineResponse, 0, len(request.Lines))
	for _, line := range request.Lines {
		lines = append(lines, RequestLineResponse{
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Remark:   line.Remark,
		})
	}
	return RequestResponse{
		ID:            request.ID,
		RequestNumber: request.RequestNumber,
		HotelID:       request.HotelID,
		RequestedBy:   request.RequestedBy,
		Status:        request.Status,
		Remark:        request.Remark,
		DecidedBy:     request.DecidedBy,
		DecidedAt:     request.DecidedAt,
		DecisionNote:  request.DecisionNote,
		CreatedAt:     request.CreatedAt,
		Lines:         lines,
	}
}

// CreateOrderLine is one ordered item line with its negotiated cost
type CreateOrderLine struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreateOrderPayload is the payload for placing an order against an
// approved request
type CreateOrderPayload struct {
	RequestID uuid.UUID         `json:"request_id" binding:"required"`
	VendorID  uuid.UUID         `json:"vendor_id" binding:"required"`
	Lines     []CreateOrderLine `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineResponse represents one ordered line in API responses
type OrderLineResponse struct {
	ItemID            uuid.UUID       `json:"item_id"`
	ItemName          string          `json:"item_name"`
	OrderedQuantity   decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Unit              string          `json:"unit"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Amount            decimal.Decimal `json:"amount"`
}

// OrderResponse represents a procurement order in API responses
type OrderResponse struct {
	ID           uuid.UUID                          `json:"id"`
	OrderNumber  string                             `json:"order_number"`
	RequestID    uuid.UUID                          `json:"request_id"`
	VendorID     uuid.UUID                          `json:"vendor_id"`
	VendorName   string                             `json:"vendor_name"`
	Status       procurement.ProcurementOrderStatus `json:"status"`
	TotalAmount  decimal.Decimal                    `json:"total_amount"`
	OrderedBy    uuid.UUID                          `json:"ordered_by"`
	OrderedAt    time.Time                          `json:"ordered_at"`
	CompletedAt  *time.Time                         `json:"completed_at,omitempty"`
	CancelledAt  *time.Time                         `json:"cancelled_at,omitempty"`
	CancelReason string                             `json:"cancel_reason,omitempty"`
	Lines        []OrderLineResponse                `json:"lines"`
}

// ToOrderResponse converts a procurement order to its response form
func ToOrderResponse(order *procurement.ProcurementOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for idx := range order.Lines {
		line := &order.Lines[idx]
		lines = append(lines, OrderLineResponse{
			ItemID:            line.ItemID,
			ItemName:          line.ItemName,
			OrderedQuantity:   line.OrderedQuantity,
			ReceivedQuantity:  line.ReceivedQuantity,
			RemainingQuantity: line.RemainingQuantity(),
			Unit:              line.Unit,
			UnitCost:          line.UnitCost,
			Amount:            line.Amount,
		})
	}
	return OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		RequestID:    order.RequestID,
		VendorID:     order.VendorID,
		VendorName:   order.VendorName,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		OrderedBy:    order.OrderedBy,
		OrderedAt:    order.OrderedAt,
		CompletedAt:  order.CompletedAt,
		CancelledAt:  order.CancelledAt,
		CancelReason: order.CancelReason,
		Lines:        lines,
	}
}

// UploadBillLine is one received item line on an uploaded bill
type UploadBillLine struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required"`
}

// UploadBillPayload is the payload for recording an itemized vendor bill.
// Uploading a bill is the receiving act: order lines accumulate the
// received quantities and the stock ledger is credited per line.
type UploadBillPayload struct {
	OrderID          uuid.UUID        `json:"order_id" binding:"required"`
	VendorBillNumber string           `json:"vendor_bill_number" binding:"omitempty,max=60"`
	BillDate         time.Time        `json:"bill_date" binding:"required"`
	GSTAmount        *decimal.Decimal `json:"gst_amount"`
	Lines            []UploadBillLine `json:"lines" binding:"required,min=1,dive"`
	Remark           string           `json:"remark" binding:"omitempty,max=500"`
}

// BillLineResponse represents one bill line in API responses
type BillLineResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Unit             string          `json:"unit"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Amount           decimal.Decimal `json:"amount"`
}

// BillResponse represents a procurement bill in API responses
type BillResponse struct {
	ID               uuid.UUID          `json:"id"`
	BillNumber       string             `json:"bill_number"`
	VendorBillNumber string             `json:"vendor_bill_number,omitempty"`
	OrderID          uuid.UUID          `json:"order_id"`
	UploadedBy       uuid.UUID          `json:"uploaded_by"`
	BillDate         time.Time          `json:"bill_date"`
	UploadedAt       time.Time          `json:"uploaded_at"`
	TotalAmount      decimal.Decimal    `json:"total_amount"`
	GSTAmount        decimal.Decimal    `json:"gst_amount"`
	Remark           string             `json:"remark,omitempty"`
	Lines            []BillLineResponse `json:"lines"`
}

// ToBillResponse converts a procurement bill to its response form
func ToBillResponse(bill *procurement.ProcurementBill) BillResponse {
	lines := make([]BillLineResponse, 0, len(bill.Lines))
	for _, line := range bill.Lines {
		lines = append(lines, BillLineResponse{
			ItemID:           line.ItemID,
			ItemName:         line.ItemName,
			ReceivedQuantity: line.ReceivedQuantity,
			Unit:             line.Unit,
			UnitCost:         line.UnitCost,
			Amount:           line.Amount,
		})
	}
	return BillResponse{
		ID:               bill.ID,
		BillNumber:       bill.BillNumber,
		VendorBillNumber: bill.VendorBillNumber,
		OrderID:          bill.OrderID,
		UploadedBy:       bill.UploadedBy,
		BillDate:         bill.BillDate,
		UploadedAt:       bill.UploadedAt,
		TotalAmount:      bill.TotalAmount,
		GSTAmount:        bill.GSTAmount,
		Remark:           bill.Remark,
		Lines:            lines,
	}
}
