package inventory

import (
	"time"

	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockBalanceResponse represents a stock balance in API responses
type StockBalanceResponse struct {
	ID                uuid.UUID       `json:"id"`
	ItemID            uuid.UUID       `json:"item_id"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	MinimumStockLevel decimal.Decimal `json:"minimum_stock_level"`
	PreviousMaxStock  decimal.Decimal `json:"previous_max_stock"`
	IsBelowMinimum    bool            `json:"is_below_minimum"`
	LastUpdated       time.Time       `json:"last_updated"`
	Version           int             `json:"version"`
}

// ToStockBalanceResponse converts a stock balance to its response form
func ToStockBalanceResponse(b *inventory.StockBalance) StockBalanceResponse {
	return StockBalanceResponse{
		ID:                b.ID,
		ItemID:            b.ItemID,
		QuantityOnHand:    b.QuantityOnHand,
		MinimumStockLevel: b.MinimumStockLevel,
		PreviousMaxStock:  b.PreviousMaxStock,
		IsBelowMinimum:    b.IsBelowMinimum(),
		LastUpdated:       b.LastUpdated,
		Version:           b.Version,
	}
}

// IssueLineRequest is one item line of an issuance request
type IssueLineRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
}

// IssueStockRequest is the payload for a direct manual issuance
type IssueStockRequest struct {
	HotelID uuid.UUID          `json:"hotel_id" binding:"required"`
	Lines   []IssueLineRequest `json:"lines" binding:"required,min=1,dive"`
	Remark  string             `json:"remark" binding:"omitempty,max=500"`
}

// FulfillRequestPayload is the payload for issuing against a stock request
type FulfillRequestPayload struct {
	RequestID uuid.UUID          `json:"request_id" binding:"required"`
	Lines     []IssueLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// IssuanceLineResponse represents one issued line in API responses
type IssuanceLineResponse struct {
	ItemID            uuid.UUID       `json:"item_id"`
	ItemName          string          `json:"item_name"`
	QuantityIssued    decimal.Decimal `json:"quantity_issued"`
	Unit              string          `json:"unit"`
	BalanceAfterIssue decimal.Decimal `json:"balance_after_issue"`
}

// IssuanceRecordResponse represents an issuance record in API responses
type IssuanceRecordResponse struct {
	ID              uuid.UUID                `json:"id"`
	IssueNumber     string                   `json:"issue_number"`
	HotelID         uuid.UUID                `json:"hotel_id"`
	IssuedBy        uuid.UUID                `json:"issued_by"`
	Origin          inventory.IssuanceOrigin `json:"origin"`
	SourceRequestID *uuid.UUID               `json:"source_request_id,omitempty"`
	IssuedAt        time.Time                `json:"issued_at"`
	Lines           []IssuanceLineResponse   `json:"lines"`
}

// ToIssuanceRecordResponse converts an issuance record to its response form
func ToIssuanceRecordResponse(record *inventory.IssuanceRecord) IssuanceRecordResponse {
	lines := make([]IssuanceLineResponse, 0, len(record.Lines))
	for _, line := range record.Lines {
		lines = append(lines, IssuanceLineResponse{
			ItemID:            line.ItemID,
			ItemName:          line.ItemName,
			QuantityIssued:    line.QuantityIssued,
			Unit:              line.Unit,
			BalanceAfterIssue: line.BalanceAfterIssue,
		})
	}
	return IssuanceRecordResponse{
		ID:              record.ID,
		IssueNumber:     record.IssueNumber,
		HotelID:         record.HotelID,
		IssuedBy:        record.IssuedBy,
		Origin:          record.Origin,
		SourceRequestID: record.SourceRequestID,
		IssuedAt:        record.IssuedAt,
		Lines:           lines,
	}
}

// CreateStockRequestLine is one requested line in a stock request payload
type CreateStockRequestLine struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
}

// CreateStockRequestPayload is the payload for raising a stock request
type CreateStockRequestPayload struct {
	Kind    inventory.StockRequestKind `json:"kind" binding:"required,oneof=restaurant outward"`
	HotelID uuid.UUID                  `json:"hotel_id" binding:"required"`
	Lines   []CreateStockRequestLine   `json:"lines" binding:"required,min=1,dive"`
	Remark  string                     `json:"remark" binding:"omitempty,max=500"`
}

// StockRequestLineResponse represents one request line in API responses
type StockRequestLineResponse struct {
	ItemID            uuid.UUID       `json:"item_id"`
	ItemName          string          `json:"item_name"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	Unit              string          `json:"unit"`
}

// StockRequestResponse represents a stock request in API responses
type StockRequestResponse struct {
	ID          uuid.UUID                    `json:"id"`
	Kind        inventory.StockRequestKind   `json:"kind"`
	HotelID     uuid.UUID                    `json:"hotel_id"`
	RequestedBy uuid.UUID                    `json:"requested_by"`
	Status      inventory.StockRequestStatus `json:"status"`
	Remark      string                       `json:"remark,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
	Lines       []StockRequestLineResponse   `json:"lines"`
}

// ToStockRequestResponse converts a stock request to its response form
func ToStockRequestResponse(request *inventory.StockRequest) StockRequestResponse {
	lines := make([]StockRequestLineResponse, 0, len(request.Lines))
	for _, line := range request.Lines {
		lines = append(lines, StockRequestLineResponse{
			ItemID:            line.ItemID,
			ItemName:          line.ItemName,
			RequestedQuantity: line.RequestedQuantity,
			IssuedQuantity:    line.IssuedQuantity,
			Outstanding:       line.Outstanding(),
			Unit:              line.Unit,
		})
	}
	return StockRequestResponse{
		ID:          request.ID,
		Kind:        request.Kind,
		HotelID:     request.HotelID,
		RequestedBy: request.RequestedBy,
		Status:      request.Status,
		Remark:      request.Remark,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
		Lines:       lines,
	}
}
