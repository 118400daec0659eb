package reporting

import (
	"time"

	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DishSalePayload is one sold dish line in a customer-orders submission
type DishSalePayload struct {
	DishName     string          `json:"dish_name" binding:"required,max=200"`
	QuantitySold decimal.Decimal `json:"quantity_sold" binding:"required"`
}

// RecordCustomerOrdersPayload reports a hotel's dish sales for one day.
// The expected-consumption projection updates asynchronously after the
// submission is accepted.
type RecordCustomerOrdersPayload struct {
	HotelID   uuid.UUID         `json:"hotel_id" binding:"required"`
	OrderDate time.Time         `json:"order_date" binding:"required"`
	Sales     []DishSalePayload `json:"sales" binding:"required,min=1,dive"`
}

// SubmitConsumptionLine is one consumed item line in a submission
type SubmitConsumptionLine struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
}

// SubmitConsumptionPayload reports a hotel's actual consumption for one day
type SubmitConsumptionPayload struct {
	HotelID    uuid.UUID               `json:"hotel_id" binding:"required"`
	RecordDate time.Time               `json:"record_date" binding:"required"`
	Lines      []SubmitConsumptionLine `json:"lines" binding:"required,min=1,dive"`
	Remark     string                  `json:"remark" binding:"omitempty,max=500"`
}

// ConsumptionLineResponse represents one consumed line in API responses
type ConsumptionLineResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	QuantityConsumed decimal.Decimal `json:"quantity_consumed"`
	Unit             string          `json:"unit"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
}

// ConsumptionRecordResponse represents a consumption submission in API responses
type ConsumptionRecordResponse struct {
	ID          uuid.UUID                 `json:"id"`
	HotelID     uuid.UUID                 `json:"hotel_id"`
	RecordDate  time.Time                 `json:"record_date"`
	SubmittedBy uuid.UUID                 `json:"submitted_by"`
	Remark      string                    `json:"remark,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	Lines       []ConsumptionLineResponse `json:"lines"`
}

// ToConsumptionRecordResponse converts a consumption record to its response form
func ToConsumptionRecordResponse(record *reporting.ConsumptionRecord) ConsumptionRecordResponse {
	lines := make([]ConsumptionLineResponse, 0, len(record.Lines))
	for _, line := range record.Lines {
		lines = append(lines, ConsumptionLineResponse{
			ItemID:           line.ItemID,
			ItemName:         line.ItemName,
			QuantityConsumed: line.QuantityConsumed,
			Unit:             line.Unit,
			OpeningBalance:   line.OpeningBalance,
			ClosingBalance:   line.ClosingBalance,
		})
	}
	return ConsumptionRecordResponse{
		ID:          record.ID,
		HotelID:     record.HotelID,
		RecordDate:  record.RecordDate,
		SubmittedBy: record.SubmittedBy,
		Remark:      record.Remark,
		CreatedAt:   record.CreatedAt,
		Lines:       lines,
	}
}

// ExpectedItemResponse is one item's accumulated expected quantity
type ExpectedItemResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	BaseUnit         string          `json:"base_unit"`
}

// ProvenanceResponse is one dish sale's contribution trail entry
type ProvenanceResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	DishName         string          `json:"dish_name"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	PerUnitQuantity  decimal.Decimal `json:"per_unit_quantity"`
	PerUnitUnit      string          `json:"per_unit_unit"`
	ComputedQuantity decimal.Decimal `json:"computed_quantity"`
}

// ExpectedConsumptionResponse represents the projection document for a
// hotel and day in API responses
type ExpectedConsumptionResponse struct {
	ID         uuid.UUID              `json:"id"`
	HotelID    uuid.UUID              `json:"hotel_id"`
	RecordDate time.Time              `json:"record_date"`
	Items      []ExpectedItemResponse `json:"items"`
	Provenance []ProvenanceResponse   `json:"provenance"`
}

// ToExpectedConsumptionResponse converts a projection record to its response form
func ToExpectedConsumptionResponse(record *reporting.ExpectedConsumptionRecord) ExpectedConsumptionResponse {
	items := make([]ExpectedItemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, ExpectedItemResponse{
			ItemID:           item.ItemID,
			ItemName:         item.ItemName,
			ExpectedQuantity: item.ExpectedQuantity,
			BaseUnit:         item.BaseUnit,
		})
	}
	provenance := make([]ProvenanceResponse, 0, len(record.Provenance))
	for _, entry := range record.Provenance {
		provenance = append(provenance, ProvenanceResponse{
			ItemID:           entry.ItemID,
			DishName:         entry.DishName,
			QuantitySold:     entry.QuantitySold,
			PerUnitQuantity:  entry.PerUnitQuantity,
			PerUnitUnit:      entry.PerUnitUnit,
			ComputedQuantity: entry.ComputedQuantity,
		})
	}
	return ExpectedConsumptionResponse{
		ID:         record.ID,
		HotelID:    record.HotelID,
		RecordDate: record.RecordDate,
		Items:      items,
		Provenance: provenance,
	}
}

// LeakageRow is one item's issued-versus-consumed reconciliation
type LeakageRow struct {
	ItemID   uuid.UUID               `json:"item_id"`
	ItemName string                  `json:"item_name"`
	Result   reporting.LeakageResult `json:"result"`
}

// LeakageReportResponse is the leakage reconciliation for a scope
type LeakageReportResponse struct {
	HotelID uuid.UUID    `json:"hotel_id"`
	From    time.Time    `json:"from"`
	To      time.Time    `json:"to"`
	Rows    []LeakageRow `json:"rows"`
}

// WastageRow is one item's expected-versus-actual reconciliation
type WastageRow struct {
	ItemID   uuid.UUID               `json:"item_id"`
	ItemName string                  `json:"item_name"`
	Result   reporting.WastageResult `json:"result"`
}

// WastageReportResponse is the wastage reconciliation for a scope. Only
// items consuming more than projected appear.
type WastageReportResponse struct {
	HotelID uuid.UUID    `json:"hotel_id"`
	From    time.Time    `json:"from"`
	To      time.Time    `json:"to"`
	Rows    []WastageRow `json:"rows"`
}

// UpdateAlertStatusPayload moves an alert through its status table
type UpdateAlertStatusPayload struct {
	Status reporting.AlertStatus `json:"status" binding:"required,oneof=active investigating resolved dismissed"`
	Note   string                `json:"note" binding:"omitempty,max=500"`
}

// AddAlertNotePayload appends an investigation note
type AddAlertNotePayload struct {
	Note string `json:"note" binding:"required,max=500"`
}

// AlertNoteResponse represents one investigation note
type AlertNoteResponse struct {
	AuthorID  uuid.UUID `json:"author_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertResponse represents a leakage alert in API responses
type AlertResponse struct {
	ID               uuid.UUID             `json:"id"`
	HotelID          uuid.UUID             `json:"hotel_id"`
	ItemID           uuid.UUID             `json:"item_id"`
	ItemName         string                `json:"item_name"`
	Period           reporting.AlertPeriod `json:"period"`
	StartDate        time.Time             `json:"start_date"`
	EndDate          time.Time             `json:"end_date"`
	IssuedQuantity   decimal.Decimal       `json:"issued_quantity"`
	ConsumedQuantity decimal.Decimal       `json:"consumed_quantity"`
	LeakageQuantity  decimal.Decimal       `json:"leakage_quantity"`
	LeakagePercent   decimal.Decimal       `json:"leakage_percent"`
	Severity         reporting.Severity    `json:"severity"`
	EstimatedLoss    decimal.Decimal       `json:"estimated_loss"`
	Status           reporting.AlertStatus `json:"status"`
	ResolvedBy       *uuid.UUID            `json:"resolved_by,omitempty"`
	ResolvedAt       *time.Time            `json:"resolved_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	Notes            []AlertNoteResponse   `json:"notes"`
}

// ToAlertResponse converts a leakage alert to its response form
func ToAlertResponse(alert *reporting.LeakageAlert) AlertResponse {
	notes := make([]AlertNoteResponse, 0, len(alert.Notes))
	for _, note := range alert.Notes {
		notes = append(notes, AlertNoteResponse{
			AuthorID:  note.AuthorID,
			Note:      note.Note,
			CreatedAt: note.CreatedAt,
		})
	}
	return AlertResponse{
		ID:               alert.ID,
		HotelID:          alert.HotelID,
		ItemID:           alert.ItemID,
		ItemName:         alert.ItemName,
		Period:           alert.Period,
		StartDate:        alert.StartDate,
		EndDate:          alert.EndDate,
		IssuedQuantity:   alert.IssuedQuantity,
		ConsumedQuantity: alert.ConsumedQuantity,
		LeakageQuantity:  alert.LeakageQuantity,
		LeakagePercent:   alert.LeakagePercent,
		Severity:         alert.Severity,
		EstimatedLoss:    alert.EstimatedLoss,
		Status:           alert.Status,
		ResolvedBy:       alert.ResolvedBy,
		ResolvedAt:       alert.ResolvedAt,
		CreatedAt:        alert.CreatedAt,
		Notes:            notes,
	}
}
