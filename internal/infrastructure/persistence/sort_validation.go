package persistence

import (
	"fmt"
	"strings"
)

// toString renders a filter value for use in LIKE patterns
func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is invalid, empty, or not in
// the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ItemSortFields contains allowed sort fields for catalog items
var ItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"category":   true,
	"unit":       true,
}

// RecipeSortFields contains allowed sort fields for recipes
var RecipeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"dish_name":  true,
}

// HotelSortFields contains allowed sort fields for hotels
var HotelSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"location":   true,
	"status":     true,
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// StockBalanceSortFields contains allowed sort fields for stock balances
var StockBalanceSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"item_id":          true,
	"quantity_on_hand": true,
	"last_updated":     true,
}

// IssuanceRecordSortFields contains allowed sort fields for issuance records
var IssuanceRecordSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"issue_number": true,
	"hotel_id":     true,
	"origin":       true,
	"issued_at":    true,
}

// StockRequestSortFields contains allowed sort fields for stock requests
var StockRequestSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"kind":       true,
	"hotel_id":   true,
	"status":     true,
}

// ProcurementRequestSortFields contains allowed sort fields for procurement requests
var ProcurementRequestSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"request_number": true,
	"hotel_id":       true,
	"status":         true,
	"decided_at":     true,
}

// ProcurementOrderSortFields contains allowed sort fields for procurement orders
var ProcurementOrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"vendor_id":    true,
	"vendor_name":  true,
	"status":       true,
	"total_amount": true,
	"ordered_at":   true,
}

// ProcurementBillSortFields contains allowed sort fields for procurement bills
var ProcurementBillSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"bill_number":  true,
	"order_id":     true,
	"bill_date":    true,
	"uploaded_at":  true,
	"total_amount": true,
}

// ConsumptionRecordSortFields contains allowed sort fields for consumption records
var ConsumptionRecordSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"hotel_id":    true,
	"record_date": true,
}

// LeakageAlertSortFields contains allowed sort fields for leakage alerts
var LeakageAlertSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"hotel_id":        true,
	"item_id":         true,
	"period":          true,
	"start_date":      true,
	"severity":        true,
	"leakage_percent": true,
	"estimated_loss":  true,
	"status":          true,
}
