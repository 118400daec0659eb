package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormProcurementBillRepository implements ProcurementBillRepository using
// GORM. Bills are append-only once recorded.
type GormProcurementBillRepository struct {
	db *gorm.DB
}

// NewGormProcurementBillRepository creates a new GormProcurementBillRepository
func NewGormProcurementBillRepository(db *gorm.DB) *GormProcurementBillRepository {
	return &GormProcurementBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormProcurementBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementBill, error) {
	var bill procurement.ProcurementBill
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByOrderID finds bills recorded against an order
func (r *GormProcurementBillRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.ProcurementBill, error) {
	var bills []procurement.ProcurementBill
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_id = ?", orderID).
		Order("uploaded_at ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindAll finds all bills matching the filter
func (r *GormProcurementBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementBill, error) {
	var bills []procurement.ProcurementBill
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.ProcurementBill{}).Preload("Lines"), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProcurementBillSortFields, "uploaded_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Count counts bills matching the filter
func (r *GormProcurementBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.ProcurementBill{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends a bill with its lines
func (r *GormProcurementBillRepository) Save(ctx context.Context, bill *procurement.ProcurementBill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *GormProcurementBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "bill_from":
			query = query.Where("bill_date >= ?", value)
		case "bill_to":
			query = query.Where("bill_date < ?", value)
		}
	}
	return query
}

// Ensure GormProcurementBillRepository implements ProcurementBillRepository
var _ procurement.ProcurementBillRepository = (*GormProcurementBillRepository)(nil)
