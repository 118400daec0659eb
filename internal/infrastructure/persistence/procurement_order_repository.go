package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormProcurementOrderRepository implements ProcurementOrderRepository using GORM
type GormProcurementOrderRepository struct {
	db *gorm.DB
}

// NewGormProcurementOrderRepository creates a new GormProcurementOrderRepository
func NewGormProcurementOrderRepository(db *gorm.DB) *GormProcurementOrderRepository {
	return &GormProcurementOrderRepository{db: db}
}

// FindByID finds a procurement order by its ID
func (r *GormProcurementOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementOrder, error) {
	var order procurement.ProcurementOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByRequestID finds orders placed against a request
func (r *GormProcurementOrderRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]procurement.ProcurementOrder, error) {
	var orders []procurement.ProcurementOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("request_id = ?", requestID).
		Order("ordered_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByVendor finds orders placed with a vendor
func (r *GormProcurementOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]procurement.ProcurementOrder, error) {
	var orders []procurement.ProcurementOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.ProcurementOrder{}).Preload("Lines").
			Where("vendor_id = ?", vendorID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindReceivable finds orders still accepting bills
func (r *GormProcurementOrderRepository) FindReceivable(ctx context.Context) ([]procurement.ProcurementOrder, error) {
	var orders []procurement.ProcurementOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status IN ?", []procurement.ProcurementOrderStatus{
			procurement.ProcurementOrderStatusOrdered,
			procurement.ProcurementOrderStatusPartiallyReceived,
		}).
		Order("ordered_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all orders matching the filter
func (r *GormProcurementOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementOrder, error) {
	var orders []procurement.ProcurementOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.ProcurementOrder{}).Preload("Lines"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormProcurementOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.ProcurementOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order with its lines
func (r *GormProcurementOrderRepository) Save(ctx context.Context, order *procurement.ProcurementOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(order).Error; err != nil {
			return err
		}
		return saveProcurementOrderLines(tx, order)
	})
}

// SaveWithLock updates an order with optimistic concurrency control
func (r *GormProcurementOrderRepository) SaveWithLock(ctx context.Context, order *procurement.ProcurementOrder, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&procurement.ProcurementOrder{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":        order.Status,
				"total_amount":  order.TotalAmount,
				"completed_at":  order.CompletedAt,
				"cancelled_at":  order.CancelledAt,
				"cancel_reason": order.CancelReason,
				"version":       order.Version,
				"updated_at":    order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveProcurementOrderLines(tx, order)
	})
}

func saveProcurementOrderLines(tx *gorm.DB, order *procurement.ProcurementOrder) error {
	currentLineIDs := make([]uuid.UUID, len(order.Lines))
	for i, line := range order.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentLineIDs).
			Delete(&procurement.ProcurementOrderLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&procurement.ProcurementOrderLine{}).Error; err != nil {
			return err
		}
	}

	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
		if err := tx.Save(&order.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormProcurementOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProcurementOrderSortFields, "ordered_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormProcurementOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "request_id":
			query = query.Where("request_id = ?", value)
		}
	}
	return query
}

// Ensure GormProcurementOrderRepository implements ProcurementOrderRepository
var _ procurement.ProcurementOrderRepository = (*GormProcurementOrderRepository)(nil)
