package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormLeakageAlertRepository implements LeakageAlertRepository using GORM
type GormLeakageAlertRepository struct {
	db *gorm.DB
}

// NewGormLeakageAlertRepository creates a new GormLeakageAlertRepository
func NewGormLeakageAlertRepository(db *gorm.DB) *GormLeakageAlertRepository {
	return &GormLeakageAlertRepository{db: db}
}

// FindByID finds an alert by its ID
func (r *GormLeakageAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.LeakageAlert, error) {
	var alert reporting.LeakageAlert
	if err := r.db.WithContext(ctx).
		Preload("Notes").
		First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindByStatus finds alerts in a given status
func (r *GormLeakageAlertRepository) FindByStatus(ctx context.Context, status reporting.AlertStatus, filter shared.Filter) ([]reporting.LeakageAlert, error) {
	var alerts []reporting.LeakageAlert
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&reporting.LeakageAlert{}).Preload("Notes").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindByHotel finds alerts for a hotel
func (r *GormLeakageAlertRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]reporting.LeakageAlert, error) {
	var alerts []reporting.LeakageAlert
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&reporting.LeakageAlert{}).Preload("Notes").
			Where("hotel_id = ?", hotelID),
		filter,
	)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindAll finds all alerts matching the filter
func (r *GormLeakageAlertRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reporting.LeakageAlert, error) {
	var alerts []reporting.LeakageAlert
	query := r.applyFilter(r.db.WithContext(ctx).Model(&reporting.LeakageAlert{}).Preload("Notes"), filter)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Count counts alerts matching the filter
func (r *GormLeakageAlertRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&reporting.LeakageAlert{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsOpen reports whether an active or investigating alert exists for the
// exact (hotel, item, period, start, end) scope. A partial unique index on
// leakage_alerts backs the same rule at the database.
func (r *GormLeakageAlertRepository) ExistsOpen(ctx context.Context, hotelID, itemID uuid.UUID, period reporting.AlertPeriod, startDate, endDate time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&reporting.LeakageAlert{}).
		Where("hotel_id = ? AND item_id = ? AND period = ? AND start_date = ? AND end_date = ? AND status IN ?",
			hotelID, itemID, period, startDate, endDate,
			[]reporting.AlertStatus{reporting.AlertStatusActive, reporting.AlertStatusInvestigating}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an alert with its notes
func (r *GormLeakageAlertRepository) Save(ctx context.Context, alert *reporting.LeakageAlert) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Notes").Save(alert).Error; err != nil {
			return err
		}
		return saveAlertNotes(tx, alert)
	})
}

// SaveWithLock updates an alert with optimistic concurrency control
func (r *GormLeakageAlertRepository) SaveWithLock(ctx context.Context, alert *reporting.LeakageAlert, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&reporting.LeakageAlert{}).
			Where("id = ? AND version = ?", alert.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":      alert.Status,
				"resolved_by": alert.ResolvedBy,
				"resolved_at": alert.ResolvedAt,
				"version":     alert.Version,
				"updated_at":  alert.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveAlertNotes(tx, alert)
	})
}

func saveAlertNotes(tx *gorm.DB, alert *reporting.LeakageAlert) error {
	// Notes are append-only; Save covers both fresh and already-stored rows
	for i := range alert.Notes {
		alert.Notes[i].AlertID = alert.ID
		if err := tx.Save(&alert.Notes[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormLeakageAlertRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeakageAlertSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormLeakageAlertRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "hotel_id":
			query = query.Where("hotel_id = ?", value)
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "period":
			query = query.Where("period = ?", value)
		case "severity":
			query = query.Where("severity = ?", value)
		}
	}
	return query
}

// Ensure GormLeakageAlertRepository implements LeakageAlertRepository
var _ reporting.LeakageAlertRepository = (*GormLeakageAlertRepository)(nil)
