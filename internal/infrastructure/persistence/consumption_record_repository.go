package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormConsumptionRecordRepository implements ConsumptionRecordRepository
// using GORM. Submissions are append-only.
type GormConsumptionRecordRepository struct {
	db *gorm.DB
}

// NewGormConsumptionRecordRepository creates a new GormConsumptionRecordRepository
func NewGormConsumptionRecordRepository(db *gorm.DB) *GormConsumptionRecordRepository {
	return &GormConsumptionRecordRepository{db: db}
}

// FindByID finds a consumption record by its ID
func (r *GormConsumptionRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.ConsumptionRecord, error) {
	var record reporting.ConsumptionRecord
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByHotelAndDateRange finds submissions for a hotel within [from, to)
func (r *GormConsumptionRecordRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]reporting.ConsumptionRecord, error) {
	var records []reporting.ConsumptionRecord
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("hotel_id = ? AND record_date >= ? AND record_date < ?", hotelID, from, to).
		Order("record_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds all consumption records matching the filter
func (r *GormConsumptionRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reporting.ConsumptionRecord, error) {
	var records []reporting.ConsumptionRecord
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&reporting.ConsumptionRecord{}).Preload("Lines"), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ConsumptionRecordSortFields, "record_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts consumption records matching the filter
func (r *GormConsumptionRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&reporting.ConsumptionRecord{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends a consumption record with its lines
func (r *GormConsumptionRecordRepository) Save(ctx context.Context, record *reporting.ConsumptionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// SumConsumedByItem sums base-unit consumed quantities per item for a hotel
// within [from, to). Unknown units pass through unconverted.
func (r *GormConsumptionRecordRepository) SumConsumedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	var lines []reporting.ConsumptionLine
	if err := r.db.WithContext(ctx).
		Model(&reporting.ConsumptionLine{}).
		Joins("JOIN consumption_records ON consumption_records.id = consumption_lines.record_id").
		Where("consumption_records.hotel_id = ? AND consumption_records.record_date >= ? AND consumption_records.record_date < ?", hotelID, from, to).
		Find(&lines).Error; err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]decimal.Decimal, len(lines))
	for _, line := range lines {
		base, _ := line.BaseQuantityConsumed()
		sums[line.ItemID] = sums[line.ItemID].Add(base)
	}
	return sums, nil
}

func (r *GormConsumptionRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "hotel_id":
			query = query.Where("hotel_id = ?", value)
		case "record_from":
			query = query.Where("record_date >= ?", value)
		case "record_to":
			query = query.Where("record_date < ?", value)
		}
	}
	return query
}

// Ensure GormConsumptionRecordRepository implements ConsumptionRecordRepository
var _ reporting.ConsumptionRecordRepository = (*GormConsumptionRecordRepository)(nil)
