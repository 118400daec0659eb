package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormIssuanceRecordRepository implements IssuanceRecordRepository using GORM.
// Issuance records are the append-only movement journal of the stock ledger;
// there is no update path.
type GormIssuanceRecordRepository struct {
	db *gorm.DB
}

// NewGormIssuanceRecordRepository creates a new GormIssuanceRecordRepository
func NewGormIssuanceRecordRepository(db *gorm.DB) *GormIssuanceRecordRepository {
	return &GormIssuanceRecordRepository{db: db}
}

// FindByID finds an issuance record by its ID
func (r *GormIssuanceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.IssuanceRecord, error) {
	var record inventory.IssuanceRecord
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

// FindByIssueNumber finds an issuance record by its issue number
func (r *GormIssuanceRecordRepository) FindByIssueNumber(ctx context.Context, issueNumber string) (*inventory.IssuanceRecord, error) {
	var record inventory.IssuanceRecord
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("issue_number = ?", issueNumber).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByHotelAndDateRange finds issuances for a hotel issued within [from, to)
func (r *GormIssuanceRecordRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]inventory.IssuanceRecord, error) {
	var records []inventory.IssuanceRecord
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("hotel_id = ? AND issued_at >= ? AND issued_at < ?", hotelID, from, to).
		Order("issued_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds all issuance records matching the filter
func (r *GormIssuanceRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.IssuanceRecord, error) {
	var records []inventory.IssuanceRecord
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.IssuanceRecord{}).Preload("Lines"), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, IssuanceRecordSortFields, "issued_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts issuance records matching the filter
func (r *GormIssuanceRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.IssuanceRecord{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends an issuance record with its lines
func (r *GormIssuanceRecordRepository) Save(ctx context.Context, record *inventory.IssuanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// SumIssuedByItem sums base-unit quantities issued per item for a hotel
// within [from, to). Unit conversion happens here rather than in SQL, since
// the conversion table is domain knowledge.
func (r *GormIssuanceRecordRepository) SumIssuedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	var lines []inventory.IssuanceLine
	if err := r.db.WithContext(ctx).
		Model(&inventory.IssuanceLine{}).
		Joins("JOIN issuance_records ON issuance_records.id = issuance_lines.issuance_record_id").
		Where("issuance_records.hotel_id = ? AND issuance_records.issued_at >= ? AND issuance_records.issued_at < ?", hotelID, from, to).
		Find(&lines).Error; err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]decimal.Decimal, len(lines))
	for _, line := range lines {
		base, _ := line.BaseQuantityIssued()
		sums[line.ItemID] = sums[line.ItemID].Add(base)
	}
	return sums, nil
}

func (r *GormIssuanceRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "hotel_id":
			query = query.Where("hotel_id = ?", value)
		case "origin":
			query = query.Where("origin = ?", value)
		case "issued_from":
			query = query.Where("issued_at >= ?", value)
		case "issued_to":
			query = query.Where("issued_at < ?", value)
		}
	}
	return query
}

// Ensure GormIssuanceRecordRepository implements IssuanceRecordRepository
var _ inventory.IssuanceRecordRepository = (*GormIssuanceRecordRepository)(nil)
