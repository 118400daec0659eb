package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormHotelRepository implements HotelRepository using GORM
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GormHotelRepository
func NewGormHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

// FindByID finds a hotel by its ID
func (r *GormHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Hotel, error) {
	var hotel partner.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hotel, nil
}

// FindByCode finds a hotel by its unique code
func (r *GormHotelRepository) FindByCode(ctx context.Context, code string) (*partner.Hotel, error) {
	var hotel partner.Hotel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(strings.ToUpper(code))).
		First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hotel, nil
}

// FindAll finds all hotels matching the filter
func (r *GormHotelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Hotel, error) {
	var hotels []partner.Hotel
	query := r.applyStatusFilter(r.db.WithContext(ctx).Model(&partner.Hotel{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, HotelSortFields, "code")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

// Count counts hotels matching the filter
func (r *GormHotelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyStatusFilter(r.db.WithContext(ctx).Model(&partner.Hotel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a hotel
func (r *GormHotelRepository) Save(ctx context.Context, hotel *partner.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// Delete deletes a hotel
func (r *GormHotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Hotel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks code uniqueness
func (r *GormHotelRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Hotel{}).
		Where("code = ?", strings.TrimSpace(strings.ToUpper(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormHotelRepository) applyStatusFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "name":
			query = query.Where("name ILIKE ?", "%"+toString(value)+"%")
		}
	}
	return query
}

// Ensure GormHotelRepository implements HotelRepository
var _ partner.HotelRepository = (*GormHotelRepository)(nil)
