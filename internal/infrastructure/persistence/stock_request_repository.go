package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormStockRequestRepository implements StockRequestRepository using GORM
type GormStockRequestRepository struct {
	db *gorm.DB
}

// NewGormStockRequestRepository creates a new GormStockRequestRepository
func NewGormStockRequestRepository(db *gorm.DB) *GormStockRequestRepository {
	return &GormStockRequestRepository{db: db}
}

// FindByID finds a stock request by its ID
func (r *GormStockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRequest, error) {
	var request inventory.StockRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByHotel finds requests raised for a hotel
func (r *GormStockRequestRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]inventory.StockRequest, error) {
	var requests []inventory.StockRequest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockRequest{}).Preload("Lines").
			Where("hotel_id = ?", hotelID),
		filter,
	)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindPending finds requests of a kind that are still actionable
func (r *GormStockRequestRepository) FindPending(ctx context.Context, kind inventory.StockRequestKind) ([]inventory.StockRequest, error) {
	var requests []inventory.StockRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("kind = ? AND status IN ?", kind, []inventory.StockRequestStatus{
			inventory.StockRequestStatusPending,
			inventory.StockRequestStatusPartiallyIssued,
		}).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindAll finds all stock requests matching the filter
func (r *GormStockRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRequest, error) {
	var requests []inventory.StockRequest
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockRequest{}).Preload("Lines"), filter)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Count counts stock requests matching the filter
func (r *GormStockRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockRequest{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock request with its lines
func (r *GormStockRequestRepository) Save(ctx context.Context, request *inventory.StockRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(request).Error; err != nil {
			return err
		}
		return saveStockRequestLines(tx, request)
	})
}

// SaveWithLock updates a stock request with optimistic concurrency control.
// The expected version is the version read before the aggregate mutated.
func (r *GormStockRequestRepository) SaveWithLock(ctx context.Context, request *inventory.StockRequest, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&inventory.StockRequest{}).
			Where("id = ? AND version = ?", request.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":     request.Status,
				"remark":     request.Remark,
				"version":    request.Version,
				"updated_at": request.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveStockRequestLines(tx, request)
	})
}

func saveStockRequestLines(tx *gorm.DB, request *inventory.StockRequest) error {
	currentLineIDs := make([]uuid.UUID, len(request.Lines))
	for i, line := range request.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("request_id = ? AND id NOT IN ?", request.ID, currentLineIDs).
			Delete(&inventory.StockRequestLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("request_id = ?", request.ID).
			Delete(&inventory.StockRequestLine{}).Error; err != nil {
			return err
		}
	}

	for i := range request.Lines {
		request.Lines[i].RequestID = request.ID
		if err := tx.Save(&request.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormStockRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockRequestSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormStockRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "hotel_id":
			query = query.Where("hotel_id = ?", value)
		}
	}
	return query
}

// Ensure GormStockRequestRepository implements StockRequestRepository
var _ inventory.StockRequestRepository = (*GormStockRequestRepository)(nil)
