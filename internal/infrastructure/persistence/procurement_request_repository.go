package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelops/backend/internal/domain/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormProcurementRequestRepository implements ProcurementRequestRepository using GORM
type GormProcurementRequestRepository struct {
	db *gorm.DB
}

// NewGormProcurementRequestRepository creates a new GormProcurementRequestRepository
func NewGormProcurementRequestRepository(db *gorm.DB) *GormProcurementRequestRepository {
	return &GormProcurementRequestRepository{db: db}
}

// FindByID finds a procurement request by its ID
func (r *GormProcurementRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementRequest, error) {
	var request procurement.ProcurementRequest
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

// FindByStatus finds requests in a given status
func (r *GormProcurementRequestRepository) FindByStatus(ctx context.Context, status procurement.ProcurementRequestStatus, filter shared.Filter) ([]procurement.ProcurementRequest, error) {
	var requests []procurement.ProcurementRequest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.ProcurementRequest{}).Preload("Lines").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByHotel finds requests raised for a hotel
func (r *GormProcurementRequestRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]procurement.ProcurementRequest, error) {
	var requests []procurement.ProcurementRequest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.ProcurementRequest{}).Preload("Lines").
			Where("hotel_id = ?", hotelID),
		filter,
	)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindAll finds all requests matching the filter
func (r *GormProcurementRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementRequest, error) {
	var requests []procurement.ProcurementRequest
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.ProcurementRequest{}).Preload("Lines"), filter)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Count counts requests matching the filter
func (r *GormProcurementRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.ProcurementRequest{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a request with its lines
func (r *GormProcurementRequestRepository) Save(ctx context.Context, request *procurement.ProcurementRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(request).Error; err != nil {
			return err
		}
		return saveProcurementRequestLines(tx, request)
	})
}

// SaveWithLock updates a request with optimistic concurrency control
func (r *GormProcurementRequestRepository) SaveWithLock(ctx context.Context, request *procurement.ProcurementRequest, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&procurement.ProcurementRequest{}).
			Where("id = ? AND version = ?", request.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":        request.Status,
				"remark":        request.Remark,
				"decided_by":    request.DecidedBy,
				"decided_at":    request.DecidedAt,
				"decision_note": request.DecisionNote,
				"version":       request.Version,
				"updated_at":    request.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveProcurementRequestLines(tx, request)
	})
}

func saveProcurementRequestLines(tx *gorm.DB, request *procurement.ProcurementRequest) error {
	currentLineIDs := make([]uuid.UUID, len(request.Lines))
	for i, line := range request.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("request_id = ? AND id NOT IN ?", request.ID, currentLineIDs).
			Delete(&procurement.ProcurementRequestLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("request_id = ?", request.ID).
			Delete(&procurement.ProcurementRequestLine{}).Error; err != nil {
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

func (r *GormProcurementRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProcurementRequestSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormProcurementRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "hotel_id":
			query = query.Where("hotel_id = ?", value)
		case "requested_by":
			query = query.Where("requested_by = ?", value)
		}
	}
	return query
}

// Ensure GormProcurementRequestRepository implements ProcurementRequestRepository
var _ procurement.ProcurementRequestRepository = (*GormProcurementRequestRepository)(nil)
