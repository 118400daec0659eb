package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
)

// GormExpectedConsumptionRepository implements ExpectedConsumptionRepository
// using GORM. The (hotel_id, record_date) unique constraint plus a row lock
// on merge keeps concurrent contributions from losing each other.
type GormExpectedConsumptionRepository struct {
	db *gorm.DB
}

// NewGormExpectedConsumptionRepository creates a new GormExpectedConsumptionRepository
func NewGormExpectedConsumptionRepository(db *gorm.DB) *GormExpectedConsumptionRepository {
	return &GormExpectedConsumptionRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormExpectedConsumptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.ExpectedConsumptionRecord, error) {
	var record reporting.ExpectedConsumptionRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Provenance").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByHotelAndDate finds the single record for a hotel and day
func (r *GormExpectedConsumptionRepository) FindByHotelAndDate(ctx context.Context, hotelID uuid.UUID, date time.Time) (*reporting.ExpectedConsumptionRecord, error) {
	var record reporting.ExpectedConsumptionRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Provenance").
		Where("hotel_id = ? AND record_date = ?", hotelID, truncateToDay(date)).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByHotelAndDateRange finds records for a hotel within [from, to)
func (r *GormExpectedConsumptionRepository) FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]reporting.ExpectedConsumptionRecord, error) {
	var records []reporting.ExpectedConsumptionRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("hotel_id = ? AND record_date >= ? AND record_date < ?", hotelID, from, to).
		Order("record_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// MergeContribution upserts the (hotel, date) record and accumulates the
// contribution. An existing record is locked FOR UPDATE so concurrent merges
// serialize; a lost insert race falls back to the merge path on retry.
func (r *GormExpectedConsumptionRepository) MergeContribution(ctx context.Context, hotelID uuid.UUID, date time.Time, contribution reporting.Contribution) error {
	day := truncateToDay(date)

	for attempt := 0; attempt < 2; attempt++ {
		created, err := r.tryMerge(ctx, hotelID, day, contribution)
		if err != nil {
			return err
		}
		if created {
			return nil
		}
		// Insert lost the unique-constraint race; retry lands on the
		// merge path against the winner's record.
	}
	return shared.ErrConcurrencyConflict
}

// tryMerge returns false with a nil error only when a fresh insert hit the
// unique constraint and the merge should be retried.
func (r *GormExpectedConsumptionRepository) tryMerge(ctx context.Context, hotelID uuid.UUID, day time.Time, contribution reporting.Contribution) (bool, error) {
	var raced bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record reporting.ExpectedConsumptionRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			Where("hotel_id = ? AND record_date = ?", hotelID, day).
			First(&record).Error

		if err == nil {
			if mergeErr := record.Merge(contribution); mergeErr != nil {
				return mergeErr
			}
			return persistMerge(tx, &record)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fresh, err := reporting.NewExpectedConsumptionRecord(hotelID, day)
		if err != nil {
			return err
		}
		if mergeErr := fresh.Merge(contribution); mergeErr != nil {
			return mergeErr
		}

		result := tx.Omit("Items", "Provenance").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "hotel_id"}, {Name: "record_date"}},
				DoNothing: true,
			}).
			Create(fresh)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			raced = true
			return nil
		}

		return persistMergeChildren(tx, fresh)
	})
	if err != nil {
		return false, err
	}
	return !raced, nil
}

func persistMerge(tx *gorm.DB, record *reporting.ExpectedConsumptionRecord) error {
	result := tx.Model(&reporting.ExpectedConsumptionRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"version":    record.Version,
			"updated_at": record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	return persistMergeChildren(tx, record)
}

func persistMergeChildren(tx *gorm.DB, record *reporting.ExpectedConsumptionRecord) error {
	for i := range record.Items {
		record.Items[i].RecordID = record.ID
		if err := tx.Save(&record.Items[i]).Error; err != nil {
			return err
		}
	}
	// Provenance is append-only; entries carried on the aggregate after a
	// merge are precisely the new ones since Provenance is not preloaded.
	for i := range record.Provenance {
		record.Provenance[i].RecordID = record.ID
		if err := tx.Create(&record.Provenance[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// truncateToDay normalizes to UTC first so record_date lookups match the
// key the domain stores regardless of the caller's zone.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Ensure GormExpectedConsumptionRepository implements ExpectedConsumptionRepository
var _ reporting.ExpectedConsumptionRepository = (*GormExpectedConsumptionRepository)(nil)
