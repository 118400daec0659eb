package reporting

import (
	"context"
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationScope bounds a leakage or wastage query. Nil hotel or item
// means all; the range is [From, To).
type ReconciliationScope struct {
	HotelID *uuid.UUID
	ItemID  *uuid.UUID
	From    time.Time
	To      time.Time
}

// ConsumptionRecordRepository defines the interface for consumption
// persistence. Submissions are append-only.
type ConsumptionRecordRepository interface {
	// FindByID finds a consumption record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ConsumptionRecord, error)

	// FindByHotelAndDateRange finds submissions for a hotel within [from, to)
	FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]ConsumptionRecord, error)

	// FindAll finds all consumption records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ConsumptionRecord, error)

	// Count counts consumption records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save appends a consumption record with its lines
	Save(ctx context.Context, record *ConsumptionRecord) error

	// SumConsumedByItem sums base-unit consumed quantities per item for a
	// hotel within [from, to). Unknown units pass through unconverted.
	SumConsumedByItem(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)
}

// ExpectedConsumptionRepository defines the interface for the projection
// document. MergeContribution is the only write path; it must land
// concurrent contributions for the same (hotel, date) without loss.
type ExpectedConsumptionRepository interface {
	// FindByID finds a record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ExpectedConsumptionRecord, error)

	// FindByHotelAndDate finds the single record for a hotel and day
	FindByHotelAndDate(ctx context.Context, hotelID uuid.UUID, date time.Time) (*ExpectedConsumptionRecord, error)

	// FindByHotelAndDateRange finds records for a hotel within [from, to)
	FindByHotelAndDateRange(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]ExpectedConsumptionRecord, error)

	// MergeContribution upserts the (hotel, date) record and accumulates the
	// contribution under the unique constraint, retrying on conflict so
	// concurrent submissions both land.
	MergeContribution(ctx context.Context, hotelID uuid.UUID, date time.Time, contribution Contribution) error
}

// LeakageAlertRepository defines the interface for alert persistence
type LeakageAlertRepository interface {
	// FindByID finds an alert by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LeakageAlert, error)

	// FindByStatus finds alerts in a given status
	FindByStatus(ctx context.Context, status AlertStatus, filter shared.Filter) ([]LeakageAlert, error)

	// FindByHotel finds alerts for a hotel
	FindByHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]LeakageAlert, error)

	// FindAll finds all alerts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]LeakageAlert, error)

	// Count counts alerts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsOpen reports whether an active or investigating alert exists for
	// the exact (hotel, item, period, start, end) scope. A partial unique
	// index backs the same rule at the database.
	ExistsOpen(ctx context.Context, hotelID, itemID uuid.UUID, period AlertPeriod, startDate, endDate time.Time) (bool, error)

	// Save creates or updates an alert with its notes
	Save(ctx context.Context, alert *LeakageAlert) error

	// SaveWithLock updates an alert with optimistic concurrency control
	SaveWithLock(ctx context.Context, alert *LeakageAlert, expectedVersion int) error
}
