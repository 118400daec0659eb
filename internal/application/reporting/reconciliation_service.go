package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReconciliationService computes leakage (issued versus consumed) and
// wastage (expected versus actual) over a scope, and runs periodic alert
// generation. Alerts are derived flags; regeneration is idempotent while
// an alert for the same scope stays open.
type ReconciliationService struct {
	issuanceRepo    inventorySums
	consumptionRepo reporting.ConsumptionRecordRepository
	expectedRepo    reporting.ExpectedConsumptionRepository
	alertRepo       reporting.LeakageAlertRepository
	itemRepo        catalog.ItemRepository
	hotelRepo       partner.HotelRepository
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	issuanceRepo inventorySums,
	consumptionRepo reporting.ConsumptionRecordRepository,
	expectedRepo reporting.ExpectedConsumptionRepository,
	alertRepo reporting.LeakageAlertRepository,
	itemRepo catalog.ItemRepository,
	hotelRepo partner.HotelRepository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		issuanceRepo:    issuanceRepo,
		consumptionRepo: consumptionRepo,
		expectedRepo:    expectedRepo,
		alertRepo:       alertRepo,
		itemRepo:        itemRepo,
		hotelRepo:       hotelRepo,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReconciliationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// LeakageReport reconciles issued against consumed quantities per item for
// one hotel over [from, to). Rows sort by leakage percentage, worst first.
func (s *ReconciliationService) LeakageReport(ctx context.Context, actor shared.Actor, scope reporting.ReconciliationScope) (*LeakageReportResponse, error) {
	if scope.HotelID == nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if !actor.CanAccessHotel(*scope.HotelID) {
		return nil, shared.ErrForbidden
	}

	issued, err := s.issuanceRepo.SumIssuedByItem(ctx, *scope.HotelID, scope.From, scope.To)
	if err != nil {
		return nil, err
	}
	consumed, err := s.consumptionRepo.SumConsumedByItem(ctx, *scope.HotelID, scope.From, scope.To)
	if err != nil {
		return nil, err
	}

	itemIDs := unionKeys(issued, consumed, scope.ItemID)
	names, err := s.itemNames(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]LeakageRow, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		rows = append(rows, LeakageRow{
			ItemID:   itemID,
			ItemName: names[itemID],
			Result:   reporting.ComputeLeakage(issued[itemID], consumed[itemID]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Result.LeakagePercent.GreaterThan(rows[j].Result.LeakagePercent)
	})

	return &LeakageReportResponse{
		HotelID: *scope.HotelID,
		From:    scope.From,
		To:      scope.To,
		Rows:    rows,
	}, nil
}

// WastageReport reconciles actual consumption against the projected
// expectation for one hotel over [from, to). Only items that consumed more
// than projected appear, worst first.
func (s *ReconciliationService) WastageReport(ctx context.Context, actor shared.Actor, scope reporting.ReconciliationScope) (*WastageReportResponse, error) {
	if scope.HotelID == nil {
		return nil, shared.NewValidationError("hotelId", "cannot be empty")
	}
	if !actor.CanAccessHotel(*scope.HotelID) {
		return nil, shared.ErrForbidden
	}

	expectedRecords, err := s.expectedRepo.FindByHotelAndDateRange(ctx, *scope.HotelID, scope.From, scope.To)
	if err != nil {
		return nil, err
	}
	expected := make(map[uuid.UUID]decimal.Decimal)
	for idx := range expectedRecords {
		for _, item := range expectedRecords[idx].Items {
			expected[item.ItemID] = expected[item.ItemID].Add(item.ExpectedQuantity)
		}
	}

	actual, err := s.consumptionRepo.SumConsumedByItem(ctx, *scope.HotelID, scope.From, scope.To)
	if err != nil {
		return nil, err
	}

	itemIDs := unionKeys(expected, actual, scope.ItemID)
	names, err := s.itemNames(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]WastageRow, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		result := reporting.ComputeWastage(expected[itemID], actual[itemID])
		if result.Wastage.LessThanOrEqual(decimal.Zero) {
			continue
		}
		rows = append(rows, WastageRow{
			ItemID:   itemID,
			ItemName: names[itemID],
			Result:   result,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Result.Wastage.GreaterThan(rows[j].Result.Wastage)
	})

	return &WastageReportResponse{
		HotelID: *scope.HotelID,
		From:    scope.From,
		To:      scope.To,
		Rows:    rows,
	}, nil
}

// GenerateAlerts reconciles every active hotel over the period starting at
// startDate and raises an alert for each (hotel, item) whose leakage
// crosses the yellow band. An open alert for the same scope suppresses
// regeneration; resolved or dismissed ones do not. Returns the alerts
// actually created.
func (s *ReconciliationService) GenerateAlerts(ctx context.Context, period reporting.AlertPeriod, startDate time.Time) ([]AlertResponse, error) {
	endDate, err := periodEnd(period, startDate)
	if err != nil {
		return nil, err
	}

	hotels, err := s.hotelRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 1000})
	if err != nil {
		return nil, err
	}

	created := make([]AlertResponse, 0)
	for idx := range hotels {
		hotel := &hotels[idx]
		if !hotel.IsActive() {
			continue
		}
		alerts, err := s.generateForHotel(ctx, hotel.ID, period, startDate, endDate)
		if err != nil {
			s.logger.Error("alert generation failed for hotel",
				zap.String("hotel_id", hotel.ID.String()),
				zap.Error(err))
			continue
		}
		created = append(created, alerts...)
	}
	return created, nil
}

func (s *ReconciliationService) generateForHotel(ctx context.Context, hotelID uuid.UUID, period reporting.AlertPeriod, startDate, endDate time.Time) ([]AlertResponse, error) {
	issued, err := s.issuanceRepo.SumIssuedByItem(ctx, hotelID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	consumed, err := s.consumptionRepo.SumConsumedByItem(ctx, hotelID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	itemIDs := unionKeys(issued, consumed, nil)
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*catalog.Item, len(items))
	for idx := range items {
		itemsByID[items[idx].ID] = &items[idx]
	}

	created := make([]AlertResponse, 0)
	for _, itemID := range itemIDs {
		if !issued[itemID].GreaterThan(decimal.Zero) {
			continue
		}
		result := reporting.ComputeLeakage(issued[itemID], consumed[itemID])
		if result.Severity == reporting.SeverityGreen {
			continue
		}

		exists, err := s.alertRepo.ExistsOpen(ctx, hotelID, itemID, period, startDate, endDate)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		itemName := ""
		estimatedLoss := decimal.Zero
		if item, ok := itemsByID[itemID]; ok {
			itemName = item.Name
			price := item.PricePerBaseUnit()
			if !price.IsZero() && result.Leakage.GreaterThan(decimal.Zero) {
				estimatedLoss = price.Mul(result.Leakage).Amount().Round(2)
			}
		}

		alert, err := reporting.NewLeakageAlert(hotelID, itemID, itemName, period, startDate, endDate, result, estimatedLoss)
		if err != nil {
			return nil, err
		}
		if err := s.alertRepo.Save(ctx, alert); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, alert)
		created = append(created, ToAlertResponse(alert))
	}
	return created, nil
}

// UpdateAlertStatus moves an alert through its restricted status table.
// Store-side roles only; closed alerts never reopen.
func (s *ReconciliationService) UpdateAlertStatus(ctx context.Context, actor shared.Actor, alertID uuid.UUID, payload UpdateAlertStatusPayload) (*AlertResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}

	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}

	expectedVersion := alert.Version
	if err := alert.TransitionTo(payload.Status, actor.ID, payload.Note); err != nil {
		return nil, err
	}
	if err := s.alertRepo.SaveWithLock(ctx, alert, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, alert)

	resp := ToAlertResponse(alert)
	return &resp, nil
}

// AddAlertNote appends an investigation note without changing status
func (s *ReconciliationService) AddAlertNote(ctx context.Context, actor shared.Actor, alertID uuid.UUID, payload AddAlertNotePayload) (*AlertResponse, error) {
	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessHotel(alert.HotelID) {
		return nil, shared.ErrForbidden
	}

	expectedVersion := alert.Version
	if err := alert.AddNote(actor.ID, payload.Note); err != nil {
		return nil, err
	}
	if err := s.alertRepo.SaveWithLock(ctx, alert, expectedVersion); err != nil {
		return nil, err
	}

	resp := ToAlertResponse(alert)
	return &resp, nil
}

// GetAlert returns one alert, hotel-scoped for hotel managers
func (s *ReconciliationService) GetAlert(ctx context.Context, actor shared.Actor, alertID uuid.UUID) (*AlertResponse, error) {
	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessHotel(alert.HotelID) {
		return nil, shared.ErrForbidden
	}
	resp := ToAlertResponse(alert)
	return &resp, nil
}

// ListAlerts returns a paginated list. Hotel managers see only their own
// property's alerts.
func (s *ReconciliationService) ListAlerts(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[AlertResponse], error) {
	var alerts []reporting.LeakageAlert
	var err error

	if actor.Role == shared.RoleHotelManager {
		if actor.HotelID == nil {
			return nil, shared.ErrForbidden
		}
		// the count must see the same hotel scope as the listing
		if filter.Filters == nil {
			filter.Filters = make(map[string]interface{})
		}
		filter.Filters["hotel_id"] = *actor.HotelID
		alerts, err = s.alertRepo.FindByHotel(ctx, *actor.HotelID, filter)
	} else {
		alerts, err = s.alertRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.alertRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]AlertResponse, 0, len(alerts))
	for idx := range alerts {
		items = append(items, ToAlertResponse(&alerts[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *ReconciliationService) itemNames(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(items))
	for idx := range items {
		names[items[idx].ID] = items[idx].Name
	}
	return names, nil
}

func (s *ReconciliationService) publishEvents(ctx context.Context, alert *reporting.LeakageAlert) {
	if s.eventPublisher == nil {
		return
	}
	events := alert.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	alert.ClearDomainEvents()
}

// periodEnd returns the exclusive end of an alert period
func periodEnd(period reporting.AlertPeriod, startDate time.Time) (time.Time, error) {
	switch period {
	case reporting.AlertPeriodDaily:
		return startDate.AddDate(0, 0, 1), nil
	case reporting.AlertPeriodWeekly:
		return startDate.AddDate(0, 0, 7), nil
	case reporting.AlertPeriodMonthly:
		return startDate.AddDate(0, 1, 0), nil
	}
	return time.Time{}, shared.NewValidationError("period", "unrecognized alert period")
}

// unionKeys merges the key sets of two per-item maps, optionally narrowed
// to a single item, in stable order.
func unionKeys(a, b map[uuid.UUID]decimal.Decimal, only *uuid.UUID) []uuid.UUID {
	if only != nil {
		return []uuid.UUID{*only}
	}
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	ids := make([]uuid.UUID, 0, len(a)+len(b))
	for id := range a {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for id := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
