package inventory

import (
	"context"

	"github.com/hotelops/backend/internal/domain/catalog"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/partner"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IssuanceService runs the issuance engine: direct manual issues and
// fulfillment of restaurant/outward stock requests. Every issuance debits
// the stock ledger inside one transaction; if any line fails, no line's
// debit survives.
type IssuanceService struct {
	scope          TransactionScope
	itemRepo       catalog.ItemRepository
	hotelRepo      partner.HotelRepository
	conversion     *service.UnitConversionService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewIssuanceService creates a new IssuanceService
func NewIssuanceService(
	scope TransactionScope,
	itemRepo catalog.ItemRepository,
	hotelRepo partner.HotelRepository,
	conversion *service.UnitConversionService,
	logger *zap.Logger,
) *IssuanceService {
	return &IssuanceService{
		scope:      scope,
		itemRepo:   itemRepo,
		hotelRepo:  hotelRepo,
		conversion: conversion,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *IssuanceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Issue performs a direct manual issuance to a hotel. All line debits and
// the issuance record land in one transaction; an insufficient balance on
// any line rolls everything back and names the offending item.
func (s *IssuanceService) Issue(ctx context.Context, actor shared.Actor, req IssueStockRequest) (*IssuanceRecordResponse, error) {
	if !actor.IsManagement() {
		return nil, shared.ErrForbidden
	}
	return s.issue(ctx, actor, req.HotelID, req.Lines, inventory.IssuanceOriginManual, nil)
}

// FulfillStockRequest issues stock against a pending or partially issued
// request and updates the request's per-line accounting in the same
// transaction.
func (s *IssuanceService) FulfillStockRequest(ctx context.Context, actor shared.Actor, payload FulfillRequestPayload) (*IssuanceRecordResponse, error) {
	var record *inventory.IssuanceRecord
	var request *inventory.StockRequest

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		request, err = repos.RequestRepo().FindByID(ctx, payload.RequestID)
		if err != nil {
			return err
		}
		if request.Status.IsTerminal() {
			return shared.NewDomainError("INVALID_STATE", "Request is already in a terminal state")
		}

		origin := inventory.IssuanceOriginStockRequest
		if request.Kind == inventory.StockRequestKindOutward {
			origin = inventory.IssuanceOriginOutwardRequest
		}

		// issued quantities expressed in each request line's own unit,
		// for coverage accounting
		issued := make(map[uuid.UUID]decimal.Decimal, len(payload.Lines))
		for _, line := range payload.Lines {
			requestLine := findRequestLine(request, line.ItemID)
			if requestLine == nil {
				return shared.NewDomainError("NOT_FOUND", "Issued item is not part of this request")
			}
			inLineUnit, err := s.conversion.Convert(line.Quantity, line.Unit, requestLine.Unit)
			if err != nil {
				return err
			}
			issued[line.ItemID] = inLineUnit
		}

		record, err = s.buildAndDebit(ctx, repos, request.HotelID, actor.ID, payload.Lines, origin, &payload.RequestID)
		if err != nil {
			return err
		}

		expectedVersion := request.Version
		if err := request.RecordIssuance(issued); err != nil {
			return err
		}
		return repos.RequestRepo().SaveWithLock(ctx, request, expectedVersion)
	})
	if err != nil {
		return nil, err
	}

	s.publishAggregateEvents(ctx, request)
	s.publishIssued(ctx, record)

	resp := ToIssuanceRecordResponse(record)
	return &resp, nil
}

// GetIssuance returns one issuance record
func (s *IssuanceService) GetIssuance(ctx context.Context, actor shared.Actor, id uuid.UUID) (*IssuanceRecordResponse, error) {
	var record *inventory.IssuanceRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.IssuanceRepo().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessHotel(record.HotelID) {
		return nil, shared.ErrForbidden
	}
	resp := ToIssuanceRecordResponse(record)
	return &resp, nil
}

// ListIssuances returns a paginated list of issuance records. Hotel
// managers see only their own property's issues.
func (s *IssuanceService) ListIssuances(ctx context.Context, actor shared.Actor, filter shared.Filter) (*shared.Paginated[IssuanceRecordResponse], error) {
	if actor.Role == shared.RoleHotelManager {
		if actor.HotelID == nil {
			return nil, shared.ErrForbidden
		}
		if filter.Filters == nil {
			filter.Filters = make(map[string]interface{})
		}
		filter.Filters["hotel_id"] = *actor.HotelID
	}

	var records []inventory.IssuanceRecord
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		records, err = repos.IssuanceRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.IssuanceRepo().Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]IssuanceRecordResponse, 0, len(records))
	for idx := range records {
		items = append(items, ToIssuanceRecordResponse(&records[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *IssuanceService) issue(ctx context.Context, actor shared.Actor, hotelID uuid.UUID, lines []IssueLineRequest, origin inventory.IssuanceOrigin, sourceRequestID *uuid.UUID) (*IssuanceRecordResponse, error) {
	var record *inventory.IssuanceRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = s.buildAndDebit(ctx, repos, hotelID, actor.ID, lines, origin, sourceRequestID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishIssued(ctx, record)

	resp := ToIssuanceRecordResponse(record)
	return &resp, nil
}

// buildAndDebit validates the hotel and items, conditionally debits every
// line, and appends the issuance record. It must run inside a transaction
// scope; any error leaves no debit behind.
func (s *IssuanceService) buildAndDebit(ctx context.Context, repos TransactionalRepositories, hotelID, issuedBy uuid.UUID, lines []IssueLineRequest, origin inventory.IssuanceOrigin, sourceRequestID *uuid.UUID) (*inventory.IssuanceRecord, error) {
	if len(lines) == 0 {
		return nil, shared.NewValidationError("lines", "cannot be empty")
	}

	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !hotel.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Hotel is inactive")
	}

	itemIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*catalog.Item, len(items))
	for idx := range items {
		itemsByID[items[idx].ID] = &items[idx]
	}

	record, err := inventory.NewIssuanceRecord(hotelID, issuedBy, origin, sourceRequestID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Item not found: "+line.ItemID.String())
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("quantity", "must be positive")
		}

		conv, err := s.conversion.ToBase(line.Quantity, line.Unit)
		if err != nil {
			return nil, err
		}
		if !conv.Recognized {
			s.logger.Warn("unrecognized unit on issuance line, treating as base",
				zap.String("item_id", line.ItemID.String()),
				zap.String("unit", line.Unit))
		}

		balance, err := repos.BalanceRepo().DebitConditional(ctx, line.ItemID, conv.BaseQuantity)
		if err != nil {
			return nil, err
		}

		if err := record.AddLine(line.ItemID, item.Name, line.Quantity, line.Unit, balance.QuantityOnHand); err != nil {
			return nil, err
		}

		if balance.IsBelowMinimum() {
			record.AddDomainEvent(inventory.NewStockBelowMinimumEvent(balance))
		}
	}

	if err := repos.IssuanceRepo().Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *IssuanceService) publishIssued(ctx context.Context, record *inventory.IssuanceRecord) {
	if s.eventPublisher == nil || record == nil {
		return
	}
	events := record.GetDomainEvents()
	events = append(events, inventory.NewStockIssuedEvent(record))
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish issuance events", zap.Error(err))
	}
	record.ClearDomainEvents()
}

func (s *IssuanceService) publishAggregateEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil || aggregate == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}

func findRequestLine(request *inventory.StockRequest, itemID uuid.UUID) *inventory.StockRequestLine {
	for idx := range request.Lines {
		if request.Lines[idx].ItemID == itemID {
			return &request.Lines[idx]
		}
	}
	return nil
}
