package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	reportingapp "github.com/hotelops/backend/internal/application/reporting"
	reportingdomain "github.com/hotelops/backend/internal/domain/reporting"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/infrastructure/cache"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles leakage and wastage reconciliation endpoints.
// Report responses are cached per scope when a cache is configured.
type ReportHandler struct {
	BaseHandler
	reconciliationService *reportingapp.ReconciliationService
	reportCache           cache.ReportCache
	cacheTTL              time.Duration
	logger                *zap.Logger
}

// NewReportHandler creates a new ReportHandler. reportCache may be nil to
// disable caching.
func NewReportHandler(
	reconciliationService *reportingapp.ReconciliationService,
	reportCache cache.ReportCache,
	cacheTTL time.Duration,
	log *zap.Logger,
) *ReportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportHandler{
		reconciliationService: reconciliationService,
		reportCache:           reportCache,
		cacheTTL:              cacheTTL,
		logger:                log,
	}
}

// parseScope binds hotel_id, item_id, from and to query values into a
// reconciliation scope
func (h *ReportHandler) parseScope(c *gin.Context) (reportingdomain.ReconciliationScope, bool) {
	var scope reportingdomain.ReconciliationScope

	rawHotel := c.Query("hotel_id")
	if rawHotel == "" {
		h.BadRequest(c, "hotel_id is required")
		return scope, false
	}
	hotelID, err := uuid.Parse(rawHotel)
	if err != nil {
		h.BadRequest(c, "Invalid hotel_id format")
		return scope, false
	}
	scope.HotelID = &hotelID

	if rawItem := c.Query("item_id"); rawItem != "" {
		itemID, err := uuid.Parse(rawItem)
		if err != nil {
			h.BadRequest(c, "Invalid item_id format")
			return scope, false
		}
		scope.ItemID = &itemID
	}

	scope.From, err = parseDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing from date, expected YYYY-MM-DD")
		return scope, false
	}
	scope.To, err = parseDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing to date, expected YYYY-MM-DD")
		return scope, false
	}

	return scope, true
}

func scopeCacheKey(kind string, scope reportingdomain.ReconciliationScope) string {
	item := "all"
	if scope.ItemID != nil {
		item = scope.ItemID.String()
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s",
		kind, scope.HotelID, item,
		scope.From.Format("2006-01-02"), scope.To.Format("2006-01-02"))
}

// serveCached writes a cached report payload if one exists. The actor's
// hotel scope is checked before the lookup so a cached report never leaks
// across hotels.
func (h *ReportHandler) serveCached(c *gin.Context, actor shared.Actor, key string, scope reportingdomain.ReconciliationScope) bool {
	if h.reportCache == nil || !actor.CanAccessHotel(*scope.HotelID) {
		return false
	}

	payload, err := h.reportCache.Get(c.Request.Context(), key)
	if err != nil {
		h.logger.Warn("report cache lookup failed", zap.Error(err))
		return false
	}
	if payload == nil {
		return false
	}

	h.Success(c, json.RawMessage(payload))
	return true
}

func (h *ReportHandler) storeCached(c *gin.Context, key string, report any) {
	if h.reportCache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := h.reportCache.Set(c.Request.Context(), key, payload, h.cacheTTL); err != nil {
		h.logger.Warn("report cache store failed", zap.Error(err))
	}
}

// Leakage godoc
// @Summary      Leakage report for a hotel over a date range
// @Description  Compares quantities issued to the hotel against quantities
// @Description  the hotel reported consuming. Rows sort worst leakage first.
// @Tags         reports
// @Produce      json
// @Param        hotel_id query string true "Hotel ID" format(uuid)
// @Param        item_id query string false "Restrict to one item" format(uuid)
// @Param        from query string true "Range start (YYYY-MM-DD)"
// @Param        to query string true "Range end (YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/leakage [get]
func (h *ReportHandler) Leakage(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	scope, ok := h.parseScope(c)
	if !ok {
		return
	}

	key := scopeCacheKey("leakage", scope)
	if h.serveCached(c, actor, key, scope) {
		return
	}

	report, err := h.reconciliationService.LeakageReport(c.Request.Context(), actor, scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.storeCached(c, key, report)
	h.Success(c, report)
}

// Wastage godoc
// @Summary      Wastage report for a hotel over a date range
// @Description  Compares actual consumption against the projection derived
// @Description  from recorded customer orders.
// @Tags         reports
// @Produce      json
// @Param        hotel_id query string true "Hotel ID" format(uuid)
// @Param        item_id query string false "Restrict to one item" format(uuid)
// @Param        from query string true "Range start (YYYY-MM-DD)"
// @Param        to query string true "Range end (YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/wastage [get]
func (h *ReportHandler) Wastage(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	scope, ok := h.parseScope(c)
	if !ok {
		return
	}

	key := scopeCacheKey("wastage", scope)
	if h.serveCached(c, actor, key, scope) {
		return
	}

	report, err := h.reconciliationService.WastageReport(c.Request.Context(), actor, scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.storeCached(c, key, report)
	h.Success(c, report)
}

// SweepTrigger abstracts the alert sweep scheduler's manual trigger
type SweepTrigger interface {
	TriggerManualRun() error
}

// AlertHandler handles leakage alert API endpoints
type AlertHandler struct {
	BaseHandler
	reconciliationService *reportingapp.ReconciliationService
	sweepTrigger          SweepTrigger
}

// NewAlertHandler creates a new AlertHandler. sweepTrigger may be nil when
// the scheduler is disabled.
func NewAlertHandler(reconciliationService *reportingapp.ReconciliationService, sweepTrigger SweepTrigger) *AlertHandler {
	return &AlertHandler{reconciliationService: reconciliationService, sweepTrigger: sweepTrigger}
}

// GetByID godoc
// @Summary      Get a leakage alert with its investigation notes
// @Tags         reports
// @Produce      json
// @Param        id path string true "Alert ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/alerts/{id} [get]
func (h *AlertHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	alertID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID format")
		return
	}

	alert, err := h.reconciliationService.GetAlert(c.Request.Context(), actor, alertID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alert)
}

// List godoc
// @Summary      List leakage alerts
// @Tags         reports
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status" Enums(active, investigating, resolved, dismissed)
// @Param        hotel_id query string false "Filter by hotel" format(uuid)
// @Param        severity query string false "Filter by severity"
// @Param        period query string false "Filter by period" Enums(daily, weekly, monthly)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filters := map[string]interface{}{}
	for _, name := range []string{"status", "hotel_id", "item_id", "severity", "period"} {
		if value := c.Query(name); value != "" {
			filters[name] = value
		}
	}

	page, err := h.reconciliationService.ListAlerts(c.Request.Context(), actor, buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateStatus godoc
// @Summary      Move a leakage alert through its investigation lifecycle
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id path string true "Alert ID" format(uuid)
// @Param        request body reportingapp.UpdateAlertStatusPayload true "Target status and optional note"
// @Success      200 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/alerts/{id}/status [put]
func (h *AlertHandler) UpdateStatus(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	alertID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID format")
		return
	}

	var payload reportingapp.UpdateAlertStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	alert, err := h.reconciliationService.UpdateAlertStatus(c.Request.Context(), actor, alertID, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alert)
}

// AddNote godoc
// @Summary      Append an investigation note to a leakage alert
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id path string true "Alert ID" format(uuid)
// @Param        request body reportingapp.AddAlertNotePayload true "Note text"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/alerts/{id}/notes [post]
func (h *AlertHandler) AddNote(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	alertID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID format")
		return
	}

	var payload reportingapp.AddAlertNotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	alert, err := h.reconciliationService.AddAlertNote(c.Request.Context(), actor, alertID, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alert)
}

// TriggerSweep godoc
// @Summary      Trigger a manual alert generation sweep
// @Tags         reports
// @Produce      json
// @Success      202 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/alerts/sweep [post]
func (h *AlertHandler) TriggerSweep(c *gin.Context) {
	if h.sweepTrigger == nil {
		h.HandleError(c, shared.ErrInvalidState)
		return
	}

	if err := h.sweepTrigger.TriggerManualRun(); err != nil {
		c.JSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeConflict, err.Error(), getRequestID(c)))
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"status": "sweep scheduled"}))
}

// RegisterRoutes registers the reconciliation report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/leakage", h.Leakage)
		reports.GET("/wastage", h.Wastage)
	}
}

// RegisterRoutes registers all leakage alert routes
func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	alerts := rg.Group("/reports/alerts")
	{
		alerts.GET("", h.List)
		alerts.GET("/:id", h.GetByID)
		alerts.PUT("/:id/status", h.UpdateStatus)
		alerts.POST("/:id/notes", h.AddNote)
		alerts.POST("/sweep", middleware.RequireRoles(shared.RoleManagingDirector), h.TriggerSweep)
	}
}
