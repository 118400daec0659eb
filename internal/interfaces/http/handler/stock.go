package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/hotelops/backend/internal/application/inventory"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// StockLedgerHandler handles central store balance API endpoints
type StockLedgerHandler struct {
	BaseHandler
	ledgerService *inventoryapp.StockLedgerService
}

// NewStockLedgerHandler creates a new StockLedgerHandler
func NewStockLedgerHandler(ledgerService *inventoryapp.StockLedgerService) *StockLedgerHandler {
	return &StockLedgerHandler{ledgerService: ledgerService}
}

// adjustBalanceRequest is the payload for crediting stock or setting a
// minimum level on an item balance
type adjustBalanceRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required"`
}

// Credit godoc
// @Summary      Credit received stock into the central store
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body adjustBalanceRequest true "Quantity and unit"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/balances/{id}/credit [post]
func (h *StockLedgerHandler) Credit(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	balance, err := h.ledgerService.Credit(c.Request.Context(), itemID, req.Quantity, req.Unit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// SetMinimumLevel godoc
// @Summary      Set the minimum stock level for an item
// @Tags         inventory
// @Accept       json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body adjustBalanceRequest true "Minimum quantity and unit"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/balances/{id}/minimum [put]
func (h *StockLedgerHandler) SetMinimumLevel(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.ledgerService.SetMinimumStockLevel(c.Request.Context(), itemID, req.Quantity, req.Unit); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetBalance godoc
// @Summary      Get the stock balance for an item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/balances/{id} [get]
func (h *StockLedgerHandler) GetBalance(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	balance, err := h.ledgerService.GetBalanceDetail(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// ListBalances godoc
// @Summary      List stock balances
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/balances [get]
func (h *StockLedgerHandler) ListBalances(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.ledgerService.ListBalances(c.Request.Context(), buildFilter(req, map[string]interface{}{}))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListBelowMinimum godoc
// @Summary      List items whose balance has fallen below the minimum level
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/balances/below-minimum [get]
func (h *StockLedgerHandler) ListBelowMinimum(c *gin.Context) {
	balances, err := h.ledgerService.ListBelowMinimum(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balances)
}

// IssuanceHandler handles stock issuance API endpoints
type IssuanceHandler struct {
	BaseHandler
	issuanceService *inventoryapp.IssuanceService
}

// NewIssuanceHandler creates a new IssuanceHandler
func NewIssuanceHandler(issuanceService *inventoryapp.IssuanceService) *IssuanceHandler {
	return &IssuanceHandler{issuanceService: issuanceService}
}

// Issue godoc
// @Summary      Issue stock directly to a hotel
// @Description  Debits the central store for every line atomically. If any
// @Description  line lacks sufficient stock the whole issuance is rejected.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.IssueStockRequest true "Hotel and item lines"
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/issuances [post]
func (h *IssuanceHandler) Issue(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.IssueStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.issuanceService.Issue(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// Fulfill godoc
// @Summary      Issue stock against a pending stock request
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.FulfillRequestPayload true "Request ID and issued lines"
// @Success      201 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/issuances/fulfill [post]
func (h *IssuanceHandler) Fulfill(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload inventoryapp.FulfillRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.issuanceService.FulfillStockRequest(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// GetByID godoc
// @Summary      Get an issuance record by ID
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Issuance ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/issuances/{id} [get]
func (h *IssuanceHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	issuanceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid issuance ID format")
		return
	}

	record, err := h.issuanceService.GetIssuance(c.Request.Context(), actor, issuanceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// List godoc
// @Summary      List issuance records
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        hotel_id query string false "Filter by hotel" format(uuid)
// @Param        origin query string false "Filter by origin" Enums(manual, request)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/issuances [get]
func (h *IssuanceHandler) List(c *gin.Context) {
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
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		filters["hotel_id"] = hotelID
	}
	if origin := c.Query("origin"); origin != "" {
		filters["origin"] = origin
	}

	page, err := h.issuanceService.ListIssuances(c.Request.Context(), actor, buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// StockRequestHandler handles stock request API endpoints
type StockRequestHandler struct {
	BaseHandler
	requestService *inventoryapp.StockRequestService
}

// NewStockRequestHandler creates a new StockRequestHandler
func NewStockRequestHandler(requestService *inventoryapp.StockRequestService) *StockRequestHandler {
	return &StockRequestHandler{requestService: requestService}
}

// rejectRequest is the payload for rejecting a stock request
type rejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Create godoc
// @Summary      Raise a stock request for a hotel
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateStockRequestPayload true "Kind, hotel and requested lines"
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/requests [post]
func (h *StockRequestHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload inventoryapp.CreateStockRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// Reject godoc
// @Summary      Reject a pending stock request
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body rejectRequest true "Rejection reason"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/requests/{id}/reject [post]
func (h *StockRequestHandler) Reject(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	request, err := h.requestService.RejectRequest(c.Request.Context(), actor, requestID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// GetByID godoc
// @Summary      Get a stock request by ID
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/requests/{id} [get]
func (h *StockRequestHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), actor, requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List godoc
// @Summary      List stock requests
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        hotel_id query string false "Filter by hotel" format(uuid)
// @Param        status query string false "Filter by status"
// @Param        kind query string false "Filter by kind" Enums(restaurant, outward)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /inventory/requests [get]
func (h *StockRequestHandler) List(c *gin.Context) {
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
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		filters["hotel_id"] = hotelID
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if kind := c.Query("kind"); kind != "" {
		filters["kind"] = kind
	}

	page, err := h.requestService.ListRequests(c.Request.Context(), actor, buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers all stock balance routes
func (h *StockLedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	balances := rg.Group("/inventory/balances")
	{
		balances.GET("", h.ListBalances)
		balances.GET("/below-minimum", h.ListBelowMinimum)
		balances.GET("/:id", h.GetBalance)

		manage := balances.Group("")
		manage.Use(middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector))
		{
			manage.POST("/:id/credit", h.Credit)
			manage.PUT("/:id/minimum", h.SetMinimumLevel)
		}
	}
}

// RegisterRoutes registers all issuance routes
func (h *IssuanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	issuances := rg.Group("/inventory/issuances")
	{
		issuances.GET("", h.List)
		issuances.GET("/:id", h.GetByID)

		manage := issuances.Group("")
		manage.Use(middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector))
		{
			manage.POST("", h.Issue)
			manage.POST("/fulfill", h.Fulfill)
		}
	}
}

// RegisterRoutes registers all stock request routes. Any authenticated role
// may raise or read requests, rejection is reserved for the store.
func (h *StockRequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/inventory/requests")
	{
		requests.GET("", h.List)
		requests.GET("/:id", h.GetByID)
		requests.POST("", h.Create)
		requests.POST("/:id/reject", middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector), h.Reject)
	}
}
