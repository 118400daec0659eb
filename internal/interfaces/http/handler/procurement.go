package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procurementapp "github.com/hotelops/backend/internal/application/procurement"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// ProcurementHandler handles procurement request, order and bill API
// endpoints
type ProcurementHandler struct {
	BaseHandler
	procurementService *procurementapp.ProcurementService
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(procurementService *procurementapp.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurementService: procurementService}
}

// cancelOrderRequest is the payload for cancelling a procurement order
type cancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CreateRequest godoc
// @Summary      Raise a procurement request
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreateRequestPayload true "Requested item lines"
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/requests [post]
func (h *ProcurementHandler) CreateRequest(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload procurementapp.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	request, err := h.procurementService.CreateRequest(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

type decideRequestFn func(ctx context.Context, actor shared.Actor, requestID uuid.UUID, payload procurementapp.DecideRequestPayload) (*procurementapp.RequestResponse, error)

func (h *ProcurementHandler) decideRequest(c *gin.Context, decide decideRequestFn) {
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

	// note is optional, an empty body is fine
	var payload procurementapp.DecideRequestPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			h.BindError(c, err)
			return
		}
	}

	request, err := decide(c.Request.Context(), actor, requestID, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// ApproveRequest godoc
// @Summary      Approve a pending procurement request
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body procurementapp.DecideRequestPayload false "Optional decision note"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/requests/{id}/approve [post]
func (h *ProcurementHandler) ApproveRequest(c *gin.Context) {
	h.decideRequest(c, h.procurementService.ApproveRequest)
}

// RejectRequest godoc
// @Summary      Reject a pending procurement request
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body procurementapp.DecideRequestPayload false "Optional decision note"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/requests/{id}/reject [post]
func (h *ProcurementHandler) RejectRequest(c *gin.Context) {
	h.decideRequest(c, h.procurementService.RejectRequest)
}

// GetRequest godoc
// @Summary      Get a procurement request by ID
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/requests/{id} [get]
func (h *ProcurementHandler) GetRequest(c *gin.Context) {
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

	request, err := h.procurementService.GetRequest(c.Request.Context(), actor, requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// ListRequests godoc
// @Summary      List procurement requests
// @Tags         procurement
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Param        hotel_id query string false "Filter by hotel" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/requests [get]
func (h *ProcurementHandler) ListRequests(c *gin.Context) {
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
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		filters["hotel_id"] = hotelID
	}

	page, err := h.procurementService.ListRequests(c.Request.Context(), actor, buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CreateOrder godoc
// @Summary      Place a purchase order against an approved request
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreateOrderPayload true "Request, vendor and ordered lines"
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/orders [post]
func (h *ProcurementHandler) CreateOrder(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload procurementapp.CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.procurementService.CreateOrder(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// CancelOrder godoc
// @Summary      Cancel an open purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body cancelOrderRequest true "Cancellation reason"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/cancel [post]
func (h *ProcurementHandler) CancelOrder(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.procurementService.CancelOrder(c.Request.Context(), actor, orderID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetOrder godoc
// @Summary      Get a purchase order by ID
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/orders/{id} [get]
func (h *ProcurementHandler) GetOrder(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.procurementService.GetOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListOrders godoc
// @Summary      List purchase orders
// @Tags         procurement
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Param        vendor_id query string false "Filter by vendor" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/orders [get]
func (h *ProcurementHandler) ListOrders(c *gin.Context) {
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
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		filters["vendor_id"] = vendorID
	}

	page, err := h.procurementService.ListOrders(c.Request.Context(), actor, buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UploadBill godoc
// @Summary      Record a vendor bill against a purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.UploadBillPayload true "Bill header and lines"
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/bills [post]
func (h *ProcurementHandler) UploadBill(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload procurementapp.UploadBillPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.procurementService.UploadBill(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// GetBill godoc
// @Summary      Get a vendor bill by ID
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/bills/{id} [get]
func (h *ProcurementHandler) GetBill(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	billID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.procurementService.GetBill(c.Request.Context(), actor, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// ListBillsForOrder godoc
// @Summary      List the bills recorded against a purchase order
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /procurement/orders/{id}/bills [get]
func (h *ProcurementHandler) ListBillsForOrder(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	bills, err := h.procurementService.ListBillsForOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bills)
}

// RegisterRoutes registers all procurement routes
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	proc := rg.Group("/procurement")
	{
		requests := proc.Group("/requests")
		{
			requests.GET("", h.ListRequests)
			requests.GET("/:id", h.GetRequest)
			requests.POST("", middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector), h.CreateRequest)
			requests.POST("/:id/approve", middleware.RequireRoles(shared.RoleManagingDirector), h.ApproveRequest)
			requests.POST("/:id/reject", middleware.RequireRoles(shared.RoleManagingDirector), h.RejectRequest)
		}

		orders := proc.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.GET("/:id", h.GetOrder)
			orders.GET("/:id/bills", h.ListBillsForOrder)

			manage := orders.Group("")
			manage.Use(middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector))
			{
				manage.POST("", h.CreateOrder)
				manage.POST("/:id/cancel", h.CancelOrder)
			}
		}

		bills := proc.Group("/bills")
		{
			bills.GET("/:id", h.GetBill)
			bills.POST("", middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector), h.UploadBill)
		}
	}
}
