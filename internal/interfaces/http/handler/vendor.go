package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/hotelops/backend/internal/application/partner"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// VendorHandler handles vendor API endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create godoc
// @Summary      Register a vendor
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateVendorPayload true "Vendor attributes"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload partnerapp.CreateVendorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, vendor)
}

// Deactivate godoc
// @Summary      Deactivate a vendor
// @Tags         partners
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/vendors/{id}/deactivate [post]
func (h *VendorHandler) Deactivate(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	vendorID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.DeactivateVendor(c.Request.Context(), actor, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// GetByID godoc
// @Summary      Get a vendor by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	vendorID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// List godoc
// @Summary      List vendors
// @Tags         partners
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        active query bool false "Filter by active flag"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if active := c.Query("active"); active != "" {
		filters["active"] = active == "true"
	}

	page, err := h.vendorService.ListVendors(c.Request.Context(), buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers all vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/partners/vendors")
	{
		vendors.GET("", h.List)
		vendors.GET("/:id", h.GetByID)

		manage := vendors.Group("")
		manage.Use(middleware.RequireRoles(shared.RoleManagingDirector))
		{
			manage.POST("", h.Create)
			manage.POST("/:id/deactivate", h.Deactivate)
		}
	}
}
