package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/hotelops/backend/internal/application/partner"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// HotelHandler handles hotel property API endpoints
type HotelHandler struct {
	BaseHandler
	hotelService *partnerapp.HotelService
}

// NewHotelHandler creates a new HotelHandler
func NewHotelHandler(hotelService *partnerapp.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// Create godoc
// @Summary      Register a hotel property
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateHotelPayload true "Hotel attributes"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/hotels [post]
func (h *HotelHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload partnerapp.CreateHotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, hotel)
}

// Deactivate godoc
// @Summary      Deactivate a hotel property
// @Tags         partners
// @Produce      json
// @Param        id path string true "Hotel ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/hotels/{id}/deactivate [post]
func (h *HotelHandler) Deactivate(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	hotelID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID format")
		return
	}

	hotel, err := h.hotelService.DeactivateHotel(c.Request.Context(), actor, hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hotel)
}

// GetByID godoc
// @Summary      Get a hotel property by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Hotel ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/hotels/{id} [get]
func (h *HotelHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	hotelID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID format")
		return
	}

	hotel, err := h.hotelService.GetHotel(c.Request.Context(), actor, hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hotel)
}

// List godoc
// @Summary      List hotel properties
// @Tags         partners
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        active query bool false "Filter by active flag"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /partners/hotels [get]
func (h *HotelHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if active := c.Query("active"); active != "" {
		filters["active"] = active == "true"
	}

	page, err := h.hotelService.ListHotels(c.Request.Context(), buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers all hotel routes
func (h *HotelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/partners/hotels")
	{
		hotels.GET("", h.List)
		hotels.GET("/:id", h.GetByID)

		manage := hotels.Group("")
		manage.Use(middleware.RequireRoles(shared.RoleManagingDirector))
		{
			manage.POST("", h.Create)
			manage.POST("/:id/deactivate", h.Deactivate)
		}
	}
}
