package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/hotelops/backend/internal/application/catalog"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// ItemHandler handles catalog item API endpoints
type ItemHandler struct {
	BaseHandler
	itemService *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create godoc
// @Summary      Create a catalog item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateItemPayload true "Item attributes"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload catalogapp.CreateItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Update godoc
// @Summary      Update a catalog item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body catalogapp.UpdateItemPayload true "Changed attributes"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var payload catalogapp.UpdateItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), actor, itemID, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete an unreferenced catalog item
// @Tags         catalog
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), actor, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetByID godoc
// @Summary      Get a catalog item by ID
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List godoc
// @Summary      List catalog items
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        category query string false "Filter by category"
// @Param        name query string false "Filter by name substring"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}
	if name := c.Query("name"); name != "" {
		filters["name"] = name
	}

	page, err := h.itemService.ListItems(c.Request.Context(), buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers all catalog item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/catalog/items")
	{
		items.GET("", h.List)
		items.GET("/:id", h.GetByID)

		manage := items.Group("")
		manage.Use(middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector))
		{
			manage.POST("", h.Create)
			manage.PUT("/:id", h.Update)
			manage.DELETE("/:id", h.Delete)
		}
	}
}
