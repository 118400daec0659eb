package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/hotelops/backend/internal/application/catalog"
	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/interfaces/http/dto"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
)

// RecipeHandler handles recipe API endpoints
type RecipeHandler struct {
	BaseHandler
	recipeService *catalogapp.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService *catalogapp.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// Create godoc
// @Summary      Register a recipe for a dish
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateRecipePayload true "Dish name and ingredient lines"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload catalogapp.CreateRecipePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, recipe)
}

// Delete godoc
// @Summary      Delete a recipe
// @Tags         catalog
// @Param        id path string true "Recipe ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), actor, recipeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetByID godoc
// @Summary      Get a recipe with its ingredient lines
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recipe)
}

// List godoc
// @Summary      List recipes
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        dish_name query string false "Filter by dish name substring"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /catalog/recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if dishName := c.Query("dish_name"); dishName != "" {
		filters["dish_name"] = dishName
	}

	page, err := h.recipeService.ListRecipes(c.Request.Context(), buildFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers all recipe routes
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/catalog/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/:id", h.GetByID)

		manage := recipes.Group("")
		manage.Use(middleware.RequireRoles(shared.RoleStoreManager, shared.RoleManagingDirector))
		{
			manage.POST("", h.Create)
			manage.DELETE("/:id", h.Delete)
		}
	}
}
