package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportingapp "github.com/hotelops/backend/internal/application/reporting"
)

// ConsumptionHandler handles restaurant consumption API endpoints
type ConsumptionHandler struct {
	BaseHandler
	consumptionService *reportingapp.ConsumptionService
}

// NewConsumptionHandler creates a new ConsumptionHandler
func NewConsumptionHandler(consumptionService *reportingapp.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{consumptionService: consumptionService}
}

// RecordOrders godoc
// @Summary      Record a day's customer dish orders for a hotel
// @Description  Projects the recorded sales through the recipe book into
// @Description  that day's expected consumption record.
// @Tags         consumption
// @Accept       json
// @Param        request body reportingapp.RecordCustomerOrdersPayload true "Order date and dish sales"
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /consumption/orders [post]
func (h *ConsumptionHandler) RecordOrders(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload reportingapp.RecordCustomerOrdersPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.consumptionService.RecordCustomerOrders(c.Request.Context(), actor, payload); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Submit godoc
// @Summary      Submit a day's actual consumption for a hotel
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Param        request body reportingapp.SubmitConsumptionPayload true "Record date and consumed lines"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /consumption/records [post]
func (h *ConsumptionHandler) Submit(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var payload reportingapp.SubmitConsumptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.consumptionService.SubmitConsumption(c.Request.Context(), actor, payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// GetExpected godoc
// @Summary      Get the expected consumption projection for a hotel and date
// @Tags         consumption
// @Produce      json
// @Param        hotel_id path string true "Hotel ID" format(uuid)
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /consumption/expected/{hotel_id} [get]
func (h *ConsumptionHandler) GetExpected(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	hotelID, err := parseIDParam(c, "hotel_id")
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID format")
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	expected, err := h.consumptionService.GetExpectedConsumption(c.Request.Context(), actor, hotelID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expected)
}

// ListRecords godoc
// @Summary      List a hotel's consumption records over a date range
// @Tags         consumption
// @Produce      json
// @Param        hotel_id path string true "Hotel ID" format(uuid)
// @Param        from query string true "Range start (YYYY-MM-DD)"
// @Param        to query string false "Range end (YYYY-MM-DD), defaults to today"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /consumption/records/{hotel_id} [get]
func (h *ConsumptionHandler) ListRecords(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	hotelID, err := parseIDParam(c, "hotel_id")
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID format")
		return
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing from date, expected YYYY-MM-DD")
		return
	}

	to := time.Now().UTC()
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
	}

	records, err := h.consumptionService.ListConsumption(c.Request.Context(), actor, hotelID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// RegisterRoutes registers all consumption routes
func (h *ConsumptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	consumption := rg.Group("/consumption")
	{
		consumption.POST("/orders", h.RecordOrders)
		consumption.POST("/records", h.Submit)
		consumption.GET("/records/:hotel_id", h.ListRecords)
		consumption.GET("/expected/:hotel_id", h.GetExpected)
	}
}
