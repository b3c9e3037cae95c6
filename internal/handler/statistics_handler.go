package handler

import (
	"net/http"
	"strconv"

	"agrimarket/internal/errs"
	"agrimarket/internal/middleware"
	"agrimarket/internal/model"
	"agrimarket/internal/service"
	"agrimarket/internal/token"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	tokens            *token.Manager
	denylist          token.Denylist
}

func NewStatisticsHandler(statisticsService service.StatisticsService, tokens *token.Manager, denylist token.Denylist) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, tokens: tokens, denylist: denylist}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/retailer/orders/summary", middleware.RequireRole(h.tokens, h.denylist, model.RoleRetailer), h.GetOrderSummary)
}

// @Summary      Order summary
// @Description  Totals over the last N days and the five most ordered items
// @Tags         orders
// @Produce      json
// @Param        days  query     int  false  "Look-back window in days (default 30, max 365)"
// @Success      200   {object}  model.OrderSummary
// @Failure      401   {object}  response.ErrorBody
// @Failure      422   {object}  response.ErrorBody
// @Security     BearerAuth
// @Router       /retailer/orders/summary [get]
func (h *StatisticsHandler) GetOrderSummary(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	days := service.DefaultSummaryDays
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			c.JSON(http.StatusUnprocessableEntity, response.Detail([]errs.FieldError{{
				Loc:  []string{"query", "days"},
				Msg:  "Input should be a positive integer",
				Type: "int_parsing",
			}}))
			return
		}
	}

	summary, err := h.statisticsService.GetOrderSummary(c.Request.Context(), userID, days)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
