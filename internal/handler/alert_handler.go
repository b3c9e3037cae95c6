package handler

import (
	"net/http"
	"strconv"

	"agrimarket/internal/middleware"
	"agrimarket/internal/service"
	"agrimarket/internal/token"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertService service.AlertService
	tokens       *token.Manager
	denylist     token.Denylist
}

func NewAlertHandler(alertService service.AlertService, tokens *token.Manager, denylist token.Denylist) *AlertHandler {
	return &AlertHandler{alertService: alertService, tokens: tokens, denylist: denylist}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts", middleware.RequireAuth(h.tokens, h.denylist))
	{
		alerts.GET("", h.ListAlerts)
		alerts.PUT("/:id/seen", h.MarkSeen)
	}
}

// ListAlerts handles GET /alerts
// @Summary      List own alerts
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        unseen  query     bool  false  "Only alerts not yet seen"
// @Param        limit   query     int   false  "Max alerts (default 50)"
// @Success      200     {array}   model.Alert
// @Failure      401     {object}  response.ErrorBody
// @Router       /alerts [get]
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	unseen, _ := strconv.ParseBool(c.Query("unseen"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	alerts, err := h.alertService.List(c.Request.Context(), userID, unseen, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// MarkSeen handles PUT /alerts/:id/seen
// @Summary      Mark an alert seen
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Alert ID"
// @Success      200  {object}  response.Message
// @Failure      404  {object}  response.ErrorBody
// @Router       /alerts/{id}/seen [put]
func (h *AlertHandler) MarkSeen(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.alertService.MarkSeen(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message{Message: "Alert marked as seen"})
}
