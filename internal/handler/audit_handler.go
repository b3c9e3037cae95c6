package handler

import (
	"net/http"
	"strconv"

	"agrimarket/internal/middleware"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
	"agrimarket/internal/service"
	"agrimarket/internal/token"
	"agrimarket/pkg/pagination"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	tokens       *token.Manager
	denylist     token.Denylist
}

func NewAuditHandler(auditService service.AuditService, tokens *token.Manager, denylist token.Denylist) *AuditHandler {
	return &AuditHandler{auditService: auditService, tokens: tokens, denylist: denylist}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/audit-logs")
	group.Use(middleware.RequireRole(h.tokens, h.denylist, model.RoleAdmin))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs returns one page of audit rows, newest first
// @Summary      Get audit logs
// @Description  Registration, profile, inventory and order changes, newest first
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Number of items per page (default 20)"
// @Param        action   query     string  false  "Filter by action, e.g. CREATE_ITEM"
// @Param        user_id  query     int     false  "Filter by user"
// @Success      200      {object}  response.Page[service.AuditLogResponse]
// @Failure      403      {object}  response.ErrorBody
// @Router       /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.Parse(c)
	filter := repository.AuditFilter{Action: c.Query("action")}
	if uid, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		filter.UserID = uint(uid)
	}

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), filter, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPage(logs, total, p.Page, p.Limit))
}
