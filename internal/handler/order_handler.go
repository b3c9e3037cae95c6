package handler

import (
	"net/http"

	"agrimarket/internal/middleware"
	"agrimarket/internal/model"
	"agrimarket/internal/service"
	"agrimarket/internal/token"
	"agrimarket/pkg/pagination"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
	tokens       *token.Manager
	denylist     token.Denylist
}

func NewOrderHandler(orderService service.OrderService, tokens *token.Manager, denylist token.Denylist) *OrderHandler {
	return &OrderHandler{orderService: orderService, tokens: tokens, denylist: denylist}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/retailer/orders", middleware.RequireRole(h.tokens, h.denylist, model.RoleRetailer))
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

// ListOrders handles GET /retailer/orders
// @Summary      List orders
// @Description  Paginated orders of the caller's retailer profile, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Page[model.RetailerOrder]
// @Failure      401    {object}  response.ErrorBody
// @Router       /retailer/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	p := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), userID, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPage(orders, total, p.Page, p.Limit))
}

// GetOrder handles GET /retailer/orders/:id
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  model.RetailerOrder
// @Failure      404  {object}  response.ErrorBody
// @Router       /retailer/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /retailer/orders
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateOrderRequest  true  "Order"
// @Success      201      {object}  model.RetailerOrder
// @Failure      422      {object}  response.ErrorBody
// @Router       /retailer/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req service.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles PUT /retailer/orders/:id
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                         true  "Order ID"
// @Param        payload  body      service.UpdateOrderRequest  true  "Changed fields"
// @Success      200      {object}  model.RetailerOrder
// @Failure      404      {object}  response.ErrorBody
// @Failure      422      {object}  response.ErrorBody
// @Router       /retailer/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), userID, id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /retailer/orders/:id
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path  int  true  "Order ID"
// @Success      204
// @Failure      404  {object}  response.ErrorBody
// @Router       /retailer/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
