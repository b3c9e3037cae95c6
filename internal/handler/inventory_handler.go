package handler

import (
	"net/http"

	"agrimarket/internal/inventory"
	"agrimarket/internal/middleware"
	"agrimarket/internal/model"
	"agrimarket/internal/service"
	"agrimarket/internal/token"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
	tokens           *token.Manager
	denylist         token.Denylist
}

func NewInventoryHandler(inventoryService service.InventoryService, tokens *token.Manager, denylist token.Denylist) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, tokens: tokens, denylist: denylist}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/retailer/items", middleware.RequireRole(h.tokens, h.denylist, model.RoleRetailer))
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/view", h.View)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// RegisterAliases exposes the item listing outside the /api prefix.
func (h *InventoryHandler) RegisterAliases(router gin.IRoutes) {
	router.GET("/retailer/items", middleware.RequireRole(h.tokens, h.denylist, model.RoleRetailer), h.ListItems)
}

// ListItems handles GET /retailer/items
// @Summary      List inventory items
// @Description  Returns every item of the caller's retailer profile, oldest first
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.InventoryItem
// @Failure      401  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Router       /retailer/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := h.inventoryService.ListItems(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// View handles GET /retailer/items/view
// @Summary      Search and filter inventory
// @Description  Case-insensitive name search, then one of the filters all, low_stock, high_quantity, recent. Stats cover all items.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name substring"
// @Param        filter  query     string  false  "all | low_stock | high_quantity | recent"
// @Success      200     {object}  inventory.View
// @Failure      401     {object}  response.ErrorBody
// @Router       /retailer/items/view [get]
func (h *InventoryHandler) View(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := h.inventoryService.View(c.Request.Context(), userID, c.Query("search"), inventory.ParseFilter(c.Query("filter")))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetItem handles GET /retailer/items/:id
// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  model.InventoryItem
// @Failure      404  {object}  response.ErrorBody
// @Router       /retailer/items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /retailer/items
// @Summary      Create an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateItemRequest  true  "Item"
// @Success      201      {object}  model.InventoryItem
// @Failure      422      {object}  response.ErrorBody
// @Router       /retailer/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req service.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /retailer/items/:id
// @Summary      Update an inventory item
// @Description  Partial update; omitted fields keep their value
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "Item ID"
// @Param        payload  body      service.UpdateItemRequest  true  "Changed fields"
// @Success      200      {object}  model.InventoryItem
// @Failure      404      {object}  response.ErrorBody
// @Failure      422      {object}  response.ErrorBody
// @Router       /retailer/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), userID, id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /retailer/items/:id
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      404  {object}  response.ErrorBody
// @Router       /retailer/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
