package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint. Overridden at link time.
var Version = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// RegisterRoutes binds / and /api/health on the engine.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Root)
	router.GET("/api/health", h.Health)
}

// Root handles GET /
// @Summary      API index
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Supply Chain Management API",
		"version": Version,
		"endpoints": gin.H{
			"register":  "/api/register",
			"login":     "/api/login",
			"me":        "/api/me",
			"inventory": "/api/retailer/items",
			"orders":    "/api/retailer/orders",
			"mandis":    "/api/farmer/mandis",
			"weather":   "/api/farmer/weather",
			"alerts":    "/api/alerts",
			"docs":      "/swagger/index.html",
		},
	})
}

// Health handles GET /api/health
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Supply Chain API"})
}
