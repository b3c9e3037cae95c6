package handler

import (
	"net/http"

	"agrimarket/internal/fallback"
	"agrimarket/internal/service"

	"github.com/gin-gonic/gin"
)

// MandisResponse is the mandi listing with its price provenance inline.
type MandisResponse struct {
	service.MandiListing
	Source fallback.Source `json:"source"`
	Reason string          `json:"reason,omitempty"`
}

type WeatherResponse struct {
	service.WeatherReport
	Source fallback.Source `json:"source"`
	Reason string          `json:"reason,omitempty"`
}

type MarketResponse struct {
	service.MarketReport
	Source fallback.Source `json:"source"`
	Reason string          `json:"reason,omitempty"`
}

type FarmerHandler struct {
	mandiService   service.MandiService
	weatherService service.WeatherService
	cache          gin.HandlerFunc
}

// NewFarmerHandler wires the farmer market endpoints. cache wraps the mandi
// listing and may be nil.
func NewFarmerHandler(mandiService service.MandiService, weatherService service.WeatherService, cache gin.HandlerFunc) *FarmerHandler {
	if cache == nil {
		cache = func(c *gin.Context) { c.Next() }
	}
	return &FarmerHandler{mandiService: mandiService, weatherService: weatherService, cache: cache}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *FarmerHandler) RegisterRoutes(router *gin.RouterGroup) {
	farmer := router.Group("/farmer")
	{
		farmer.GET("/mandis", h.cache, h.Mandis)
		farmer.POST("/weather", h.Weather)
		farmer.GET("/market", h.Market)
	}
}

// Mandis handles GET /farmer/mandis
// @Summary      Nearby mandis
// @Description  Every mandi ranked by distance with a price for the crop. Prices are simulated when no live feed is configured.
// @Tags         farmer
// @Produce      json
// @Param        lat   query     number  false  "Latitude (default 12.97)"
// @Param        lng   query     number  false  "Longitude (default 77.59)"
// @Param        crop  query     string  false  "Crop (default tomato)"
// @Success      200   {object}  MandisResponse
// @Failure      422   {object}  response.ErrorBody
// @Router       /farmer/mandis [get]
func (h *FarmerHandler) Mandis(c *gin.Context) {
	lat, ok := queryFloat(c, "lat", service.DefaultLat)
	if !ok {
		return
	}
	lng, ok := queryFloat(c, "lng", service.DefaultLng)
	if !ok {
		return
	}

	res, err := h.mandiService.Nearby(c.Request.Context(), lat, lng, c.DefaultQuery("crop", service.DefaultCrop))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MandisResponse{MandiListing: res.Data, Source: res.Source, Reason: res.Reason})
}

// Weather handles POST /farmer/weather
// @Summary      Weather for a location
// @Description  Web-search backed forecast; a placeholder with source=fallback when search is unavailable
// @Tags         farmer
// @Accept       json
// @Produce      json
// @Param        payload  body      service.WeatherRequest  true  "Location"
// @Success      200      {object}  WeatherResponse
// @Failure      422      {object}  response.ErrorBody
// @Router       /farmer/weather [post]
func (h *FarmerHandler) Weather(c *gin.Context) {
	var req service.WeatherRequest
	if !bindJSON(c, &req) {
		return
	}

	res := h.weatherService.Forecast(c.Request.Context(), *req.Lat, *req.Lng, req.Location)
	c.JSON(http.StatusOK, WeatherResponse{WeatherReport: res.Data, Source: res.Source, Reason: res.Reason})
}

// Market handles GET /farmer/market
// @Summary      Market news for a crop
// @Tags         farmer
// @Produce      json
// @Param        crop    query     string  false  "Crop (default tomato)"
// @Param        region  query     string  false  "Region (default India)"
// @Success      200     {object}  MarketResponse
// @Router       /farmer/market [get]
func (h *FarmerHandler) Market(c *gin.Context) {
	res := h.weatherService.MarketInfo(c.Request.Context(), c.Query("crop"), c.Query("region"))
	c.JSON(http.StatusOK, MarketResponse{MarketReport: res.Data, Source: res.Source, Reason: res.Reason})
}
