package handler

import (
	"net/http"

	"agrimarket/internal/middleware"
	"agrimarket/internal/model"
	"agrimarket/internal/service"
	"agrimarket/internal/token"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	tokens      *token.Manager
	denylist    token.Denylist
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService, tokens *token.Manager, denylist token.Denylist) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens, denylist: denylist}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.RequireAuth(h.tokens, h.denylist)
	router.GET("/me", authed, h.GetMe)
	router.PUT("/me", authed, h.UpdateProfile)

	retailer := middleware.RequireRole(h.tokens, h.denylist, model.RoleRetailer)
	router.GET("/retailer/profile", retailer, h.GetMe)
	router.PUT("/retailer/profile", retailer, h.UpdateProfile)
}

// GetMe handles GET /me to return current authenticated user based on JWT
// @Summary      Get current user
// @Description  Get the currently authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}  service.UserResponse
// @Failure      401      {object}  response.ErrorBody
// @Failure      404      {object}  response.ErrorBody
// @Router       /me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /me
// @Summary      Update own profile
// @Description  Partially updates contact, location, coordinates and language
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  service.UserResponse
// @Failure      401      {object}  response.ErrorBody
// @Failure      422      {object}  response.ErrorBody
// @Router       /me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req service.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
