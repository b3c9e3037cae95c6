package handler

import (
	"net/http"
	"time"

	"agrimarket/internal/middleware"
	"agrimarket/internal/service"
	"agrimarket/internal/token"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the HttpOnly token cookies set on login.
type CookieConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

type AuthHandler struct {
	authService service.AuthService
	tokens      *token.Manager
	denylist    token.Denylist
	cookies     CookieConfig
}

// NewAuthHandler sets up the routing dependencies for auth endpoints
func NewAuthHandler(authService service.AuthService, tokens *token.Manager, denylist token.Denylist, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, denylist: denylist, cookies: cookies}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/refresh", h.Refresh)
	router.POST("/logout", middleware.RequireAuth(h.tokens, h.denylist), h.Logout)
}

// RegisterAliases exposes register and login outside the /api prefix.
func (h *AuthHandler) RegisterAliases(router gin.IRoutes) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

// Register handles POST /register
// @Summary      Register a user
// @Description  Creates a user with one of the roles farmer, mandi_owner, retailer or admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration payload"
// @Success      201      {object}  service.UserResponse
// @Failure      400      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Failure      422      {object}  response.ErrorBody
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /login to authenticate and return a JWT token
// @Summary      Login user
// @Description  Exchanges username and password for an access token and a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  service.TokenResponse
// @Failure      401      {object}  response.ErrorBody
// @Failure      422      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetTokenCookies(c, res.AccessToken, res.RefreshToken, h.cookies.AccessTTL, h.cookies.RefreshTTL, h.cookies.Secure)
	c.JSON(http.StatusOK, res)
}

// Refresh handles POST /refresh
// @Summary      Refresh tokens
// @Description  Rotates a refresh token, from the body or the refresh_token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RefreshTokenRequest  false  "Refresh token"
// @Success      200      {object}  service.TokenResponse
// @Failure      401      {object}  response.ErrorBody
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req service.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(middleware.RefreshCookie)
	}

	res, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.ClearTokenCookies(c, h.cookies.Secure)
		writeError(c, err)
		return
	}

	middleware.SetTokenCookies(c, res.AccessToken, res.RefreshToken, h.cookies.AccessTTL, h.cookies.RefreshTTL, h.cookies.Secure)
	c.JSON(http.StatusOK, res)
}

// Logout handles POST /logout
// @Summary      Logout
// @Description  Revokes the access token and, when given, the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.LogoutRequest  false  "Refresh token to revoke"
// @Success      200      {object}  response.Message
// @Failure      401      {object}  response.ErrorBody
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req service.LogoutRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(middleware.RefreshCookie)
	}

	if err := h.authService.Logout(c.Request.Context(), middleware.Claims(c), req.RefreshToken); err != nil {
		writeError(c, err)
		return
	}

	middleware.ClearTokenCookies(c, h.cookies.Secure)
	c.JSON(http.StatusOK, response.Message{Message: "Logged out"})
}
