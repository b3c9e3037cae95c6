package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/internal/token"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
	CtxClaims   = "claims"

	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies.
// Cross-origin deployments need secure=true, which also selects SameSite=None.
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(AccessCookie, accessToken, int(accessTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(RefreshCookie, refreshToken, int(refreshTTL.Seconds()), "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(AccessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", secure, true)
}

// bearerToken reads the Authorization header first, then the cookie. On
// failure it returns the message for the client.
func bearerToken(c *gin.Context) (tok string, problem string) {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
			return "", "Invalid authorization format. Expected 'Bearer <token>'"
		}
		return strings.TrimSpace(tok), ""
	}
	if tok, err := c.Cookie(AccessCookie); err == nil && tok != "" {
		return tok, ""
	}
	return "", "Not authenticated"
}

// RequireAuth validates the access token and stores its claims in the context.
func RequireAuth(tokens *token.Manager, denylist token.Denylist) gin.HandlerFunc {
	return RequireRole(tokens, denylist)
}

// RequireRole validates the access token and checks the role against
// allowedRoles. No roles means any authenticated user.
func RequireRole(tokens *token.Manager, denylist token.Denylist, allowedRoles ...model.Role) gin.HandlerFunc {
	if denylist == nil {
		denylist = token.NopDenylist{}
	}
	return func(c *gin.Context) {
		raw, problem := bearerToken(c)
		if problem != "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(problem))
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, token.ErrExpired) {
				msg = "Token expired"
			}
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(msg))
			return
		}

		// A denylist outage fails open; the error is surfaced by Logging.
		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		switch {
		case err != nil:
			_ = c.Error(fmt.Errorf("denylist check for jti %s: %w", claims.ID, err))
		case revoked:
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Token revoked"))
			return
		}

		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("Access denied: insufficient permissions"))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// UserID returns the authenticated user id, or errs.ErrUnauthorized when the
// route is not behind RequireAuth.
func UserID(c *gin.Context) (uint, error) {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok && id != 0 {
			return id, nil
		}
	}
	return 0, errs.ErrUnauthorized
}

// Claims returns the parsed access token claims, nil when absent.
func Claims(c *gin.Context) *token.Claims {
	if v, ok := c.Get(CtxClaims); ok {
		if cl, ok := v.(*token.Claims); ok {
			return cl
		}
	}
	return nil
}
