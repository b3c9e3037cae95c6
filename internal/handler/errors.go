package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/pkg/response"

	"github.com/gin-gonic/gin"
)

// Client-facing messages of the auth endpoints.
const (
	msgInvalidCredentials = "Invalid username or password"
	msgDuplicateUsername  = "Username already registered"
	msgTooManyAttempts    = "Too many failed login attempts. Try again later."
)

// writeError maps a service error onto a status code and a {detail} body.
// Unexpected errors are attached to the context for the request logger.
func writeError(c *gin.Context, err error) {
	var verr *errs.ValidationError
	var rl *errs.RateLimitError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, response.Detail(verr.Fields))
	case errors.As(err, &rl):
		secs := int(math.Ceil(rl.RetryAfter.Seconds()))
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, response.Error(msgTooManyAttempts))
	case errors.Is(err, errs.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error(msgInvalidCredentials))
	case errors.Is(err, errs.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, response.Error(msgDuplicateUsername))
	case errors.Is(err, errs.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, response.Error("Invalid role. Must be one of: "+model.RoleNames()))
	case errors.Is(err, errs.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, response.Error("Could not validate credentials"))
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error("Access denied: insufficient permissions"))
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error("Not found"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error"))
	}
}

// bindJSON decodes the body into v and answers 422 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.Detail(errs.FromBinding(err).Fields))
		return false
	}
	return true
}

// pathID parses the :id route parameter, answering 422 when it is not a
// positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnprocessableEntity, response.Detail([]errs.FieldError{{
			Loc:  []string{"path", "id"},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		}}))
		return 0, false
	}
	return uint(id), true
}

// queryFloat reads a float query parameter, falling back to def when absent.
func queryFloat(c *gin.Context, name string, def float64) (float64, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		c.JSON(http.StatusUnprocessableEntity, response.Detail([]errs.FieldError{{
			Loc:  []string{"query", name},
			Msg:  "Input should be a valid number",
			Type: "float_parsing",
		}}))
		return 0, false
	}
	return f, true
}
