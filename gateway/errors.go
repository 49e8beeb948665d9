package gateway

import (
	"errors"
	"net/http"

	"github.com/example/adoreshop/pkg/order"
	"github.com/example/adoreshop/pkg/session"
	"github.com/example/adoreshop/pkg/studio"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return http.StatusConflict, "empty_cart"
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, studio.ErrStudioClosed):
		return http.StatusConflict, "studio_closed"
	case errors.Is(err, order.ErrMissingDetails):
		return http.StatusBadRequest, "missing_details"
	case errors.Is(err, session.ErrNameRequired):
		return http.StatusBadRequest, "name_required"
	case errors.Is(err, order.ErrItemNotFound),
		errors.Is(err, studio.ErrUnknownEntry),
		errors.Is(err, studio.ErrUnknownElement):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, session.ErrNotLoggedIn):
		return http.StatusUnauthorized, "login_required"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError maps err to a status. Known domain errors carry the current
// view so the client can re-render; unknown ones are logged and hidden.
func (g *Gateway) writeError(c *gin.Context, err error, view interface{}) {
	status, code := errorStatus(err)
	body := gin.H{"error": code}
	switch status {
	case http.StatusInternalServerError:
		g.logger.Error("Request failed",
			zap.String("client_id", clientID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	case http.StatusUnauthorized:
		body["redirect"] = "/login"
	default:
		body["message"] = err.Error()
		if view != nil {
			body["state"] = view
		}
	}
	c.JSON(status, body)
}
