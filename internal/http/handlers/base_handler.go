// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/modules/location"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/modules/pricing"
	"swiftlogix/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module sentinel errors onto the HTTP taxonomy.
// Anything unrecognized is logged in full and surfaced opaquely.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest),
		errors.Is(err, user.ErrBadRequest),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, location.ErrInvalidCoordinates),
		errors.Is(err, auth.ErrInvalidResetToken):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, order.ErrForbidden), errors.Is(err, user.ErrBlocked):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrUnavailable),
		errors.Is(err, order.ErrInvalidState),
		errors.Is(err, order.ErrConflict),
		errors.Is(err, user.ErrEmailTaken):
		writeError(c, http.StatusConflict, err.Error())
	default:
		slog.Error("internal error", "error", err, "path", c.Request.URL.Path)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
