package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/service"
)

// serviceError maps edge-mutation-core sentinel errors to HTTP errors.
// Anything unclassified is surfaced as a generic 500; internals are logged
// by the router's error handler, never leaked to the caller.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	default:
		return err
	}
}

// parseUserIDParam parses a numeric user id path parameter.
func parseUserIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}
	return uint(id), nil
}
