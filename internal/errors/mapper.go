package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Map converts repo/infra errors into HTTP status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")

	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "request timed out")

	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(499, "request was canceled")

	default:
		// store-unavailable and everything else: retryable server failure
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// InvalidArgument creates a 400 error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// NotFound creates a 404 error for lookups where the caller must know.
func NotFound(msg string) error {
	return echo.NewHTTPError(http.StatusNotFound, msg)
}
