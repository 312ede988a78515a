// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	domainerrors "survey/internal/domain/errors"
)

// ErrorMiddleware maps errors escaping the handlers onto HTTP responses.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates the error handling middleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is installed as Echo's HTTPErrorHandler. AppError values
// carry their own status and message; everything else is a 500 with no
// internals leaked.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.HTTPCode(), domainerrors.ErrorResponse{
			Detail: appErr.Message(),
			Error:  &domainerrors.ErrorInfo{Code: appErr.ErrorCode()},
		})

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		detail, ok := httpErr.Message.(string)
		if !ok {
			detail = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, domainerrors.ErrorResponse{Detail: detail})

		return
	}

	m.logger.Error("unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = c.JSON(http.StatusInternalServerError, domainerrors.ErrorResponse{
		Detail: "Internal server error",
	})
}
