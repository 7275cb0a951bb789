package handlers

import (
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindUnauthorized:     http.StatusUnauthorized,
	apperr.KindNotFound:         http.StatusNotFound,
	apperr.KindInvalidArgument:  http.StatusBadRequest,
	apperr.KindAlreadyExists:    http.StatusConflict,
	apperr.KindInvalidOperation: http.StatusUnprocessableEntity,
}

// httpError converts a service error into the echo error returned to the client.
// Errors without a kind are reported as 500 and keep the cause internal.
func httpError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	if status, ok := kindStatus[apperr.KindOf(err)]; ok {
		var ae *apperr.Error
		errors.As(err, &ae)
		return echo.NewHTTPError(status, ae.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// bind decodes and validates a request body
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
