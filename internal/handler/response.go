package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/item-service/internal/service"
	"go.uber.org/zap"
)

// Not-found messages per operation.
const (
	msgItemNotFound   = "Item not found"
	msgUpdateNotFound = "data not update"
	msgDeleteNotFound = "couldn't delete"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}

// result is what every handler branch resolves into. respond is the only
// place that writes it, so each request gets exactly one response.
type result struct {
	status int
	body   any
}

func success(status int, body any) result {
	return result{status: status, body: body}
}

func badRequest(message string) result {
	return result{status: http.StatusBadRequest, body: NewErrorResponse("bad_request", message)}
}

// bindFailure reports a body that could not be decoded. A body without a JSON
// content type is 415, anything else is malformed input.
func bindFailure(err error) result {
	if errors.Is(err, echo.ErrUnsupportedMediaType) {
		return result{
			status: http.StatusUnsupportedMediaType,
			body:   NewErrorResponse("unsupported_media_type", "content type must be application/json"),
		}
	}
	return badRequest("invalid json")
}

// failure maps a service error onto a status. Unclassified errors are backend
// failures: they are logged and reported as 500 with message and the detail.
func failure(c echo.Context, log *zap.Logger, err error, notFound, message string) result {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return result{status: http.StatusNotFound, body: NewErrorResponse("not_found", notFound)}
	case errors.Is(err, service.ErrInvalidID):
		return badRequest("invalid id")
	}
	log.Error(message,
		zap.Error(err),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
	)
	body := NewErrorResponse("internal_error", message)
	body.Error = err.Error()
	return result{status: http.StatusInternalServerError, body: body}
}

func respond(c echo.Context, r result) error {
	return c.JSON(r.status, r.body)
}
