// Package httpapi is the HTTP host: an Echo-based service exposing
// parse/analyze endpoints over the core, adapted from the teacher's
// internal/api (response envelope, router, handlers) but re-pointed at
// the schedule-core domain instead of hospital scheduling.
package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xerschedule/core/internal/validation"
)

// Response is the standard envelope for every endpoint.
type Response struct {
	Data       interface{}         `json:"data,omitempty"`
	Validation *validation.Result `json:"validation,omitempty"`
	Error      *ErrorBody          `json:"error,omitempty"`
	Meta       ResponseMeta        `json:"meta"`
}

// ErrorBody carries a machine-readable code plus a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta is timestamp/request-id metadata on every response.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

func meta(c echo.Context) ResponseMeta {
	return ResponseMeta{Timestamp: time.Now().UTC(), RequestID: c.Response().Header().Get(echo.HeaderXRequestID)}
}

// SuccessResponse writes a 2xx response carrying data and an optional
// validation ledger.
func SuccessResponse(c echo.Context, status int, data interface{}, result *validation.Result) error {
	return c.JSON(status, Response{Data: data, Validation: result, Meta: meta(c)})
}

// ErrorResponse writes an error response with the given status/code/message.
func ErrorResponse(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Response{Error: &ErrorBody{Code: code, Message: message}, Meta: meta(c)})
}

// errorStatusFor maps a schederr.Kind to an HTTP status: malformed or
// oversized input is a client error, everything else defaults to 500.
func errorStatusFor(kind string) int {
	switch kind {
	case "EmptyFile", "Encoding", "InvalidFormat", "MissingHeader", "MissingRequiredTable", "FileTooLarge", "TooManyRows", "XmlParsingFailed", "BinaryFormatNotFullySupported":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
