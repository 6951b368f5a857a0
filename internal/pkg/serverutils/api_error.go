package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ApiError is the single error type crossing the service boundary. The
// error handler middleware maps it to an HTTP status and a
// {error, code} envelope; anything else becomes a generic 500.
type ApiError struct {
	Status  int
	Code    string
	Message string
	Err     error // underlying cause, logged but never sent to the client
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func NewBadRequest(code, message string) *ApiError {
	return &ApiError{Status: fiber.StatusBadRequest, Code: code, Message: message}
}

func NewUnauthorized(code, message string) *ApiError {
	return &ApiError{Status: fiber.StatusUnauthorized, Code: code, Message: message}
}

func NewNotFound(code, message string) *ApiError {
	return &ApiError{Status: fiber.StatusNotFound, Code: code, Message: message}
}

func NewConflict(code, message string) *ApiError {
	return &ApiError{Status: fiber.StatusConflict, Code: code, Message: message}
}

func NewBadGateway(code, message string, err error) *ApiError {
	return &ApiError{Status: fiber.StatusBadGateway, Code: code, Message: message, Err: err}
}

func NewInternal(code, message string, err error) *ApiError {
	return &ApiError{Status: fiber.StatusInternalServerError, Code: code, Message: message, Err: err}
}

// ErrorHandlerMiddleware converts errors returned by handlers into JSON
// responses. Typed ApiErrors keep their status and code; unknown errors
// are hidden behind a plain 500 so provider internals never leak.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.Status).JSON(fiber.Map{
				"error": apiErr.Message,
				"code":  apiErr.Code,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
