package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"foxbuy-watchdog/internal/domain"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"
	var fields map[string]string

	var fiberErr *fiber.Error
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		}
	case errors.As(err, &validationErr):
		code = fiber.StatusUnprocessableEntity
		errorCode = "VALIDATION_ERROR"
		message = validationErr.Message
		fields = validationErr.Fields
	case errors.Is(err, domain.ErrNotAuthorized):
		code = fiber.StatusForbidden
		errorCode = "NOT_AUTHORIZED"
		message = "User is not VIP and cannot have WATCHDOG."
	case errors.Is(err, domain.ErrDuplicateCriteria):
		code = fiber.StatusConflict
		errorCode = "DUPLICATE_CRITERIA"
		message = "Watchdog with the same criteria already exists."
	case errors.Is(err, domain.ErrWatchdogNotFound):
		code = fiber.StatusNotFound
		errorCode = "NOT_FOUND"
		message = "Watchdog not found."
	case errors.Is(err, domain.ErrForbidden):
		code = fiber.StatusForbidden
		errorCode = "FORBIDDEN"
		message = "Insufficient permissions for this operation"
	case errors.Is(err, domain.ErrDispatchFailure):
		code = fiber.StatusBadGateway
		errorCode = "DISPATCH_FAILURE"
		message = "One or more notifications could not be delivered"
	case errors.Is(err, domain.ErrStoreFailure):
		code = fiber.StatusServiceUnavailable
		errorCode = "STORE_FAILURE"
		message = "Storage is temporarily unavailable"
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		Fields:  fields,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
