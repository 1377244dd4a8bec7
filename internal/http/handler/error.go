package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"noteapi/internal/http/middleware"
	"noteapi/internal/service"
)

// errorPayload is the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internals. code is a machine-readable short code, message a safe
// human-readable one.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeServiceError maps service sentinel errors onto HTTP responses.
// Anything unrecognized is treated as a store failure.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFolderNotFound):
		return writeError(c, fiber.StatusNotFound, "FOLDER_NOT_FOUND", "folder not found")
	case errors.Is(err, service.ErrNoteNotFound):
		return writeError(c, fiber.StatusNotFound, "NOTE_NOT_FOUND", "note not found")
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "USER_NOT_FOUND", "user not found")
	case errors.Is(err, service.ErrAttachmentNotFound):
		return writeError(c, fiber.StatusNotFound, "ATTACHMENT_NOT_FOUND", "attachment not found")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "no access to this folder")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email already registered")
	case errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "STORE_UNAVAILABLE", "store unavailable")
	}
}

// ErrorHandler returns the fiber global error handler standardizing error
// responses for errors escaping the handlers (404 routes, middleware errors).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			message = e.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", message)
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
