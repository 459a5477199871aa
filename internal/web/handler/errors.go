// Package handler holds shared pieces of the web handlers: route constants,
// the central error mapping and the JSON content-type guard.
package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/userhub/userhub/internal/apperr"
)

// ErrorHandler maps service error kinds to HTTP responses. Unknown errors
// are rendered as an opaque internal failure.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	status := fiber.StatusInternalServerError

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindAuth:
		status = fiber.StatusUnauthorized
	case apperr.KindConfiguration, apperr.KindStore, apperr.KindUnknown:
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

// RequireJSON rejects mutating requests whose content type is not
// application/json.
func RequireJSON(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "content-type must be application/json")
	}

	return c.Next()
}
