package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func captureError(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Buyer not found"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: message})
}

// validationFailed answers 400 when err is a ValidationError and reports
// whether it did.
func validationFailed(c *fiber.Ctx, err error) (bool, error) {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		return false, nil
	}
	return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "Validation error",
		Details: verr.Issues,
	})
}

// internalError logs and reports an unexpected failure without leaking it.
func internalError(c *fiber.Ctx, action string, err error) error {
	attrs := []any{"action", action, "error", err.Error(), "request_id", requestID(c)}
	if id, ok := identity.FromCtx(c); ok {
		attrs = append(attrs, "user_id", id.ID)
	}
	slog.Error("request failed", attrs...)
	captureError(c, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
}
