package controller

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"sprintplanner/models"
	"sprintplanner/planner"
	"sprintplanner/utils"
)

// currentUserID reads the id set by the JWT middleware. Zero means the
// route was wired without Protected(), which planner treats as
// unauthenticated.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

func currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("user").(*models.User); ok {
		return user
	}
	return nil
}

// serviceError maps a planner error kind onto an HTTP response. Storage
// failures are reported to Sentry and hidden behind a generic message;
// every other kind is the caller's fault and gets its message back.
func serviceError(c *fiber.Ctx, err error) error {
	var pe *planner.Error
	if !errors.As(err, &pe) {
		sentry.CaptureException(err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	var status int
	switch pe.Kind {
	case planner.KindUnauthenticated:
		status = fiber.StatusUnauthorized
	case planner.KindForbidden:
		status = fiber.StatusForbidden
	case planner.KindNotFound:
		status = fiber.StatusNotFound
	case planner.KindInvalidInput:
		status = fiber.StatusBadRequest
	case planner.KindConflict, planner.KindInvalidState:
		status = fiber.StatusConflict
	default:
		sentry.CaptureException(err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	return utils.ErrorResponse(c, status, pe.Message)
}
