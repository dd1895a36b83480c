package handler

import (
	"errors"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by RequireAuth)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserRole(c *fiber.Ctx) string {
	role := c.Locals("user_role")
	if role == nil {
		return ""
	}
	return role.(string)
}

func isAdmin(c *fiber.Ctx) bool {
	return getUserRole(c) == model.RoleAdmin
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errStatus maps service sentinels to HTTP status codes. Anything the
// services don't classify (driver failures etc.) is a server fault.
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrInventoryNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrOrderItemNotFound),
		errors.Is(err, service.ErrDeliveryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return 404
	case errors.Is(err, service.ErrInsufficientInventory),
		errors.Is(err, service.ErrCannotReleaseMoreThanReserved),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrSKUExists):
		return 409
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidQuantity):
		return 400
	default:
		return 500
	}
}

func errJSON(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
