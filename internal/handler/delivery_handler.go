package handler

import (
	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DeliveryHandler struct {
	service service.DeliveryService
}

func NewDeliveryHandler(s service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: s}
}

// POST /api/v1/deliveries
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var req service.CreateDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	delivery, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Delivery created", "data": delivery})
}

// GET /api/v1/deliveries
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	if isAdmin(c) {
		deliveries, err := h.service.GetAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(deliveries)
	}

	clientID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	deliveries, err := h.service.GetByClient(clientID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(deliveries)
}

// GET /api/v1/deliveries/:id
func (h *DeliveryHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid delivery ID"})
	}

	delivery, err := h.service.GetByID(id)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(delivery)
}

// GET /api/v1/deliveries/order/:orderId
func (h *DeliveryHandler) GetByOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("orderId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	deliveries, err := h.service.GetByOrder(orderID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(deliveries)
}

// PUT /api/v1/deliveries/:id
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid delivery ID"})
	}

	var req service.UpdateDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	delivery, err := h.service.Update(id, &req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Delivery updated", "data": delivery})
}

// DELETE /api/v1/deliveries/:id
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid delivery ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Delivery deleted"})
}
