package handler

import (
	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// Clients always order for themselves.
	if !isAdmin(c) {
		clientID, err := parseUUID(getUserID(c))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
		}
		req.ClientID = clientID
	}

	order, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order})
}

// GET /api/v1/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if isAdmin(c) {
		orders, err := h.service.GetAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(orders)
	}

	clientID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	orders, err := h.service.GetByClient(clientID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetByID(id)
	if err != nil {
		return errJSON(c, err)
	}

	if !isAdmin(c) && order.ClientID.String() != getUserID(c) {
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	}

	return c.JSON(order)
}

// PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req service.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.Update(id, &req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order updated", "data": order})
}

// DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order deleted"})
}

// POST /api/v1/orders/:id/items
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req service.AddOrderItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.AddItem(orderID, &req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Item added", "data": item})
}

// GET /api/v1/orders/:id/items
func (h *OrderHandler) ListItems(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	items, err := h.service.GetItems(orderID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// DELETE /api/v1/orders/items/:itemId
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.RemoveItem(itemID, getUserID(c)); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item removed"})
}

// POST /api/v1/orders/:id/recalculate
func (h *OrderHandler) Recalculate(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	total, err := h.service.RecalculateTotal(orderID)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"order_id": orderID, "total_amount": total})
}
