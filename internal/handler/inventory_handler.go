package handler

import (
	"strconv"

	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// StockRequest is the body for reserve/release calls. Clients act on their
// own ledger; admins must name the client.
type StockRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Quantity  int       `json:"quantity"`
}

// resolveClientID keeps clients scoped to their own ledger rows.
func resolveClientID(c *fiber.Ctx, requested uuid.UUID) (uuid.UUID, error) {
	if isAdmin(c) {
		return requested, nil
	}
	return parseUUID(getUserID(c))
}

// POST /api/v1/inventory
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req service.CreateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	inv, err := h.service.Create(&req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Inventory created", "data": inv})
}

// POST /api/v1/inventory/reserve
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	clientID, err := resolveClientID(c, req.ClientID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	if err := h.service.Reserve(req.ProductID, clientID, req.Quantity, getUserID(c)); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Inventory reserved"})
}

// POST /api/v1/inventory/release
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	clientID, err := resolveClientID(c, req.ClientID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	if err := h.service.Release(req.ProductID, clientID, req.Quantity, getUserID(c)); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Inventory released"})
}

// GET /api/v1/inventory
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	if isAdmin(c) {
		rows, err := h.service.GetAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(rows)
	}

	clientID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	rows, err := h.service.GetByClient(clientID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

// GET /api/v1/inventory/low-stock?threshold=10&client_id=...
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := strconv.Atoi(c.Query("threshold", strconv.Itoa(service.DefaultLowStockThreshold)))
	if err != nil || threshold <= 0 {
		threshold = service.DefaultLowStockThreshold
	}

	var requested uuid.UUID
	if q := c.Query("client_id"); q != "" {
		requested, err = parseUUID(q)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
		}
	}

	clientID, err := resolveClientID(c, requested)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	rows, err := h.service.GetLowStock(clientID, threshold)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"threshold": threshold, "data": rows})
}

// GET /api/v1/inventory/:id
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory ID"})
	}

	inv, err := h.service.GetByID(id)
	if err != nil {
		return errJSON(c, err)
	}

	if !isAdmin(c) && inv.ClientID.String() != getUserID(c) {
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	}

	return c.JSON(inv)
}

// PUT /api/v1/inventory/:id
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory ID"})
	}

	var req service.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	inv, err := h.service.Update(id, &req, getUserID(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Inventory updated", "data": inv})
}

// DELETE /api/v1/inventory/:id
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Inventory deleted"})
}
