package handler

import (
	"errors"
	"log"
	"strings"

	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/model"
	"bizflow-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// CreateItem handles item creation
// POST /inventory
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateItem(&item); err != nil {
		if errors.Is(err, service.ErrSKUExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item with this SKU already exists"})
		}
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("create item error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems returns all items, optionally filtered by derived stock state
// GET /inventory?state=in_stock|low_stock|out_of_stock
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Query("state"))
	if err != nil {
		log.Printf("list items error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(items)
}

// LowStock returns items at or below their threshold
// GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.service.ListLowStock()
	if err != nil {
		log.Printf("low stock query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(items)
}

// GetItem returns a single item
// GET /inventory/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		return h.itemError(c, err)
	}
	return c.JSON(item)
}

// UpdateItem edits item metadata. Quantity is not part of this payload.
// PUT /inventory/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(id, &req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return h.itemError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem removes an item
// DELETE /inventory/:id
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(id); err != nil {
		return h.itemError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTransaction applies a stock adjustment through the ledger
// POST /inventory/transactions
func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := middleware.CurrentUser(c)
	_, record, err := h.service.Adjust(&req, actor)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock for this transaction"})
		}
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return h.itemError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListTransactions returns the full ledger
// GET /inventory/transactions
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.service.ListTransactions()
	if err != nil {
		log.Printf("list transactions error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(txs)
}

// ListItemTransactions returns the ledger entries for one item
// GET /inventory/transactions/:item_id
func (h *InventoryHandler) ListItemTransactions(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("item_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	txs, err := h.service.ListItemTransactions(itemID)
	if err != nil {
		return h.itemError(c, err)
	}
	return c.JSON(txs)
}

// OverrideQuantityRequest sets an absolute quantity, admin only.
type OverrideQuantityRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// OverrideQuantity is the administrative direct-set path. It records the
// implied delta in the ledger instead of silently diverging from it.
// PUT /inventory/:id/quantity
func (h *InventoryHandler) OverrideQuantity(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req OverrideQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity must not be negative"})
	}

	actor := middleware.CurrentUser(c)
	item, record, err := h.service.OverrideQuantity(id, req.Quantity, req.Note, actor)
	if err != nil {
		return h.itemError(c, err)
	}

	return c.JSON(fiber.Map{"item": item, "transaction": record})
}

func (h *InventoryHandler) itemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock for this transaction"})
	default:
		log.Printf("inventory error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
