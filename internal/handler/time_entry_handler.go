package handler

import (
	"errors"
	"log"

	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TimeEntryHandler struct {
	entryService service.TimeEntryService
}

func NewTimeEntryHandler(entryService service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entryService: entryService}
}

// POST /time-entries
func (h *TimeEntryHandler) Log(c *fiber.Ctx) error {
	var req service.LogTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user := middleware.CurrentUser(c)
	entry, err := h.entryService.Log(&req, user)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time cannot be before start time"})
		}
		log.Printf("log time error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GET /time-entries
func (h *TimeEntryHandler) ListMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	entries, err := h.entryService.ListForUser(user.ID)
	if err != nil {
		log.Printf("list time entries error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(entries)
}
