package handler

import (
	"log"

	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AccountingHandler struct {
	entryRepo repository.AccountingEntryRepository
}

func NewAccountingHandler(entryRepo repository.AccountingEntryRepository) *AccountingHandler {
	return &AccountingHandler{entryRepo: entryRepo}
}

// POST /accounting
func (h *AccountingHandler) Create(c *fiber.Ctx) error {
	var entry model.AccountingEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&entry); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation failed: field '" + errs[0].FailedField + "' failed on tag '" + errs[0].Tag + "'",
		})
	}

	user := middleware.CurrentUser(c)
	userID := user.ID
	entry.UserID = &userID

	if err := h.entryRepo.Create(&entry); err != nil {
		log.Printf("create accounting entry error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GET /accounting
func (h *AccountingHandler) List(c *fiber.Ctx) error {
	entries, err := h.entryRepo.FindAll()
	if err != nil {
		log.Printf("list accounting entries error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(entries)
}

// GET /accounting/by-task/:task_id
func (h *AccountingHandler) ListByTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}
	entries, err := h.entryRepo.FindByTask(taskID)
	if err != nil {
		log.Printf("accounting by task error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(entries)
}

// GET /accounting/by-project/:project_id
func (h *AccountingHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}
	entries, err := h.entryRepo.FindByProject(projectID)
	if err != nil {
		log.Printf("accounting by project error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(entries)
}
