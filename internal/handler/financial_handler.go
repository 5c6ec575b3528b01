package handler

import (
	"log"

	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type FinancialHandler struct {
	recordRepo repository.FinancialRecordRepository
}

func NewFinancialHandler(recordRepo repository.FinancialRecordRepository) *FinancialHandler {
	return &FinancialHandler{recordRepo: recordRepo}
}

// POST /financial-records
func (h *FinancialHandler) Create(c *fiber.Ctx) error {
	var record model.FinancialRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&record); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation failed: field '" + errs[0].FailedField + "' failed on tag '" + errs[0].Tag + "'",
		})
	}

	user := middleware.CurrentUser(c)
	record.SubmittedBy = user.ID

	if err := h.recordRepo.Create(&record); err != nil {
		log.Printf("create financial record error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// GET /financial-records
func (h *FinancialHandler) List(c *fiber.Ctx) error {
	records, err := h.recordRepo.FindAll()
	if err != nil {
		log.Printf("list financial records error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(records)
}
