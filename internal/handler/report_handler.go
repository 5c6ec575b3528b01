package handler

import (
	"log"

	"bizflow-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GET /reports/financial-summary
func (h *ReportHandler) FinancialSummary(c *fiber.Ctx) error {
	summary, err := h.reportService.FinancialSummary()
	if err != nil {
		log.Printf("financial summary error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(summary)
}

// GET /reports/task-status-count
func (h *ReportHandler) TaskStatusCount(c *fiber.Ctx) error {
	counts, err := h.reportService.TaskStatusCount()
	if err != nil {
		log.Printf("task status count error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(counts)
}

// GET /reports/inventory-snapshot
func (h *ReportHandler) InventorySnapshot(c *fiber.Ctx) error {
	snapshot, err := h.reportService.InventorySnapshot()
	if err != nil {
		log.Printf("inventory snapshot error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(snapshot)
}

// GET /reports/summary/by-project
func (h *ReportHandler) AccountingByProject(c *fiber.Ctx) error {
	rows, err := h.reportService.AccountingByProject()
	if err != nil {
		log.Printf("accounting by project summary error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(rows)
}

// GET /reports/summary/by-task
func (h *ReportHandler) AccountingByTask(c *fiber.Ctx) error {
	rows, err := h.reportService.AccountingByTask()
	if err != nil {
		log.Printf("accounting by task summary error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(rows)
}
