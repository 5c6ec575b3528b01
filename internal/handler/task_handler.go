package handler

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// POST /tasks
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var task model.Task
	if err := c.BodyParser(&task); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.taskService.Create(&task); err != nil {
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("create task error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GET /tasks?assignee_id=&project_id=&status=&skip=&limit=
func (h *TaskHandler) List(c *fiber.Ctx) error {
	filter := repository.TaskFilter{
		Status: model.TaskStatus(c.Query("status")),
	}
	filter.Offset, _ = strconv.Atoi(c.Query("skip", "0"))
	filter.Limit, _ = strconv.Atoi(c.Query("limit", "20"))

	if raw := c.Query("assignee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignee_id"})
		}
		filter.AssigneeID = &id
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project_id"})
		}
		filter.ProjectID = &id
	}

	tasks, err := h.taskService.List(filter)
	if err != nil {
		log.Printf("list tasks error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(tasks)
}

// GET /tasks/:id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var req service.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	task, err := h.taskService.Update(id, &req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return h.taskError(c, err)
	}
	return c.JSON(task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	if err := h.taskService.Delete(id); err != nil {
		return h.taskError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) taskError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrTaskNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	log.Printf("task error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
