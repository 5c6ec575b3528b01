package handler

import (
	"errors"
	"log"
	"strconv"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/internal/service"
	"bizflow-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectHandler is thin enough to sit directly on the repositories.
type ProjectHandler struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	taskService service.TaskService
}

func NewProjectHandler(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, taskService service.TaskService) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		taskService: taskService,
	}
}

// POST /projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var project model.Project
	if err := c.BodyParser(&project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&project); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation failed: field '" + errs[0].FailedField + "' failed on tag '" + errs[0].Tag + "'",
		})
	}

	if err := h.projectRepo.Create(&project); err != nil {
		log.Printf("create project error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GET /projects?skip=0&limit=20
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	skip, _ := strconv.Atoi(c.Query("skip", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit <= 0 {
		limit = 20
	}

	projects, err := h.projectRepo.FindAll(skip, limit)
	if err != nil {
		log.Printf("list projects error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(projects)
}

// GET /projects/:id
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return nil
	}
	return c.JSON(project)
}

// PUT /projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := h.projectRepo.Update(project); err != nil {
		log.Printf("update project error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(project)
}

// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return nil
	}
	if err := h.projectRepo.Delete(project.ID); err != nil {
		log.Printf("delete project error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /projects/:id/tasks
func (h *ProjectHandler) ListTasks(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return nil
	}
	tasks, err := h.taskRepo.FindByProject(project.ID)
	if err != nil {
		log.Printf("list project tasks error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(tasks)
}

// POST /projects/:id/tasks
func (h *ProjectHandler) CreateTask(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return nil
	}

	var task model.Task
	if err := c.BodyParser(&task); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	projectID := project.ID
	task.ProjectID = &projectID

	if err := h.taskService.Create(&task); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GET /projects/:id/progress
func (h *ProjectHandler) Progress(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return nil
	}

	projectID := project.ID
	counts, err := h.taskRepo.CountByStatus(&projectID)
	if err != nil {
		log.Printf("project progress error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	total := counts[model.TaskTodo] + counts[model.TaskInProgress] + counts[model.TaskDone]
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(counts[model.TaskDone]) / float64(total)
	}

	return c.JSON(fiber.Map{
		"project_id":      project.ID,
		"project_name":    project.Name,
		"total_tasks":     total,
		"completed":       counts[model.TaskDone],
		"in_progress":     counts[model.TaskInProgress],
		"todo":            counts[model.TaskTodo],
		"completion_rate": completionRate,
	})
}

// errResponded marks that the lookup already wrote the error response.
var errResponded = errors.New("response already written")

// findProject resolves :id; on failure it writes the error response itself
// and returns errResponded.
func (h *ProjectHandler) findProject(c *fiber.Ctx) (*model.Project, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
		return nil, errResponded
	}
	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
			return nil, errResponded
		}
		log.Printf("project lookup error: %v", err)
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		return nil, errResponded
	}
	return project, nil
}
