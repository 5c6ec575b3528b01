package service

import (
	"errors"
	"fmt"
	"time"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/notifier"
	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type UpdateTaskRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *model.TaskStatus   `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Done'"`
	Priority    *model.TaskPriority `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	AssigneeID  *uuid.UUID          `json:"assignee_id"`
	DueDate     *time.Time          `json:"due_date"`
}

type TaskService interface {
	Create(task *model.Task) error
	List(filter repository.TaskFilter) ([]model.Task, error)
	Get(id uuid.UUID) (*model.Task, error)
	Update(id uuid.UUID, req *UpdateTaskRequest) (*model.Task, error)
	Delete(id uuid.UUID) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	notifier *notifier.EmailNotifier
}

func NewTaskService(taskRepo repository.TaskRepository, mailer *notifier.EmailNotifier) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		notifier: mailer,
	}
}

func (s *taskService) Create(task *model.Task) error {
	if errs := validator.ValidateStruct(task); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if task.Status == "" {
		task.Status = model.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	return s.taskRepo.Create(task)
}

func (s *taskService) List(filter repository.TaskFilter) ([]model.Task, error) {
	return s.taskRepo.FindAll(filter)
}

func (s *taskService) Get(id uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(id uuid.UUID, req *UpdateTaskRequest) (*model.Task, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	wasNotDone := task.Status != model.TaskDone

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	// Notify the assignee once on the not-done -> done transition.
	if wasNotDone && task.Status == model.TaskDone && task.Assignee != nil {
		s.notifier.SendEmail(
			task.Assignee.Email,
			"Task Completed",
			fmt.Sprintf("Task '%s' has been marked as done.", task.Title),
		)
	}

	return task, nil
}

func (s *taskService) Delete(id uuid.UUID) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return s.taskRepo.Delete(id)
}
