package repository

import (
	"bizflow-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskFilter narrows task listings. Nil/empty fields are ignored.
type TaskFilter struct {
	AssigneeID *uuid.UUID
	ProjectID  *uuid.UUID
	Status     model.TaskStatus
	Offset     int
	Limit      int
}

type TaskRepository interface {
	Create(task *model.Task) error
	FindAll(filter TaskFilter) ([]model.Task, error)
	FindByID(id uuid.UUID) (*model.Task, error)
	FindByProject(projectID uuid.UUID) ([]model.Task, error)
	Update(task *model.Task) error
	Delete(id uuid.UUID) error
	CountByStatus(projectID *uuid.UUID) (map[model.TaskStatus]int64, error)
}

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db}
}

func (r *taskRepo) Create(task *model.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepo) FindAll(filter TaskFilter) ([]model.Task, error) {
	q := r.db.Preload("Assignee")
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var tasks []model.Task
	err := q.Offset(filter.Offset).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) FindByID(id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.Preload("Assignee").Preload("Project").First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) FindByProject(projectID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) Update(task *model.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Task{}, "id = ?", id).Error
}

// CountByStatus aggregates task counts, optionally scoped to one project.
func (r *taskRepo) CountByStatus(projectID *uuid.UUID) (map[model.TaskStatus]int64, error) {
	type row struct {
		Status model.TaskStatus
		Count  int64
	}
	q := r.db.Model(&model.Task{}).Select("status, COUNT(id) as count").Group("status")
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.TaskStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
