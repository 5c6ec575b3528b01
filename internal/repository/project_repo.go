package repository

import (
	"bizflow-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(project *model.Project) error
	FindAll(offset, limit int) ([]model.Project, error)
	FindByID(id uuid.UUID) (*model.Project, error)
	Update(project *model.Project) error
	Delete(id uuid.UUID) error
}

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db}
}

func (r *projectRepo) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepo) FindAll(offset, limit int) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.Offset(offset).Limit(limit).Order("created_at ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) FindByID(id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) Update(project *model.Project) error {
	return r.db.Save(project).Error
}

func (r *projectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Project{}, "id = ?", id).Error
}
