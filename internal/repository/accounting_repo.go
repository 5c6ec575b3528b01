package repository

import (
	"bizflow-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountingSummary is one aggregated reporting row.
type AccountingSummary struct {
	ProjectID *uuid.UUID       `json:"project_id,omitempty"`
	TaskID    *uuid.UUID       `json:"task_id,omitempty"`
	Type      model.RecordType `json:"type"`
	Total     float64          `json:"total"`
}

type AccountingEntryRepository interface {
	Create(entry *model.AccountingEntry) error
	FindAll() ([]model.AccountingEntry, error)
	FindByTask(taskID uuid.UUID) ([]model.AccountingEntry, error)
	FindByProject(projectID uuid.UUID) ([]model.AccountingEntry, error)
	SummarizeByProject() ([]AccountingSummary, error)
	SummarizeByTask() ([]AccountingSummary, error)
}

type accountingRepo struct {
	db *gorm.DB
}

func NewAccountingEntryRepo(db *gorm.DB) AccountingEntryRepository {
	return &accountingRepo{db}
}

func (r *accountingRepo) Create(entry *model.AccountingEntry) error {
	return r.db.Create(entry).Error
}

func (r *accountingRepo) FindAll() ([]model.AccountingEntry, error) {
	var entries []model.AccountingEntry
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *accountingRepo) FindByTask(taskID uuid.UUID) ([]model.AccountingEntry, error) {
	var entries []model.AccountingEntry
	err := r.db.Where("task_id = ?", taskID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *accountingRepo) FindByProject(projectID uuid.UUID) ([]model.AccountingEntry, error) {
	var entries []model.AccountingEntry
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *accountingRepo) SummarizeByProject() ([]AccountingSummary, error) {
	var rows []AccountingSummary
	err := r.db.Model(&model.AccountingEntry{}).
		Select("project_id, type, COALESCE(SUM(amount), 0) as total").
		Group("project_id").Group("type").
		Scan(&rows).Error
	return rows, err
}

func (r *accountingRepo) SummarizeByTask() ([]AccountingSummary, error) {
	var rows []AccountingSummary
	err := r.db.Model(&model.AccountingEntry{}).
		Select("task_id, type, COALESCE(SUM(amount), 0) as total").
		Group("task_id").Group("type").
		Scan(&rows).Error
	return rows, err
}
