package repository

import (
	"bizflow-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeEntryRepository interface {
	Create(entry *model.TimeEntry) error
	FindByUser(userID uuid.UUID) ([]model.TimeEntry, error)
}

type timeEntryRepo struct {
	db *gorm.DB
}

func NewTimeEntryRepo(db *gorm.DB) TimeEntryRepository {
	return &timeEntryRepo{db}
}

func (r *timeEntryRepo) Create(entry *model.TimeEntry) error {
	return r.db.Create(entry).Error
}

func (r *timeEntryRepo) FindByUser(userID uuid.UUID) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.Where("user_id = ?", userID).Order("start_time DESC").Find(&entries).Error
	return entries, err
}
