package service

import (
	"errors"
	"time"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidTimeRange = errors.New("end time cannot be before start time")

type LogTimeRequest struct {
	TaskID          *uuid.UUID `json:"task_id"`
	ProjectID       *uuid.UUID `json:"project_id"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes *int       `json:"duration_minutes"`
	Note            string     `json:"note"`
}

type TimeEntryService interface {
	Log(req *LogTimeRequest, user *model.User) (*model.TimeEntry, error)
	ListForUser(userID uuid.UUID) ([]model.TimeEntry, error)
}

type timeEntryService struct {
	entryRepo repository.TimeEntryRepository
}

func NewTimeEntryService(entryRepo repository.TimeEntryRepository) TimeEntryService {
	return &timeEntryService{entryRepo: entryRepo}
}

// Log records a time entry for the acting user, deriving the duration from
// start/end when no explicit override is supplied.
func (s *timeEntryService) Log(req *LogTimeRequest, user *model.User) (*model.TimeEntry, error) {
	start := time.Now().UTC()
	if req.StartTime != nil {
		start = *req.StartTime
	}

	if req.EndTime != nil && req.EndTime.Before(start) {
		return nil, ErrInvalidTimeRange
	}

	duration := req.DurationMinutes
	if duration == nil && req.EndTime != nil {
		minutes := int(req.EndTime.Sub(start).Minutes())
		duration = &minutes
	}

	entry := &model.TimeEntry{
		UserID:          user.ID,
		TaskID:          req.TaskID,
		ProjectID:       req.ProjectID,
		StartTime:       start,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
		Note:            req.Note,
	}
	if err := s.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryService) ListForUser(userID uuid.UUID) ([]model.TimeEntry, error) {
	return s.entryRepo.FindByUser(userID)
}
