package model

import (
	"time"

	"github.com/google/uuid"
)

type TimeEntry struct {
	BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TaskID    *uuid.UUID `gorm:"type:uuid;index" json:"task_id"`
	Task      *Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"` // optional override
	Note            string     `gorm:"type:text" json:"note"`
}
