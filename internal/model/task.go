package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

type Task struct {
	BaseModel
	Title       string       `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'To Do'" json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Done'"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`

	AssigneeID *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id"`
	Assignee   *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Project    *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	DueDate *time.Time `json:"due_date,omitempty"`
}
