package model

import "github.com/google/uuid"

type AccountingEntry struct {
	BaseModel
	Amount      float64    `gorm:"not null" json:"amount" validate:"required,gt=0"`
	Type        RecordType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=Expense Revenue"`
	Description string     `gorm:"type:text" json:"description"`

	TaskID    *uuid.UUID `gorm:"type:uuid;index" json:"task_id"`
	Task      *Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
