package model

import "github.com/google/uuid"

// RecordType classifies money movement for both financial records and
// accounting entries.
type RecordType string

const (
	RecordExpense RecordType = "Expense"
	RecordRevenue RecordType = "Revenue"
)

type FinancialRecord struct {
	BaseModel
	Amount      float64    `gorm:"not null" json:"amount" validate:"required,gt=0"`
	Type        RecordType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=Expense Revenue"`
	Description string     `gorm:"type:text" json:"description"`

	TaskID      *uuid.UUID `gorm:"type:uuid;index" json:"task_id"`
	Task        *Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Project     *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	SubmittedBy uuid.UUID  `gorm:"type:uuid;not null" json:"submitted_by"`
	Submitter   *User      `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
}
