package model

type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`

	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
