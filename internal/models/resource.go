package models

import "github.com/internhub-dev/internhub/internal/types"

type Resource struct {
	BaseModel

	TaskID      uint               `gorm:"not null;index" json:"task_id"`
	Name        string             `gorm:"not null" json:"name"`
	Type        types.ResourceType `gorm:"not null" json:"type"`
	URL         string             `json:"url"`       // required iff Type == URL
	FilePath    string             `json:"file_path"` // object name when Type == FILE
	Description string             `json:"description"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
