package models

import (
	"gorm.io/datatypes"
)

type Task struct {
	BaseModel

	InternshipID uint           `gorm:"not null;uniqueIndex:idx_internship_task_slug" json:"internship_id"`
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"not null;uniqueIndex:idx_internship_task_slug" json:"slug"`
	Overview     string         `json:"overview"`
	Description  string         `json:"description"`
	Instructions datatypes.JSON `gorm:"type:jsonb" json:"instructions"` // ordered step text
	Background   string         `json:"background"`
	VideoURL     string         `json:"video_url"`

	SubmissionInstructions string `json:"submission_instructions"`
	// At least one accepted format; enforced at the mutation boundary.
	SubmitAsFile bool `gorm:"not null;default:false" json:"submit_as_file"`
	SubmitAsText bool `gorm:"not null;default:false" json:"submit_as_text"`
	SubmitAsURL  bool `gorm:"not null;default:false" json:"submit_as_url"`

	// Relationships
	Internship  Internship       `gorm:"foreignKey:InternshipID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Resources   []Resource       `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"resources,omitempty"`
	Submissions []TaskSubmission `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// AcceptsSomeFormat reports whether at least one submission format is open.
func (t *Task) AcceptsSomeFormat() bool {
	return t.SubmitAsFile || t.SubmitAsText || t.SubmitAsURL
}
