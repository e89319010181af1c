package models

import (
	"time"

	"github.com/internhub-dev/internhub/internal/types"
)

// TaskSubmission is create-once per (task, intern): the composite unique
// index makes the second concurrent create fail at the database, and edits
// go through update until the organization finalizes the review.
type TaskSubmission struct {
	BaseModel

	TaskID          uint                   `gorm:"not null;uniqueIndex:idx_task_intern_submission" json:"task_id"`
	InternProfileID uint                   `gorm:"not null;uniqueIndex:idx_task_intern_submission" json:"intern_profile_id"`
	Status          types.SubmissionStatus `gorm:"not null;default:'SUBMITTED'" json:"status"`
	FilePath        string                 `json:"file_path"`
	URL             string                 `json:"url"`
	Text            string                 `json:"text"`
	SubmittedAt     time.Time              `gorm:"not null" json:"submitted_at"`

	// Relationships
	Task          Task            `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	InternProfile InternProfile   `gorm:"foreignKey:InternProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"intern_profile,omitempty"`
	Evaluation    *TaskEvaluation `gorm:"foreignKey:TaskSubmissionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"evaluation,omitempty"`
}
