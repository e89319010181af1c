package models

import "time"

// TaskEvaluation is the one mutable-in-place row of the lifecycle: at most
// one per submission, and a repeat evaluate call updates score/feedback
// through an atomic ON CONFLICT upsert keyed on TaskSubmissionID.
type TaskEvaluation struct {
	BaseModel

	TaskSubmissionID      uint      `gorm:"not null;uniqueIndex" json:"task_submission_id"`
	OrganizationProfileID uint      `gorm:"not null;index" json:"organization_profile_id"`
	Score                 int       `gorm:"not null" json:"score"` // 0-100
	Feedback              string    `json:"feedback"`
	EvaluatedAt           time.Time `gorm:"not null" json:"evaluated_at"`

	// Relationships
	TaskSubmission      TaskSubmission      `gorm:"foreignKey:TaskSubmissionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	OrganizationProfile OrganizationProfile `gorm:"foreignKey:OrganizationProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
