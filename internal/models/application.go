package models

import (
	"github.com/internhub-dev/internhub/internal/types"
)

// Application records an intern's intent to join an internship. At most one
// non-withdrawn row may exist per (intern, internship); that is enforced by
// a partial unique index created in db.MigrateDatabase, so two racing
// creates cannot both pass an existence check.
type Application struct {
	BaseModel

	InternProfileID uint                    `gorm:"not null;index" json:"intern_profile_id"`
	InternshipID    uint                    `gorm:"not null;index" json:"internship_id"`
	Status          types.ApplicationStatus `gorm:"not null;default:'PENDING'" json:"status"`
	CoverLetterPath string                  `json:"cover_letter_path"`
	ResumePath      string                  `gorm:"not null" json:"resume_path"` // resolved at create, profile fallback
	Availability    string                  `json:"availability"`

	// Relationships
	InternProfile InternProfile `gorm:"foreignKey:InternProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"intern_profile,omitempty"`
	Internship    Internship    `gorm:"foreignKey:InternshipID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"internship,omitempty"`
}
