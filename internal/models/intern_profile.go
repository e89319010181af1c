package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InternProfile struct {
	gorm.Model

	UserID         uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	FirstName      string         `gorm:"not null" json:"first_name"`
	LastName       string         `gorm:"not null" json:"last_name"`
	University     string         `json:"university"`
	Major          string         `json:"major"`
	GraduationYear int            `json:"graduation_year"`
	GPA            float64        `json:"gpa"`
	Skills         datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Bio            string         `json:"bio"`
	ResumePath     string         `json:"resume_path"` // object name in file storage, empty if none
	LinkedinURL    string         `json:"linkedin_url"`
	Location       string         `json:"location"`

	// Relationships
	User         User             `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Applications []Application    `gorm:"foreignKey:InternProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Submissions  []TaskSubmission `gorm:"foreignKey:InternProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
