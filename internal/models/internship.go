package models

import (
	"time"

	"github.com/internhub-dev/internhub/internal/types"
	"gorm.io/datatypes"
)

type Internship struct {
	BaseModel

	OrganizationProfileID uint                 `gorm:"not null;index" json:"organization_profile_id"`
	Title                 string               `gorm:"not null" json:"title"`
	Slug                  string               `gorm:"uniqueIndex;not null" json:"slug"` // frozen once Published
	Description           string               `json:"description"`
	Requirements          datatypes.JSON       `gorm:"type:jsonb" json:"requirements"`
	Duration              string               `json:"duration"`
	Type                  types.InternshipType `gorm:"not null" json:"type"`
	Amount                *float64             `json:"amount,omitempty"` // required iff Type == PAID
	Location              string               `json:"location"`
	Skills                datatypes.JSON       `gorm:"type:jsonb" json:"skills"`
	Deadline              *time.Time           `json:"deadline,omitempty"`
	Published             bool                 `gorm:"not null;default:false" json:"published"`
	Approved              bool                 `gorm:"not null;default:false" json:"approved"`

	// Relationships
	OrganizationProfile OrganizationProfile `gorm:"foreignKey:OrganizationProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"organization_profile,omitempty"`
	Tasks               []Task              `gorm:"foreignKey:InternshipID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"tasks,omitempty"`
	Applications        []Application       `gorm:"foreignKey:InternshipID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// Listed reports whether the internship is visible in the public catalog.
func (i *Internship) Listed() bool {
	return i.Published && i.Approved
}
