package models

import (
	"github.com/internhub-dev/internhub/internal/types"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         types.Role `gorm:"not null" json:"role"`

	// Relationships
	InternProfile       *InternProfile       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"intern_profile,omitempty"`
	OrganizationProfile *OrganizationProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"organization_profile,omitempty"`
}
