package models

import "gorm.io/gorm"

type OrganizationProfile struct {
	gorm.Model

	UserID           uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	OrganizationName string `gorm:"not null" json:"organization_name"`
	ContactName      string `json:"contact_name"`
	JobTitle         string `json:"job_title"`
	Industry         string `json:"industry"`
	CompanySize      string `json:"company_size"`
	Website          string `json:"website"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	WebhookURL       string `json:"webhook_url"` // optional endpoint for application notifications

	// Relationships
	User        User             `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Internships []Internship     `gorm:"foreignKey:OrganizationProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Evaluations []TaskEvaluation `gorm:"foreignKey:OrganizationProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
