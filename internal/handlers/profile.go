package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InternProfileRequest struct {
	FirstName      string   `json:"first_name" binding:"required"`
	LastName       string   `json:"last_name" binding:"required"`
	University     string   `json:"university"`
	Major          string   `json:"major"`
	GraduationYear int      `json:"graduation_year"`
	GPA            float64  `json:"gpa"`
	Skills         []string `json:"skills"`
	Bio            string   `json:"bio"`
	ResumePath     string   `json:"resume_path"`
	LinkedinURL    string   `json:"linkedin_url"`
	Location       string   `json:"location"`
}

type OrganizationProfileRequest struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	ContactName      string `json:"contact_name"`
	JobTitle         string `json:"job_title"`
	Industry         string `json:"industry"`
	CompanySize      string `json:"company_size"`
	Website          string `json:"website"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	WebhookURL       string `json:"webhook_url"`
}

// UpsertInternProfile creates the caller's intern profile on first call and
// updates it afterwards. The profile row is what unlocks applying.
func UpsertInternProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req InternProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	skills, err := json.Marshal(req.Skills)
	if err != nil {
		apperrors.Respond(ctx, apperrors.Validation("Invalid skills list"))
		return
	}

	var profile models.InternProfile
	err = db.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Respond(ctx, apperrors.Internal("Failed to fetch profile", err))
		return
	}

	created := errors.Is(err, gorm.ErrRecordNotFound)

	profile.UserID = currentUser.ID
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.University = req.University
	profile.Major = req.Major
	profile.GraduationYear = req.GraduationYear
	profile.GPA = req.GPA
	profile.Skills = datatypes.JSON(skills)
	profile.Bio = req.Bio
	profile.ResumePath = req.ResumePath
	profile.LinkedinURL = req.LinkedinURL
	profile.Location = req.Location

	if err := db.DB.Save(&profile).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to save profile", err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	ctx.JSON(status, profile)
}

func GetInternProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.InternProfile

	if err := db.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Complete your intern profile first"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to fetch profile", err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func UpsertOrganizationProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req OrganizationProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var profile models.OrganizationProfile
	err = db.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Respond(ctx, apperrors.Internal("Failed to fetch profile", err))
		return
	}

	created := errors.Is(err, gorm.ErrRecordNotFound)

	profile.UserID = currentUser.ID
	profile.OrganizationName = req.OrganizationName
	profile.ContactName = req.ContactName
	profile.JobTitle = req.JobTitle
	profile.Industry = req.Industry
	profile.CompanySize = req.CompanySize
	profile.Website = req.Website
	profile.Location = req.Location
	profile.Description = req.Description
	profile.WebhookURL = req.WebhookURL

	if err := db.DB.Save(&profile).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to save profile", err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	ctx.JSON(status, profile)
}

func GetOrganizationProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.OrganizationProfile

	if err := db.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Complete your organization profile first"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to fetch profile", err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
