package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/authz"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/services"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
	"gorm.io/gorm"
)

type CreateApplicationRequest struct {
	CoverLetterPath string `json:"cover_letter_path"`
	ResumePath      string `json:"resume_path"`
	Availability    string `json:"availability"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateApplication files an intern's application to a listed internship.
// The partial unique index on (intern, internship) is what rejects a
// duplicate; this handler only translates that failure into CONFLICT.
func CreateApplication(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var internship models.Internship

	if err := db.DB.Preload("OrganizationProfile").First(&internship, internshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Internship not found"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve internship", err))
		return
	}

	// Unlisted internships are invisible to interns, so applying to one is
	// indistinguishable from applying to a missing id.
	if !internship.Listed() {
		apperrors.Respond(ctx, apperrors.NotFound("Internship not found"))
		return
	}

	var req CreateApplicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resumePath := strings.TrimSpace(req.ResumePath)

	if resumePath == "" {
		var profile models.InternProfile

		if err := db.DB.First(&profile, currentUser.ProfileID).Error; err != nil {
			apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve profile", err))
			return
		}

		resumePath = profile.ResumePath
	}

	if resumePath == "" {
		apperrors.Respond(ctx, apperrors.Validation("A resume is required, attach one or add it to your profile"))
		return
	}

	application := models.Application{
		InternProfileID: currentUser.ProfileID,
		InternshipID:    internship.ID,
		Status:          types.ApplicationPending,
		CoverLetterPath: req.CoverLetterPath,
		ResumePath:      resumePath,
		Availability:    req.Availability,
	}

	if err := db.DB.Create(&application).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			apperrors.Respond(ctx, apperrors.Conflict("You have already applied to this internship"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to create application", err))
		return
	}

	services.NotifyApplicationEvent(services.EventApplicationReceived, &internship.OrganizationProfile, &internship, application.ID)
	BroadcastWorkspaceRefresh(internship.ID, "application.created")

	ctx.JSON(http.StatusCreated, application)
}

func ListMyApplications(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	var applications []models.Application

	err := db.DB.
		Preload("Internship").
		Where("intern_profile_id = ?", currentUser.ProfileID).
		Order("created_at DESC").
		Find(&applications).Error

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve applications", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"applications": applications})
}

// WithdrawApplication is the intern-side terminal transition, defined only
// out of PENDING. Withdrawing frees the slot for a future application;
// rejection does not.
func WithdrawApplication(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	applicationID, err := utils.GetApplicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.Application

	if err := db.DB.First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Application not found"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve application", err))
		return
	}

	if application.InternProfileID != currentUser.ProfileID {
		apperrors.Respond(ctx, apperrors.Forbidden("You may only withdraw your own application"))
		return
	}

	if !application.Status.CanWithdraw() {
		apperrors.Respond(ctx, apperrors.Conflict("Only a pending application can be withdrawn"))
		return
	}

	application.Status = types.ApplicationWithdrawn

	if err := db.DB.Save(&application).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to withdraw application", err))
		return
	}

	var internship models.Internship
	if err := db.DB.Preload("OrganizationProfile").First(&internship, application.InternshipID).Error; err == nil {
		services.NotifyApplicationEvent(services.EventApplicationWithdrawn, &internship.OrganizationProfile, &internship, application.ID)
	}
	BroadcastWorkspaceRefresh(application.InternshipID, "application.withdrawn")

	ctx.JSON(http.StatusOK, application)
}

// ListInternshipApplications lets the owning organization review applicants.
func ListInternshipApplications(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, authErr := authz.OrgOwnsInternship(db.DB, currentUser.ProfileID, internshipID); authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var applications []models.Application

	listErr := db.DB.
		Preload("InternProfile").
		Where("internship_id = ?", internshipID).
		Order("created_at DESC").
		Find(&applications).Error

	if listErr != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve applications", listErr))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"applications": applications})
}

// UpdateApplicationStatus is the organization decision: PENDING to ACCEPTED
// or REJECTED, nothing else. ACCEPTED is what unlocks the task workspace
// for the intern.
func UpdateApplicationStatus(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	applicationID, err := utils.GetApplicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, authErr := authz.OrgOwnsApplication(db.DB, currentUser.ProfileID, applicationID)

	if authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var req ApplicationStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	newStatus := types.ApplicationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	if !newStatus.Decision() {
		apperrors.Respond(ctx, apperrors.Validation("Status must be ACCEPTED or REJECTED"))
		return
	}

	if !application.Status.CanReview() {
		apperrors.Respond(ctx, apperrors.Conflict("Only a pending application can be reviewed"))
		return
	}

	application.Status = newStatus

	if err := db.DB.Save(application).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to update application", err))
		return
	}

	BroadcastWorkspaceRefresh(application.InternshipID, "application.reviewed")

	ctx.JSON(http.StatusOK, application)
}
