package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/authz"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InternshipRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Duration     string     `json:"duration"`
	Type         string     `json:"type" binding:"required"`
	Amount       *float64   `json:"amount"`
	Location     string     `json:"location"`
	Skills       []string   `json:"skills"`
	Deadline     *time.Time `json:"deadline"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 50
	slugAttempts    = 3
)

func (r *InternshipRequest) validate() error {
	internshipType := types.InternshipType(r.Type)

	if !internshipType.Valid() {
		return apperrors.Validation("Type must be PAID, UNPAID or STIPEND")
	}

	if internshipType == types.InternshipPaid && (r.Amount == nil || *r.Amount <= 0) {
		return apperrors.Validation("A paid internship requires a positive amount")
	}

	return nil
}

func CreateInternship(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	var req InternshipRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.validate(); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	requirements, _ := json.Marshal(req.Requirements)
	skills, _ := json.Marshal(req.Skills)

	internship := models.Internship{
		OrganizationProfileID: currentUser.ProfileID,
		Title:                 req.Title,
		Description:           req.Description,
		Requirements:          datatypes.JSON(requirements),
		Duration:              req.Duration,
		Type:                  types.InternshipType(req.Type),
		Amount:                req.Amount,
		Location:              req.Location,
		Skills:                datatypes.JSON(skills),
		Deadline:              req.Deadline,
	}

	// Duplicate slugs are regenerated with a random suffix rather than
	// rejected; the unique index decides, so two racing creates cannot both
	// keep the same slug.
	slug := utils.Slugify(req.Title)

	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		internship.Slug = slug
		internship.ID = 0

		err = db.DB.Create(&internship).Error

		if err == nil {
			ctx.JSON(http.StatusCreated, internship)
			return
		}

		if !apperrors.IsUniqueViolation(err) {
			apperrors.Respond(ctx, apperrors.Internal("Failed to create internship", err))
			return
		}

		slug = utils.SlugWithSuffix(utils.Slugify(req.Title))
	}

	apperrors.Respond(ctx, apperrors.Conflict("Could not allocate a unique slug, try a different title"))
}

func UpdateInternship(ctx *gin.Context) {
	currentUser, ok := requireOrgOrAdmin(ctx)

	if !ok {
		return
	}

	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	internship, loadErr := loadOwnedOrAdmin(currentUser.Role, currentUser.ProfileID, internshipID)

	if loadErr != nil {
		apperrors.Respond(ctx, loadErr)
		return
	}

	var req InternshipRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.validate(); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	requirements, _ := json.Marshal(req.Requirements)
	skills, _ := json.Marshal(req.Skills)

	titleChanged := internship.Title != req.Title

	internship.Title = req.Title
	internship.Description = req.Description
	internship.Requirements = datatypes.JSON(requirements)
	internship.Duration = req.Duration
	internship.Type = types.InternshipType(req.Type)
	internship.Amount = req.Amount
	internship.Location = req.Location
	internship.Skills = datatypes.JSON(skills)
	internship.Deadline = req.Deadline

	// The slug follows the title only while the internship is a draft; once
	// published it is frozen, regardless of later title edits.
	if !internship.Published && titleChanged {
		slug := utils.Slugify(req.Title)

		var saveErr error
		for attempt := 0; attempt < slugAttempts; attempt++ {
			internship.Slug = slug

			saveErr = db.DB.Save(internship).Error

			if saveErr == nil {
				ctx.JSON(http.StatusOK, internship)
				return
			}

			if !apperrors.IsUniqueViolation(saveErr) {
				apperrors.Respond(ctx, apperrors.Internal("Failed to update internship", saveErr))
				return
			}

			slug = utils.SlugWithSuffix(utils.Slugify(req.Title))
		}

		apperrors.Respond(ctx, apperrors.Conflict("Could not allocate a unique slug, try a different title"))
		return
	}

	if err := db.DB.Save(internship).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to update internship", err))
		return
	}

	ctx.JSON(http.StatusOK, internship)
}

// PublishInternship is idempotent: publishing a published internship is a
// no-op, not an error.
func PublishInternship(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	internship, authErr := authz.OrgOwnsInternship(db.DB, currentUser.ProfileID, internshipID)

	if authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	if internship.Published {
		ctx.JSON(http.StatusOK, internship)
		return
	}

	internship.Published = true

	if err := db.DB.Save(internship).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to publish internship", err))
		return
	}

	ctx.JSON(http.StatusOK, internship)
}

// ApproveInternship is the admin review step that makes a published
// internship publicly listed.
func ApproveInternship(ctx *gin.Context) {
	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var internship models.Internship

	if err := db.DB.First(&internship, internshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Internship not found"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve internship", err))
		return
	}

	if !internship.Published {
		apperrors.Respond(ctx, apperrors.Conflict("Only a published internship can be approved"))
		return
	}

	if !internship.Approved {
		internship.Approved = true

		if err := db.DB.Save(&internship).Error; err != nil {
			apperrors.Respond(ctx, apperrors.Internal("Failed to approve internship", err))
			return
		}
	}

	ctx.JSON(http.StatusOK, internship)
}

func DeleteInternship(ctx *gin.Context) {
	currentUser, ok := requireOrgOrAdmin(ctx)

	if !ok {
		return
	}

	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	internship, loadErr := loadOwnedOrAdmin(currentUser.Role, currentUser.ProfileID, internshipID)

	if loadErr != nil {
		apperrors.Respond(ctx, loadErr)
		return
	}

	// Block, don't cascade: an internship with live applications cannot be
	// deleted out from under its applicants.
	var liveApplications int64

	err = db.DB.Model(&models.Application{}).
		Where("internship_id = ? AND status <> ?", internship.ID, types.ApplicationWithdrawn).
		Count(&liveApplications).Error

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to count applications", err))
		return
	}

	if liveApplications > 0 {
		apperrors.Respond(ctx, apperrors.Conflict("Internship has active applications and cannot be deleted"))
		return
	}

	if err := db.DB.Delete(internship).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to delete internship", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListPublicInternships returns the public catalog: published AND approved,
// newest first.
func ListPublicInternships(ctx *gin.Context) {
	take := queryInt(ctx, "take", defaultPageSize)
	skip := queryInt(ctx, "skip", 0)

	if take < 1 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}
	if skip < 0 {
		skip = 0
	}

	var internships []models.Internship

	err := db.DB.
		Where("published = ? AND approved = ?", true, true).
		Order("created_at DESC").
		Limit(take).
		Offset(skip).
		Find(&internships).Error

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve internships", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"internships": internships, "take": take, "skip": skip})
}

// GetPublicInternship serves the public detail view; drafts and unapproved
// postings do not exist as far as this endpoint is concerned.
func GetPublicInternship(ctx *gin.Context) {
	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var internship models.Internship

	loadErr := db.DB.
		Preload("Tasks").
		Preload("Tasks.Resources").
		Preload("OrganizationProfile").
		First(&internship, internshipID).Error

	if loadErr != nil {
		if errors.Is(loadErr, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Internship not found"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve internship", loadErr))
		return
	}

	if !internship.Listed() {
		apperrors.Respond(ctx, apperrors.NotFound("Internship not found"))
		return
	}

	ctx.JSON(http.StatusOK, internship)
}

func ListMyInternships(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	var internships []models.Internship

	err := db.DB.
		Where("organization_profile_id = ?", currentUser.ProfileID).
		Order("created_at DESC").
		Find(&internships).Error

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve internships", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"internships": internships})
}

// loadOwnedOrAdmin resolves an internship for a mutating call: admins reach
// any internship, organizations only their own.
func loadOwnedOrAdmin(role types.Role, profileID, internshipID uint) (*models.Internship, error) {
	if role == types.RoleAdmin {
		var internship models.Internship

		if err := db.DB.First(&internship, internshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Internship not found")
			}
			return nil, apperrors.Internal("Failed to retrieve internship", err)
		}

		return &internship, nil
	}

	return authz.OrgOwnsInternship(db.DB, profileID, internshipID)
}

func queryInt(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)

	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)

	if err != nil {
		return fallback
	}

	return value
}
