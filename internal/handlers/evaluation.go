package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/authz"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvaluationRequest struct {
	Score    *int   `json:"score" binding:"required,min=0,max=100"`
	Feedback string `json:"feedback"`
}

// EvaluateSubmission scores a submission. Unlike every create in the
// lifecycle this is an upsert by design: re-evaluating refreshes
// score/feedback in place. The write is a single atomic ON CONFLICT keyed
// on the submission id, so two racing evaluators cannot produce two rows.
func EvaluateSubmission(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	submissionID, err := utils.GetSubmissionID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, authErr := authz.OrgOwnsSubmission(db.DB, currentUser.ProfileID, submissionID); authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var req EvaluationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Score must be between 0 and 100"})
		return
	}

	evaluation := models.TaskEvaluation{
		TaskSubmissionID:      submissionID,
		OrganizationProfileID: currentUser.ProfileID,
		Score:                 *req.Score,
		Feedback:              req.Feedback,
		EvaluatedAt:           time.Now().UTC(),
	}

	err = db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_submission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "feedback", "evaluated_at", "organization_profile_id", "updated_at"}),
	}).Create(&evaluation).Error

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to save evaluation", err))
		return
	}

	// Re-read so an upsert over an existing row reports that row's id.
	var saved models.TaskEvaluation
	if err := db.DB.Where("task_submission_id = ?", submissionID).First(&saved).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to load evaluation", err))
		return
	}

	var submission models.TaskSubmission
	if err := db.DB.Preload("Task").First(&submission, submissionID).Error; err == nil {
		BroadcastWorkspaceRefresh(submission.Task.InternshipID, "evaluation.saved")
	}

	ctx.JSON(http.StatusOK, saved)
}

// GetEvaluation is visible to the submitting intern, the owning
// organization, and admins.
func GetEvaluation(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	submissionID, err := utils.GetSubmissionID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.TaskSubmission

	if err := db.DB.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Submission not found"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve submission", err))
		return
	}

	switch currentUser.Role {
	case types.RoleAdmin:
		// full visibility
	case types.RoleIntern:
		if submission.InternProfileID != currentUser.ProfileID {
			apperrors.Respond(ctx, apperrors.Forbidden("You may only view evaluations of your own submissions"))
			return
		}
	case types.RoleOrganization:
		if _, authErr := authz.OrgOwnsSubmission(db.DB, currentUser.ProfileID, submissionID); authErr != nil {
			apperrors.Respond(ctx, authErr)
			return
		}
	default:
		apperrors.Respond(ctx, apperrors.Forbidden("You do not have permission to view this evaluation"))
		return
	}

	var evaluation models.TaskEvaluation

	if err := db.DB.Where("task_submission_id = ?", submissionID).First(&evaluation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Submission has not been evaluated yet"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve evaluation", err))
		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}
