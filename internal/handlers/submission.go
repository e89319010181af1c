package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/authz"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
	"gorm.io/gorm"
)

type SubmissionRequest struct {
	FilePath string `json:"file_path"`
	URL      string `json:"url"`
	Text     string `json:"text"`
}

type SubmissionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// validateAgainst checks the content against the task's accepted formats.
// The task author decides the formats; the intern cannot smuggle in others.
func (r *SubmissionRequest) validateAgainst(task *models.Task) error {
	hasFile := strings.TrimSpace(r.FilePath) != ""
	hasURL := strings.TrimSpace(r.URL) != ""
	hasText := strings.TrimSpace(r.Text) != ""

	if !hasFile && !hasURL && !hasText {
		return apperrors.Validation("A submission needs content")
	}

	if hasFile && !task.SubmitAsFile {
		return apperrors.Validation("This task does not accept file submissions")
	}
	if hasURL && !task.SubmitAsURL {
		return apperrors.Validation("This task does not accept URL submissions")
	}
	if hasText && !task.SubmitAsText {
		return apperrors.Validation("This task does not accept text submissions")
	}

	return nil
}

// CreateSubmission is create-once per (task, intern); later edits go
// through UpdateSubmission. The composite unique index turns the second of
// two racing creates into CONFLICT.
func CreateSubmission(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(ctx, apperrors.NotFound("Task not found"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve task", err))
		return
	}

	// The workspace, and with it submitting, opens only after acceptance.
	if err := authz.InternHasAcceptedApplication(db.DB, currentUser.ProfileID, task.InternshipID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var req SubmissionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.validateAgainst(&task); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	submission := models.TaskSubmission{
		TaskID:          task.ID,
		InternProfileID: currentUser.ProfileID,
		Status:          types.SubmissionSubmitted,
		FilePath:        req.FilePath,
		URL:             req.URL,
		Text:            req.Text,
		SubmittedAt:     time.Now().UTC(),
	}

	if err := db.DB.Create(&submission).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			apperrors.Respond(ctx, apperrors.Conflict("You have already submitted this task"))
			return
		}
		apperrors.Respond(ctx, apperrors.Internal("Failed to create submission", err))
		return
	}

	BroadcastWorkspaceRefresh(task.InternshipID, "submission.created")

	ctx.JSON(http.StatusCreated, submission)
}

// UpdateSubmission lets the author rework a submission until the
// organization finalizes it; a finalized submission is immutable to the
// intern.
func UpdateSubmission(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
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

	if submission.InternProfileID != currentUser.ProfileID {
		apperrors.Respond(ctx, apperrors.Forbidden("You may only update your own submission"))
		return
	}

	if submission.Status.Finalized() {
		apperrors.Respond(ctx, apperrors.Forbidden("Cannot update a finalized submission"))
		return
	}

	var task models.Task

	if err := db.DB.First(&task, submission.TaskID).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve task", err))
		return
	}

	var req SubmissionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.validateAgainst(&task); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	submission.FilePath = req.FilePath
	submission.URL = req.URL
	submission.Text = req.Text
	submission.SubmittedAt = time.Now().UTC()

	if err := db.DB.Save(&submission).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to update submission", err))
		return
	}

	BroadcastWorkspaceRefresh(task.InternshipID, "submission.updated")

	ctx.JSON(http.StatusOK, submission)
}

// UpdateSubmissionStatus is the organization review: SUBMITTED to ACCEPTED
// or REJECTED, after which the submission is finalized for everyone.
func UpdateSubmissionStatus(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	submissionID, err := utils.GetSubmissionID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, authErr := authz.OrgOwnsSubmission(db.DB, currentUser.ProfileID, submissionID)

	if authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var req SubmissionStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	newStatus := types.SubmissionStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	if !newStatus.Decision() {
		apperrors.Respond(ctx, apperrors.Validation("Status must be ACCEPTED or REJECTED"))
		return
	}

	if submission.Status.Finalized() {
		apperrors.Respond(ctx, apperrors.Conflict("Submission has already been reviewed"))
		return
	}

	submission.Status = newStatus

	if err := db.DB.Save(submission).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to update submission", err))
		return
	}

	var task models.Task
	if err := db.DB.First(&task, submission.TaskID).Error; err == nil {
		BroadcastWorkspaceRefresh(task.InternshipID, "submission.reviewed")
	}

	ctx.JSON(http.StatusOK, submission)
}

// ListTaskSubmissions gives the owning organization the review queue for a
// task. Interns see only their own submission, via ListMySubmissions.
func ListTaskSubmissions(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, authErr := authz.OrgOwnsTask(db.DB, currentUser.ProfileID, taskID); authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var submissions []models.TaskSubmission

	listErr := db.DB.
		Preload("InternProfile").
		Preload("Evaluation").
		Where("task_id = ?", taskID).
		Order("submitted_at ASC").
		Find(&submissions).Error

	if listErr != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve submissions", listErr))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// ListMySubmissions returns the caller's own submissions, optionally scoped
// to one internship workspace.
func ListMySubmissions(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	query := db.DB.
		Preload("Evaluation").
		Where("intern_profile_id = ?", currentUser.ProfileID)

	if internshipID := queryInt(ctx, "internship_id", 0); internshipID > 0 {
		query = query.
			Joins("JOIN tasks ON tasks.id = task_submissions.task_id").
			Where("tasks.internship_id = ?", internshipID)
	}

	var submissions []models.TaskSubmission

	if err := query.Order("task_submissions.submitted_at DESC").Find(&submissions).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve submissions", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
