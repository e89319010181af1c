package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/authz"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/storage"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type ResourceRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	URL         string `json:"url"`
	FilePath    string `json:"file_path"`
	Description string `json:"description"`
}

type TaskRequest struct {
	Title        string   `json:"title" binding:"required"`
	Overview     string   `json:"overview"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
	Background   string   `json:"background"`
	VideoURL     string   `json:"video_url"`

	SubmissionInstructions string `json:"submission_instructions"`
	SubmitAsFile           bool   `json:"submit_as_file"`
	SubmitAsText           bool   `json:"submit_as_text"`
	SubmitAsURL            bool   `json:"submit_as_url"`

	Resources []ResourceRequest `json:"resources"`
}

// validate enforces the task invariants at the mutation boundary; the form
// is a different trust domain, so the check runs here regardless of what
// the client already validated.
func (r *TaskRequest) validate() error {
	if !r.SubmitAsFile && !r.SubmitAsText && !r.SubmitAsURL {
		return apperrors.Validation("Select at least one submission format")
	}

	for _, resource := range r.Resources {
		resourceType := types.ResourceType(resource.Type)

		if !resourceType.Valid() {
			return apperrors.Validation("Resource type must be FILE or URL")
		}

		if resourceType == types.ResourceURL && resource.URL == "" {
			return apperrors.Validation("A URL resource requires a url")
		}
	}

	return nil
}

func (r *TaskRequest) resources() []models.Resource {
	resources := make([]models.Resource, 0, len(r.Resources))

	for _, resource := range r.Resources {
		resources = append(resources, models.Resource{
			Name:        resource.Name,
			Type:        types.ResourceType(resource.Type),
			URL:         resource.URL,
			FilePath:    resource.FilePath,
			Description: resource.Description,
		})
	}

	return resources
}

// CreateTask requires ownership of the parent internship, same as update
// and delete.
func CreateTask(ctx *gin.Context) {
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

	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.validate(); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	instructions, _ := json.Marshal(req.Instructions)

	task := models.Task{
		InternshipID:           internshipID,
		Title:                  req.Title,
		Overview:               req.Overview,
		Description:            req.Description,
		Instructions:           datatypes.JSON(instructions),
		Background:             req.Background,
		VideoURL:               req.VideoURL,
		SubmissionInstructions: req.SubmissionInstructions,
		SubmitAsFile:           req.SubmitAsFile,
		SubmitAsText:           req.SubmitAsText,
		SubmitAsURL:            req.SubmitAsURL,
		Resources:              req.resources(),
	}

	slug := utils.Slugify(req.Title)

	var createErr error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		task.Slug = slug
		task.ID = 0

		createErr = db.DB.Create(&task).Error

		if createErr == nil {
			ctx.JSON(http.StatusCreated, task)
			return
		}

		if !apperrors.IsUniqueViolation(createErr) {
			apperrors.Respond(ctx, apperrors.Internal("Failed to create task", createErr))
			return
		}

		slug = utils.SlugWithSuffix(utils.Slugify(req.Title))
	}

	apperrors.Respond(ctx, apperrors.Conflict("Could not allocate a unique task slug, try a different title"))
}

func UpdateTask(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, authErr := authz.OrgOwnsTask(db.DB, currentUser.ProfileID, taskID)

	if authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := req.validate(); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	instructions, _ := json.Marshal(req.Instructions)

	task.Title = req.Title
	task.Overview = req.Overview
	task.Description = req.Description
	task.Instructions = datatypes.JSON(instructions)
	task.Background = req.Background
	task.VideoURL = req.VideoURL
	task.SubmissionInstructions = req.SubmissionInstructions
	task.SubmitAsFile = req.SubmitAsFile
	task.SubmitAsText = req.SubmitAsText
	task.SubmitAsURL = req.SubmitAsURL

	if err := db.DB.Save(task).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to update task", err))
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func DeleteTask(ctx *gin.Context) {
	currentUser, ok := requireProfile(ctx)

	if !ok {
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, authErr := authz.OrgOwnsTask(db.DB, currentUser.ProfileID, taskID)

	if authErr != nil {
		apperrors.Respond(ctx, authErr)
		return
	}

	var resources []models.Resource

	if err := db.DB.Where("task_id = ?", task.ID).Find(&resources).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve resources", err))
		return
	}

	if err := db.DB.Delete(task).Error; err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to delete task", err))
		return
	}

	// Best effort: stored resource files are orphaned once the task is gone.
	if storage.Default != nil {
		for _, resource := range resources {
			if resource.Type == types.ResourceFile && resource.FilePath != "" {
				if err := storage.Default.Remove(ctx.Request.Context(), resource.FilePath); err != nil {
					logrus.WithError(err).Warnf("Failed to remove resource object %s", resource.FilePath)
				}
			}
		}
	}

	ctx.Status(http.StatusNoContent)
}

// ListWorkspaceTasks serves the task workspace of an internship. Access is
// the workspace rule: owning organization, accepted intern, or admin.
func ListWorkspaceTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	internshipID, err := utils.GetInternshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var internship models.Internship

	if err := db.DB.First(&internship, internshipID).Error; err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Internship not found"))
		return
	}

	workspaceUser := authz.CurrentUserInfo{Role: currentUser.Role, ProfileID: currentUser.ProfileID}

	if err := authz.CanAccessWorkspace(db.DB, workspaceUser, internshipID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	var tasks []models.Task

	// Insertion order is the display order; there is no explicit ordering
	// field among sibling tasks.
	listErr := db.DB.
		Preload("Resources").
		Where("internship_id = ?", internshipID).
		Order("created_at ASC").
		Find(&tasks).Error

	if listErr != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to retrieve tasks", listErr))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
