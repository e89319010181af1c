package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/storage"
	"github.com/internhub-dev/internhub/internal/utils"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Upload receives a multipart file and stores it in object storage. The
// response carries the object path the lifecycle endpoints reference;
// nothing here links the file to an entity yet.
func Upload(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if storage.Default == nil {
		apperrors.Respond(ctx, apperrors.Internal("File storage is not configured", nil))
		return
	}

	kind := ctx.PostForm("kind")

	if !storage.ValidKind(kind) {
		apperrors.Respond(ctx, apperrors.Validation("Kind must be resume, cover_letter, submission or resource"))
		return
	}

	fileHeader, err := ctx.FormFile("file")

	if err != nil {
		apperrors.Respond(ctx, apperrors.Validation("A file is required"))
		return
	}

	if fileHeader.Size > maxUploadBytes {
		apperrors.Respond(ctx, apperrors.Validation("File exceeds the 10 MiB limit"))
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to read upload", err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path, err := storage.Default.Upload(ctx.Request.Context(), kind, fileHeader.Filename, file, fileHeader.Size, contentType)

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to store upload", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"path": path})
}

// UploadURL redirects a stored object path to a short-lived presigned GET
// URL. The bucket itself is never exposed.
func UploadURL(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if storage.Default == nil {
		apperrors.Respond(ctx, apperrors.Internal("File storage is not configured", nil))
		return
	}

	path := strings.TrimPrefix(ctx.Param("path"), "/")

	if path == "" {
		apperrors.Respond(ctx, apperrors.Validation("A path is required"))
		return
	}

	url, err := storage.Default.PresignedURL(ctx.Request.Context(), path, 15*time.Minute)

	if err != nil {
		apperrors.Respond(ctx, apperrors.Internal("Failed to generate URL", err))
		return
	}

	ctx.Redirect(http.StatusFound, url)
}
