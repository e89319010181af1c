package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func idParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New("missing " + name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}

func GetInternshipID(ctx *gin.Context) (uint, error) {
	return idParam(ctx, "internship_id")
}

func GetTaskID(ctx *gin.Context) (uint, error) {
	return idParam(ctx, "task_id")
}

func GetApplicationID(ctx *gin.Context) (uint, error) {
	return idParam(ctx, "application_id")
}

func GetSubmissionID(ctx *gin.Context) (uint, error) {
	return idParam(ctx, "submission_id")
}
