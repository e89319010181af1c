package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/internal/middleware"
	"github.com/internhub-dev/internhub/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.CurrentUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.CurrentUser{}, fmt.Errorf("user not authenticated")
	}

	current, ok := user.(middleware.CurrentUser)

	if !ok {
		return middleware.CurrentUser{}, fmt.Errorf("invalid user type in context")
	}

	return current, nil
}
