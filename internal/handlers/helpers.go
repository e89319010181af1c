package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/middleware"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
)

// requireProfile returns the authenticated user and fails with NOT_FOUND
// when the role profile has not been created yet. The distinction from
// FORBIDDEN matters to clients: "finish your profile" versus "you may not
// do this".
func requireProfile(ctx *gin.Context) (middleware.CurrentUser, bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return middleware.CurrentUser{}, false
	}

	if currentUser.ProfileID == 0 {
		apperrors.Respond(ctx, apperrors.NotFound("Complete your profile first"))
		return middleware.CurrentUser{}, false
	}

	return currentUser, true
}

// requireOrgOrAdmin is requireProfile for routes that admit admins: admins
// carry no role profile, organizations must have completed theirs.
func requireOrgOrAdmin(ctx *gin.Context) (middleware.CurrentUser, bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return middleware.CurrentUser{}, false
	}

	if currentUser.Role == types.RoleAdmin {
		return currentUser, true
	}

	if currentUser.ProfileID == 0 {
		apperrors.Respond(ctx, apperrors.NotFound("Complete your profile first"))
		return middleware.CurrentUser{}, false
	}

	return currentUser, true
}
