// Package authz holds the ownership predicates every mutation runs before
// touching lifecycle data. Each predicate re-fetches the ownership chain
// from the database instead of trusting anything client-supplied, and runs
// strictly before the write it guards.
package authz

import (
	"errors"

	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
	"gorm.io/gorm"
)

// OrgOwnsInternship loads the internship and verifies it belongs to the
// caller's organization profile. NOT_FOUND when the internship does not
// exist, FORBIDDEN on an ownership mismatch.
func OrgOwnsInternship(db *gorm.DB, orgProfileID, internshipID uint) (*models.Internship, error) {
	var internship models.Internship

	if err := db.First(&internship, internshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Internship not found")
		}
		return nil, apperrors.Internal("Failed to retrieve internship", err)
	}

	if internship.OrganizationProfileID != orgProfileID {
		return nil, apperrors.Forbidden("You do not own this internship")
	}

	return &internship, nil
}

// OrgOwnsTask walks Task → Internship and verifies organization ownership.
func OrgOwnsTask(db *gorm.DB, orgProfileID, taskID uint) (*models.Task, error) {
	var task models.Task

	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Task not found")
		}
		return nil, apperrors.Internal("Failed to retrieve task", err)
	}

	if _, err := OrgOwnsInternship(db, orgProfileID, task.InternshipID); err != nil {
		return nil, err
	}

	return &task, nil
}

// OrgOwnsApplication walks Application → Internship and verifies
// organization ownership.
func OrgOwnsApplication(db *gorm.DB, orgProfileID, applicationID uint) (*models.Application, error) {
	var application models.Application

	if err := db.First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Application not found")
		}
		return nil, apperrors.Internal("Failed to retrieve application", err)
	}

	if _, err := OrgOwnsInternship(db, orgProfileID, application.InternshipID); err != nil {
		return nil, err
	}

	return &application, nil
}

// OrgOwnsSubmission walks TaskSubmission → Task → Internship and verifies
// organization ownership.
func OrgOwnsSubmission(db *gorm.DB, orgProfileID, submissionID uint) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission

	if err := db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Submission not found")
		}
		return nil, apperrors.Internal("Failed to retrieve submission", err)
	}

	if _, err := OrgOwnsTask(db, orgProfileID, submission.TaskID); err != nil {
		return nil, err
	}

	return &submission, nil
}

// InternHasAcceptedApplication reports whether the intern's application to
// the internship is ACCEPTED, which is the sole gate to the task workspace.
func InternHasAcceptedApplication(db *gorm.DB, internProfileID, internshipID uint) error {
	var application models.Application

	err := db.Where(
		"intern_profile_id = ? AND internship_id = ? AND status = ?",
		internProfileID, internshipID, types.ApplicationAccepted,
	).First(&application).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Forbidden("The task workspace is only available after your application is accepted")
		}
		return apperrors.Internal("Failed to retrieve application", err)
	}

	return nil
}

// CanAccessWorkspace authorizes the workspace view (tasks, live updates) of
// an internship: the owning organization, an accepted intern, or an admin.
func CanAccessWorkspace(db *gorm.DB, user CurrentUserInfo, internshipID uint) error {
	switch user.Role {
	case types.RoleAdmin:
		return nil
	case types.RoleOrganization:
		_, err := OrgOwnsInternship(db, user.ProfileID, internshipID)
		return err
	case types.RoleIntern:
		return InternHasAcceptedApplication(db, user.ProfileID, internshipID)
	default:
		return apperrors.Forbidden("You do not have permission to access this workspace")
	}
}

// CurrentUserInfo is the slice of the session identity authz needs. Defined
// here to keep the package free of a dependency on the HTTP middleware.
type CurrentUserInfo struct {
	Role      types.Role
	ProfileID uint
}
