package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
)

func applyPath(internshipID uint) string {
	return fmt.Sprintf("/api/internships/%d/applications", internshipID)
}

func TestApplyToListedInternship(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	_, internToken := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "Open Internship", true, true)

	w := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var application models.Application
	decodeBody(t, w, &application)

	if application.Status != types.ApplicationPending {
		t.Errorf("expected PENDING, got %q", application.Status)
	}
	if application.ResumePath != "resume/default.pdf" {
		t.Errorf("expected the profile resume to be attached, got %q", application.ResumePath)
	}
}

func TestApplyToUnlistedInternshipNotFound(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	_, internToken := createIntern(t, "intern@school.test")

	draft := createInternship(t, org.ID, "Unreviewed Internship", true, false)

	w := doRequest(t, r, http.MethodPost, applyPath(draft.ID), internToken, map[string]any{})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 applying to an unlisted internship, got %d", w.Code)
	}
}

func TestApplyWithoutResumeRejected(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")

	user, internToken := createUser(t, "No Resume", "bare@school.test", types.RoleIntern)
	profile := models.InternProfile{UserID: user.ID, FirstName: "No", LastName: "Resume"}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	internship := createInternship(t, org.ID, "Resume Required", true, true)

	w := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a resume anywhere, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{
		"resume_path": "resume/attached.pdf",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 with an attached resume, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDuplicateApplicationConflict(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	_, internToken := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "One Shot", true, true)

	first := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if first.Code != http.StatusCreated {
		t.Fatalf("first application failed: %d", first.Code)
	}

	second := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate application, got %d: %s", second.Code, second.Body.String())
	}
}

func TestReapplyAfterWithdraw(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	_, internToken := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "Second Chances", true, true)

	first := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if first.Code != http.StatusCreated {
		t.Fatalf("first application failed: %d", first.Code)
	}

	var application models.Application
	decodeBody(t, first, &application)

	withdraw := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/applications/%d/withdraw", application.ID), internToken, nil)
	if withdraw.Code != http.StatusOK {
		t.Fatalf("withdraw failed: %d: %s", withdraw.Code, withdraw.Body.String())
	}

	second := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if second.Code != http.StatusCreated {
		t.Fatalf("expected reapplying after withdrawal to succeed, got %d: %s", second.Code, second.Body.String())
	}
}

func TestRejectedApplicationBlocksReapply(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	intern, internToken := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "No Second Chances", true, true)
	createApplication(t, intern.ID, internship.ID, types.ApplicationRejected)

	w := doRequest(t, r, http.MethodPost, applyPath(internship.ID), internToken, map[string]any{})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 reapplying after rejection, got %d", w.Code)
	}
}

func TestWithdrawOnlyPending(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	intern, internToken := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "Decided Already", true, true)
	application := createApplication(t, intern.ID, internship.ID, types.ApplicationAccepted)

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/applications/%d/withdraw", application.ID), internToken, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 withdrawing an accepted application, got %d", w.Code)
	}
}

func TestWithdrawOthersApplicationForbidden(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	applicant, _ := createIntern(t, "applicant@school.test")
	_, otherToken := createIntern(t, "other@school.test")

	internship := createInternship(t, org.ID, "Private Matters", true, true)
	application := createApplication(t, applicant.ID, internship.ID, types.ApplicationPending)

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/applications/%d/withdraw", application.ID), otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 withdrawing someone else's application, got %d", w.Code)
	}
}

func TestReviewByNonOwnerForbidden(t *testing.T) {
	r := newTestRouter(t)
	owner, _ := createOrganization(t, "owner@acme.test")
	_, rivalToken := createOrganization(t, "rival@rival.test")
	intern, _ := createIntern(t, "intern@school.test")

	internship := createInternship(t, owner.ID, "Contested Posting", true, true)
	application := createApplication(t, intern.ID, internship.ID, types.ApplicationPending)

	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", application.ID), rivalToken, map[string]any{
		"status": "ACCEPTED",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-owner review, got %d", w.Code)
	}
}

func TestReviewRejectsInvalidDecision(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")
	intern, _ := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "Strict Transitions", true, true)
	application := createApplication(t, intern.ID, internship.ID, types.ApplicationPending)

	// WITHDRAWN belongs to the intern, not the reviewing organization.
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", application.ID), orgToken, map[string]any{
		"status": "WITHDRAWN",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-decision status, got %d", w.Code)
	}
}

func TestReviewTwiceConflict(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")
	intern, _ := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "Single Decision", true, true)
	application := createApplication(t, intern.ID, internship.ID, types.ApplicationPending)

	path := fmt.Sprintf("/api/applications/%d/status", application.ID)

	first := doRequest(t, r, http.MethodPatch, path, orgToken, map[string]any{"status": "ACCEPTED"})
	if first.Code != http.StatusOK {
		t.Fatalf("first review failed: %d: %s", first.Code, first.Body.String())
	}

	second := doRequest(t, r, http.MethodPatch, path, orgToken, map[string]any{"status": "REJECTED"})
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 reviewing twice, got %d", second.Code)
	}
}

func TestAcceptanceUnlocksWorkspace(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")
	intern, internToken := createIntern(t, "intern@school.test")

	internship := createInternship(t, org.ID, "Workspace Internship", true, true)
	createTask(t, internship.ID, "First Task")
	application := createApplication(t, intern.ID, internship.ID, types.ApplicationPending)

	tasksPath := fmt.Sprintf("/api/internships/%d/tasks", internship.ID)

	w := doRequest(t, r, http.MethodGet, tasksPath, internToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before acceptance, got %d", w.Code)
	}

	review := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", application.ID), orgToken, map[string]any{
		"status": "ACCEPTED",
	})
	if review.Code != http.StatusOK {
		t.Fatalf("review failed: %d", review.Code)
	}

	w = doRequest(t, r, http.MethodGet, tasksPath, internToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after acceptance, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Tasks) != 1 {
		t.Errorf("expected 1 task in the workspace, got %d", len(resp.Tasks))
	}
}

func TestListMyApplications(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	intern, internToken := createIntern(t, "intern@school.test")
	other, _ := createIntern(t, "other@school.test")

	a := createInternship(t, org.ID, "First Internship", true, true)
	b := createInternship(t, org.ID, "Second Internship", true, true)

	createApplication(t, intern.ID, a.ID, types.ApplicationPending)
	createApplication(t, intern.ID, b.ID, types.ApplicationAccepted)
	createApplication(t, other.ID, a.ID, types.ApplicationPending)

	w := doRequest(t, r, http.MethodGet, "/api/applications", internToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Applications []models.Application `json:"applications"`
	}
	decodeBody(t, w, &resp)

	if len(resp.Applications) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(resp.Applications))
	}
	for _, application := range resp.Applications {
		if application.InternProfileID != intern.ID {
			t.Errorf("someone else's application leaked: %d", application.ID)
		}
	}
}
