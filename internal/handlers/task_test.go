package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
)

func tasksPath(internshipID uint) string {
	return fmt.Sprintf("/api/internships/%d/tasks", internshipID)
}

func TestCreateTaskRequiresOwnership(t *testing.T) {
	r := newTestRouter(t)
	owner, ownerToken := createOrganization(t, "owner@acme.test")
	_, rivalToken := createOrganization(t, "rival@rival.test")

	internship := createInternship(t, owner.ID, "Task Host", true, true)

	body := map[string]any{
		"title":          "Legit Task",
		"submit_as_text": true,
	}

	w := doRequest(t, r, http.MethodPost, tasksPath(internship.ID), rivalToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 creating a task on someone else's internship, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, tasksPath(internship.ID), ownerToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for the owner, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateTaskRequiresSubmissionFormat(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")

	internship := createInternship(t, org.ID, "Formatless Host", true, true)

	w := doRequest(t, r, http.MethodPost, tasksPath(internship.ID), orgToken, map[string]any{
		"title": "Unsubmittable Task",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a task with no accepted format, got %d", w.Code)
	}
}

func TestTaskSlugScopedToInternship(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")

	a := createInternship(t, org.ID, "First Host", true, true)
	b := createInternship(t, org.ID, "Second Host", true, true)

	body := map[string]any{
		"title":          "Onboarding Exercise",
		"submit_as_text": true,
	}

	// The same title may exist in two different internships with the same
	// slug.
	first := doRequest(t, r, http.MethodPost, tasksPath(a.ID), orgToken, body)
	second := doRequest(t, r, http.MethodPost, tasksPath(b.ID), orgToken, body)

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("expected both creates to succeed, got %d and %d", first.Code, second.Code)
	}

	var taskA, taskB models.Task
	decodeBody(t, first, &taskA)
	decodeBody(t, second, &taskB)

	if taskA.Slug != taskB.Slug {
		t.Errorf("expected the same slug across internships, got %q and %q", taskA.Slug, taskB.Slug)
	}

	// Within one internship a duplicate title gets a suffixed slug.
	third := doRequest(t, r, http.MethodPost, tasksPath(a.ID), orgToken, body)
	if third.Code != http.StatusCreated {
		t.Fatalf("expected a duplicate title within one internship to succeed, got %d", third.Code)
	}

	var taskC models.Task
	decodeBody(t, third, &taskC)
	if taskC.Slug == taskA.Slug {
		t.Errorf("expected a distinct slug within the internship, both got %q", taskC.Slug)
	}
}

func TestCreateTaskWithResources(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")

	internship := createInternship(t, org.ID, "Resourced Host", true, true)

	w := doRequest(t, r, http.MethodPost, tasksPath(internship.ID), orgToken, map[string]any{
		"title":          "Read The Docs",
		"submit_as_url":  true,
		"resources": []map[string]any{
			{"name": "Style Guide", "type": "URL", "url": "https://example.com/guide"},
			{"name": "Template", "type": "FILE", "file_path": "resource/template.docx"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	decodeBody(t, w, &task)
	if len(task.Resources) != 2 {
		t.Errorf("expected 2 resources, got %d", len(task.Resources))
	}

	// A URL resource without a url is invalid.
	w = doRequest(t, r, http.MethodPost, tasksPath(internship.ID), orgToken, map[string]any{
		"title":         "Broken Resource",
		"submit_as_url": true,
		"resources": []map[string]any{
			{"name": "Missing Link", "type": "URL"},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a URL resource without a url, got %d", w.Code)
	}
}

func TestUpdateAndDeleteTaskRequireOwnership(t *testing.T) {
	r := newTestRouter(t)
	owner, ownerToken := createOrganization(t, "owner@acme.test")
	_, rivalToken := createOrganization(t, "rival@rival.test")

	internship := createInternship(t, owner.ID, "Guarded Tasks", true, true)
	task := createTask(t, internship.ID, "Guarded Task")

	path := fmt.Sprintf("/api/tasks/%d", task.ID)
	body := map[string]any{
		"title":          "Renamed Task",
		"submit_as_text": true,
	}

	w := doRequest(t, r, http.MethodPatch, path, rivalToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-owner update, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPatch, path, ownerToken, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete, path, rivalToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-owner delete, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodDelete, path, ownerToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for the owner, got %d", w.Code)
	}
}

func TestListWorkspaceTasksAccess(t *testing.T) {
	r := newTestRouter(t)
	org, orgToken := createOrganization(t, "org@acme.test")
	accepted, acceptedToken := createIntern(t, "accepted@school.test")
	pending, pendingToken := createIntern(t, "pending@school.test")
	adminToken := createAdmin(t)

	internship := createInternship(t, org.ID, "Shared Workspace", true, true)
	createTask(t, internship.ID, "Workspace Task")
	createApplication(t, accepted.ID, internship.ID, types.ApplicationAccepted)
	createApplication(t, pending.ID, internship.ID, types.ApplicationPending)

	path := tasksPath(internship.ID)

	for name, tc := range map[string]struct {
		token string
		want  int
	}{
		"owner":           {orgToken, http.StatusOK},
		"accepted intern": {acceptedToken, http.StatusOK},
		"pending intern":  {pendingToken, http.StatusForbidden},
		"admin":           {adminToken, http.StatusOK},
	} {
		w := doRequest(t, r, http.MethodGet, path, tc.token, nil)
		if w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", name, tc.want, w.Code)
		}
	}
}
