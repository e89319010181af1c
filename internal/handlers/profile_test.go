package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
)

func TestUpsertInternProfileCreateThenUpdate(t *testing.T) {
	r := newTestRouter(t)
	_, token := createUser(t, "Profileless Intern", "fresh@school.test", types.RoleIntern)

	body := map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"university": "Analytical University",
		"skills":     []string{"go", "sql"},
	}

	first := doRequest(t, r, http.MethodPut, "/api/profiles/intern", token, body)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first upsert, got %d: %s", first.Code, first.Body.String())
	}

	body["university"] = "Another University"
	second := doRequest(t, r, http.MethodPut, "/api/profiles/intern", token, body)
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 on second upsert, got %d", second.Code)
	}

	var profile models.InternProfile
	decodeBody(t, second, &profile)
	if profile.University != "Another University" {
		t.Errorf("expected updated university, got %q", profile.University)
	}

	get := doRequest(t, r, http.MethodGet, "/api/profiles/intern", token, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching the profile, got %d", get.Code)
	}
}

func TestProfileRequiredBeforeApplying(t *testing.T) {
	r := newTestRouter(t)
	org, _ := createOrganization(t, "org@acme.test")
	_, token := createUser(t, "Eager Intern", "eager@school.test", types.RoleIntern)

	internship := createInternship(t, org.ID, "Needs Profile", true, true)

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/internships/%d/applications", internship.ID), token, map[string]any{})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 (complete your profile) before applying, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProfileRoutesAreRoleBound(t *testing.T) {
	r := newTestRouter(t)
	_, internToken := createIntern(t, "intern@school.test")
	_, orgToken := createOrganization(t, "org@acme.test")

	w := doRequest(t, r, http.MethodGet, "/api/profiles/organization", internToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an intern on the organization profile, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/profiles/intern", orgToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an organization on the intern profile, got %d", w.Code)
	}
}

func TestUpsertOrganizationProfileWebhook(t *testing.T) {
	r := newTestRouter(t)
	_, token := createUser(t, "Fresh Org", "fresh@acme.test", types.RoleOrganization)

	w := doRequest(t, r, http.MethodPut, "/api/profiles/organization", token, map[string]any{
		"organization_name": "Fresh Corp",
		"webhook_url":       "https://hooks.fresh.test/applications",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var profile models.OrganizationProfile
	decodeBody(t, w, &profile)
	if profile.WebhookURL != "https://hooks.fresh.test/applications" {
		t.Errorf("expected the webhook URL to persist, got %q", profile.WebhookURL)
	}
}
