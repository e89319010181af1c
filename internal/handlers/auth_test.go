package handlers_test

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRouter(t)

	register := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "New Intern",
		"email":    "new@school.test",
		"password": "supersecret",
		"role":     "INTERN",
	})
	if register.Code != http.StatusCreated {
		t.Fatalf("expected 201 on register, got %d: %s", register.Code, register.Body.String())
	}

	var registered struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, register, &registered)

	if registered.Token == "" {
		t.Fatal("expected a token in the register response")
	}
	if registered.User.Role != "INTERN" {
		t.Errorf("expected role INTERN, got %q", registered.User.Role)
	}

	login := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "new@school.test",
		"password": "supersecret",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", login.Code, login.Body.String())
	}

	me := doRequest(t, r, http.MethodGet, "/api/auth/me", registered.Token, nil)
	if me.Code != http.StatusOK {
		t.Fatalf("expected 200 on me, got %d", me.Code)
	}

	var meResp struct {
		ProfileCompleted bool `json:"profile_completed"`
	}
	decodeBody(t, me, &meResp)
	if meResp.ProfileCompleted {
		t.Error("a fresh registration should not have a completed profile")
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	r := newTestRouter(t)

	body := map[string]any{
		"name":     "First",
		"email":    "taken@school.test",
		"password": "supersecret",
		"role":     "INTERN",
	}

	first := doRequest(t, r, http.MethodPost, "/api/auth/register", "", body)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", first.Code)
	}

	second := doRequest(t, r, http.MethodPost, "/api/auth/register", "", body)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", second.Code)
	}
}

func TestRegisterAdminRoleRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Wannabe Admin",
		"email":    "admin@school.test",
		"password": "supersecret",
		"role":     "ADMIN",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 registering as admin, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)

	register := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Careful User",
		"email":    "careful@school.test",
		"password": "supersecret",
		"role":     "INTERN",
	})
	if register.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", register.Code)
	}

	login := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "careful@school.test",
		"password": "wrongpassword",
	})
	if login.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 with the wrong password, got %d", login.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a garbage token, got %d", w.Code)
	}
}
