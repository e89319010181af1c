package types

import "testing"

func TestApplicationStatusTransitions(t *testing.T) {
	cases := []struct {
		status      ApplicationStatus
		canReview   bool
		canWithdraw bool
		decision    bool
	}{
		{ApplicationPending, true, true, false},
		{ApplicationAccepted, false, false, true},
		{ApplicationRejected, false, false, true},
		{ApplicationWithdrawn, false, false, false},
	}

	for _, tc := range cases {
		if got := tc.status.CanReview(); got != tc.canReview {
			t.Errorf("%s.CanReview() = %v, want %v", tc.status, got, tc.canReview)
		}
		if got := tc.status.CanWithdraw(); got != tc.canWithdraw {
			t.Errorf("%s.CanWithdraw() = %v, want %v", tc.status, got, tc.canWithdraw)
		}
		if got := tc.status.Decision(); got != tc.decision {
			t.Errorf("%s.Decision() = %v, want %v", tc.status, got, tc.decision)
		}
	}
}

func TestApplicationStatusValid(t *testing.T) {
	for _, status := range []ApplicationStatus{ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn} {
		if !status.Valid() {
			t.Errorf("%s should be valid", status)
		}
	}
	if ApplicationStatus("CANCELLED").Valid() {
		t.Error("CANCELLED should not be a valid status")
	}
}

func TestSubmissionStatusTransitions(t *testing.T) {
	cases := []struct {
		status    SubmissionStatus
		finalized bool
		decision  bool
	}{
		{SubmissionSubmitted, false, false},
		{SubmissionAccepted, true, true},
		{SubmissionRejected, true, true},
	}

	for _, tc := range cases {
		if got := tc.status.Finalized(); got != tc.finalized {
			t.Errorf("%s.Finalized() = %v, want %v", tc.status, got, tc.finalized)
		}
		if got := tc.status.Decision(); got != tc.decision {
			t.Errorf("%s.Decision() = %v, want %v", tc.status, got, tc.decision)
		}
	}
}

func TestRoleRegisterable(t *testing.T) {
	if !RoleIntern.Registerable() || !RoleOrganization.Registerable() {
		t.Error("intern and organization roles must be registerable")
	}
	if RoleAdmin.Registerable() {
		t.Error("admin accounts are seeded, not registered")
	}
	if Role("SUPERUSER").Registerable() {
		t.Error("unknown roles must not be registerable")
	}
}
