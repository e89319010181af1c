package types

// ApplicationStatus tracks an intern's application to an internship.
//
// PENDING is the only state with outgoing transitions: the owning
// organization moves it to ACCEPTED or REJECTED, the applying intern moves
// it to WITHDRAWN. All three are terminal.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// CanReview reports whether the organization may still decide this
// application.
func (s ApplicationStatus) CanReview() bool {
	return s == ApplicationPending
}

// CanWithdraw reports whether the intern may still pull this application.
func (s ApplicationStatus) CanWithdraw() bool {
	return s == ApplicationPending
}

// Decision reports whether the status is a valid organization decision.
func (s ApplicationStatus) Decision() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// SubmissionStatus tracks an intern's deliverable for a task.
// SUBMITTED → ACCEPTED/REJECTED, nothing afterward.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionAccepted  SubmissionStatus = "ACCEPTED"
	SubmissionRejected  SubmissionStatus = "REJECTED"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionSubmitted, SubmissionAccepted, SubmissionRejected:
		return true
	}
	return false
}

// Finalized reports whether the submission has been reviewed. A finalized
// submission is immutable to its author and cannot be re-reviewed.
func (s SubmissionStatus) Finalized() bool {
	return s == SubmissionAccepted || s == SubmissionRejected
}

// Decision reports whether the status is a valid review outcome.
func (s SubmissionStatus) Decision() bool {
	return s == SubmissionAccepted || s == SubmissionRejected
}
