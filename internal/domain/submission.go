package domain

import "context"

// FormKind discriminates the two submission forms
type FormKind string

const (
	FormKindContact FormKind = "contact"
	FormKindProject FormKind = "project"
)

// FormKinds lists every accepted FormKind in display order
var FormKinds = []FormKind{FormKindContact, FormKindProject}

// Valid reports whether k is one of the known form kinds
func (k FormKind) Valid() bool {
	switch k {
	case FormKindContact, FormKindProject:
		return true
	}
	return false
}

// Label returns the human readable name used in notification headings
func (k FormKind) Label() string {
	switch k {
	case FormKindContact:
		return "Contact"
	case FormKindProject:
		return "Project"
	}
	return string(k)
}

// Submission is a validated form payload. It is implemented only by
// ContactSubmission and ProjectSubmission.
type Submission interface {
	Kind() FormKind
	SenderName() string
	SenderEmail() string
	isSubmission()
}

// SubmissionResult is what the caller of a submission endpoint gets back
type SubmissionResult struct {
	Message string
}

// SubmissionUsecase runs the validate -> dispatch pipeline for raw form payloads
type SubmissionUsecase interface {
	// SubmitContact validates a raw contact payload and dispatches the notification
	SubmitContact(ctx context.Context, payload map[string]any) (*SubmissionResult, error)
	// SubmitProject validates a raw project payload and dispatches the notification
	SubmitProject(ctx context.Context, payload map[string]any) (*SubmissionResult, error)
}

// HealthUsecase reports the readiness of the service
type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}
