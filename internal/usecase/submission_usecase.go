package usecase

import (
	"context"
	"errors"

	"sparknest-backend/internal/domain"
	"sparknest-backend/pkg/security"
	"sparknest-backend/pkg/validation"
)

const (
	ContactSuccessMessage = "Your message has been sent successfully! We'll get back to you soon."
	ProjectSuccessMessage = "Your project request has been submitted! We'll review it and get back to you within 24 hours."
)

// FormValidator turns raw payloads into validated submissions
type FormValidator interface {
	ValidateContact(payload map[string]any) (*domain.ContactSubmission, error)
	ValidateProject(payload map[string]any) (*domain.ProjectSubmission, error)
}

// SubmissionDispatcher delivers validated submissions
type SubmissionDispatcher interface {
	Dispatch(ctx context.Context, sub domain.Submission) (Outcome, error)
}

type submissionUsecase struct {
	validator  FormValidator
	dispatcher SubmissionDispatcher
	audit      *security.SecurityLogger
}

// NewSubmissionUsecase wires the validate -> dispatch pipeline. audit may be nil.
func NewSubmissionUsecase(validator FormValidator, dispatcher SubmissionDispatcher, audit *security.SecurityLogger) domain.SubmissionUsecase {
	return &submissionUsecase{
		validator:  validator,
		dispatcher: dispatcher,
		audit:      audit,
	}
}

func (uc *submissionUsecase) SubmitContact(ctx context.Context, payload map[string]any) (*domain.SubmissionResult, error) {
	sub, err := uc.validator.ValidateContact(payload)
	if err != nil {
		uc.rejected(ctx, domain.FormKindContact, payload, err)
		return nil, err
	}
	return uc.dispatch(ctx, sub, ContactSuccessMessage)
}

func (uc *submissionUsecase) SubmitProject(ctx context.Context, payload map[string]any) (*domain.SubmissionResult, error) {
	sub, err := uc.validator.ValidateProject(payload)
	if err != nil {
		uc.rejected(ctx, domain.FormKindProject, payload, err)
		return nil, err
	}
	return uc.dispatch(ctx, sub, ProjectSuccessMessage)
}

func (uc *submissionUsecase) dispatch(ctx context.Context, sub domain.Submission, message string) (*domain.SubmissionResult, error) {
	uc.audit.LogSubmissionAccepted(ctx, string(sub.Kind()), sub.SenderEmail())

	if _, err := uc.dispatcher.Dispatch(ctx, sub); err != nil {
		return nil, err
	}
	return &domain.SubmissionResult{Message: message}, nil
}

func (uc *submissionUsecase) rejected(ctx context.Context, kind domain.FormKind, payload map[string]any, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return
	}
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	emailAddr, _ := payload["email"].(string)
	uc.audit.LogValidationFailed(ctx, string(kind), emailAddr, fields)
}
