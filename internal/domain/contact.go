package domain

// ContactSubmission represents a validated contact form submission
type ContactSubmission struct {
	Name     string   `json:"name" validate:"not_blank" label:"Name"`
	Email    string   `json:"email" validate:"required,email" label:"Email"`
	Phone    string   `json:"phone,omitempty" label:"Phone"`
	Subject  string   `json:"subject" validate:"not_blank" label:"Subject"`
	Message  string   `json:"message" validate:"not_blank" label:"Message"`
	FormType FormKind `json:"formType" validate:"required,oneof=contact project" label:"Form type"`
}

func (s *ContactSubmission) Kind() FormKind      { return s.FormType }
func (s *ContactSubmission) SenderName() string  { return s.Name }
func (s *ContactSubmission) SenderEmail() string { return s.Email }
func (*ContactSubmission) isSubmission()         {}
