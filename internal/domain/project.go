package domain

// ProjectType is the kind of engagement requested on the project form
type ProjectType string

const (
	ProjectTypeWeb                     ProjectType = "web"
	ProjectTypeMobile                  ProjectType = "mobile"
	ProjectTypeAI                      ProjectType = "ai"
	ProjectTypeFreelancerCollaboration ProjectType = "freelancer-collaboration"
)

// ProjectTypes lists every accepted ProjectType in display order
var ProjectTypes = []ProjectType{
	ProjectTypeWeb,
	ProjectTypeMobile,
	ProjectTypeAI,
	ProjectTypeFreelancerCollaboration,
}

// Valid reports whether t is one of the known project types
func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeWeb, ProjectTypeMobile, ProjectTypeAI, ProjectTypeFreelancerCollaboration:
		return true
	}
	return false
}

// Label returns the display name of the project type
func (t ProjectType) Label() string {
	switch t {
	case ProjectTypeWeb:
		return "Web Application"
	case ProjectTypeMobile:
		return "Mobile Application"
	case ProjectTypeAI:
		return "AI/ML Solution"
	case ProjectTypeFreelancerCollaboration:
		return "Freelancer Collaboration"
	}
	return string(t)
}

// ProjectSubmission represents a validated project intake submission
type ProjectSubmission struct {
	Name           string      `json:"name" validate:"not_blank" label:"Name"`
	Email          string      `json:"email" validate:"required,email" label:"Email"`
	Company        string      `json:"company,omitempty" label:"Company"`
	Phone          string      `json:"phone,omitempty" label:"Phone"`
	ProjectType    ProjectType `json:"projectType" validate:"required,oneof=web mobile ai freelancer-collaboration" label:"Project type"`
	Budget         string      `json:"budget" validate:"not_blank" label:"Budget range"`
	Timeline       string      `json:"timeline" validate:"not_blank" label:"Timeline"`
	Description    string      `json:"description" validate:"not_blank" label:"Project description"`
	Features       []string    `json:"features" label:"Features"`
	AdditionalInfo string      `json:"additionalInfo,omitempty" label:"Additional information"`
}

func (s *ProjectSubmission) Kind() FormKind      { return FormKindProject }
func (s *ProjectSubmission) SenderName() string  { return s.Name }
func (s *ProjectSubmission) SenderEmail() string { return s.Email }
func (*ProjectSubmission) isSubmission()         {}
