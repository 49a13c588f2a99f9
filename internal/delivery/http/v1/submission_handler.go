package v1

import (
	"context"
	"errors"
	"net/http"

	"sparknest-backend/internal/delivery/http/response"
	"sparknest-backend/internal/domain"
	"sparknest-backend/pkg/apperror"
	"sparknest-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	invalidFormMessage   = "Invalid form data"
	contactFailedMessage = "Failed to send message. Please try again."
	projectFailedMessage = "Failed to submit project request. Please try again."
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

// NewSubmissionHandler registers the form routes (public, no auth required)
func NewSubmissionHandler(public *gin.RouterGroup, submissionUC domain.SubmissionUsecase) {
	handler := &SubmissionHandler{
		submissionUC: submissionUC,
	}

	public.POST("/contact", handler.SubmitContact)
	public.POST("/project", handler.SubmitProject)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. This is a public endpoint.
// @Tags         forms
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *SubmissionHandler) SubmitContact(c *gin.Context) {
	h.submit(c, h.submissionUC.SubmitContact, contactFailedMessage)
}

// SubmitProject godoc
// @Summary      Submit Project Request
// @Description  Request a quote for a web, mobile, AI or collaboration project. This is a public endpoint.
// @Tags         forms
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        project  body      domain.ProjectSubmission  true  "Project Request Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /project [post]
func (h *SubmissionHandler) SubmitProject(c *gin.Context) {
	h.submit(c, h.submissionUC.SubmitProject, projectFailedMessage)
}

type submitFunc func(ctx context.Context, payload map[string]any) (*domain.SubmissionResult, error)

func (h *SubmissionHandler) submit(c *gin.Context, submit submitFunc, failedMessage string) {
	payload, err := bindPayload(c)
	if err != nil {
		c.Error(clientError(err, failedMessage))
		return
	}

	result, err := submit(c.Request.Context(), payload)
	if err != nil {
		c.Error(clientError(err, failedMessage))
		return
	}

	response.Success(c, http.StatusOK, result.Message, nil)
}

func clientError(err error, failedMessage string) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return apperror.BadRequestDetails(invalidFormMessage, verr.Fields, err)
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.InternalMessage(failedMessage, err)
}
