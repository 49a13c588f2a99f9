package email_test

import (
	"strings"
	"testing"

	"sparknest-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *email.Renderer {
	t.Helper()
	r, err := email.NewRenderer("SparkNest Studio")
	require.NoError(t, err)
	return r
}

func TestRenderContact(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderContact(email.ContactEmailData{
		Heading:  "Contact",
		Name:     "Jane",
		Email:    "jane@x.com",
		Phone:    "+91 98765 43210",
		Subject:  "Hi",
		Message:  "Hello there\nSecond line",
		WhatsApp: "+91 9334732506",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Contact Inquiry - SparkNest Studio", out.Title)
	assert.Contains(t, out.HTML, "<title>New Contact Inquiry - SparkNest Studio</title>")
	assert.Contains(t, out.HTML, "<strong>Name:</strong> Jane")
	assert.Contains(t, out.HTML, "jane@x.com")
	assert.Contains(t, out.HTML, "+91 98765 43210")
	assert.Contains(t, out.HTML, "Hello there<br")
	assert.Contains(t, out.HTML, "Second line")
	assert.Contains(t, out.HTML, "+91 9334732506")

	assert.True(t, strings.HasPrefix(out.Text, "New Contact Inquiry - SparkNest Studio\n\n"))
	assert.Contains(t, out.Text, "**Phone:** +91 98765 43210")
	assert.Contains(t, out.Text, "Hello there\nSecond line")
	assert.Contains(t, out.Text, "**Reply to:** jane@x.com")
}

func TestRenderContactOmitsEmptyOptionalFields(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderContact(email.ContactEmailData{
		Name:    "Jane",
		Email:   "jane@x.com",
		Subject: "Hi",
		Message: "Hello",
	})
	require.NoError(t, err)

	assert.NotContains(t, out.Text, "Phone:")
	assert.NotContains(t, out.Text, "WhatsApp:")
	assert.NotContains(t, out.HTML, "Phone:")
	assert.Equal(t, "New Contact Inquiry - SparkNest Studio", out.Title)
}

func TestRenderProjectInquiryHeading(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderContact(email.ContactEmailData{
		Heading: "Project",
		Name:    "Jane",
		Email:   "jane@x.com",
		Subject: "Hi",
		Message: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Project Inquiry - SparkNest Studio", out.Title)
}

func TestRenderProjectFeaturesInOrder(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderProject(email.ProjectEmailData{
		Name:        "Jane",
		Email:       "jane@x.com",
		ProjectType: "Web Application",
		Budget:      "10k-25k",
		Timeline:    "1-3 months",
		Description: "A storefront",
		Features:    []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out.HTML, "<li>A</li>"))
	assert.Equal(t, 1, strings.Count(out.HTML, "<li>B</li>"))
	assert.Less(t, strings.Index(out.HTML, "<li>A</li>"), strings.Index(out.HTML, "<li>B</li>"))

	assert.Equal(t, 1, strings.Count(out.Text, "- A\n"))
	assert.Equal(t, 1, strings.Count(out.Text, "- B\n"))
	assert.Less(t, strings.Index(out.Text, "- A\n"), strings.Index(out.Text, "- B\n"))
	assert.Contains(t, out.Text, "### Required Features")
}

func TestRenderProjectOptionalSections(t *testing.T) {
	r := newRenderer(t)

	data := email.ProjectEmailData{
		Name:        "Jane",
		Email:       "jane@x.com",
		ProjectType: "AI/ML Solution",
		Budget:      "25k+",
		Timeline:    "ASAP",
		Description: "Chatbot",
	}
	out, err := r.RenderProject(data)
	require.NoError(t, err)
	assert.NotContains(t, out.Text, "Required Features")
	assert.NotContains(t, out.Text, "Additional Information")
	assert.NotContains(t, out.Text, "Company:")
	assert.Contains(t, out.HTML, "AI/ML Solution")

	data.Company = "Acme"
	data.AdditionalInfo = "Line one\nLine two"
	data.Features = []string{"RAG"}
	out, err = r.RenderProject(data)
	require.NoError(t, err)
	assert.Contains(t, out.Text, "**Company:** Acme")
	assert.Contains(t, out.Text, "### Additional Information\n\nLine one\nLine two")
	assert.Contains(t, out.HTML, "Line one<br")
	assert.Contains(t, out.HTML, "<li>RAG</li>")
}

func TestRenderEscapesUserInput(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderProject(email.ProjectEmailData{
		Name:        "<script>alert(1)</script>",
		Email:       "jane@x.com",
		ProjectType: "Web Application",
		Budget:      "**huge**",
		Timeline:    "[soon](javascript:alert(1))",
		Description: "# Not a heading\n- not a list",
	})
	require.NoError(t, err)

	assert.NotContains(t, out.HTML, "<script>")
	assert.NotContains(t, out.HTML, "<strong>huge</strong>")
	assert.NotContains(t, out.HTML, "href")
	assert.NotContains(t, out.HTML, "<h1>Not a heading")
	assert.NotContains(t, out.HTML, "<li>not a list")
	assert.Contains(t, out.HTML, "**huge**")

	assert.Contains(t, out.Text, "<script>alert(1)</script>")
	assert.Contains(t, out.Text, "# Not a heading\n- not a list")
}

func TestRenderNormalizesCarriageReturns(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderContact(email.ContactEmailData{
		Name:    "Jane",
		Email:   "jane@x.com",
		Subject: "Hi",
		Message: "one\r\ntwo",
	})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "one\ntwo")
	assert.NotContains(t, out.Text, "\r")
}
