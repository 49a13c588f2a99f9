package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"sparknest-backend/pkg/sanitizer"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.md templates/layout.html
var templatesFS embed.FS

const (
	contactTemplate = "contact.md"
	projectTemplate = "project.md"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	Heading  string
	Name     string
	Email    string
	Phone    string
	Subject  string
	Message  string
	WhatsApp string
}

// ProjectEmailData holds the data for project request emails
type ProjectEmailData struct {
	Name           string
	Email          string
	Company        string
	Phone          string
	ProjectType    string
	Budget         string
	Timeline       string
	Description    string
	Features       []string
	AdditionalInfo string
	WhatsApp       string
}

// Rendered is a notification body in both formats
type Rendered struct {
	Title string
	HTML  string
	Text  string
}

// Renderer turns notification templates into HTML and plain text bodies.
// Templates are parsed once; a Renderer is safe for concurrent use.
type Renderer struct {
	brand  string
	md     goldmark.Markdown
	layout *template.Template
	// markdown holds templates that escape user values for goldmark,
	// plain holds the same templates emitting values verbatim.
	markdown map[string]*texttemplate.Template
	plain    map[string]*texttemplate.Template
}

// NewRenderer parses the embedded templates
func NewRenderer(brand string) (*Renderer, error) {
	layout, err := template.ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email layout: %w", err)
	}

	r := &Renderer{
		brand: brand,
		md: goldmark.New(
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		layout:   layout,
		markdown: make(map[string]*texttemplate.Template),
		plain:    make(map[string]*texttemplate.Template),
	}

	for _, name := range []string{contactTemplate, projectTemplate} {
		src, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read email template %s: %w", name, err)
		}
		if r.markdown[name], err = parseTemplate(name, src, escapeMarkdown); err != nil {
			return nil, err
		}
		if r.plain[name], err = parseTemplate(name, src, normalizeNewlines); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func parseTemplate(name string, src []byte, md func(string) string) (*texttemplate.Template, error) {
	tmpl, err := texttemplate.New(name).
		Option("missingkey=error").
		Funcs(texttemplate.FuncMap{"md": md}).
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
	}
	return tmpl, nil
}

// RenderContact renders a contact form notification
func (r *Renderer) RenderContact(data ContactEmailData) (*Rendered, error) {
	heading := data.Heading
	if heading == "" {
		heading = "Contact"
	}
	return r.render(contactTemplate, fmt.Sprintf("New %s Inquiry - %s", heading, r.brand), data)
}

// RenderProject renders a project request notification
func (r *Renderer) RenderProject(data ProjectEmailData) (*Rendered, error) {
	return r.render(projectTemplate, fmt.Sprintf("New Project Request - %s", r.brand), data)
}

func (r *Renderer) render(name, title string, data any) (*Rendered, error) {
	var source bytes.Buffer
	if err := r.markdown[name].Execute(&source, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template %s: %w", name, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(source.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("failed to convert email markdown %s: %w", name, err)
	}

	var page bytes.Buffer
	err := r.layout.Execute(&page, map[string]any{
		"Title":   title,
		"Brand":   r.brand,
		"Content": template.HTML(sanitizer.SanitizeNotificationHTML(body.String())),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute email layout: %w", err)
	}

	var text bytes.Buffer
	text.WriteString(title)
	text.WriteString("\n\n")
	if err := r.plain[name].Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template %s: %w", name, err)
	}

	return &Rendered{
		Title: title,
		HTML:  page.String(),
		Text:  text.String(),
	}, nil
}

// markdownEscaper backslash-escapes every ASCII punctuation character that
// carries meaning in CommonMark, so user input always renders as literal text.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"{", `\{`, "}", `\}`, "[", `\[`, "]", `\]`,
	"(", `\(`, ")", `\)`, "#", `\#`, "+", `\+`,
	"-", `\-`, ".", `\.`, "!", `\!`, "<", `\<`,
	">", `\>`, "|", `\|`, "~", `\~`, "&", `\&`,
	"=", `\=`, ":", `\:`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(normalizeNewlines(s))
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
