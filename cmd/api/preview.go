package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sparknest-backend/config"
	"sparknest-backend/internal/domain"
	"sparknest-backend/pkg/validation"

	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var htmlOnly, textOnly bool

	cmd := &cobra.Command{
		Use:   "preview contact|project <file.json>",
		Short: "Render the notification for a payload without sending it",
		Long: `Validate a payload read from a JSON file ("-" for stdin) and print the
notification it would produce. Nothing is sent.

Example:
  sparknest preview contact testdata/contact.json
  sparknest preview project - < request.json`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.FormKindContact), string(domain.FormKindProject)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a, err := newApp(cfg, false)
			if err != nil {
				return err
			}

			raw, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			return a.preview(cmd.OutOrStdout(), domain.FormKind(args[0]), raw, previewParts{html: !textOnly, text: !htmlOnly})
		},
	}

	cmd.Flags().BoolVar(&htmlOnly, "html", false, "print only the HTML part")
	cmd.Flags().BoolVar(&textOnly, "text", false, "print only the plain text part")
	cmd.MarkFlagsMutuallyExclusive("html", "text")
	return cmd
}

type previewParts struct {
	html bool
	text bool
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return raw, nil
}

func (a *app) preview(w io.Writer, kind domain.FormKind, raw []byte, parts previewParts) error {
	payload, err := validation.DecodeObject(raw)
	if err != nil {
		return reportInvalid(w, err)
	}

	var sub domain.Submission
	switch kind {
	case domain.FormKindContact:
		sub, err = a.validator.ValidateContact(payload)
	case domain.FormKindProject:
		sub, err = a.validator.ValidateProject(payload)
	default:
		return fmt.Errorf("unknown form %q, expected contact or project", kind)
	}
	if err != nil {
		return reportInvalid(w, err)
	}

	msg, err := a.dispatcher.Compose(sub)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "To: %s\nReply-To: %s\nSubject: %s\n", joinTo(msg.To), msg.ReplyTo, msg.Subject)
	if parts.text {
		fmt.Fprintf(w, "\n%s\n", msg.Text)
	}
	if parts.html {
		fmt.Fprintf(w, "\n%s\n", msg.HTML)
	}
	return nil
}

func reportInvalid(w io.Writer, err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return err
	}
	fmt.Fprintln(w, "Invalid form data:")
	for _, f := range verr.Fields {
		field := f.Field
		if field == "" {
			field = "(body)"
		}
		fmt.Fprintf(w, "  %s: %s\n", field, f.Reason)
	}
	return verr
}

func joinTo(to []string) string {
	if len(to) == 0 {
		return "(none)"
	}
	return strings.Join(to, ", ")
}
