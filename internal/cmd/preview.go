package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/config"
)

type previewConfig struct {
	Notification notification.Config
}

func newPreviewCommand() *cobra.Command {
	var (
		kind   string
		in     submission.Input
		outDir string
		html   bool
	)

	c := &cobra.Command{
		Use:   "preview",
		Short: "Render a sample notification email",
		Long: `Render the notification email for a sample submission.

Without --out the subject and plain-text body are printed (or the HTML
body with --html). With --out the HTML and text bodies are written to
<kind>.html and <kind>.txt in that directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := submission.ParseKind(kind)
			if err != nil {
				return err
			}

			var cfg previewConfig
			if err := config.Parse(&cfg); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Notification.From == "" {
				cfg.Notification.From = "studio@example.com"
			}
			if len(cfg.Notification.To) == 0 {
				cfg.Notification.To = []string{"inbox@example.com"}
			}

			renderer, err := notification.NewRenderer(cfg.Notification)
			if err != nil {
				return err
			}
			sub, err := submission.Normalize(k, in)
			if err != nil {
				return err
			}
			msg, err := renderer.Render(sub, time.Now())
			if err != nil {
				return err
			}

			if outDir == "" {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Subject: %s\n\n", msg.Subject)
				if html {
					fmt.Fprintln(out, msg.HTML)
				} else {
					fmt.Fprintln(out, msg.Text)
				}
				return nil
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
			files := map[string]string{
				k.String() + ".html": msg.HTML,
				k.String() + ".txt":  msg.Text,
			}
			for name, body := range files {
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", outDir)
			return nil
		},
	}

	f := c.Flags()
	f.StringVar(&kind, "kind", submission.Contact.String(), "submission kind: contact, collaboration or waitlist")
	f.StringVar(&in.Name, "name", "Jane Doe", "submitter name")
	f.StringVar(&in.Email, "email", "jane@example.com", "submitter email")
	f.StringVar(&in.Message, "message", "Hello! I would love to book a session.", "message body")
	f.StringVar(&in.Company, "company", "", "company (collaboration)")
	f.StringVar(&in.Interest, "interest", "yoga-online", "interest code")
	f.StringVar(&outDir, "out", "", "write the bodies to this directory")
	f.BoolVar(&html, "html", false, "print the HTML body instead of the text body")
	return c
}
