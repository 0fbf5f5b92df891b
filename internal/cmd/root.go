/*
Package cmd provides the formrelay CLI commands.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay/pkg/config"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:   "formrelay",
		Short: "Relay website form submissions to the studio inbox",
		Long: `formrelay accepts contact, collaboration and waitlist submissions
over HTTP, validates and rate-limits them, and delivers a formatted
notification email through SMTP, Postmark or a local directory.

Example:
  formrelay serve                 # Run the HTTP API
  formrelay smtp-check            # Verify the mail transport
  formrelay preview --kind waitlist --interest yoga`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if len(envFiles) > 0 {
				config.SetEnvFiles(envFiles...)
			}
		},
	}

	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newSMTPCheckCommand())
	root.AddCommand(newPreviewCommand())
	return root
}

// Execute runs the CLI until it finishes or the process is signalled.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
