package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay/internal/app"
	"github.com/dmitrymomot/formrelay/pkg/config"
	"github.com/dmitrymomot/formrelay/pkg/email"
)

// mailOnly loads the transport settings without requiring the rest of the
// service configuration.
type mailOnly struct {
	Mail email.Config
}

func newSMTPCheckCommand() *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "smtp-check",
		Short: "Verify that the mail transport connects and authenticates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg mailOnly
			if err := config.Parse(&cfg); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			sender, err := email.NewSender(cfg.Mail)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			d := email.NewDispatcher(sender, email.WithSendTimeout(timeout))
			if err := d.Verify(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s transport check failed: %v\n", transportLabel(cfg.Mail), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s transport is ready to send emails\n", transportLabel(cfg.Mail))
			return nil
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "connection and authentication timeout")
	return c
}

func transportLabel(cfg email.Config) string {
	return app.Config{Mail: cfg}.TransportName()
}
