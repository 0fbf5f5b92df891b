package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay/internal/app"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := app.NewLogger(cfg, cmd.OutOrStdout())
			logger.SetAsDefault(log)

			a, err := app.New(ctx, cfg, app.WithLogger(log))
			if err != nil {
				log.ErrorContext(ctx, "failed to start", logger.Error(err))
				return err
			}
			defer a.Close()

			srv := httpserver.NewFromConfig(cfg.HTTP,
				httpserver.WithLogger(log),
				httpserver.WithShutdownHook(func() {
					if err := a.Close(); err != nil {
						log.Error("failed to release resources", logger.Error(err))
					}
				}),
			)
			return srv.Run(ctx, a.Handler)
		},
	}
}
