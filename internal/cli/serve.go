package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/circulens/circulens/internal/api"
	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/imputation"
)

// newServeCmd creates the serve subcommand: run the JSON API until
// interrupted.
func newServeCmd(cfg func() *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			if addr != "" {
				c.Server.Addr = addr
			}

			engine, err := buildEngine(c)
			if err != nil {
				return err
			}
			models, err := buildModels(c)
			if err != nil {
				return err
			}
			orchestrator := imputation.NewOrchestrator(models, engine)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(c, engine, orchestrator, logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
