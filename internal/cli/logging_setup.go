package cli

import (
	"github.com/spf13/cobra"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/logging"
)

// setupLogging configures the CLI logger from config and the --debug flag,
// then attaches it and a request ID to the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	level := cfg.Logging.Level
	format := cfg.Logging.Format
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
		format = "console"
	}

	root := logging.NewLogger(logging.Config{
		Level:  level,
		Format: format,
		Out:    cmd.ErrOrStderr(),
	})
	logger = logging.ComponentLogger(root, "cli")

	ctx := cmd.Context()
	requestID := logging.GetOrGenerateRequestID(ctx)
	ctx = logging.ContextWithRequestID(ctx, requestID)
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}
