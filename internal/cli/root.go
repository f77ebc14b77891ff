// Package cli implements the circulens command line interface.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/circulens/circulens/internal/config"
)

// defaultConfigPath is consulted when --config is not given. A missing file
// at this path is not an error; defaults apply.
const defaultConfigPath = "circulens.yaml"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the circulens CLI.
// It wires up configuration loading, logging, and the calc, impute,
// compare, factors, and serve subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:     "circulens",
		Short:   "LCA and circularity metrics for metal production pathways",
		Long: "Circulens calculates CO2e footprint, energy and water use, a circularity\n" +
			"index, and material flow graphs for aluminium and copper production\n" +
			"scenarios, with model-based imputation of missing project inputs.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			explicit := path != ""
			if !explicit {
				path = defaultConfigPath
			}

			loaded, err := config.Load(path, explicit)
			if err != nil {
				return err
			}
			cfg = loaded

			setupLogging(cmd, cfg)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file")
	cmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON instead of styled output")

	cfgRef := func() *config.Config { return cfg }
	cmd.AddCommand(
		newCalcCmd(cfgRef),
		newImputeCmd(cfgRef),
		newCompareCmd(cfgRef),
		newFactorsCmd(cfgRef),
		newServeCmd(cfgRef),
	)

	return cmd
}

const rootCmdExample = `  # Calculate impacts for primary aluminium shipped 100 km
  circulens calc --material aluminium --transport 100 --recovery 0.8

  # Calculate for 60% recycled copper on a half-grid energy mix
  circulens calc --material copper --recycled 60 --grid-fraction 0.5

  # Fill a project's missing inputs and run the engine
  circulens impute --file project.json

  # Compare two project scenarios
  circulens compare --left baseline.json --right improved.json

  # Show the loaded factor dataset
  circulens factors

  # Serve the JSON API
  circulens serve`
