package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/imputation"
)

// readProject loads a project description from path, or stdin when path is
// "-".
func readProject(cmd *cobra.Command, path string) (imputation.Project, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return imputation.Project{}, err
		}
		defer f.Close()
		r = f
	}

	var project imputation.Project
	if err := json.NewDecoder(r).Decode(&project); err != nil {
		return imputation.Project{}, fmt.Errorf("parsing project %s: %w", path, err)
	}
	return project, nil
}

// newImputeCmd creates the impute subcommand: fill a project's missing
// inputs from the model artifacts, then run the engine on the completed
// project.
func newImputeCmd(cfg func() *config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "impute",
		Short: "Fill a project's missing inputs and calculate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := readProject(cmd, file)
			if err != nil {
				return err
			}

			orchestrator, err := buildOrchestrator(cfg())
			if err != nil {
				return err
			}
			outcome, err := orchestrator.Impute(cmd.Context(), project)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			}

			return renderOutcome(cmd.OutOrStdout(), outcome)
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "project JSON file, or - for stdin")

	return cmd
}
