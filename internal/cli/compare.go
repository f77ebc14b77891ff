package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/lca"
)

// newCompareCmd creates the compare subcommand: impute and calculate two
// project scenarios, then report the deltas between them.
func newCompareCmd(cfg func() *config.Config) *cobra.Command {
	var leftFile, rightFile string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two project scenarios",
		Long: "Compare imputes and calculates both projects, then reports headline\n" +
			"metrics side by side with right-minus-left deltas.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			left, err := readProject(cmd, leftFile)
			if err != nil {
				return err
			}
			right, err := readProject(cmd, rightFile)
			if err != nil {
				return err
			}

			orchestrator, err := buildOrchestrator(cfg())
			if err != nil {
				return err
			}

			leftOut, err := orchestrator.Impute(cmd.Context(), left)
			if err != nil {
				return err
			}
			rightOut, err := orchestrator.Impute(cmd.Context(), right)
			if err != nil {
				return err
			}
			if leftOut.ProjectImputed.Results == nil || rightOut.ProjectImputed.Results == nil {
				return errors.New("both projects need a material to be compared")
			}

			leftSummary := leftOut.ProjectImputed.Results.Summary
			rightSummary := rightOut.ProjectImputed.Results.Summary
			deltas := lca.CompareSummaries(leftSummary, rightSummary)

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"left_metrics":  leftSummary,
					"right_metrics": rightSummary,
					"deltas":        deltas,
				})
			}

			return renderComparison(cmd.OutOrStdout(),
				labelForProject(left.Name, "left"), leftSummary,
				labelForProject(right.Name, "right"), rightSummary,
				deltas)
		},
	}

	cmd.Flags().StringVar(&leftFile, "left", "", "baseline project JSON file")
	cmd.Flags().StringVar(&rightFile, "right", "", "candidate project JSON file")
	_ = cmd.MarkFlagRequired("left")
	_ = cmd.MarkFlagRequired("right")

	return cmd
}

func labelForProject(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
