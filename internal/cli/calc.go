package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/equiv"
	"github.com/circulens/circulens/internal/factors"
	"github.com/circulens/circulens/internal/lca"
)

// newCalcCmd creates the calc subcommand: a single-scenario LCA run driven
// entirely by flags.
func newCalcCmd(cfg func() *config.Config) *cobra.Command {
	var (
		materialFlag string
		recycledPct  float64
		transportKm  float64
		gridFraction float64
		recoveryRate float64
		massKg       float64
		recommend    bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate LCA impacts for one scenario",
		Long: "Calc runs the full calculation pipeline for a single scenario: per-stage\n" +
			"CO2e and energy, water use, circularity index, and the material flow graph.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			material, err := factors.ParseMaterial(materialFlag)
			if err != nil {
				return err
			}

			inputs := lca.InputParams{
				Metal:                   material,
				RecycledContentFraction: lca.Exact(recycledPct / 100),
				TransportDistanceKm:     lca.Exact(transportKm),
				EnergyMix:               lca.EnergyMix{GridFraction: lca.Exact(gridFraction)},
				EndOfLifeRecoveryRate:   lca.Exact(recoveryRate),
			}
			if err := inputs.Validate(); err != nil {
				return err
			}

			engine, err := buildEngine(cfg())
			if err != nil {
				return err
			}
			result, err := engine.Calculate(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			var recommendations []lca.Recommendation
			if recommend {
				recommendations, err = engine.Recommend(cmd.Context(), inputs)
				if err != nil {
					return err
				}
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				payload := any(result)
				if recommend {
					payload = map[string]any{
						"result":          result,
						"recommendations": recommendations,
					}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			var equivOut *equiv.Output
			if massKg > 0 {
				out, err := equiv.ForScenario(result.Summary.TotalCO2eKg, massKg)
				if err != nil {
					return fmt.Errorf("computing equivalencies: %w", err)
				}
				equivOut = &out
			}

			if err := renderResult(cmd.OutOrStdout(), string(material), result, equivOut); err != nil {
				return err
			}
			return renderRecommendations(cmd.OutOrStdout(), recommendations)
		},
	}

	cmd.Flags().StringVar(&materialFlag, "material", "", "material to calculate for (aluminium, copper)")
	cmd.Flags().Float64Var(&recycledPct, "recycled", 0, "recycled content, percent (0-100)")
	cmd.Flags().Float64Var(&transportKm, "transport", 0, "transport distance, km")
	cmd.Flags().Float64Var(&gridFraction, "grid-fraction", 1.0, "share of production energy drawn from the grid (0-1)")
	cmd.Flags().Float64Var(&recoveryRate, "recovery", 0.5, "end-of-life recovery rate (0-1)")
	cmd.Flags().Float64Var(&massKg, "mass", 0, "product mass in kg, enables real-world equivalencies")
	cmd.Flags().BoolVar(&recommend, "recommend", false, "suggest adjustments that reduce the footprint")
	_ = cmd.MarkFlagRequired("material")

	return cmd
}
