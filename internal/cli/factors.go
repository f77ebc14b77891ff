package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/factors"
)

// newFactorsCmd creates the factors subcommand: dump the loaded per-material
// factor dataset.
func newFactorsCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Show the loaded factor dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := buildStore(cfg())
			if err != nil {
				return err
			}

			tables := make(map[factors.Material]factors.Factors, store.Len())
			for _, m := range store.Materials() {
				f, err := store.Lookup(m)
				if err != nil {
					return err
				}
				tables[m] = f
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tables)
			}

			w := cmd.OutOrStdout()
			for _, m := range store.Materials() {
				f := tables[m]
				fmt.Fprintf(w, "%s\n", renderSectionTitle(string(m)))
				fmt.Fprintf(w, "  mining energy          %8.2f MJ/kg\n", f.PrimaryProduction.MiningEnergyMJ)
				fmt.Fprintf(w, "  processing energy      %8.2f MJ/kg\n", f.PrimaryProduction.ProcessingEnergyMJ)
				fmt.Fprintf(w, "  direct mining CO2e     %8.2f kg/kg\n", f.PrimaryProduction.MiningDirectCO2e)
				fmt.Fprintf(w, "  grid emission factor   %8.3f kgCO2e/MJ\n", f.PrimaryProduction.GridEmissionFactor)
				fmt.Fprintf(w, "  recycling credit       %8.2f kgCO2e/kg\n", f.Recycling.CreditCO2e)
				fmt.Fprintf(w, "  recycling energy       %8.2f MJ/kg\n", f.Recycling.EnergyMJ)
				fmt.Fprintf(w, "  transport EF           %8.3f kgCO2e/tkm\n", f.Transport.EmissionFactorPerTkm)
				fmt.Fprintf(w, "  water use              %8.2f m3/kg\n", f.OtherImpacts.WaterM3)
				fmt.Fprintf(w, "  reuse potential        %8.2f\n\n", f.ReusePotentialFraction)
			}
			return nil
		},
	}

	return cmd
}
