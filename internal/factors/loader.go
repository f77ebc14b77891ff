package factors

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/factors.yaml
var embeddedDataset []byte

// NewStore builds a Store from the embedded factor dataset. The embedded
// dataset is validated at build time by the package tests, so a failure here
// means a corrupted binary and is returned as ErrBadDataset.
func NewStore() (*Store, error) {
	return newStoreFromBytes(embeddedDataset)
}

// NewStoreFromFile builds a Store from an operator-supplied dataset file,
// replacing the embedded tables entirely.
func NewStoreFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrBadDataset, path, err)
	}
	return newStoreFromBytes(data)
}

func newStoreFromBytes(data []byte) (*Store, error) {
	var tables map[Material]Factors
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataset, err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: dataset contains no materials", ErrBadDataset)
	}

	for material, f := range tables {
		if err := validateTable(material, f); err != nil {
			return nil, err
		}
	}

	return &Store{tables: tables}, nil
}

// validateTable enforces the structural invariants a factor table must hold
// for results to be meaningful.
func validateTable(material Material, f Factors) error {
	if f.ReusePotentialFraction < 0 || f.ReusePotentialFraction > 1 {
		return fmt.Errorf("%w: %s: reusePotentialFraction %v outside [0,1]",
			ErrBadDataset, material, f.ReusePotentialFraction)
	}

	nonNegative := map[string]float64{
		"mining_energy_MJ":           f.PrimaryProduction.MiningEnergyMJ,
		"processing_energy_MJ":       f.PrimaryProduction.ProcessingEnergyMJ,
		"EF_energy_grid_CO2e_per_MJ": f.PrimaryProduction.GridEmissionFactor,
		"recycling_energy_MJ":        f.Recycling.EnergyMJ,
		"EF_transport_CO2e_per_tkm":  f.Transport.EmissionFactorPerTkm,
		"water_m3":                   f.OtherImpacts.WaterM3,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s: %s must be >= 0, got %v",
				ErrBadDataset, material, name, v)
		}
	}

	// The recycling credit represents avoided emissions; a positive value
	// almost certainly indicates a sign error in the dataset.
	if f.Recycling.CreditCO2e > 0 {
		return fmt.Errorf("%w: %s: recycling_credit_CO2e must be <= 0, got %v",
			ErrBadDataset, material, f.Recycling.CreditCO2e)
	}

	return nil
}
