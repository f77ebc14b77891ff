// Package factors provides the static per-material factor tables consumed by
// the LCA engine.
//
// A Store is loaded once at process start from the embedded dataset (or an
// operator-supplied YAML override) and is immutable afterwards, so it is safe
// to share across concurrent requests without locking.
package factors

import (
	"fmt"
	"strings"
)

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for factor lookup and dataset loading. These belong to the
// configuration-error class: callers must surface them as hard failures
// rather than substituting defaults.
var (
	// ErrUnknownMaterial indicates a material with no factor table entry.
	ErrUnknownMaterial = constError("unknown material")

	// ErrBadDataset indicates the factor dataset failed to load or parse.
	ErrBadDataset = constError("invalid factor dataset")
)

// Material identifies a metal with a factor table entry.
type Material string

// Supported materials.
const (
	Aluminium Material = "aluminium"
	Copper    Material = "copper"
)

// ParseMaterial normalizes a user-supplied material name. It accepts any
// casing plus the "aluminum" spelling, and returns ErrUnknownMaterial for
// anything it does not recognize.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aluminium", "aluminum":
		return Aluminium, nil
	case "copper":
		return Copper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
	}
}

// PrimaryProduction holds the virgin-material pathway factors, per kg of
// final product.
type PrimaryProduction struct {
	// MiningEnergyMJ is energy demand for ore extraction, MJ/kg.
	MiningEnergyMJ float64 `yaml:"mining_energy_MJ"`

	// MiningDirectCO2e is non-energy process emissions, kgCO2e/kg.
	MiningDirectCO2e float64 `yaml:"mining_direct_emissions_CO2e"`

	// ProcessingEnergyMJ is smelting/refining energy demand, MJ/kg.
	ProcessingEnergyMJ float64 `yaml:"processing_energy_MJ"`

	// GridEmissionFactor converts grid energy to emissions, kgCO2e/MJ.
	GridEmissionFactor float64 `yaml:"EF_energy_grid_CO2e_per_MJ"`
}

// Recycling holds the secondary-material pathway factors.
type Recycling struct {
	// CreditCO2e is avoided emissions per kg of recycled input,
	// kgCO2e/kg. Conventionally negative.
	CreditCO2e float64 `yaml:"recycling_credit_CO2e"`

	// EnergyMJ is remelt energy demand, MJ/kg.
	EnergyMJ float64 `yaml:"recycling_energy_MJ"`
}

// Transport holds logistics emission factors.
type Transport struct {
	// EmissionFactorPerTkm is kgCO2e per tonne-kilometre.
	EmissionFactorPerTkm float64 `yaml:"EF_transport_CO2e_per_tkm"`
}

// OtherImpacts holds impact categories outside the energy/CO2e pathways.
type OtherImpacts struct {
	// WaterM3 is water use per kg of final product, m³/kg.
	WaterM3 float64 `yaml:"water_m3"`
}

// Factors is one material's complete factor table.
type Factors struct {
	// ReusePotentialFraction is the material-level reuse potential, 0..1.
	// A material constant, not scenario-dependent.
	ReusePotentialFraction float64 `yaml:"reusePotentialFraction"`

	PrimaryProduction PrimaryProduction `yaml:"primaryProduction"`
	Recycling         Recycling         `yaml:"recycling"`
	Transport         Transport         `yaml:"transport"`
	OtherImpacts      OtherImpacts      `yaml:"otherImpacts"`
}

// Store is the read-only factor table keyed by material.
type Store struct {
	tables map[Material]Factors
}

// Lookup returns the factor table for material, or ErrUnknownMaterial if the
// dataset carries no entry for it.
func (s *Store) Lookup(material Material) (Factors, error) {
	f, ok := s.tables[material]
	if !ok {
		return Factors{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, material)
	}
	return f, nil
}

// Materials returns the materials present in the store, in stable order.
func (s *Store) Materials() []Material {
	out := make([]Material, 0, len(s.tables))
	for _, m := range []Material{Aluminium, Copper} {
		if _, ok := s.tables[m]; ok {
			out = append(out, m)
		}
	}
	// Any extra materials from a custom dataset follow the known ones.
	for m := range s.tables {
		if m != Aluminium && m != Copper {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of material entries.
func (s *Store) Len() int {
	return len(s.tables)
}
