// Package lca implements the deterministic life-cycle-assessment engine for
// metal production pathways.
//
// The package is built from pure functions over immutable inputs: the impact
// calculator, the circularity scorer, and the flow graph builder, composed by
// Engine.Calculate. Nothing here performs I/O or holds per-request state, so
// a single Engine is safe for concurrent use.
package lca

import (
	"fmt"
	"strings"

	"github.com/circulens/circulens/internal/factors"
)

// Estimated wraps a numeric parameter with provenance metadata. IsEstimated
// and Confidence are carried through the API untouched; the arithmetic only
// ever reads Value.
type Estimated struct {
	Value       float64  `json:"value"`
	IsEstimated bool     `json:"isEstimated"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// Exact returns an Estimated carrying a user-supplied (non-estimated) value.
func Exact(v float64) Estimated {
	return Estimated{Value: v}
}

// EstimatedWithConfidence returns an Estimated flagged as system-guessed.
func EstimatedWithConfidence(v, confidence float64) Estimated {
	return Estimated{Value: v, IsEstimated: true, Confidence: &confidence}
}

// EnergyMix describes how production energy is sourced. GridFraction is the
// share drawn from the grid; the remainder is assumed clean.
type EnergyMix struct {
	GridFraction Estimated `json:"gridFraction"`
}

// InputParams is one scenario's complete configuration, per kg of final
// product.
type InputParams struct {
	Metal factors.Material `json:"metal"`

	// RecycledContentFraction is the recycled share of input material,
	// 0..1. The primary (virgin) share is always derived as its
	// complement, never stored.
	RecycledContentFraction Estimated `json:"recycledContentFraction"`

	// TransportDistanceKm is supply-chain transport distance, km.
	TransportDistanceKm Estimated `json:"transportDistanceKm"`

	EnergyMix EnergyMix `json:"energyMix"`

	// EndOfLifeRecoveryRate is the share of product recovered at end of
	// life, 0..1. The remainder is assumed landfilled.
	EndOfLifeRecoveryRate Estimated `json:"endOfLifeRecoveryRate"`
}

// ValidationError reports caller-correctable input problems with enough
// detail to identify the offending fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// Validate checks the range invariants the pure calculators rely on:
// fraction fields in [0,1], distance non-negative. The calculators themselves
// trust this contract and do not re-check.
func (p InputParams) Validate() error {
	var bad []string

	fractions := []struct {
		name string
		v    float64
	}{
		{"recycledContentFraction", p.RecycledContentFraction.Value},
		{"energyMix.gridFraction", p.EnergyMix.GridFraction.Value},
		{"endOfLifeRecoveryRate", p.EndOfLifeRecoveryRate.Value},
	}
	for _, f := range fractions {
		if f.v < 0 || f.v > 1 {
			bad = append(bad, fmt.Sprintf("%s=%v outside [0,1]", f.name, f.v))
		}
	}

	if p.TransportDistanceKm.Value < 0 {
		bad = append(bad, fmt.Sprintf("transportDistanceKm=%v negative", p.TransportDistanceKm.Value))
	}

	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// CO2eBreakdown is per-stage CO2e, kg per kg of final product.
// RecyclingCredit is conventionally negative (avoided emissions).
type CO2eBreakdown struct {
	Mining          float64 `json:"mining"`
	Processing      float64 `json:"processing"`
	Transport       float64 `json:"transport"`
	RecyclingCredit float64 `json:"recyclingCredit"`
}

// EnergyBreakdown is per-stage energy, MJ per kg of final product.
type EnergyBreakdown struct {
	Mining     float64 `json:"mining"`
	Processing float64 `json:"processing"`
	Recycling  float64 `json:"recycling"`
}

// Breakdown groups the per-stage impact components.
type Breakdown struct {
	CO2e   CO2eBreakdown   `json:"co2e"`
	Energy EnergyBreakdown `json:"energy"`
}

// Impacts is the impact calculator's output: totals plus the stage
// breakdown. Derived, never persisted.
type Impacts struct {
	TotalCO2e   float64
	TotalEnergy float64
	TotalWater  float64
	Breakdown   Breakdown
}

// Node is a named stage in the material flow graph.
type Node struct {
	Name string `json:"name"`
}

// Link is a directed flow between two nodes, identified by their indices in
// the node list. Value is a fraction of total material flow in [0,1].
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// FlowGraph is the Sankey-ready material flow description. Node and link
// order is insertion order and is preserved for stable rendering.
type FlowGraph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Summary holds the headline KPIs of one calculation.
type Summary struct {
	TotalCO2eKg      float64 `json:"totalCO2e_kg"`
	TotalEnergyMJ    float64 `json:"totalEnergy_MJ"`
	TotalWaterM3     float64 `json:"totalWater_m3"`
	CircularityIndex int     `json:"circularityIndex"`
}

// Result is the complete engine output and the only entity that crosses the
// core boundary towards callers.
type Result struct {
	Summary   Summary   `json:"summary"`
	Breakdown Breakdown `json:"breakdown"`
	Sankey    FlowGraph `json:"sankey"`
}
