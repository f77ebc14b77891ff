package lca

import (
	"fmt"
	"math"

	"github.com/circulens/circulens/internal/factors"
)

// weightSumTolerance absorbs float representation error when checking that
// policy weights sum to 1.
const weightSumTolerance = 1e-9

// ScoringPolicy is a circularity weighting policy. The score is
//
//	round(100 * (RecycledWeight*recycledContent +
//	             ReuseWeight*reusePotential +
//	             RecoveryWeight*eolRecovery +
//	             RetentionWeight*(1 - MaterialLossFraction)))
//
// Weights must sum to 1.0 exactly. The historical three-term formula is the
// StandardPolicy (retention weight zero); the four-term quick-compare
// variant is QuickComparePolicy.
type ScoringPolicy struct {
	Name string `yaml:"name"`

	RecycledWeight  float64 `yaml:"recycled"`
	ReuseWeight     float64 `yaml:"reuse"`
	RecoveryWeight  float64 `yaml:"recovery"`
	RetentionWeight float64 `yaml:"retention"`

	// MaterialLossFraction is the process loss assumption feeding the
	// retention term. Ignored when RetentionWeight is zero.
	MaterialLossFraction float64 `yaml:"materialLoss"`
}

// StandardPolicy is the default three-term weighting:
// 40% recycled content, 30% reuse potential, 30% end-of-life recovery.
func StandardPolicy() ScoringPolicy {
	return ScoringPolicy{
		Name:           "standard",
		RecycledWeight: 0.4,
		ReuseWeight:    0.3,
		RecoveryWeight: 0.3,
	}
}

// QuickComparePolicy is the four-term variant used by the quick-compare
// surface: 40% recycled, 30% recovery, 20% reuse, 10% material retention
// with a 5% process-loss assumption.
func QuickComparePolicy() ScoringPolicy {
	return ScoringPolicy{
		Name:                 "quick-compare",
		RecycledWeight:       0.4,
		ReuseWeight:          0.2,
		RecoveryWeight:       0.3,
		RetentionWeight:      0.1,
		MaterialLossFraction: 0.05,
	}
}

// Validate checks the policy's configuration invariants.
func (p ScoringPolicy) Validate() error {
	sum := p.RecycledWeight + p.ReuseWeight + p.RecoveryWeight + p.RetentionWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring policy %q: weights sum to %v, want 1.0", p.Name, sum)
	}
	for _, w := range []float64{p.RecycledWeight, p.ReuseWeight, p.RecoveryWeight, p.RetentionWeight} {
		if w < 0 {
			return fmt.Errorf("scoring policy %q: negative weight %v", p.Name, w)
		}
	}
	if p.MaterialLossFraction < 0 || p.MaterialLossFraction > 1 {
		return fmt.Errorf("scoring policy %q: materialLoss %v outside [0,1]", p.Name, p.MaterialLossFraction)
	}
	return nil
}

// ComputeCircularityIndex scores a scenario on the 0..100 circularity scale
// under the given policy. Reuse potential comes from the material's factor
// table, not from the scenario.
func ComputeCircularityIndex(inputs InputParams, f factors.Factors, policy ScoringPolicy) int {
	raw := policy.RecycledWeight*inputs.RecycledContentFraction.Value +
		policy.ReuseWeight*f.ReusePotentialFraction +
		policy.RecoveryWeight*inputs.EndOfLifeRecoveryRate.Value +
		policy.RetentionWeight*(1-policy.MaterialLossFraction)

	return int(roundHalfUp(raw * 100))
}

// roundHalfUp rounds to the nearest integer with halves rounding up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
