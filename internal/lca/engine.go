package lca

import (
	"context"

	"github.com/circulens/circulens/internal/factors"
	"github.com/circulens/circulens/internal/logging"
)

// Engine composes the impact calculator, circularity scorer, and flow graph
// builder over an injected factor store. It holds no per-request state.
type Engine struct {
	store  *factors.Store
	policy ScoringPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithScoringPolicy overrides the default standard scoring policy.
func WithScoringPolicy(policy ScoringPolicy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// NewEngine creates an Engine over the given factor store. The store is
// shared by reference and must not be mutated after construction.
func NewEngine(store *factors.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:  store,
		policy: StandardPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.policy.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Policy returns the engine's active scoring policy.
func (e *Engine) Policy() ScoringPolicy {
	return e.policy
}

// Store returns the engine's factor store.
func (e *Engine) Store() *factors.Store {
	return e.store
}

// Calculate runs a full LCA for one scenario. It fails only when the
// requested material has no factor table entry (factors.ErrUnknownMaterial,
// a configuration error); the calculation itself is total and deterministic,
// so identical inputs always produce identical results.
func (e *Engine) Calculate(ctx context.Context, inputs InputParams) (Result, error) {
	log := logging.FromContext(ctx)

	f, err := e.store.Lookup(inputs.Metal)
	if err != nil {
		log.Error().
			Str("component", "lca").
			Str("operation", "calculate").
			Str("material", string(inputs.Metal)).
			Err(err).
			Msg("factor lookup failed")
		return Result{}, err
	}

	impacts := ComputeImpacts(inputs, f)
	index := ComputeCircularityIndex(inputs, f, e.policy)
	sankey := BuildFlowGraph(inputs)

	log.Debug().
		Str("component", "lca").
		Str("operation", "calculate").
		Str("material", string(inputs.Metal)).
		Float64("total_co2e_kg", impacts.TotalCO2e).
		Float64("total_energy_mj", impacts.TotalEnergy).
		Int("circularity_index", index).
		Msg("calculation complete")

	return Result{
		Summary: Summary{
			TotalCO2eKg:      impacts.TotalCO2e,
			TotalEnergyMJ:    impacts.TotalEnergy,
			TotalWaterM3:     impacts.TotalWater,
			CircularityIndex: index,
		},
		Breakdown: impacts.Breakdown,
		Sankey:    sankey,
	}, nil
}
