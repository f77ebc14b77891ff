package lca

import "context"

// Lever step sizes used when projecting recommendation savings. Each
// recommendation re-runs the engine with one lever moved by its step,
// clamped to the valid range.
const (
	recycledContentStep = 0.20
	gridFractionStep    = 0.20
	recoveryRateStep    = 0.15
)

// Recommendation is a quick-win suggestion derived from a calculated
// scenario, with the CO2e reduction the engine projects for it.
type Recommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	ProjectedSavings struct {
		CO2ePercentReduction float64 `json:"co2e_percent_reduction"`
	} `json:"projectedSavings"`
}

// Recommend evaluates the three adjustment levers against a baseline
// scenario and returns those that reduce the footprint, ordered by
// projected reduction (largest first).
//
// Scenarios that are already net-negative get no recommendations: a percent
// reduction against a negative baseline is not meaningful.
func (e *Engine) Recommend(ctx context.Context, inputs InputParams) ([]Recommendation, error) {
	baseline, err := e.Calculate(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if baseline.Summary.TotalCO2eKg <= 0 {
		return nil, nil
	}

	type lever struct {
		id, title, description string
		apply                  func(InputParams) (InputParams, bool)
	}

	levers := []lever{
		{
			id:          "increase-recycling",
			title:       "Increase recycled content",
			description: "Raise the recycled share of input material to displace primary production.",
			apply: func(p InputParams) (InputParams, bool) {
				if p.RecycledContentFraction.Value >= 1 {
					return p, false
				}
				p.RecycledContentFraction.Value = clampFraction(p.RecycledContentFraction.Value + recycledContentStep)
				return p, true
			},
		},
		{
			id:          "improve-energy-mix",
			title:       "Improve the energy mix",
			description: "Shift production energy from the grid towards clean sources.",
			apply: func(p InputParams) (InputParams, bool) {
				if p.EnergyMix.GridFraction.Value <= 0 {
					return p, false
				}
				p.EnergyMix.GridFraction.Value = clampFraction(p.EnergyMix.GridFraction.Value - gridFractionStep)
				return p, true
			},
		},
		{
			id:          "enhance-recovery",
			title:       "Enhance end-of-life recovery",
			description: "Recover more of the product at end of life instead of landfilling it.",
			apply: func(p InputParams) (InputParams, bool) {
				if p.EndOfLifeRecoveryRate.Value >= 1 {
					return p, false
				}
				p.EndOfLifeRecoveryRate.Value = clampFraction(p.EndOfLifeRecoveryRate.Value + recoveryRateStep)
				return p, true
			},
		},
	}

	var recs []Recommendation
	for _, lv := range levers {
		adjusted, ok := lv.apply(inputs)
		if !ok {
			continue
		}

		projected, calcErr := e.Calculate(ctx, adjusted)
		if calcErr != nil {
			return nil, calcErr
		}

		reduction := baseline.Summary.TotalCO2eKg - projected.Summary.TotalCO2eKg
		if reduction <= 0 {
			continue
		}

		rec := Recommendation{
			ID:          lv.id,
			Title:       lv.title,
			Description: lv.description,
		}
		rec.ProjectedSavings.CO2ePercentReduction = 100 * reduction / baseline.Summary.TotalCO2eKg
		recs = append(recs, rec)
	}

	// Largest projected reduction first. Insertion sort keeps the stable
	// lever order for ties.
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].ProjectedSavings.CO2ePercentReduction > recs[j-1].ProjectedSavings.CO2ePercentReduction; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}

	return recs, nil
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
