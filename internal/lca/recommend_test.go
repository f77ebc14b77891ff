package lca

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulens/circulens/internal/factors"
)

func TestRecommend_PrimaryScenarioGetsAllLevers(t *testing.T) {
	engine := newTestEngine(t)

	recs, err := engine.Recommend(context.Background(), primaryAluminiumInputs())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	ids := make(map[string]Recommendation, len(recs))
	for _, r := range recs {
		ids[r.ID] = r
		assert.Greater(t, r.ProjectedSavings.CO2ePercentReduction, 0.0, "id %s", r.ID)
		assert.LessOrEqual(t, r.ProjectedSavings.CO2ePercentReduction, 100.0, "id %s", r.ID)
	}
	assert.Contains(t, ids, "increase-recycling")
	assert.Contains(t, ids, "improve-energy-mix")
	assert.Contains(t, ids, "enhance-recovery")

	// Sorted by projected reduction, largest first.
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t,
			recs[i-1].ProjectedSavings.CO2ePercentReduction,
			recs[i].ProjectedSavings.CO2ePercentReduction)
	}
}

func TestRecommend_SkipsExhaustedLevers(t *testing.T) {
	engine := newTestEngine(t)

	inputs := InputParams{
		Metal:                   factors.Aluminium,
		RecycledContentFraction: Exact(0.2),
		TransportDistanceKm:     Exact(100),
		EnergyMix:               EnergyMix{GridFraction: Exact(0)},
		EndOfLifeRecoveryRate:   Exact(1.0),
	}

	recs, err := engine.Recommend(context.Background(), inputs)
	require.NoError(t, err)

	for _, r := range recs {
		assert.NotEqual(t, "improve-energy-mix", r.ID, "grid already at zero")
		assert.NotEqual(t, "enhance-recovery", r.ID, "recovery already full")
	}
}

func TestRecommend_NetNegativeBaseline(t *testing.T) {
	engine := newTestEngine(t)

	// Scenario B is already net negative; percent reductions against a
	// negative baseline are meaningless, so none are offered.
	recs, err := engine.Recommend(context.Background(), recycledCopperInputs())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_UnknownMaterial(t *testing.T) {
	engine := newTestEngine(t)

	inputs := primaryAluminiumInputs()
	inputs.Metal = factors.Material("bronze")

	_, err := engine.Recommend(context.Background(), inputs)
	assert.ErrorIs(t, err, factors.ErrUnknownMaterial)
}
