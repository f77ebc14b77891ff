package imputation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulens/circulens/internal/factors"
	"github.com/circulens/circulens/internal/lca"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	models, err := NewModelRegistry()
	require.NoError(t, err)
	store, err := factors.NewStore()
	require.NoError(t, err)
	engine, err := lca.NewEngine(store)
	require.NoError(t, err)
	return NewOrchestrator(models, engine)
}

// Missing recycling rate with a full categorical triple: exactly one
// decision-tree record, field set to the tree's leaf value.
func TestImpute_RecyclingRateFromTree(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:        "Aluminium",
		ProductType:     "Beverage Can",
		Region:          "EU",
		RecycledContent: f64(60),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	var treeRecords []Record
	for _, r := range out.Meta {
		if r.Method == MethodDecisionTree {
			treeRecords = append(treeRecords, r)
		}
	}
	require.Len(t, treeRecords, 1)
	assert.Equal(t, "end_of_life_recycling_rate", treeRecords[0].Field)
	assert.InDelta(t, 0.75, treeRecords[0].Confidence, 1e-9)
	assert.Contains(t, treeRecords[0].Source, "eol-recycling-tree-v1")

	require.NotNil(t, out.ProjectImputed.EndOfLifeRecyclingRate)
	assert.InDelta(t, 0.74, *out.ProjectImputed.EndOfLifeRecyclingRate, 1e-9)
}

// Missing material and recycling rate: no tree imputation attempted, field
// stays absent, no crash.
func TestImpute_UnimputableProject(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		ProductType:       "Beverage Can",
		Region:            "EU",
		RecycledContent:   f64(40),
		TransportDistance: f64(120),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	assert.Nil(t, out.ProjectImputed.EndOfLifeRecyclingRate)
	for _, r := range out.Meta {
		assert.NotEqual(t, MethodDecisionTree, r.Method)
	}

	// Without a material the engine cannot run either.
	assert.Nil(t, out.ProjectImputed.Results)
}

func TestImpute_EnergyFromLinearModel(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:        "Copper",
		RecycledContent: f64(50),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	require.NotNil(t, out.ProjectImputed.EnergyKWhPerKg)
	// -0.1158*50 + 12.5
	assert.InDelta(t, 6.71, *out.ProjectImputed.EnergyKWhPerKg, 1e-9)

	var linRecords []Record
	for _, r := range out.Meta {
		if r.Method == MethodLinearRegression {
			linRecords = append(linRecords, r)
		}
	}
	require.Len(t, linRecords, 1)
	assert.Equal(t, "energy_kWh_per_kg", linRecords[0].Field)
	assert.InDelta(t, 0.85, linRecords[0].Confidence, 1e-9)
	assert.Equal(t, "energy-linreg-v1", linRecords[0].Source)
}

func TestImpute_SuppliedValuesAreNotOverwritten(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:               "Aluminium",
		ProductType:            "Beverage Can",
		Region:                 "EU",
		RecycledContent:        f64(60),
		EnergyKWhPerKg:         f64(4.2),
		EndOfLifeRecyclingRate: f64(0.9),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	assert.Empty(t, out.Meta)
	assert.InDelta(t, 4.2, *out.ProjectImputed.EnergyKWhPerKg, 1e-9)
	assert.InDelta(t, 0.9, *out.ProjectImputed.EndOfLifeRecyclingRate, 1e-9)
}

// Unseen categorical values still resolve through the zero branches of the
// tree, so the imputed value comes from a leaf, never from a guess.
func TestImpute_UnseenProductTypeResolvesThroughZeroBranch(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:        "Aluminium",
		ProductType:     "Spacecraft Hull",
		Region:          "EU",
		RecycledContent: f64(30),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	// Aluminium branch, unknown product indicator 0, EU leaf.
	require.NotNil(t, out.ProjectImputed.EndOfLifeRecyclingRate)
	assert.InDelta(t, 0.7, *out.ProjectImputed.EndOfLifeRecyclingRate, 1e-9)
}

// A tree artifact fit on a feature set the encoder does not produce causes
// a soft miss: the field stays unset, no record is emitted, the request
// still succeeds.
func TestImpute_TreeMissEmitsNoRecord(t *testing.T) {
	treePath := writeArtifact(t, "foreign_tree.json", `{
		"model_name": "foreign-tree",
		"model_version": "1.0.0",
		"root": {
			"feature": "region_AF",
			"threshold": 0.5,
			"left": {"value": 0.4},
			"right": {"value": 0.6}
		}
	}`)

	models, err := NewModelRegistryFromFiles("", treePath)
	require.NoError(t, err)
	store, err := factors.NewStore()
	require.NoError(t, err)
	engine, err := lca.NewEngine(store)
	require.NoError(t, err)
	o := NewOrchestrator(models, engine)

	project := Project{
		Material:        "Aluminium",
		ProductType:     "Beverage Can",
		Region:          "EU",
		RecycledContent: f64(30),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	assert.Nil(t, out.ProjectImputed.EndOfLifeRecyclingRate)
	for _, r := range out.Meta {
		assert.NotEqual(t, MethodDecisionTree, r.Method)
	}

	// The engine still runs, applying its own recovery default.
	require.NotNil(t, out.ProjectImputed.Results)
}

func TestImpute_UnknownMaterialIsFatal(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:        "Mithril",
		RecycledContent: f64(20),
	}

	_, err := o.Impute(context.Background(), project)
	require.Error(t, err)
	assert.ErrorIs(t, err, factors.ErrUnknownMaterial)
}

func TestImpute_EmptyProjectRejected(t *testing.T) {
	o := newTestOrchestrator(t)

	_, err := o.Impute(context.Background(), Project{Name: "blank"})
	require.Error(t, err)

	var verr *lca.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "material")
}

func TestImpute_EngineReceivesDerivedInputs(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:          "Aluminium",
		RecycledContent:   f64(0),
		TransportDistance: f64(100),
		GridEmissions:     f64(500), // reference grid: fraction 1.0
		EndOfLifeRecyclingRate: f64(0.8),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	require.NotNil(t, out.ProjectImputed.Results)
	summary := out.ProjectImputed.Results.Summary
	assert.InDelta(t, 21.31, summary.TotalCO2eKg, 0.005)
	assert.InDelta(t, 180.0, summary.TotalEnergyMJ, 0.005)
	assert.Equal(t, 51, summary.CircularityIndex)

	// Projects get a stable identifier assigned when absent.
	assert.NotEmpty(t, out.ProjectImputed.ID)
}

func TestImpute_GridEmissionsClamped(t *testing.T) {
	o := newTestOrchestrator(t)

	project := Project{
		Material:               "Aluminium",
		RecycledContent:        f64(0),
		GridEmissions:          f64(1200), // above reference: clamps to 1.0
		EndOfLifeRecyclingRate: f64(0.8),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)
	require.NotNil(t, out.ProjectImputed.Results)

	// Clamped fraction 1.0 reproduces the full-grid scenario minus
	// transport.
	assert.InDelta(t, 21.30, out.ProjectImputed.Results.Summary.TotalCO2eKg, 0.005)
}

func TestImpute_DefaultRecoveryRateApplied(t *testing.T) {
	o := newTestOrchestrator(t)

	// Region missing: the tree is not consulted; the engine falls back to
	// the package default recovery rate rather than failing.
	project := Project{
		Material:        "Aluminium",
		ProductType:     "Beverage Can",
		RecycledContent: f64(50),
	}

	out, err := o.Impute(context.Background(), project)
	require.NoError(t, err)

	assert.Nil(t, out.ProjectImputed.EndOfLifeRecyclingRate)
	require.NotNil(t, out.ProjectImputed.Results)

	// Recovered link value reflects the 0.5 default.
	var recovered float64
	for _, l := range out.ProjectImputed.Results.Sankey.Links {
		if l.Source == 4 && l.Target == 5 {
			recovered = l.Value
		}
	}
	assert.InDelta(t, defaultRecoveryRate, recovered, 1e-9)
}
