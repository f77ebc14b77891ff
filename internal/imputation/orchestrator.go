// Package imputation fills missing project inputs using pre-fit model
// artifacts before the LCA engine runs.
//
// Two imputers exist: a per-material linear regression for energy
// consumption and a decision tree for end-of-life recycling rates. Both are
// inference-only; the artifacts are fit offline and loaded read-only at
// startup. The orchestrator decides which fields need filling, records
// provenance for every model-imputed value, and hands the completed project
// to the engine.
package imputation

import (
	"context"

	"github.com/google/uuid"

	"github.com/circulens/circulens/internal/factors"
	"github.com/circulens/circulens/internal/lca"
	"github.com/circulens/circulens/internal/logging"
)

// Imputation methods recorded in provenance metadata.
const (
	MethodLinearRegression = "linear-regression"
	MethodDecisionTree     = "decision-tree"
)

// Confidence attached to each imputation method's records. Policy constants,
// not statistical estimates.
const (
	energyConfidence        = 0.85
	recyclingRateConfidence = 0.75
)

// referenceGridIntensity is the grid carbon intensity (gCO2e/kWh) treated as
// a fully grid-backed energy mix when deriving the engine's grid fraction
// from a project's gridEmissions figure.
const referenceGridIntensity = 500.0

// defaultRecoveryRate is the engine-side fallback applied when the recycling
// rate is absent and the tree declined to impute one.
const defaultRecoveryRate = 0.5

// Project is the loosely-filled scenario shape accepted by the imputation
// surface. Any numeric field may be absent; absent fields stay absent in the
// output unless an imputer fills them.
type Project struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Material    string `json:"material,omitempty"`
	ProductType string `json:"product_type,omitempty"`
	Region      string `json:"region,omitempty"`

	// MassKg is total product mass, used for display-side equivalencies
	// only; the engine works per kg.
	MassKg *float64 `json:"mass_kg,omitempty"`

	// RecycledContent is a percentage on the 0..100 scale.
	RecycledContent *float64 `json:"recycledContent,omitempty"`

	EnergyKWhPerKg *float64 `json:"energy_kWh_per_kg,omitempty"`

	// GridEmissions is grid carbon intensity, gCO2e/kWh.
	GridEmissions *float64 `json:"gridEmissions,omitempty"`

	// TransportDistance is supply-chain distance, km.
	TransportDistance *float64 `json:"transportDistance,omitempty"`

	EndOfLifeRecyclingRate *float64 `json:"end_of_life_recycling_rate,omitempty"`

	// Results is attached by the orchestrator after the engine runs.
	Results *lca.Result `json:"results,omitempty"`
}

// Record is the provenance of one imputed field.
type Record struct {
	Field      string  `json:"field"`
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Outcome is the imputation surface's response: the completed project plus
// provenance for everything the models filled in.
type Outcome struct {
	ProjectImputed Project  `json:"project_imputed"`
	Meta           []Record `json:"imputation_meta"`
}

// Orchestrator wires the imputers and the engine together. Stateless across
// requests; safe for concurrent use.
type Orchestrator struct {
	models *ModelRegistry
	engine *lca.Engine
}

// NewOrchestrator creates an Orchestrator over loaded model artifacts and a
// constructed engine.
func NewOrchestrator(models *ModelRegistry, engine *lca.Engine) *Orchestrator {
	return &Orchestrator{models: models, engine: engine}
}

// Impute fills the project's missing fields where the models can, then runs
// the LCA engine on the completed project.
//
// Policy, in order:
//  1. Missing energy with recycled content present: linear regression.
//  2. Missing recycling rate with material, product type, and region all
//     present: decision tree. A tree miss is silent: the field stays absent
//     and no record is emitted.
//  3. Engine invocation. A project without any material skips this step
//     (results stay nil); a project naming an unknown material fails hard
//     with factors.ErrUnknownMaterial.
//
// The orchestrator performs no I/O; persistence is the caller's concern.
func (o *Orchestrator) Impute(ctx context.Context, project Project) (Outcome, error) {
	log := logging.FromContext(ctx)

	if project.Material == "" && project.RecycledContent == nil &&
		project.EnergyKWhPerKg == nil && project.EndOfLifeRecyclingRate == nil {
		return Outcome{}, &lca.ValidationError{Fields: []string{
			"material", "recycledContent", "energy_kWh_per_kg", "end_of_life_recycling_rate",
		}}
	}

	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	meta := make([]Record, 0, 2)
	rateImputed := false

	// 1. Energy via linear regression.
	if project.EnergyKWhPerKg == nil && project.RecycledContent != nil {
		if coeff, ok := o.models.EnergyCoefficients(project.Material); ok {
			predicted := coeff.Predict(*project.RecycledContent)
			project.EnergyKWhPerKg = &predicted
			meta = append(meta, Record{
				Field:      "energy_kWh_per_kg",
				Method:     MethodLinearRegression,
				Confidence: energyConfidence,
				Source:     o.models.EnergyModelName(),
			})
			log.Debug().
				Str("component", "imputation").
				Str("project_id", project.ID).
				Float64("predicted_energy_kwh_per_kg", predicted).
				Msg("energy imputed")
		}
	}

	// 2. Recycling rate via decision tree.
	if project.EndOfLifeRecyclingRate == nil &&
		project.Material != "" && project.ProductType != "" && project.Region != "" {
		fv := NewFeatureVector(project.Material, project.ProductType, project.Region)
		if rate, ok := PredictRecyclingRate(o.models.Tree(), fv); ok {
			project.EndOfLifeRecyclingRate = &rate
			rateImputed = true
			meta = append(meta, Record{
				Field:      "end_of_life_recycling_rate",
				Method:     MethodDecisionTree,
				Confidence: recyclingRateConfidence,
				Source:     o.models.TreeModelDescription(),
			})
			log.Debug().
				Str("component", "imputation").
				Str("project_id", project.ID).
				Float64("predicted_recycling_rate", rate).
				Msg("recycling rate imputed")
		} else {
			// Soft miss: proceed without the field.
			log.Warn().
				Str("component", "imputation").
				Str("project_id", project.ID).
				Str("material", project.Material).
				Str("product_type", project.ProductType).
				Str("region", project.Region).
				Msg("decision tree declined to impute recycling rate")
		}
	}

	// 3. Engine invocation on the completed project.
	if project.Material != "" {
		inputs, err := o.toEngineInputs(project, rateImputed)
		if err != nil {
			return Outcome{}, err
		}
		if err := inputs.Validate(); err != nil {
			return Outcome{}, err
		}

		result, err := o.engine.Calculate(ctx, inputs)
		if err != nil {
			return Outcome{}, err
		}
		project.Results = &result
	} else {
		log.Debug().
			Str("component", "imputation").
			Str("project_id", project.ID).
			Msg("project has no material, skipping LCA calculation")
	}

	return Outcome{ProjectImputed: project, Meta: meta}, nil
}

// toEngineInputs maps a completed project onto the engine's parameter set.
// Fields the project does not carry get flagged defaults: zero recycled
// content, zero distance, a fully grid-backed energy mix, and the package
// default recovery rate.
func (o *Orchestrator) toEngineInputs(project Project, rateImputed bool) (lca.InputParams, error) {
	material, err := factors.ParseMaterial(project.Material)
	if err != nil {
		return lca.InputParams{}, err
	}

	recycled := lca.Estimated{IsEstimated: true}
	if project.RecycledContent != nil {
		recycled = lca.Exact(*project.RecycledContent / 100)
	}

	distance := lca.Estimated{IsEstimated: true}
	if project.TransportDistance != nil {
		distance = lca.Exact(*project.TransportDistance)
	}

	// Grid fraction is derived from the project's grid carbon intensity
	// relative to the reference grid, clamped to a valid fraction.
	grid := lca.Estimated{Value: 1.0, IsEstimated: true}
	if project.GridEmissions != nil {
		fraction := *project.GridEmissions / referenceGridIntensity
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		grid = lca.Estimated{Value: fraction, IsEstimated: true}
	}

	recovery := lca.Estimated{Value: defaultRecoveryRate, IsEstimated: true}
	if project.EndOfLifeRecyclingRate != nil {
		if rateImputed {
			recovery = lca.EstimatedWithConfidence(*project.EndOfLifeRecyclingRate, recyclingRateConfidence)
		} else {
			recovery = lca.Exact(*project.EndOfLifeRecyclingRate)
		}
	}

	return lca.InputParams{
		Metal:                   material,
		RecycledContentFraction: recycled,
		TransportDistanceKm:     distance,
		EnergyMix:               lca.EnergyMix{GridFraction: grid},
		EndOfLifeRecoveryRate:   recovery,
	}, nil
}
