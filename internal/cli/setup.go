package cli

import (
	"errors"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/factors"
	"github.com/circulens/circulens/internal/imputation"
	"github.com/circulens/circulens/internal/lca"
)

// buildStore loads the factor dataset, preferring a configured file over the
// embedded tables.
func buildStore(cfg *config.Config) (*factors.Store, error) {
	if cfg.Artifacts.FactorDataset != "" {
		return factors.NewStoreFromFile(cfg.Artifacts.FactorDataset)
	}
	return factors.NewStore()
}

func buildEngine(cfg *config.Config) (*lca.Engine, error) {
	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.ScoringPolicy()
	if err != nil {
		return nil, err
	}
	return lca.NewEngine(store, lca.WithScoringPolicy(policy))
}

func buildModels(cfg *config.Config) (*imputation.ModelRegistry, error) {
	energy, tree := cfg.Artifacts.EnergyModel, cfg.Artifacts.TreeModel
	switch {
	case energy != "" && tree != "":
		return imputation.NewModelRegistryFromFiles(energy, tree)
	case energy == "" && tree == "":
		return imputation.NewModelRegistry()
	default:
		return nil, errors.New("artifacts.energyModel and artifacts.treeModel must be set together")
	}
}

func buildOrchestrator(cfg *config.Config) (*imputation.Orchestrator, error) {
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}
	models, err := buildModels(cfg)
	if err != nil {
		return nil, err
	}
	return imputation.NewOrchestrator(models, engine), nil
}
