package imputation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrBadArtifact indicates a model artifact failed to load, parse, or
// validate. Configuration-error class: surfaced hard, never defaulted away.
var ErrBadArtifact = constError("invalid model artifact")

// supportedModelVersions is the semver range of artifact schema versions
// this binary can consume.
const supportedModelVersions = ">= 1.0.0, < 2.0.0"

//go:embed models/energy_model.json
var embeddedEnergyModel []byte

//go:embed models/tree_model.json
var embeddedTreeModel []byte

// energyArtifact is the on-disk shape of the linear model artifact.
type energyArtifact struct {
	ModelName    string                  `json:"model_name"`
	ModelVersion string                  `json:"model_version"`
	Coefficients map[string]Coefficients `json:"coefficients"`
}

// treeArtifact is the on-disk shape of the decision tree artifact.
type treeArtifact struct {
	ModelName    string    `json:"model_name"`
	ModelVersion string    `json:"model_version"`
	Description  string    `json:"description"`
	Root         *TreeNode `json:"root"`
}

// ModelRegistry holds the loaded, immutable model artifacts. Loaded once at
// process start and shared read-only by all requests.
type ModelRegistry struct {
	energy energyArtifact
	tree   treeArtifact
}

// NewModelRegistry loads the embedded model artifacts.
func NewModelRegistry() (*ModelRegistry, error) {
	return newModelRegistry(embeddedEnergyModel, embeddedTreeModel)
}

// NewModelRegistryFromFiles loads operator-supplied artifacts. An empty path
// keeps the corresponding embedded artifact.
func NewModelRegistryFromFiles(energyPath, treePath string) (*ModelRegistry, error) {
	energyData := embeddedEnergyModel
	treeData := embeddedTreeModel

	if energyPath != "" {
		data, err := os.ReadFile(energyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrBadArtifact, energyPath, err)
		}
		energyData = data
	}
	if treePath != "" {
		data, err := os.ReadFile(treePath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrBadArtifact, treePath, err)
		}
		treeData = data
	}

	return newModelRegistry(energyData, treeData)
}

func newModelRegistry(energyData, treeData []byte) (*ModelRegistry, error) {
	var energy energyArtifact
	if err := json.Unmarshal(energyData, &energy); err != nil {
		return nil, fmt.Errorf("%w: energy model: %v", ErrBadArtifact, err)
	}
	if err := checkModelVersion(energy.ModelName, energy.ModelVersion); err != nil {
		return nil, err
	}
	if len(energy.Coefficients) == 0 {
		return nil, fmt.Errorf("%w: energy model %q has no coefficients", ErrBadArtifact, energy.ModelName)
	}

	var tree treeArtifact
	if err := json.Unmarshal(treeData, &tree); err != nil {
		return nil, fmt.Errorf("%w: tree model: %v", ErrBadArtifact, err)
	}
	if err := checkModelVersion(tree.ModelName, tree.ModelVersion); err != nil {
		return nil, err
	}
	if tree.Root == nil {
		return nil, fmt.Errorf("%w: tree model %q has no root node", ErrBadArtifact, tree.ModelName)
	}
	if depth := tree.Root.Depth(); depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: tree model %q depth %d exceeds limit %d",
			ErrBadArtifact, tree.ModelName, depth, maxTreeDepth)
	}

	return &ModelRegistry{energy: energy, tree: tree}, nil
}

// checkModelVersion validates an artifact's schema version against the
// supported range.
func checkModelVersion(name, version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: model %q version %q: %v", ErrBadArtifact, name, version, err)
	}

	constraint, err := semver.NewConstraint(supportedModelVersions)
	if err != nil {
		// The constraint is a compile-time constant; failure to parse it
		// is a programming error.
		return fmt.Errorf("%w: parsing supported range: %v", ErrBadArtifact, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: model %q version %s outside supported range %q",
			ErrBadArtifact, name, version, supportedModelVersions)
	}
	return nil
}

// EnergyCoefficients returns the linear model for a material, falling back
// to the artifact's "default" entry when the material has no dedicated fit.
// The second return is false when neither exists.
func (r *ModelRegistry) EnergyCoefficients(material string) (Coefficients, bool) {
	if c, ok := r.energy.Coefficients[strings.ToLower(material)]; ok {
		return c, true
	}
	c, ok := r.energy.Coefficients["default"]
	return c, ok
}

// EnergyModelName identifies the linear model artifact for provenance
// records.
func (r *ModelRegistry) EnergyModelName() string {
	return r.energy.ModelName
}

// Tree returns the decision tree root, shared read-only.
func (r *ModelRegistry) Tree() *TreeNode {
	return r.tree.Root
}

// TreeModelDescription identifies the tree artifact for provenance records.
func (r *ModelRegistry) TreeModelDescription() string {
	if r.tree.Description != "" {
		return fmt.Sprintf("%s (%s)", r.tree.ModelName, r.tree.Description)
	}
	return r.tree.ModelName
}
