package imputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func leaf(v float64) *TreeNode { return &TreeNode{Value: f64(v)} }

func split(feature string, threshold float64, left, right *TreeNode) *TreeNode {
	return &TreeNode{Feature: feature, Threshold: f64(threshold), Left: left, Right: right}
}

func TestPredictRecyclingRate(t *testing.T) {
	tree := split("material_Aluminium", 0.5,
		leaf(0.6),
		split("region_EU", 0.5, leaf(0.55), leaf(0.78)),
	)

	tests := []struct {
		name     string
		features FeatureVector
		want     float64
		wantOK   bool
	}{
		{
			name:     "left branch",
			features: FeatureVector{"material_Aluminium": 0, "region_EU": 0},
			want:     0.6,
			wantOK:   true,
		},
		{
			name:     "right then left",
			features: FeatureVector{"material_Aluminium": 1, "region_EU": 0},
			want:     0.55,
			wantOK:   true,
		},
		{
			name:     "right then right",
			features: FeatureVector{"material_Aluminium": 1, "region_EU": 1},
			want:     0.78,
			wantOK:   true,
		},
		{
			name:     "feature absent from vector is a soft miss",
			features: FeatureVector{"material_Aluminium": 1},
			wantOK:   false,
		},
		{
			name:     "empty vector is a soft miss",
			features: FeatureVector{},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PredictRecyclingRate(tree, tt.features)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestPredictRecyclingRate_MalformedNodes(t *testing.T) {
	features := FeatureVector{"x": 1}

	t.Run("missing threshold", func(t *testing.T) {
		node := &TreeNode{Feature: "x", Left: leaf(0.5), Right: leaf(0.6)}
		_, ok := PredictRecyclingRate(node, features)
		assert.False(t, ok)
	})

	t.Run("missing feature name", func(t *testing.T) {
		node := &TreeNode{Threshold: f64(0.5), Left: leaf(0.5), Right: leaf(0.6)}
		_, ok := PredictRecyclingRate(node, features)
		assert.False(t, ok)
	})

	t.Run("nil child", func(t *testing.T) {
		node := split("x", 0.5, nil, leaf(0.6))
		_, ok := PredictRecyclingRate(node, FeatureVector{"x": 0})
		assert.False(t, ok)
	})

	t.Run("nil root", func(t *testing.T) {
		_, ok := PredictRecyclingRate(nil, features)
		assert.False(t, ok)
	})
}

// The artifact is externally supplied; even a cyclic structure must
// terminate via the depth cap rather than loop.
func TestPredictRecyclingRate_DepthCapTerminates(t *testing.T) {
	cyclic := &TreeNode{Feature: "x", Threshold: f64(0.5)}
	cyclic.Left = cyclic
	cyclic.Right = cyclic

	got, ok := PredictRecyclingRate(cyclic, FeatureVector{"x": 0})
	assert.False(t, ok)
	assert.Zero(t, got)
}

// Any well-formed finite tree terminates with a leaf value for any vector
// covering its features.
func TestPredictRecyclingRate_Termination(t *testing.T) {
	// Chain of maxTreeDepth-1 splits ending in a leaf.
	node := leaf(0.42)
	for range maxTreeDepth - 1 {
		node = split("x", 0.5, node, leaf(0.9))
	}

	got, ok := PredictRecyclingRate(node, FeatureVector{"x": 0})
	require.True(t, ok)
	assert.InDelta(t, 0.42, got, 1e-9)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}

func TestTreeNodeDepth(t *testing.T) {
	assert.Equal(t, 0, leaf(0.5).Depth())
	assert.Equal(t, 1, split("x", 0.5, leaf(0), leaf(1)).Depth())
	assert.Equal(t, 2, split("x", 0.5, split("y", 0.5, leaf(0), leaf(1)), leaf(1)).Depth())
}
