package imputation

// maxTreeDepth caps traversal depth. The tree is acyclic by construction,
// but the artifact is externally supplied, so a runaway structure degrades
// to a soft miss instead of looping.
const maxTreeDepth = 64

// TreeNode is one node of the pre-fit decision tree: either an internal
// split (Feature, Threshold, Left, Right) or a leaf (Value). The whole tree
// is a single shared, read-only structure; no node is ever mutated after
// load.
type TreeNode struct {
	Feature   string   `json:"feature,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`

	// Value is set on leaves only; its presence is what distinguishes a
	// leaf from an internal node.
	Value *float64 `json:"value,omitempty"`
}

// IsLeaf reports whether the node carries a prediction value.
func (n *TreeNode) IsLeaf() bool {
	return n.Value != nil
}

// Depth returns the height of the subtree rooted at n. Used by artifact
// validation to reject structures deeper than maxTreeDepth.
func (n *TreeNode) Depth() int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	left, right := n.Left.Depth(), n.Right.Depth()
	if left > right {
		return left + 1
	}
	return right + 1
}

// PredictRecyclingRate walks the tree for the given feature vector and
// returns the leaf value. The second return is false on a soft miss: an
// internal node naming a feature absent from the vector, a missing
// threshold or child, or a traversal exceeding maxTreeDepth. Soft misses
// never become errors; the caller proceeds without the imputed value.
func PredictRecyclingRate(root *TreeNode, features FeatureVector) (float64, bool) {
	node := root
	for depth := 0; node != nil; depth++ {
		if node.IsLeaf() {
			return *node.Value, true
		}
		if depth >= maxTreeDepth {
			return 0, false
		}
		if node.Feature == "" || node.Threshold == nil {
			return 0, false
		}

		v, ok := features[node.Feature]
		if !ok {
			return 0, false
		}

		if v <= *node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return 0, false
}
