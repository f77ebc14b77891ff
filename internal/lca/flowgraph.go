package lca

// minVisibleFlow is the exclusive lower bound on link values kept in the
// output. Flows at or below it would render as slivers, so they are dropped
// from the returned link list (not from the conceptual graph).
const minVisibleFlow = 0.001

// Node indices in the fixed flow topology.
const (
	nodeVirgin = iota
	nodeRecycledScrap
	nodeProcessing
	nodeProduct
	nodeEndOfLife
	nodeRecovered
	nodeLandfilled
)

// BuildFlowGraph derives the Sankey flow description for one scenario. The
// topology is fixed at seven nodes and six links; only link values depend on
// the inputs. Virgin and recycled shares into Processing sum to exactly 1,
// as do Recovered and Landfilled shares out of End of Life.
func BuildFlowGraph(inputs InputParams) FlowGraph {
	recycled := inputs.RecycledContentFraction.Value
	recovered := inputs.EndOfLifeRecoveryRate.Value

	nodes := []Node{
		{Name: "Virgin Material"},
		{Name: "Recycled Scrap"},
		{Name: "Processing"},
		{Name: "Final Product"},
		{Name: "End of Life"},
		{Name: "Recovered"},
		{Name: "Landfilled"},
	}

	links := []Link{
		{Source: nodeVirgin, Target: nodeProcessing, Value: 1 - recycled},
		{Source: nodeRecycledScrap, Target: nodeProcessing, Value: recycled},
		{Source: nodeProcessing, Target: nodeProduct, Value: 1.0},
		{Source: nodeProduct, Target: nodeEndOfLife, Value: 1.0},
		{Source: nodeEndOfLife, Target: nodeRecovered, Value: recovered},
		{Source: nodeEndOfLife, Target: nodeLandfilled, Value: 1 - recovered},
	}

	visible := make([]Link, 0, len(links))
	for _, l := range links {
		if l.Value > minVisibleFlow {
			visible = append(visible, l)
		}
	}

	return FlowGraph{Nodes: nodes, Links: visible}
}
