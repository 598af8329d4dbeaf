package ctxgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/meritrank/ctxgraph"
	"github.com/katalvlaran/meritrank/node"
)

func TestSetEdge_UpsertAndDelete(t *testing.T) {
	g := ctxgraph.New()
	a, b := node.ID(1), node.ID(2)

	g.SetEdge(a, b, 0.8)
	w, ok := g.EdgeWeight(a, b)
	assert.True(t, ok)
	assert.InDelta(t, 0.8, w, 1e-12)
	assert.InDelta(t, 0.8, g.PosSum(a), 1e-12)

	// Upsert to a different positive weight must replace, not accumulate.
	g.SetEdge(a, b, 0.3)
	w, _ = g.EdgeWeight(a, b)
	assert.InDelta(t, 0.3, w, 1e-12)
	assert.InDelta(t, 0.3, g.PosSum(a), 1e-12)

	// Flip to negative: posSum drops to zero (floored at Epsilon).
	g.SetEdge(a, b, -0.5)
	w, _ = g.EdgeWeight(a, b)
	assert.InDelta(t, -0.5, w, 1e-12)
	assert.InDelta(t, ctxgraph.Epsilon, g.PosSum(a), 1e-15)

	// Delete.
	g.SetEdge(a, b, 0)
	_, ok = g.EdgeWeight(a, b)
	assert.False(t, ok)
}

func TestNeighbors_PositiveBeforeNegative(t *testing.T) {
	g := ctxgraph.New()
	a := node.ID(1)
	g.SetEdge(a, node.ID(2), 1.0)
	g.SetEdge(a, node.ID(3), -1.0)

	nbs := g.Neighbors(a)
	assert.Len(t, nbs, 2)
	var sawPos, sawNeg bool
	for _, nb := range nbs {
		if nb.Weight > 0 {
			sawPos = true
		} else {
			sawNeg = true
		}
	}
	assert.True(t, sawPos)
	assert.True(t, sawNeg)
	assert.Greater(t, nbs[0].Weight, 0.0, "positive edge must come first")
	assert.Less(t, nbs[1].Weight, 0.0, "negative edge must come after the positive one")
}

func TestNeighborsNormalized(t *testing.T) {
	g := ctxgraph.New()
	a := node.ID(1)
	g.SetEdge(a, node.ID(2), 2.0)
	g.SetEdge(a, node.ID(3), 2.0)

	for _, nb := range g.NeighborsNormalized(a) {
		assert.InDelta(t, 0.5, nb.Weight, 1e-12)
	}
}

func TestNodeData_Snapshot(t *testing.T) {
	g := ctxgraph.New()
	a := node.ID(1)
	g.SetEdge(a, node.ID(2), 1.0)

	data := g.NodeData(a)
	data.PosEdges[node.ID(99)] = 42 // mutate the copy
	again := g.NodeData(a)
	_, leaked := again.PosEdges[node.ID(99)]
	assert.False(t, leaked, "NodeData must return a defensive copy")
}
