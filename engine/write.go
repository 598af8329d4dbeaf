package engine

import (
	"github.com/katalvlaran/meritrank/ctxgraph"
	"github.com/katalvlaran/meritrank/node"
)

// SetEdge is the canonical write (spec §4.4). It takes the exclusive lock,
// ensures both endpoints and the target context exist, and applies the
// composition policy:
//
//  1. If kind(src) == User, amount is written into every existing context,
//     including null (user endorsements are cross-context).
//  2. Else if context is null, amount is written into null only.
//  3. Else a delta is computed so null keeps tracking the sum of all
//     non-null contexts, and amount is written into context alone.
func (g *AugMultiGraph) SetEdge(context, src, dst string, amount float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.setEdgeLocked(context, src, dst, amount)
}

// setEdgeLocked is SetEdge's body, split out so multi-step operations
// (write_delete_node, write_recalculate_zero) can hold g.mu across an
// entire request instead of re-acquiring it per edge. Caller must hold
// g.mu.
func (g *AugMultiGraph) setEdgeLocked(context, src, dst string, amount float64) {
	srcID := g.findOrAddNode(src)
	dstID := g.findOrAddNode(dst)
	target := g.ensureContext(context)
	null := g.ensureContext(NullContext)

	kind, _ := g.nodes.Kind(srcID)

	switch {
	case kind == node.KindUser:
		for _, cs := range g.contexts {
			cs.graph.SetEdge(srcID, dstID, amount)
			cs.estimator.Invalidate(srcID)
		}
	case context == NullContext:
		null.graph.SetEdge(srcID, dstID, amount)
		null.estimator.Invalidate(srcID)
	default:
		existingNull, _ := null.graph.EdgeWeight(srcID, dstID)
		existingCtx, _ := target.graph.EdgeWeight(srcID, dstID)
		delta := existingNull + amount - existingCtx

		null.graph.SetEdge(srcID, dstID, delta)
		null.estimator.Invalidate(srcID)
		target.graph.SetEdge(srcID, dstID, amount)
		target.estimator.Invalidate(srcID)
	}
}

// WritePutEdge is sugar for SetEdge with a non-zero amount (spec §4.4).
func (g *AugMultiGraph) WritePutEdge(context, src, dst string, amount float64) {
	g.SetEdge(context, src, dst, amount)
}

// WriteDeleteEdge zeroes (src,dst) in context, a no-op if either endpoint
// is unknown (spec §4.4).
func (g *AugMultiGraph) WriteDeleteEdge(context, src, dst string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, srcOK := g.lookupNode(src)
	_, dstOK := g.lookupNode(dst)
	if !srcOK || !dstOK {
		return
	}
	g.setEdgeLocked(context, src, dst, 0)
}

// WriteDeleteNode zeroes every outgoing edge of name in context (spec
// §4.4: "enumerate all outgoing neighbours once, then zero each edge
// through set_edge. The node id remains allocated.").
func (g *AugMultiGraph) WriteDeleteNode(context, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, ok := g.lookupNode(name)
	if !ok {
		return
	}
	cs := g.ensureContext(context)
	neighbors := cs.graph.Neighbors(id)
	targets := make([]node.ID, len(neighbors))
	for i, nb := range neighbors {
		targets[i] = nb.Dst
	}

	for _, dst := range targets {
		dstName, err := g.nodes.Name(dst)
		if err != nil {
			continue
		}
		g.setEdgeLocked(context, name, dstName, 0)
	}
}

// WriteCreateContext idempotently ensures context exists, seeding it from
// null's User-sourced edges on first creation (spec §4.4).
func (g *AugMultiGraph) WriteCreateContext(context string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureContext(context)
}

// EdgeWeightNormalized returns weight/pos_sum(src) for (src,dst) in
// context, flooring pos_sum at ctxgraph.Epsilon (spec §4.4). Returns
// (0, false) if the edge is absent.
func (g *AugMultiGraph) EdgeWeightNormalized(context, src, dst string) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcID, srcOK := g.lookupNode(src)
	dstID, dstOK := g.lookupNode(dst)
	if !srcOK || !dstOK {
		return 0, false
	}
	cs := g.ensureContext(context)
	w, ok := cs.graph.EdgeWeight(srcID, dstID)
	if !ok {
		return 0, false
	}
	sum := cs.graph.PosSum(srcID)
	if sum <= ctxgraph.Epsilon {
		g.log.Warn().Str("context", context).Str("src", src).Msg("pos_sum floored at epsilon")
	}

	return w / sum, true
}
