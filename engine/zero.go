package engine

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/meritrank/node"
)

type reducedEdge struct {
	u, v  node.ID
	score float64
}

// WriteRecalculateZero rebuilds the zero node's outgoing edges in the null
// context from a PageRank-reduced user trust graph (spec §4.7: Prime,
// Purge, Reduce, PageRank & reseed). The whole operation runs under one
// acquisition of g.mu, matching spec §5's "entire AugMultiGraph is
// protected by one exclusive lock acquired at the request boundary".
func (g *AugMultiGraph) WriteRecalculateZero() {
	g.mu.Lock()
	defer g.mu.Unlock()

	zeroID := g.findOrAddNode(g.zeroNodeName)
	null := g.ensureContext(NullContext)
	userIDs := g.allUserIDsLocked()

	// Phase 1: Prime.
	for _, u := range userIDs {
		if err := null.estimator.Calculate(u, 0); err != nil {
			g.log.Warn().Err(err).Msg("zero recalc: prime pass failed")
		}
	}

	// Phase 2: Purge.
	g.purgeZeroEdgesLocked(null, zeroID)

	// Phase 3: Reduce.
	reduced := g.reduceGraphLocked(null, userIDs, &zeroID)

	// Phase 4: PageRank & reseed.
	g.reseedZeroLocked(zeroID, reduced)

	for _, u := range userIDs {
		if err := null.estimator.Calculate(u, g.numWalk); err != nil {
			g.log.Warn().Err(err).Msg("zero recalc: full recalculation failed")
		}
	}
}

// allUserIDsLocked returns every registered User node id. Caller must hold
// g.mu.
func (g *AugMultiGraph) allUserIDsLocked() []node.ID {
	out := make([]node.ID, 0, g.nodes.Len())
	for i := 0; i < g.nodes.Len(); i++ {
		id := node.ID(i)
		if kind, err := g.nodes.Kind(id); err == nil && kind == node.KindUser {
			out = append(out, id)
		}
	}

	return out
}

// purgeZeroEdgesLocked zeroes every outgoing edge of the zero node in null
// (spec §4.7 phase 2). Caller must hold g.mu.
func (g *AugMultiGraph) purgeZeroEdgesLocked(null *contextState, zeroID node.ID) {
	nbs := null.graph.Neighbors(zeroID)
	targets := make([]node.ID, len(nbs))
	for i, nb := range nbs {
		targets[i] = nb.Dst
	}
	zeroName, _ := g.nodes.Name(zeroID)

	for _, dst := range targets {
		dstName, err := g.nodes.Name(dst)
		if err != nil {
			continue
		}
		g.setEdgeLocked(NullContext, zeroName, dstName, 0)
	}
}

// reseedZeroLocked runs PageRank over the reduced graph and writes edges
// from the zero node to the top TopNodesLimit scorers (spec §4.7 phase 4).
// Caller must hold g.mu.
func (g *AugMultiGraph) reseedZeroLocked(zeroID node.ID, reduced []reducedEdge) {
	if len(reduced) == 0 {
		return
	}

	gg := simple.NewDirectedGraph()
	seen := make(map[int64]bool)
	ensure := func(id node.ID) {
		nid := int64(id)
		if !seen[nid] {
			seen[nid] = true
			gg.AddNode(simple.Node(nid))
		}
	}
	for _, e := range reduced {
		ensure(e.u)
		ensure(e.v)
		gg.SetEdge(simple.Edge{F: simple.Node(int64(e.u)), T: simple.Node(int64(e.v))})
	}

	scores := network.PageRank(gg, 0.85, 1e-6)

	type scored struct {
		id    node.ID
		score float64
	}
	ranked := make([]scored, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, scored{id: node.ID(id), score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > g.topNodesLimit {
		ranked = ranked[:g.topNodesLimit]
	}

	zeroName, _ := g.nodes.Name(zeroID)
	for _, s := range ranked {
		if s.id == zeroID {
			continue
		}
		name, err := g.nodes.Name(s.id)
		if err != nil {
			continue
		}
		g.setEdgeLocked(NullContext, zeroName, name, s.score)
	}
}
