package engine

import (
	"github.com/katalvlaran/meritrank/ctxgraph"
	"github.com/katalvlaran/meritrank/node"
	"github.com/katalvlaran/meritrank/walk"
)

// ensureContext returns name's contextState, creating it on first reference
// (spec §3: "Contexts: created on first reference (read or write); live
// forever."). A freshly created non-null context is seeded with every
// User-sourced edge already present in null (spec §4.4 write_create_context:
// "so that the 'User edges are cross-context' invariant holds from t=0").
// Caller must hold g.mu.
func (g *AugMultiGraph) ensureContext(name string) *contextState {
	if cs, ok := g.contexts[name]; ok {
		return cs
	}

	graph := ctxgraph.New()
	cs := &contextState{
		graph:     graph,
		estimator: walk.New(graph, g.seed),
	}
	cs.estimator.Grow(g.nodes.Len())
	g.contexts[name] = cs

	if name != NullContext {
		g.seedFromNull(cs)
	}

	return cs
}

// seedFromNull copies every User-sourced edge currently in null into a
// newly created context cs. Caller must hold g.mu; null must already exist.
func (g *AugMultiGraph) seedFromNull(cs *contextState) {
	nullCS := g.contexts[NullContext]
	if nullCS == nil {
		return
	}
	for _, e := range nullCS.graph.AllEdges() {
		kind, err := g.nodes.Kind(e.Src)
		if err != nil || kind != node.KindUser {
			continue
		}
		cs.graph.SetEdge(e.Src, e.Dst, e.Weight)
	}
}

// growUniverse extends every existing context's estimator id space to cover
// the registry's current size (spec §4.1: "every existing context must be
// informed so its internal id space reaches at least that value"). Caller
// must hold g.mu.
func (g *AugMultiGraph) growUniverse() {
	n := g.nodes.Len()
	for _, cs := range g.contexts {
		cs.estimator.Grow(n)
	}
}

// findOrAddNode registers name if unseen and grows every context's
// estimator universe to match. Caller must hold g.mu.
func (g *AugMultiGraph) findOrAddNode(name string) node.ID {
	id := g.nodes.FindOrAdd(name)
	g.growUniverse()

	return id
}

// lookupNode resolves an already-registered name without creating it, used
// by read paths so a query for a never-seen name does not silently
// allocate a node id (spec §7: UnknownNode policy).
func (g *AugMultiGraph) lookupNode(name string) (node.ID, bool) {
	id, err := g.nodes.Lookup(name)

	return id, err == nil
}
