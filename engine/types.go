// Package engine implements the augmented multi-context graph engine: the
// node/edge store, the multi-context composition invariant, the query
// surface, the focussed-subgraph extraction, and the zero-node regeneration
// pipeline (spec §4, components C4/C5/C7). It is the keystone that wires
// together node.Registry (C1), ctxgraph.Graph (C2), walk.Estimator (C3),
// astar.Search (C6) and bloom (C8).
//
// Concurrency model mirrors the teacher's core.Graph locking discipline
// (separate locks per concern) collapsed to spec §5's single exclusive
// writer lock: "the entire AugMultiGraph is protected by one exclusive lock
// acquired at the request boundary... there is no reader-writer
// distinction; the random-walk estimator mutates its walk cache on reads."
package engine

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/meritrank/ctxgraph"
	"github.com/katalvlaran/meritrank/node"
	"github.com/katalvlaran/meritrank/walk"
)

// NullContext is the distinguished sum-of-all-contexts aggregate (spec §3).
const NullContext = ""

// DefaultZeroNodeName is the synthetic global-trust anchor's name (spec §6:
// ZERO_NODE default).
const DefaultZeroNodeName = "U000000000000"

// DefaultTopNodesLimit bounds how many reduced-graph nodes write-recalculate
// reseeds the zero node with (spec §6: TOP_NODES_LIMIT default).
const DefaultTopNodesLimit = 100

// contextState bundles one named context's graph and its random-walk
// estimator; both are created together and never removed.
type contextState struct {
	graph     *ctxgraph.Graph
	estimator *walk.Estimator
}

// AugMultiGraph is the engine's single stateful object: one node registry
// shared by every context, plus a set of named per-context graphs, the
// distinguished null aggregate among them.
type AugMultiGraph struct {
	mu sync.Mutex

	nodes    *node.Registry
	contexts map[string]*contextState

	numWalk       int
	zeroNodeName  string
	topNodesLimit int
	seed          int64

	log zerolog.Logger
}

// New returns an engine ready to serve requests. numWalk is the walk count
// used by calculate-on-demand (spec §6: NUM_WALK); zeroNodeName and
// topNodesLimit parameterise write-recalculate (§4.7).
func New(numWalk int, zeroNodeName string, topNodesLimit int, log zerolog.Logger) *AugMultiGraph {
	if zeroNodeName == "" {
		zeroNodeName = DefaultZeroNodeName
	}
	if topNodesLimit <= 0 {
		topNodesLimit = DefaultTopNodesLimit
	}

	g := &AugMultiGraph{
		nodes:         node.NewRegistry(),
		contexts:      make(map[string]*contextState),
		numWalk:       numWalk,
		zeroNodeName:  zeroNodeName,
		topNodesLimit: topNodesLimit,
		seed:          1,
		log:           log,
	}
	g.ensureContext(NullContext)

	return g
}
