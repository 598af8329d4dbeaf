// Package ctxgraph implements the per-context directed weighted graph of
// spec §4.2 (component C2): one instance per named context (plus the null
// context), holding positive/negative edge splits and a cached per-node
// positive-sum used for weight normalisation.
//
// Unlike the teacher's github.com/katalvlaran/lvlath/core.Graph, edges are
// keyed by (src,dst) only — a second SetEdge on the same pair replaces the
// weight rather than adding a parallel edge, and self-loops are permitted
// (a user asserting something about itself is a legal, if unusual, edge).
package ctxgraph

import (
	"sync"

	"github.com/katalvlaran/meritrank/node"
)

// Epsilon floors the positive-sum denominator used by normalisation, per
// spec §4.4 ("pos_sum floored at ε to avoid division by zero").
const Epsilon = 1e-10

// NodeData is a read-only snapshot of one node's outgoing edges, returned
// by Graph.NodeData (spec §4.2's get_node_data contract).
type NodeData struct {
	PosEdges map[node.ID]float64
	NegEdges map[node.ID]float64
	PosSum   float64
}

// nodeState is the mutable per-source bookkeeping: positive/negative
// outgoing edge sets plus the cached sum of positive weights.
type nodeState struct {
	pos    map[node.ID]float64
	neg    map[node.ID]float64
	posSum float64
}

// Graph is one context's directed weighted graph. All mutation goes
// through SetEdge so the pos/neg split and posSum cache never drift.
type Graph struct {
	mu    sync.RWMutex
	nodes map[node.ID]*nodeState
}

// New returns an empty per-context graph.
func New() *Graph {
	return &Graph{nodes: make(map[node.ID]*nodeState)}
}

func (g *Graph) stateFor(id node.ID) *nodeState {
	st, ok := g.nodes[id]
	if !ok {
		st = &nodeState{pos: make(map[node.ID]float64), neg: make(map[node.ID]float64)}
		g.nodes[id] = st
	}

	return st
}
