// Package astar implements the bounded-memory, continuation-passing A*
// pathfinder of spec §4.3 (component C6).
//
// Unlike a conventional graph search, Search does not hold the graph: each
// Iterate call either makes progress internally or returns a NeighborRequest
// asking the caller to fetch one (src, index) neighbour and feed it back.
// This mirrors the teacher's github.com/katalvlaran/lvlath/dijkstra
// heap-based relaxation loop (same container/heap lazy-decrease-key idiom),
// generalized with a heuristic hook (zero by default, i.e. plain Dijkstra)
// and an externally driven neighbour fetch instead of owning *core.Graph.
package astar

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/meritrank/node"
)

// Status is the result of one Iterate/Grow call.
type Status int

const (
	// StatusProgress means the caller should service the returned request
	// and call Iterate again with the reply.
	StatusProgress Status = iota
	// StatusOutOfMemory means the open-set buffer is full (the closed set
	// is not bounded); the caller must call Grow with a larger capacity.
	StatusOutOfMemory
	// StatusSuccess means Path() now returns a valid ego→goal path.
	StatusSuccess
	// StatusFail means no path exists (open set exhausted) or the
	// iteration cap was hit.
	StatusFail
)

// maxIterations is the hard cap of spec §4.3 ("Hard iteration cap: 10 000").
const maxIterations = 10000

// epsilon below which an edge weight's magnitude is treated as vanishing;
// its cost is clipped rather than diverging (spec §4.3).
const epsilon = 1e-10

// clippedCost is the cost assigned to edges at or below epsilon.
const clippedCost = 1e6

// edgeCost converts a (signed) normalised edge weight into a non-negative
// traversal cost: 1/|w|, clipped at clippedCost when |w| <= epsilon.
func edgeCost(weight float64) float64 {
	aw := math.Abs(weight)
	if aw <= epsilon {
		return clippedCost
	}

	return 1 / aw
}

// NeighborRequest asks the caller for the index-th positive neighbour of
// Node (0-based, in the caller's own enumeration order).
type NeighborRequest struct {
	Node  node.ID
	Index int
}

// NeighborReply answers a NeighborRequest. Ok==false means "no neighbour at
// that index" (expansion of Node is complete).
type NeighborReply struct {
	Node   node.ID
	Weight float64
	Ok     bool
}

// Heuristic estimates the remaining cost from n to the goal. The zero
// heuristic (spec §4.3 default) degrades A* to Dijkstra.
type Heuristic func(n node.ID) float64

// ZeroHeuristic is the spec's default: always 0.
func ZeroHeuristic(node.ID) float64 { return 0 }

type openItem struct {
	node node.ID
	f    float64
}

type openHeap []openItem

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x interface{}) { *h = append(*h, x.(openItem)) }
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

type stashedPush struct {
	node node.ID
	g    float64
	f    float64
}

// Search is one ego→goal search. Zero value is not usable; build with New.
type Search struct {
	start, goal node.ID
	heuristic   Heuristic
	capacity    int
	iterations  int

	open   openHeap
	closed map[node.ID]bool
	gScore map[node.ID]float64
	parent map[node.ID]node.ID

	havePopped bool
	cur        node.ID
	curG       float64
	curIdx     int
	done       bool
	stashed    *stashedPush
}

// New returns a Search from start to goal with an initial buffer capacity
// (spec §5: "A* buffers start at 1024 slots"). A nil heuristic defaults to
// ZeroHeuristic.
func New(start, goal node.ID, capacity int, heuristic Heuristic) *Search {
	if heuristic == nil {
		heuristic = ZeroHeuristic
	}
	s := &Search{
		start:     start,
		goal:      goal,
		heuristic: heuristic,
		capacity:  capacity,
		closed:    make(map[node.ID]bool),
		gScore:    make(map[node.ID]float64),
		parent:    make(map[node.ID]node.ID),
	}
	s.gScore[start] = 0
	heap.Push(&s.open, openItem{node: start, f: heuristic(start)})

	return s
}
