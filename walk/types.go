// Package walk implements the per-context Monte-Carlo random-walk
// estimator of spec §4.2 (component C3): Calculate/GetNodeScore/GetRanks.
//
// The spec treats the original MeritRank estimator as an external black
// box (§1: "The underlying MeritRank random-walk library is treated as a
// black-box with the contract in §4.2") — that Rust library has no Go
// port, so this package reimplements the documented contract: restart
// probability, per-ego walk caching, staleness detection, and the
// NodeDoesNotExist / NodeDoesNotCalculated failure modes. The actual walk
// (personalized-PageRank-style, sign-tracked to honour negative-weight
// distrust edges) is this package's own design, not a byte-for-byte port.
package walk

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/katalvlaran/meritrank/ctxgraph"
	"github.com/katalvlaran/meritrank/node"
)

// ErrNodeDoesNotExist is returned when ego or target falls outside the
// estimator's known id universe (spec §4.2).
var ErrNodeDoesNotExist = errors.New("walk: node does not exist")

// ErrNodeDoesNotCalculated is returned when a score/ranks query targets an
// ego whose walks have never been materialised (spec §3 "Staleness").
var ErrNodeDoesNotCalculated = errors.New("walk: node has not been calculated")

// damping is the per-step continuation probability, mirroring the
// restart-probability parameter of personalized PageRank (1-damping is the
// chance a walk stops after a step; every step's signed visit is recorded).
const damping = 0.85

// maxWalkSteps bounds a single walk so a densely connected graph cannot
// make Calculate run unboundedly long.
const maxWalkSteps = 64

// defaultSeed seeds the estimator's RNG when the caller passes 0, keeping
// walks reproducible in tests that don't care about a specific seed.
const defaultSeed = 1

// Rank is one (node, score) pair as returned by GetRanks, sorted by |score|
// descending (spec §4.2: get_ranks).
type Rank struct {
	Node  node.ID
	Score float64
}

// egoState holds one ego's cached walk results. n is the walk count
// Calculate was invoked with; scores holds raw accumulated visitation
// mass, not yet divided by n (GetNodeScore/GetRanks divide by the walk
// count n, not by the total number of walk steps).
type egoState struct {
	fresh  bool
	n      int
	scores map[node.ID]float64
}

// Estimator is one context's random-walk engine. It holds a reference to
// that context's ctxgraph.Graph (read through, never owns it) plus a
// per-ego walk cache.
type Estimator struct {
	mu       sync.Mutex
	graph    *ctxgraph.Graph
	rng      *rand.Rand
	universe int // exclusive upper bound of known node ids
	egos     map[node.ID]*egoState
}

// New returns an Estimator reading through graph. seed==0 uses a fixed
// default seed (deterministic by default, as the teacher's tsp.rngFromSeed
// does for its own heuristics).
func New(graph *ctxgraph.Graph, seed int64) *Estimator {
	s := seed
	if s == 0 {
		s = defaultSeed
	}

	return &Estimator{
		graph: graph,
		rng:   rand.New(rand.NewSource(s)),
		egos:  make(map[node.ID]*egoState),
	}
}

// Grow extends the estimator's known id universe to at least n (spec
// §4.1: "every existing context must be informed so its internal id space
// reaches at least that value").
func (e *Estimator) Grow(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n > e.universe {
		e.universe = n
	}
}

// known reports whether id falls within the estimator's id universe.
// Caller must hold e.mu.
func (e *Estimator) known(id node.ID) bool {
	return int(id) >= 0 && int(id) < e.universe
}

// Invalidate marks ego's cached walks stale, e.g. after an edge write that
// touches ego's outgoing adjacency (spec §3: staleness model).
func (e *Estimator) Invalidate(ego node.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.egos[ego]; ok {
		st.fresh = false
	}
}

// IsFresh reports whether ego currently has materialised walks.
func (e *Estimator) IsFresh(ego node.ID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.egos[ego]

	return ok && st.fresh
}
