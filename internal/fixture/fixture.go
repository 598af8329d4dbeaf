// Package fixture builds small deterministic graphs directly against an
// engine.AugMultiGraph for tests and local exploration — an adaptation of
// the teacher's builder package's topology constructors (Path, Star,
// Cycle, RandomSparse) from lvlath's core.Graph onto this repository's
// own node-naming scheme (U/B/C prefixes, spec §3) and WritePutEdge
// instead of core.AddEdge.
package fixture

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/meritrank/engine"
)

// ErrTooFewVertices mirrors builder's sentinel of the same name: every
// constructor here rejects a vertex count below its topology's minimum
// rather than silently building a degenerate graph.
var ErrTooFewVertices = errors.New("fixture: too few vertices")

// WeightFn produces an edge weight given an optional *rand.Rand source,
// exactly builder.WeightFn's contract: deterministic for a fixed seed.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns 1, builder.DefaultWeightFn's equivalent.
func DefaultWeightFn(_ *rand.Rand) float64 { return 1 }

// UniformWeightFn samples uniformly in [min, max), returning min when rng
// is nil or when max <= min.
func UniformWeightFn(min, max float64) WeightFn {
	return func(rng *rand.Rand) float64 {
		if rng == nil || max <= min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// userID formats the i-th User node name in this package's fixed-width
// convention, keeping ids lexically sortable.
func userID(i int) string { return fmt.Sprintf("U%011d", i) }

const minPathNodes = 2

// Path writes a directed path U0 -> U1 -> ... -> U(n-1) into context
// (builder.Path's equivalent, spec-flavoured: User-kind nodes only, since
// a path of pure trust edges is the natural analogue of lvlath's
// unweighted path topology here).
func Path(g *engine.AugMultiGraph, context string, n int, rng *rand.Rand, weightFn WeightFn) error {
	if n < minPathNodes {
		return fmt.Errorf("fixture.Path: n=%d < min=%d: %w", n, minPathNodes, ErrTooFewVertices)
	}
	if weightFn == nil {
		weightFn = DefaultWeightFn
	}
	for i := 1; i < n; i++ {
		g.WritePutEdge(context, userID(i-1), userID(i), weightFn(rng))
	}

	return nil
}

const minCycleNodes = 3

// Cycle writes an n-vertex directed ring U0 -> U1 -> ... -> U(n-1) -> U0
// (builder.Cycle's equivalent).
func Cycle(g *engine.AugMultiGraph, context string, n int, rng *rand.Rand, weightFn WeightFn) error {
	if n < minCycleNodes {
		return fmt.Errorf("fixture.Cycle: n=%d < min=%d: %w", n, minCycleNodes, ErrTooFewVertices)
	}
	if weightFn == nil {
		weightFn = DefaultWeightFn
	}
	for i := 0; i < n; i++ {
		g.WritePutEdge(context, userID(i), userID((i+1)%n), weightFn(rng))
	}

	return nil
}

const minStarNodes = 2

// starHub is the fixed hub id, the User-kind equivalent of builder's
// "Center" vertex.
const starHub = "U000000HUB00"

// Star writes a hub-and-spoke graph: the hub endorses n-1 leaves
// (builder.Star's equivalent; spokes run hub -> leaf only, since the
// reputation graph's edges are directed trust statements rather than
// lvlath's optionally-symmetric spokes).
func Star(g *engine.AugMultiGraph, context string, n int, rng *rand.Rand, weightFn WeightFn) error {
	if n < minStarNodes {
		return fmt.Errorf("fixture.Star: n=%d < min=%d: %w", n, minStarNodes, ErrTooFewVertices)
	}
	if weightFn == nil {
		weightFn = DefaultWeightFn
	}
	for i := 1; i < n; i++ {
		g.WritePutEdge(context, starHub, userID(i), weightFn(rng))
	}

	return nil
}

// kindPrefix cycles User/Beacon/Comment by index, giving RandomSparse a
// mixed-kind node population so it can exercise path-contraction through
// Comment/Beacon hops, unlike the purely-User Path/Star/Cycle topologies.
func kindPrefix(i int) byte {
	switch i % 3 {
	case 0:
		return 'U'
	case 1:
		return 'B'
	default:
		return 'C'
	}
}

func mixedID(i int) string {
	return fmt.Sprintf("%c%010d", kindPrefix(i), i)
}

const minRandomSparseNodes = 2

// RandomSparse writes a random directed graph over n mixed-kind nodes:
// each ordered pair (i, j), i != j, gets an edge independently with
// probability density (builder.RandomSparse's equivalent). rng must be
// non-nil; determinism is entirely the caller's seed.
func RandomSparse(g *engine.AugMultiGraph, context string, n int, density float64, rng *rand.Rand, weightFn WeightFn) error {
	if n < minRandomSparseNodes {
		return fmt.Errorf("fixture.RandomSparse: n=%d < min=%d: %w", n, minRandomSparseNodes, ErrTooFewVertices)
	}
	if rng == nil {
		return fmt.Errorf("fixture.RandomSparse: rng must not be nil")
	}
	if weightFn == nil {
		weightFn = DefaultWeightFn
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if rng.Float64() < density {
				g.WritePutEdge(context, mixedID(i), mixedID(j), weightFn(rng))
			}
		}
	}

	return nil
}
