package engine_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meritrank/engine"
)

func newEngine(t *testing.T) *engine.AugMultiGraph {
	t.Helper()

	return engine.New(200, "", 100, zerolog.Nop())
}

// S1: asymmetric score after a single positive edge in null.
func TestS1_AsymmetricScore(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)

	forward := g.ReadNodeScore(engine.NullContext, "U_a", "U_b")
	assert.Greater(t, forward.Score, 0.0)

	backward := g.ReadNodeScore(engine.NullContext, "U_b", "U_a")
	assert.Equal(t, 0.0, backward.Score)
}

// S2: composition invariant holds across multi-context writes and a delete.
//
// Uses a non-User source (kind Unknown): invariant 2's cross-context User
// broadcast (every context, including null, takes the literal written
// amount) is mutually exclusive with this scenario's additive null — 1.0,
// then 1.5, then 0.5 after delete only arises from rule 4's delta
// composition, which applies to non-User sources. See DESIGN.md.
func TestS2_CompositionAcrossContexts(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge("X", "Actor_a", "Actor_b", 1.0)
	assertEdgeWeight(t, g, engine.NullContext, "Actor_a", "Actor_b", 1.0)

	g.WritePutEdge("Y", "Actor_a", "Actor_b", 0.5)
	assertEdgeWeight(t, g, engine.NullContext, "Actor_a", "Actor_b", 1.5)

	g.WriteDeleteEdge("X", "Actor_a", "Actor_b")
	assertEdgeWeight(t, g, engine.NullContext, "Actor_a", "Actor_b", 0.5)
}

// Invariant 2: a User-sourced write is broadcast identically into every
// existing context, including null.
func TestInvariant_UserBroadcast(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)
	g.WriteCreateContext("X")

	g.WritePutEdge("X", "U_a", "U_c", 2.0)

	assertEdgeWeight(t, g, engine.NullContext, "U_a", "U_c", 2.0)
	assertEdgeWeight(t, g, "X", "U_a", "U_c", 2.0)
}

func assertEdgeWeight(t *testing.T, g *engine.AugMultiGraph, context, src, dst string, want float64) {
	t.Helper()
	edges := g.ReadEdges(context)
	for _, e := range edges {
		if e.Src == src && e.Dst == dst {
			assert.InDelta(t, want, e.Weight, 1e-9)

			return
		}
	}
	t.Fatalf("edge %s->%s not found in context %q", src, dst, context)
}

// S3/S4: path contraction through a Comment hop, both signs.
func TestS3S4_PathContractionThroughComment(t *testing.T) {
	cases := []struct {
		name   string
		w1, w2 float64
		want   float64
	}{
		{"both positive", 0.8, 0.6, 0.48},
		{"both negative", -0.8, -0.6, 0.48},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newEngine(t)
			g.WritePutEdge(engine.NullContext, "U_a", "C_1", tc.w1)
			g.WritePutEdge(engine.NullContext, "C_1", "U_b", tc.w2)

			rows := g.ReadGraph(engine.NullContext, "U_a", "U_a", true, 0, 100)

			var found *engine.NamedEdge
			for i := range rows {
				if rows[i].Src == "U_a" && rows[i].Dst == "U_b" {
					found = &rows[i]
				}
				assert.NotEqual(t, "C_1", rows[i].Dst, "no direct edge to the comment hop should be emitted")
			}
			require.NotNil(t, found)
			assert.InDelta(t, tc.want, found.Weight, 1e-6)
		})
	}
}

// S5: Bloom-filter mark monotonicity is per-source.
func TestS5_BloomMarkMonotonicity(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "B_1", 1.0)
	g.WritePutEdge(engine.NullContext, "U_c", "B_1", 1.0)

	g.WriteMarkBeacons(engine.NullContext, "U_a")

	assert.Empty(t, g.ReadUnmarkedBeacons(engine.NullContext, "U_a"))
	assert.NotEmpty(t, g.ReadUnmarkedBeacons(engine.NullContext, "U_c"))
}

// S6: zero-node recalculation reseeds within TOP_NODES_LIMIT, no self-loops,
// all positive, all to User/Beacon.
func TestS6_ZeroNodeRecalculation(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)
	g.WritePutEdge(engine.NullContext, "U_b", "U_c", 1.0)
	g.WritePutEdge(engine.NullContext, "U_c", "B_1", 1.0)

	g.WriteRecalculateZero()

	edges := g.ReadEdges(engine.NullContext)
	var zeroOut []engine.NamedEdge
	for _, e := range edges {
		if e.Src == "U000000000000" {
			zeroOut = append(zeroOut, e)
		}
	}
	assert.LessOrEqual(t, len(zeroOut), 100)
	for _, e := range zeroOut {
		assert.NotEqual(t, "U000000000000", e.Dst)
		assert.Greater(t, e.Weight, 0.0)
	}
}

// Invariant 6: idempotent double put.
func TestInvariant_IdempotentDoublePut(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)

	assertEdgeWeight(t, g, engine.NullContext, "U_a", "U_b", 1.0)
}

// Invariant 7: put then delete restores zero.
func TestInvariant_PutThenDeleteRestoresZero(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge("X", "U_a", "U_b", 1.0)
	g.WriteDeleteEdge("X", "U_a", "U_b")

	edges := g.ReadEdges("X")
	for _, e := range edges {
		if e.Src == "U_a" && e.Dst == "U_b" {
			t.Fatalf("expected edge to be removed, got weight %v", e.Weight)
		}
	}
}

// Boundary 9: count=0 and out-of-range index both yield empty.
func TestBoundary_ReadScoresPagination(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)

	empty := g.ReadScores(engine.NullContext, "U_a", engine.ScoresQuery{Count: 0})
	assert.Empty(t, empty)

	out := g.ReadScores(engine.NullContext, "U_a", engine.ScoresQuery{Index: 1000, Count: 10})
	assert.Empty(t, out)
}

// Boundary 10: ego == focus returns only the focus neighbourhood (no A*).
func TestBoundary_ReadGraphEgoEqualsFocus(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)

	rows := g.ReadGraph(engine.NullContext, "U_a", "U_a", false, 0, 100)
	require.Len(t, rows, 1)
	assert.Equal(t, "U_a", rows[0].Src)
	assert.Equal(t, "U_b", rows[0].Dst)
}

// Boundary 11: positive_only emits no non-positive edge.
func TestBoundary_ReadGraphPositiveOnly(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)
	g.WritePutEdge(engine.NullContext, "U_a", "U_c", -1.0)

	rows := g.ReadGraph(engine.NullContext, "U_a", "U_a", true, 0, 100)
	for _, e := range rows {
		assert.Greater(t, e.Weight, 0.0)
	}
}

// Unknown node/context queries degrade to zero rather than erroring.
func TestUnknownNode_ReturnsZero(t *testing.T) {
	g := newEngine(t)
	out := g.ReadNodeScore(engine.NullContext, "U_ghost", "U_nobody")
	assert.Equal(t, 0.0, out.Score)
}

func TestUnknownContext_IsCreatedEmpty(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_a", "U_b", 1.0)

	out := g.ReadConnected("brand-new-context", "U_a")
	assert.Empty(t, out)
}

// Complement of boundary 10: ego != focus runs the A*-bridged path and folds it into the
// focus neighbourhood. A single-hop bridge: ego directly reaches focus.
func TestReadGraph_BridgePathEgoNotFocus(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_ego", "U_focus", 0.7)
	g.WritePutEdge(engine.NullContext, "U_focus", "U_other", 1.0)

	rows := g.ReadGraph(engine.NullContext, "U_ego", "U_focus", false, 0, 100)

	var bridge *engine.NamedEdge
	for i := range rows {
		if rows[i].Src == "U_ego" && rows[i].Dst == "U_focus" {
			bridge = &rows[i]
		}
	}
	require.NotNil(t, bridge, "expected the ego->focus bridge edge to be present")
	assert.InDelta(t, 0.7, bridge.Weight, 1e-6)
}

// A multi-hop bridge crossing a Comment relay followed by two direct
// User->User hops: ego -> C_x -> U_y -> U_z -> focus. The Comment hop
// contracts into ego->U_y; U_y->U_z and U_z->focus are direct edges and
// must survive uncontracted-restriction, since the User-predecessor
// restriction on the final edge applies only to the edge terminating at
// focus, not to every interior segment closure.
func TestReadGraph_BridgePathMultiHopThroughComment(t *testing.T) {
	g := newEngine(t)
	g.WritePutEdge(engine.NullContext, "U_ego", "C_x", 0.5)
	g.WritePutEdge(engine.NullContext, "C_x", "U_y", 0.4)
	g.WritePutEdge(engine.NullContext, "U_y", "U_z", 0.3)
	g.WritePutEdge(engine.NullContext, "U_z", "U_focus", 0.6)

	rows := g.ReadGraph(engine.NullContext, "U_ego", "U_focus", false, 0, 100)

	find := func(src, dst string) *engine.NamedEdge {
		for i := range rows {
			if rows[i].Src == src && rows[i].Dst == dst {
				return &rows[i]
			}
		}

		return nil
	}

	egoToY := find("U_ego", "U_y")
	require.NotNil(t, egoToY, "the comment-contracted ego->U_y edge must survive")
	assert.InDelta(t, 0.5*0.4, egoToY.Weight, 1e-6)

	yToZ := find("U_y", "U_z")
	require.NotNil(t, yToZ, "the direct interior U_y->U_z edge must not be dropped")
	assert.InDelta(t, 0.3, yToZ.Weight, 1e-6)

	zToFocus := find("U_z", "U_focus")
	require.NotNil(t, zToFocus, "the final edge has a User predecessor (U_z) so it must be included")
	assert.InDelta(t, 0.6, zToFocus.Weight, 1e-6)

	for i := range rows {
		assert.NotEqual(t, "C_x", rows[i].Dst, "no direct edge to the comment hop should be emitted")
	}
}
