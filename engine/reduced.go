package engine

import "github.com/katalvlaran/meritrank/node"

// ReducedEdge is one (src, dst, score) row of the reduced user/beacon trust
// graph (spec §11 supplement, original `get_reduced_graph`).
type ReducedEdge struct {
	Src, Dst string
	Score    float64
}

// ReadReducedGraph exposes the pre-PageRank reduced user/beacon trust
// graph used internally by write_recalculate_zero, surfaced for
// diagnostics (spec §11: `mr_beacons_global` / "for_beacons_global").
func (g *AugMultiGraph) ReadReducedGraph(context string) []ReducedEdge {
	g.mu.Lock()
	defer g.mu.Unlock()

	cs := g.ensureContext(context)
	userIDs := g.allUserIDsLocked()
	edges := g.reduceGraphLocked(cs, userIDs, nil)

	out := make([]ReducedEdge, 0, len(edges))
	for _, e := range edges {
		srcName, errS := g.nodes.Name(e.u)
		dstName, errD := g.nodes.Name(e.v)
		if errS != nil || errD != nil {
			continue
		}
		out = append(out, ReducedEdge{Src: srcName, Dst: dstName, Score: e.score})
	}

	return out
}

// reduceGraphLocked computes (u, v, score) tuples for every u in userIDs:
// ranks_or_recalculate(cs, u), keeping v in {User, Beacon} with score > 0,
// u != v, and (when exclude != nil) neither endpoint equal to *exclude.
// Caller must hold g.mu.
func (g *AugMultiGraph) reduceGraphLocked(cs *contextState, userIDs []node.ID, exclude *node.ID) []reducedEdge {
	var out []reducedEdge
	for _, u := range userIDs {
		if exclude != nil && u == *exclude {
			continue
		}
		ranks := g.getRanksOrRecalculate(cs, u, 0)
		for _, r := range ranks {
			if r.Score <= 0 || r.Node == u {
				continue
			}
			if exclude != nil && r.Node == *exclude {
				continue
			}
			kind, err := g.nodes.Kind(r.Node)
			if err != nil || (kind != node.KindUser && kind != node.KindBeacon) {
				continue
			}
			out = append(out, reducedEdge{u: u, v: r.Node, score: r.Score})
		}
	}

	return out
}
