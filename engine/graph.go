package engine

import (
	"sort"

	"github.com/katalvlaran/meritrank/astar"
	"github.com/katalvlaran/meritrank/ctxgraph"
	"github.com/katalvlaran/meritrank/node"
)

type edgeKey struct {
	src, dst node.ID
}

// ReadGraph extracts the focussed neighbourhood subgraph of focus as seen
// from ego (spec §4.5 read_graph): focus's direct and comment/beacon
// -contracted neighbours, plus, when ego != focus, an A*-bridged path from
// ego into that neighbourhood with the same chain-contraction rule applied.
//
// Path-contraction sign: resolved against spec §8 scenarios S3/S4 (0.8,0.6
// positive -> +0.48; -0.8,-0.6 negative -> +0.48) as plain signed
// multiplication w(a,b)*w(b,c) — the "enemy of my enemy" phrasing in §4.5
// describes the natural outcome of that multiplication, not an extra sign
// flip; see DESIGN.md.
func (g *AugMultiGraph) ReadGraph(context, ego, focus string, positiveOnly bool, index, count int) []NamedEdge {
	g.mu.Lock()
	defer g.mu.Unlock()

	focusID, focusOK := g.lookupNode(focus)
	if !focusOK {
		g.log.Info().Str("focus", focus).Msg("read_graph: unknown focus")

		return nil
	}
	egoID, egoOK := g.lookupNode(ego)
	if !egoOK {
		g.log.Info().Str("ego", ego).Msg("read_graph: unknown ego")

		return nil
	}

	cs := g.ensureContext(context)
	edges := make(map[edgeKey]float64)

	g.collectFocusNeighbourhood(cs, egoID, focusID, positiveOnly, edges)
	if egoID != focusID {
		g.collectBridgePath(cs, egoID, focusID, positiveOnly, edges)
	}

	rows := make([]NamedEdge, 0, len(edges))
	for k, w := range edges {
		if k.src == k.dst {
			continue
		}
		if positiveOnly && w <= 0 {
			continue
		}
		srcName, errS := g.nodes.Name(k.src)
		dstName, errD := g.nodes.Name(k.dst)
		if errS != nil || errD != nil {
			continue
		}
		rows = append(rows, NamedEdge{Src: srcName, Dst: dstName, Weight: w})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return absf(rows[i].Weight) > absf(rows[j].Weight)
	})

	return paginateEdges(rows, index, count)
}

// collectFocusNeighbourhood implements spec §4.5 step 2: direct User
// neighbours of focus, plus Comment/Beacon neighbours contracted through to
// their own User neighbours.
//
// Weights used: raw edge weights, not pos_sum-normalised ones. Spec §8's
// S3/S4 vectors (0.8,0.6 -> 0.48; -0.8,-0.6 -> 0.48) only reproduce under
// plain w(a,b)*w(b,c) multiplication — normalising first (dividing by
// pos_sum, itself often equal to the single edge weight) would collapse
// every factor to ±1 and lose the product entirely.
//
// The positive_only filter on a contracted edge is applied to the final
// contracted weight, not to the w(d,n) factor alone: invariant 11 ("no
// edge whose weight is <= 0") and S4 (both factors negative, contracted
// is positive and kept) only hold together that way. See DESIGN.md.
func (g *AugMultiGraph) collectFocusNeighbourhood(cs *contextState, ego, focus node.ID, positiveOnly bool, edges map[edgeKey]float64) {
	for _, nb := range cs.graph.Neighbors(focus) {
		d, wfd := nb.Dst, nb.Weight
		kind, err := g.nodes.Kind(d)
		if err != nil {
			continue
		}

		switch kind {
		case node.KindUser:
			if positiveOnly {
				score := g.getScoreOrRecalculate(cs, ego, d)
				if score <= 0 {
					continue
				}
			}
			setIfAbsent(edges, edgeKey{focus, d}, wfd)
		case node.KindComment, node.KindBeacon:
			for _, nb2 := range cs.graph.Neighbors(d) {
				n, wdn := nb2.Dst, nb2.Weight
				if n == focus {
					continue
				}
				nKind, err := g.nodes.Kind(n)
				if err != nil || nKind != node.KindUser {
					continue
				}
				contracted := wfd * wdn
				if positiveOnly && contracted <= 0 {
					continue
				}
				setIfAbsent(edges, edgeKey{focus, n}, contracted)
			}
		}
	}
}

// collectBridgePath runs the A* pathfinder from ego to focus over positive
// edges and folds the path into chain-contracted edges (spec §4.5 step 3).
func (g *AugMultiGraph) collectBridgePath(cs *contextState, ego, focus node.ID, positiveOnly bool, edges map[edgeKey]float64) {
	positiveNeighbors := func(n node.ID) []ctxgraph.Neighbor {
		all := cs.graph.NeighborsNormalized(n)
		out := make([]ctxgraph.Neighbor, 0, len(all))
		for _, nb := range all {
			if nb.Weight > 0 {
				out = append(out, nb)
			}
		}

		return out
	}

	search := astar.New(ego, focus, 1024, nil)
	status, req := search.Iterate(nil)
	for status == astar.StatusProgress || status == astar.StatusOutOfMemory {
		if status == astar.StatusOutOfMemory {
			status, req = search.Grow(0)

			continue
		}
		nbs := positiveNeighbors(req.Node)
		if req.Index >= len(nbs) {
			status, req = search.Iterate(&astar.NeighborReply{Node: req.Node, Ok: false})

			continue
		}
		nb := nbs[req.Index]
		status, req = search.Iterate(&astar.NeighborReply{Node: req.Node, Weight: nb.Weight, Ok: true})
	}

	if status != astar.StatusSuccess {
		return
	}

	path := search.Path()
	if len(path) < 2 {
		return
	}

	anchor := path[0]
	acc := 1.0
	for i := 0; i < len(path)-1; i++ {
		w, ok := cs.graph.EdgeWeight(path[i], path[i+1])
		if !ok {
			return
		}
		acc *= w
		cur := path[i+1]

		kind, err := g.nodes.Kind(cur)
		if err != nil {
			return
		}
		if kind == node.KindUser || cur == focus {
			// The User-predecessor restriction (spec §4.5: "the final edge
			// is included only if kind(last-but-one) = User") applies only
			// to the edge terminating at focus. Every other segment
			// closure — an interior User node reached through the bridge —
			// is added unconditionally, subject only to positiveOnly.
			include := true
			if cur == focus {
				predKind, _ := g.nodes.Kind(path[i])
				include = predKind == node.KindUser
			}
			if include && !(positiveOnly && acc <= 0) {
				setIfAbsent(edges, edgeKey{anchor, cur}, acc)
			}
			anchor = cur
			acc = 1.0
		}
	}
}

func setIfAbsent(m map[edgeKey]float64, k edgeKey, v float64) {
	if _, ok := m[k]; !ok {
		m[k] = v
	}
}

func paginateEdges(rows []NamedEdge, index, count int) []NamedEdge {
	if index < 0 {
		index = 0
	}
	if index >= len(rows) {
		return nil
	}
	end := len(rows)
	if count > 0 && index+count < end {
		end = index + count
	}

	return rows[index:end]
}
