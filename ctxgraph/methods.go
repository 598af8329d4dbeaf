package ctxgraph

import "github.com/katalvlaran/meritrank/node"

// SetEdge upserts the (src,dst) edge to weight, or removes it entirely
// when weight is exactly 0 (spec §3: "weight 0 means remove"). The
// positive-sum cache of src is maintained incrementally so callers never
// pay an O(degree) rescan on a hot write path.
//
// Complexity: O(1) amortized.
func (g *Graph) SetEdge(src, dst node.ID, weight float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.stateFor(src)

	// Remove any prior contribution of this edge from the cache before
	// applying the new one, whichever sign it had.
	if old, ok := st.pos[dst]; ok {
		st.posSum -= old
		delete(st.pos, dst)
	}
	delete(st.neg, dst)

	switch {
	case weight == 0:
		// Logical delete: nothing left to (re)insert.
	case weight > 0:
		st.pos[dst] = weight
		st.posSum += weight
	default:
		st.neg[dst] = weight
	}
}

// EdgeWeight returns the current weight of (src,dst) and whether it exists.
// Complexity: O(1).
func (g *Graph) EdgeWeight(src, dst node.ID) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st, ok := g.nodes[src]
	if !ok {
		return 0, false
	}
	if w, ok := st.pos[dst]; ok {
		return w, true
	}
	if w, ok := st.neg[dst]; ok {
		return w, true
	}

	return 0, false
}

// NodeData returns a snapshot of src's outgoing edges and cached pos_sum.
// The returned maps are copies; callers may not mutate graph state through
// them. Complexity: O(degree(src)).
func (g *Graph) NodeData(src node.ID) NodeData {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st, ok := g.nodes[src]
	if !ok {
		return NodeData{PosEdges: map[node.ID]float64{}, NegEdges: map[node.ID]float64{}}
	}

	pos := make(map[node.ID]float64, len(st.pos))
	for k, v := range st.pos {
		pos[k] = v
	}
	neg := make(map[node.ID]float64, len(st.neg))
	for k, v := range st.neg {
		neg[k] = v
	}

	return NodeData{PosEdges: pos, NegEdges: neg, PosSum: st.posSum}
}

// PosSum returns the cached sum of src's positive outgoing weights, floored
// at Epsilon so normalisation never divides by zero (spec §4.4).
func (g *Graph) PosSum(src node.ID) float64 {
	g.mu.RLock()
	sum := 0.0
	if st, ok := g.nodes[src]; ok {
		sum = st.posSum
	}
	g.mu.RUnlock()

	if sum < Epsilon {
		return Epsilon
	}

	return sum
}

// Neighbors returns all outgoing (dst, weight) pairs of src, positive edges
// first then negative — spec §4.4's all_neighbors concatenation order.
// Complexity: O(degree(src)).
func (g *Graph) Neighbors(src node.ID) []Neighbor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st, ok := g.nodes[src]
	if !ok {
		return nil
	}
	out := make([]Neighbor, 0, len(st.pos)+len(st.neg))
	for dst, w := range st.pos {
		out = append(out, Neighbor{Dst: dst, Weight: w})
	}
	for dst, w := range st.neg {
		out = append(out, Neighbor{Dst: dst, Weight: w})
	}

	return out
}

// Neighbor is one outgoing edge returned by Neighbors/NeighborsNormalized.
type Neighbor struct {
	Dst    node.ID
	Weight float64
}

// NeighborsNormalized returns Neighbors with each weight divided by the
// floored positive-sum of src (spec §4.4's edge_weight_normalized, applied
// across the whole adjacency in one pass).
func (g *Graph) NeighborsNormalized(src node.ID) []Neighbor {
	n := g.Neighbors(src)
	sum := g.PosSum(src)
	out := make([]Neighbor, len(n))
	for i, nb := range n {
		out[i] = Neighbor{Dst: nb.Dst, Weight: nb.Weight / sum}
	}

	return out
}

// AllEdges enumerates every (src,dst,weight) triple currently stored,
// positive edges before negative per source, sources in map iteration
// order; the order is not stable across calls and is not sorted here.
// Complexity: O(E).
func (g *Graph) AllEdges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for src, st := range g.nodes {
		for dst, w := range st.pos {
			out = append(out, Edge{Src: src, Dst: dst, Weight: w})
		}
		for dst, w := range st.neg {
			out = append(out, Edge{Src: src, Dst: dst, Weight: w})
		}
	}

	return out
}

// Edge is a materialised (src,dst,weight) triple, as returned by AllEdges.
type Edge struct {
	Src, Dst node.ID
	Weight   float64
}

// EnsureNode makes sure src has an (initially empty) adjacency bucket, so
// that a zero-walk/zero-edge node still participates in id-space growth
// bookkeeping (spec §4.1: "every existing context must be informed so its
// internal id space reaches at least that value").
func (g *Graph) EnsureNode(id node.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stateFor(id)
}
