package engine

import "github.com/katalvlaran/meritrank/node"

// ReadGraphNodes is the node-score-map sibling of ReadGraph (spec §11
// supplement, original `mr_gravity_nodes`): for every node appearing in the
// same focussed neighbourhood as ReadGraph, report its ego-relative score
// instead of the contracted edge list.
func (g *AugMultiGraph) ReadGraphNodes(context, ego, focus string, positiveOnly bool) map[string]float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	focusID, focusOK := g.lookupNode(focus)
	egoID, egoOK := g.lookupNode(ego)
	if !focusOK || !egoOK {
		return map[string]float64{}
	}

	cs := g.ensureContext(context)
	edges := make(map[edgeKey]float64)
	g.collectFocusNeighbourhood(cs, egoID, focusID, positiveOnly, edges)
	if egoID != focusID {
		g.collectBridgePath(cs, egoID, focusID, positiveOnly, edges)
	}

	seen := make(map[node.ID]bool)
	out := make(map[string]float64)
	for k := range edges {
		for _, id := range [2]node.ID{k.src, k.dst} {
			if seen[id] {
				continue
			}
			seen[id] = true
			name, err := g.nodes.Name(id)
			if err != nil {
				continue
			}
			out[name] = g.getScoreOrRecalculate(cs, egoID, id)
		}
	}

	return out
}
