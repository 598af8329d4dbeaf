package engine

import "github.com/katalvlaran/meritrank/node"

// NodeInfo is one row of ReadNodes: a registered node's name and derived
// kind (spec §6 introspection command "nodes").
type NodeInfo struct {
	Name string
	Kind node.Kind
}

// ReadNodes lists every node known to the registry, independent of context
// (C1 is shared across contexts; spec §4.1).
func (g *AugMultiGraph) ReadNodes() []NodeInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.nodes.Len()
	out := make([]NodeInfo, 0, n)
	for i := 0; i < n; i++ {
		id := node.ID(i)
		name, err := g.nodes.Name(id)
		if err != nil {
			continue
		}
		kind, _ := g.nodes.Kind(id)
		out = append(out, NodeInfo{Name: name, Kind: kind})
	}

	return out
}
