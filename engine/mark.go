package engine

import (
	"sort"

	"github.com/katalvlaran/meritrank/bloom"
	"github.com/katalvlaran/meritrank/node"
)

// WriteMarkBeacons marks every beacon reachable with a positive score from
// src in context as "seen" by (context, src) (spec §4.6).
func (g *AugMultiGraph) WriteMarkBeacons(context, src string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcID, ok := g.lookupNode(src)
	if !ok {
		return
	}
	cs := g.ensureContext(context)
	ranks := g.getRanksOrRecalculate(cs, srcID, 0)

	for _, r := range ranks {
		if r.Score <= 0 {
			continue
		}
		kind, err := g.nodes.Kind(r.Node)
		if err != nil || kind != node.KindBeacon {
			continue
		}
		marks, err := g.nodes.GetMarks(r.Node)
		if err != nil {
			continue
		}
		marks = bloom.Mark(marks, context, src)
		_ = g.nodes.SetMarks(r.Node, marks)
	}
}

// UnmarkedBeacon is one (name, score) row returned by ReadUnmarkedBeacons.
type UnmarkedBeacon struct {
	Name  string
	Score float64
}

// ReadUnmarkedBeacons returns beacons with positive src->beacon score whose
// mark set does not already carry the (context, src) pattern, sorted by
// descending score (spec §4.6).
func (g *AugMultiGraph) ReadUnmarkedBeacons(context, src string) []UnmarkedBeacon {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcID, ok := g.lookupNode(src)
	if !ok {
		return nil
	}
	cs := g.ensureContext(context)
	ranks := g.getRanksOrRecalculate(cs, srcID, 0)

	out := make([]UnmarkedBeacon, 0, len(ranks))
	for _, r := range ranks {
		if r.Score <= 0 {
			continue
		}
		info, err := g.nodes.Info(r.Node)
		if err != nil || info.Kind != node.KindBeacon {
			continue
		}
		if bloom.Test(info.Marks, context, src) {
			continue
		}
		out = append(out, UnmarkedBeacon{Name: info.Name, Score: r.Score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out
}
