package engine

import (
	"errors"
	"sort"

	"github.com/katalvlaran/meritrank/node"
	"github.com/katalvlaran/meritrank/walk"
)

// ScoreTriple is one (ego, target, score) result row (spec §4.5
// read_node_score).
type ScoreTriple struct {
	Ego    string
	Target string
	Score  float64
}

// getScoreOrRecalculate implements the C4 recovery policy (spec §4.2):
// on NodeDoesNotCalculated, calculate once and retry; on NodeDoesNotExist
// or any other failure, log a warning and return 0. Caller must hold g.mu.
func (g *AugMultiGraph) getScoreOrRecalculate(cs *contextState, ego, target node.ID) float64 {
	score, err := cs.estimator.GetNodeScore(ego, target)
	if err == nil {
		return score
	}
	if errors.Is(err, walk.ErrNodeDoesNotCalculated) {
		if calcErr := cs.estimator.Calculate(ego, g.numWalk); calcErr != nil {
			g.log.Warn().Err(calcErr).Msg("calculate failed during score recovery")

			return 0
		}
		score, err = cs.estimator.GetNodeScore(ego, target)
		if err == nil {
			return score
		}
	}
	g.log.Warn().Err(err).Msg("read_node_score failed")

	return 0
}

// getRanksOrRecalculate is the get_ranks sibling of getScoreOrRecalculate.
// Caller must hold g.mu.
func (g *AugMultiGraph) getRanksOrRecalculate(cs *contextState, ego node.ID, limit int) []walk.Rank {
	ranks, err := cs.estimator.GetRanks(ego, limit)
	if err == nil {
		return ranks
	}
	if errors.Is(err, walk.ErrNodeDoesNotCalculated) {
		if calcErr := cs.estimator.Calculate(ego, g.numWalk); calcErr != nil {
			g.log.Warn().Err(calcErr).Msg("calculate failed during ranks recovery")

			return nil
		}
		ranks, err = cs.estimator.GetRanks(ego, limit)
		if err == nil {
			return ranks
		}
	}
	g.log.Warn().Err(err).Msg("read_scores failed")

	return nil
}

// ReadNodeScore returns ego's score of target in context (spec §4.5).
// Unknown context/ego/target yields a zero score rather than an error.
func (g *AugMultiGraph) ReadNodeScore(context, ego, target string) ScoreTriple {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := ScoreTriple{Ego: ego, Target: target}

	egoID, egoOK := g.lookupNode(ego)
	targetID, targetOK := g.lookupNode(target)
	if !egoOK || !targetOK {
		g.log.Info().Str("ego", ego).Str("target", target).Msg("read_node_score: unknown node")

		return out
	}

	_, known := g.contexts[context]
	cs := g.ensureContext(context)
	if !known {
		g.log.Info().Str("context", context).Msg("read_node_score: unknown context")

		return out
	}
	out.Score = g.getScoreOrRecalculate(cs, egoID, targetID)

	return out
}

// ScoresQuery bundles the read_scores filter/pagination parameters (spec
// §4.5).
type ScoresQuery struct {
	KindFilter   node.Kind
	HidePersonal bool
	ScoreGT      *float64
	ScoreGTE     *float64
	ScoreLT      *float64
	ScoreLTE     *float64
	Index        int
	Count        int
}

// passesScoreBounds reports whether score satisfies q's optional bounds.
func (q ScoresQuery) passesScoreBounds(score float64) bool {
	if q.ScoreGT != nil && !(score > *q.ScoreGT) {
		return false
	}
	if q.ScoreGTE != nil && !(score >= *q.ScoreGTE) {
		return false
	}
	if q.ScoreLT != nil && !(score < *q.ScoreLT) {
		return false
	}
	if q.ScoreLTE != nil && !(score <= *q.ScoreLTE) {
		return false
	}

	return true
}

// ReadScores is the ranked-list query (spec §4.5). Returns at most
// q.Count rows starting at q.Index, sorted by |score| descending.
func (g *AugMultiGraph) ReadScores(context, ego string, q ScoresQuery) []ScoreTriple {
	g.mu.Lock()
	defer g.mu.Unlock()

	if q.Count == 0 {
		return nil
	}

	egoID, ok := g.lookupNode(ego)
	if !ok {
		g.log.Info().Str("ego", ego).Msg("read_scores: unknown node")

		return nil
	}

	cs := g.ensureContext(context)
	ranks := g.getRanksOrRecalculate(cs, egoID, 0)

	rows := make([]ScoreTriple, 0, len(ranks))
	for _, r := range ranks {
		info, err := g.nodes.Info(r.Node)
		if err != nil {
			continue
		}
		if q.KindFilter != node.KindUnknown && q.KindFilter != info.Kind {
			continue
		}
		if !q.passesScoreBounds(r.Score) {
			continue
		}
		if q.HidePersonal && (info.Kind == node.KindComment || info.Kind == node.KindBeacon) {
			if w, ok := cs.graph.EdgeWeight(r.Node, egoID); ok && w != 0 {
				continue
			}
		}
		rows = append(rows, ScoreTriple{Ego: ego, Target: info.Name, Score: r.Score})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return absf(rows[i].Score) > absf(rows[j].Score)
	})

	return paginate(rows, q.Index, q.Count)
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// paginate returns rows[index:index+count], clamped to rows' bounds.
// count<=0 with q.Count==0 is handled by the caller before reaching here;
// a negative count here means "no limit".
func paginate(rows []ScoreTriple, index, count int) []ScoreTriple {
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

// ReadConnected returns all outgoing neighbour names of ego in context,
// unranked (spec §4.5).
func (g *AugMultiGraph) ReadConnected(context, ego string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	egoID, ok := g.lookupNode(ego)
	if !ok {
		return nil
	}
	_, known := g.contexts[context]
	cs := g.ensureContext(context)
	if !known {
		g.log.Info().Str("context", context).Msg("read_connected: unknown context")

		return nil
	}
	nbs := cs.graph.Neighbors(egoID)
	out := make([]string, 0, len(nbs))
	for _, nb := range nbs {
		if name, err := g.nodes.Name(nb.Dst); err == nil {
			out = append(out, name)
		}
	}

	return out
}

// NamedEdge is one (src, dst, weight) edge resolved to names (spec §4.5
// read_edges).
type NamedEdge struct {
	Src, Dst string
	Weight   float64
}

// ReadEdges enumerates every edge currently present in context.
func (g *AugMultiGraph) ReadEdges(context string) []NamedEdge {
	g.mu.Lock()
	defer g.mu.Unlock()

	cs := g.ensureContext(context)
	edges := cs.graph.AllEdges()
	out := make([]NamedEdge, 0, len(edges))
	for _, e := range edges {
		srcName, errS := g.nodes.Name(e.Src)
		dstName, errD := g.nodes.Name(e.Dst)
		if errS != nil || errD != nil {
			continue
		}
		out = append(out, NamedEdge{Src: srcName, Dst: dstName, Weight: e.Weight})
	}

	return out
}

// MutualScore is one (name, score forward, score back) triple (spec §4.5
// read_mutual_scores).
type MutualScore struct {
	Name         string
	ScoreForward float64
	ScoreBack    float64
}

// ReadMutualScores reports, for each user ego trusts positively, both
// directions of the relationship (spec §4.5).
func (g *AugMultiGraph) ReadMutualScores(context, ego string) []MutualScore {
	g.mu.Lock()
	defer g.mu.Unlock()

	egoID, ok := g.lookupNode(ego)
	if !ok {
		return nil
	}
	cs := g.ensureContext(context)
	ranks := g.getRanksOrRecalculate(cs, egoID, 0)

	out := make([]MutualScore, 0, len(ranks))
	for _, r := range ranks {
		if r.Score <= 0 {
			continue
		}
		info, err := g.nodes.Info(r.Node)
		if err != nil || info.Kind != node.KindUser {
			continue
		}
		back := g.getScoreOrRecalculate(cs, r.Node, egoID)
		out = append(out, MutualScore{Name: info.Name, ScoreForward: r.Score, ScoreBack: back})
	}

	return out
}
