package walk

import "github.com/katalvlaran/meritrank/node"

// Calculate materialises n random walks from ego and caches the resulting
// per-target scores (spec §4.2). n==0 is a legal "prime" pass (spec §12a):
// it marks ego fresh with an empty score cache rather than erroring.
//
// Complexity: O(n * maxWalkSteps) time, O(visited nodes) space.
func (e *Estimator) Calculate(ego node.ID, n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.known(ego) {
		return ErrNodeDoesNotExist
	}

	scores := make(map[node.ID]float64)
	for i := 0; i < n; i++ {
		e.walkOnce(ego, scores)
	}

	e.egos[ego] = &egoState{fresh: true, n: n, scores: scores}

	return nil
}

// walkOnce runs a single random walk from ego, accumulating signed
// visitation mass into scores. Caller must hold e.mu.
func (e *Estimator) walkOnce(ego node.ID, scores map[node.ID]float64) {
	scores[ego] += 1.0 // stationary mass always includes the ego itself

	cur := ego
	sign := 1.0
	for step := 0; step < maxWalkSteps; step++ {
		nbs := e.graph.Neighbors(cur)
		if len(nbs) == 0 {
			return
		}

		total := 0.0
		for _, nb := range nbs {
			total += absf(nb.Weight)
		}
		if total <= 0 {
			return
		}

		pick := e.rng.Float64() * total
		var next node.ID
		var nextW float64
		acc := 0.0
		for _, nb := range nbs {
			acc += absf(nb.Weight)
			if pick <= acc {
				next, nextW = nb.Dst, nb.Weight
				break
			}
		}

		if nextW < 0 {
			sign = -sign
		}
		cur = next
		scores[cur] += sign

		if e.rng.Float64() >= damping {
			return
		}
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// GetNodeScore returns ego's score of target: accumulated visitation mass
// normalised by the walk count Calculate ran with (spec §4.2), a bounded
// value comparable across egos regardless of NUM_WALK.
func (e *Estimator) GetNodeScore(ego, target node.ID) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.known(ego) || !e.known(target) {
		return 0, ErrNodeDoesNotExist
	}
	st, ok := e.egos[ego]
	if !ok || !st.fresh {
		return 0, ErrNodeDoesNotCalculated
	}
	if st.n <= 0 {
		return 0, nil
	}

	return st.scores[target] / float64(st.n), nil
}

// GetRanks returns ego's scored targets sorted by |score| descending,
// truncated to limit (limit<=0 means "no limit", per spec's get_ranks).
func (e *Estimator) GetRanks(ego node.ID, limit int) ([]Rank, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.known(ego) {
		return nil, ErrNodeDoesNotExist
	}
	st, ok := e.egos[ego]
	if !ok || !st.fresh {
		return nil, ErrNodeDoesNotCalculated
	}

	norm := 1.0
	if st.n > 0 {
		norm = float64(st.n)
	}

	out := make([]Rank, 0, len(st.scores))
	for id, score := range st.scores {
		out = append(out, Rank{Node: id, Score: score / norm})
	}
	sortRanksByAbsDesc(out)

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	return out, nil
}
