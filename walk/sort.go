package walk

import "sort"

// sortRanksByAbsDesc orders ranks by |Score| descending, breaking ties by
// ascending node id so GetRanks output is deterministic across calls with
// an unchanged cache (spec §8 invariant 8: repeat calls within tolerance).
func sortRanksByAbsDesc(ranks []Rank) {
	sort.SliceStable(ranks, func(i, j int) bool {
		ai, aj := absf(ranks[i].Score), absf(ranks[j].Score)
		if ai != aj {
			return ai > aj
		}

		return ranks[i].Node < ranks[j].Node
	})
}
