package recommendation

import "sort"

// Rank orders candidates by score, flags top matches against the whole pool,
// drops candidates scoring below minScore*100, keeps at most limit and assigns
// 1-based ranks. Equal scores keep their input order. The input is not modified.
func Rank(candidates []RankedCandidate, minScore float64, limit int) []RankedCandidate {
	if len(candidates) == 0 || limit <= 0 {
		return []RankedCandidate{}
	}

	sorted := make([]RankedCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	maxScore := sorted[0].Score
	threshold := minScore * 100

	out := make([]RankedCandidate, 0, min(limit, len(sorted)))
	for _, c := range sorted {
		c.IsTopMatch = c.Score == maxScore
		if c.Score < threshold {
			continue
		}
		if len(out) == limit {
			break
		}
		c.Rank = len(out) + 1
		out = append(out, c)
	}
	return out
}
