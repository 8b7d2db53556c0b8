package aggregate

import "sort"

// median returns the median of vs, or 0 for an empty slice. The input is
// copied so callers keep their ordering.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// rankDescendingMin assigns competition ranks (1 = highest value, ties
// share the lowest rank in the group) and returns value -> rank.
func rankDescendingMin(values map[int]float64) map[int]int {
	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if values[keys[i]] != values[keys[j]] {
			return values[keys[i]] > values[keys[j]]
		}
		return keys[i] < keys[j]
	})

	ranks := make(map[int]int, len(keys))
	for i, k := range keys {
		if i > 0 && values[k] == values[keys[i-1]] {
			ranks[k] = ranks[keys[i-1]]
			continue
		}
		ranks[k] = i + 1
	}
	return ranks
}
