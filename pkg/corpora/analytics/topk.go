package analytics

import "sort"

// TopK returns the k most frequent items: the last k elements of a stable
// ascending sort by count, so ties at the boundary are resolved by the
// table's original order. The result is ordered ascending by count. The
// input table is never modified.
func TopK(t Table, k int) Table {
	if k <= 0 || len(t) == 0 {
		return Table{}
	}
	sorted := make(Table, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count < sorted[j].Count
	})
	if k >= len(sorted) {
		return sorted
	}
	return sorted[len(sorted)-k:]
}

// Reverse returns a reversed copy of t. Applied to a TopK result it lists
// the most frequent item first.
func Reverse(t Table) Table {
	out := make(Table, len(t))
	for i, it := range t {
		out[len(t)-1-i] = it
	}
	return out
}
