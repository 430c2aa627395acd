package anonymize

import "sort"

// ResolveOverlaps reduces pooled candidates to a non-overlapping subset.
// Candidates are ordered by descending length, then ascending start offset,
// and accepted greedily. Longer, more specific matches (a full name) win
// over shorter overlapping ones (a partial prefix), deterministically and
// independent of the input order.
func ResolveOverlaps(candidates []Span) []Span {
	if len(candidates) == 0 {
		return nil
	}
	sorted := make([]Span, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Len() != sorted[j].Len() {
			return sorted[i].Len() > sorted[j].Len()
		}
		return sorted[i].Start < sorted[j].Start
	})

	var accepted []Span
	for _, s := range sorted {
		if !overlapsAny(s, accepted) {
			accepted = append(accepted, s)
		}
	}
	return accepted
}
