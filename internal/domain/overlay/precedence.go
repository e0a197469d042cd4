package overlay

import "sort"

// OrderByPrecedence returns the overlays sorted descending by stringency
// tier.  The sort is stable: overlays in the same tier keep their relative
// input order, so callers combining overlay-derived rules can apply the
// first overlay's numeric limit whenever two overlays both specify one.
// The input slice is not modified.
func OrderByPrecedence(overlays []Classified) []Classified {
	out := make([]Classified, len(overlays))
	copy(out, overlays)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Info.Priority > out[j].Info.Priority
	})
	return out
}
