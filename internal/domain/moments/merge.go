// Package moments holds the interval algebra of the highlight detector:
// window expansion around raw signal samples, merging of overlapping
// windows and the combining policy that keeps low-signal videos usable.
package moments

import (
	"sort"

	"github.com/shortsforge/shortsforge/internal/types"
)

// Merge sorts moments by start and coalesces overlapping or touching
// windows. The result is ascending by start and pairwise non-overlapping.
// Idempotent: Merge(Merge(x)) == Merge(x). Provenance of a merged window
// is taken from the earliest member.
func Merge(in []types.Moment) []types.Moment {
	if len(in) <= 1 {
		return in
	}

	sorted := make([]types.Moment, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	out := sorted[:1]
	for _, cur := range sorted[1:] {
		last := &out[len(out)-1]
		// Touching counts as overlapping.
		if cur.Start <= last.End {
			if cur.End > last.End {
				last.End = cur.End
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}
