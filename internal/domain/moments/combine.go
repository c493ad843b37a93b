package moments

import "github.com/shortsforge/shortsforge/internal/types"

const (
	// Fewer raw moments than this means the signal is too sparse to trust
	// and the periodic fallback kicks in.
	minRawMoments = 3

	syntheticStep   = 30.0
	syntheticLength = 5.0
)

// Combine unions loudness and scene moments. When the combined signal is
// sparse both sets are discarded in favor of synthetic periodic sampling,
// which guarantees at least one moment for any video of positive duration
// and avoids degenerate single-event reels on low-signal content.
func Combine(loud, scene []types.Moment, totalDuration float64) []types.Moment {
	if len(loud)+len(scene) < minRawMoments {
		var synthetic []types.Moment
		for t := 0.0; t < totalDuration; t += syntheticStep {
			end := t + syntheticLength
			if end > totalDuration {
				end = totalDuration
			}
			synthetic = append(synthetic, types.Moment{
				Interval: types.Interval{Start: t, End: end},
				Source:   types.SourceSynthetic,
			})
		}
		return Merge(synthetic)
	}

	all := make([]types.Moment, 0, len(loud)+len(scene))
	all = append(all, loud...)
	all = append(all, scene...)
	return Merge(all)
}
