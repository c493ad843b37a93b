package moments

import "github.com/shortsforge/shortsforge/internal/types"

const (
	// LoudnessSampleStep is the spacing of momentary loudness samples, in
	// seconds. Matches the measurement cadence of the analysis backend.
	LoudnessSampleStep = 0.4

	// Adaptive loudness threshold, in loudness units. Short measurements
	// carry too few samples for the stricter cutoff to be meaningful.
	loudThresholdSparse = -20.0
	loudThresholdDense  = -15.0
	sparseSampleCount   = 10
)

// LoudWindows classifies a momentary-loudness time series into candidate
// highlight windows. Each sample above the adaptive threshold expands to
// [t-2, t+3] clamped at zero; the merged result is returned.
func LoudWindows(samples []float64) []types.Moment {
	threshold := loudThresholdDense
	if len(samples) < sparseSampleCount {
		threshold = loudThresholdSparse
	}

	var out []types.Moment
	for i, lu := range samples {
		if lu <= threshold {
			continue
		}
		t := float64(i) * LoudnessSampleStep
		out = append(out, types.Moment{
			Interval: types.Interval{Start: clampZero(t - 2), End: t + 3},
			Source:   types.SourceLoudness,
		})
	}
	return Merge(out)
}

// SceneWindows expands scene-change timestamps into candidate windows
// [t-1, t+3] clamped at zero and merges them.
func SceneWindows(timestamps []float64) []types.Moment {
	var out []types.Moment
	for _, t := range timestamps {
		out = append(out, types.Moment{
			Interval: types.Interval{Start: clampZero(t - 1), End: t + 3},
			Source:   types.SourceScene,
		})
	}
	return Merge(out)
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
