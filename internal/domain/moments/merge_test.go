package moments

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shortsforge/shortsforge/internal/types"
)

func iv(start, end float64) types.Moment {
	return types.Moment{Interval: types.Interval{Start: start, End: end}}
}

func TestMerge_CoalescesOverlapping(t *testing.T) {
	t.Parallel()

	got := Merge([]types.Moment{iv(0, 5), iv(4, 8), iv(10, 12)})
	require.Len(t, got, 2)
	require.Equal(t, types.Interval{Start: 0, End: 8}, got[0].Interval)
	require.Equal(t, types.Interval{Start: 10, End: 12}, got[1].Interval)
}

func TestMerge_TouchingCountsAsOverlap(t *testing.T) {
	t.Parallel()

	got := Merge([]types.Moment{iv(0, 5), iv(5, 9)})
	require.Len(t, got, 1)
	require.Equal(t, types.Interval{Start: 0, End: 9}, got[0].Interval)
}

func TestMerge_SortsInput(t *testing.T) {
	t.Parallel()

	got := Merge([]types.Moment{iv(20, 25), iv(1, 3), iv(2, 6)})
	require.Len(t, got, 2)
	require.Equal(t, types.Interval{Start: 1, End: 6}, got[0].Interval)
	require.Equal(t, types.Interval{Start: 20, End: 25}, got[1].Interval)
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	in := []types.Moment{iv(3, 7), iv(0, 4), iv(9, 11), iv(10, 15), iv(2, 2.5)}
	once := Merge(in)
	twice := Merge(once)
	require.Equal(t, once, twice)

	for i := 1; i < len(once); i++ {
		require.Greater(t, once[i].Start, once[i-1].End,
			"merged intervals must be sorted and non-overlapping")
	}
}

func TestMerge_ContainedIntervalDoesNotShrinkEnd(t *testing.T) {
	t.Parallel()

	got := Merge([]types.Moment{iv(0, 10), iv(2, 4)})
	require.Len(t, got, 1)
	require.Equal(t, types.Interval{Start: 0, End: 10}, got[0].Interval)
}

func TestMerge_EmptyAndSingle(t *testing.T) {
	t.Parallel()

	require.Empty(t, Merge(nil))
	single := []types.Moment{iv(1, 2)}
	require.Equal(t, single, Merge(single))
}

func TestMerge_KeepsEarliestProvenance(t *testing.T) {
	t.Parallel()

	loud := types.Moment{Interval: types.Interval{Start: 0, End: 5}, Source: types.SourceLoudness}
	scene := types.Moment{Interval: types.Interval{Start: 3, End: 8}, Source: types.SourceScene}
	got := Merge([]types.Moment{scene, loud})
	require.Len(t, got, 1)
	require.Equal(t, types.SourceLoudness, got[0].Source)
}
