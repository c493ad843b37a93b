package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shortsforge/shortsforge/internal/types"
)

func TestSpeechSpans_InvertsSilences(t *testing.T) {
	t.Parallel()

	spans := SpeechSpans([]types.SilenceSpan{
		{Start: 2, End: 4},
		{Start: 8, End: 9},
	}, 12)

	require.Equal(t, []types.Interval{
		{Start: 0, End: 2},
		{Start: 4, End: 8},
		{Start: 9, End: 12},
	}, spans)
}

func TestSpeechSpans_SilenceFromZeroAndToEnd(t *testing.T) {
	t.Parallel()

	spans := SpeechSpans([]types.SilenceSpan{
		{Start: 0, End: 3},
		{Start: 7, End: 10},
	}, 10)

	require.Equal(t, []types.Interval{{Start: 3, End: 7}}, spans)
}

func TestSpeechSpans_NoSilenceMeansOneSpan(t *testing.T) {
	t.Parallel()

	spans := SpeechSpans(nil, 5)
	require.Equal(t, []types.Interval{{Start: 0, End: 5}}, spans)
}

func TestRender(t *testing.T) {
	t.Parallel()

	text := Render([]types.Interval{{Start: 0, End: 65}})
	require.True(t, strings.HasPrefix(text, "VIDEO TRANSCRIPT"))
	require.Contains(t, text, "[00:00:00 - 00:01:05]: speech segment 1")

	empty := Render(nil)
	require.Contains(t, empty, "(no speech detected)")
}
