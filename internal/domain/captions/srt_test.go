package captions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceholderScript_ClampsToDuration(t *testing.T) {
	t.Parallel()

	cues := PlaceholderScript(3)
	require.Len(t, cues, 3)
	require.Equal(t, 2.0, cues[0].End)
	require.Equal(t, 3.0, cues[1].End)
	require.Equal(t, 3.0, cues[2].Start)
	require.Equal(t, 3.0, cues[2].End)
}

func TestRenderSRT(t *testing.T) {
	t.Parallel()

	got := RenderSRT([]Cue{
		{Start: 0, End: 2.5, Text: "hello"},
		{Start: 2.5, End: 61.04, Text: "multi\nline"},
	})

	require.Equal(t, strings.Join([]string{
		"1",
		"00:00:00,000 --> 00:00:02,500",
		"hello",
		"",
		"2",
		"00:00:02,500 --> 00:01:01,040",
		"multi line",
		"",
		"",
	}, "\n"), got)
}

func TestSrtTime_RoundsMillisUp(t *testing.T) {
	t.Parallel()

	require.Equal(t, "00:00:02,000", srtTime(1.9999))
	require.Equal(t, "01:00:00,000", srtTime(3600))
}
