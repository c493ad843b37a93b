package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLoudness(t *testing.T) {
	t.Parallel()

	out := `[Parsed_ebur128_0 @ 0x55d] t: 0.4      TARGET:-23 LUFS    M: -28.3 S:-120.7     I: -28.3 LUFS       LRA:   0.0 LU  FTPK: -12.1 -12.3 dBFS  TPK: -12.1 -12.3 dBFS
[Parsed_ebur128_0 @ 0x55d] t: 0.8      TARGET:-23 LUFS    M: -14.0 S:-120.7     I: -19.5 LUFS       LRA:   0.0 LU  FTPK:  -9.0  -9.2 dBFS  TPK:  -9.0  -9.2 dBFS
[Parsed_ebur128_0 @ 0x55d] t: 1.2      TARGET:-23 LUFS    M: -21.5 S: -25.0     I: -20.1 LUFS       LRA:   1.2 LU  FTPK: -10.0 -10.1 dBFS  TPK:  -9.0  -9.2 dBFS`

	require.Equal(t, []float64{-28.3, -14.0, -21.5}, parseLoudness(out))
}

func TestParseLoudnessEmpty(t *testing.T) {
	t.Parallel()
	require.Empty(t, parseLoudness("frame=  100 fps= 25 q=-0.0 size=N/A"))
}

func TestParseSceneTimes(t *testing.T) {
	t.Parallel()

	out := `[Parsed_showinfo_1 @ 0x55e] n:   0 pts:  38400 pts_time:1.6     duration:    512
[Parsed_showinfo_1 @ 0x55e] n:   1 pts: 180224 pts_time:7.509   duration:    512
[Parsed_showinfo_1 @ 0x55e] n:   2 pts: 302080 pts_time:12.587  duration:    512`

	require.Equal(t, []float64{1.6, 7.509, 12.587}, parseSceneTimes(out))
}

func TestParseSilence(t *testing.T) {
	t.Parallel()

	out := `[silencedetect @ 0x55f] silence_start: 3.21
[silencedetect @ 0x55f] silence_end: 5.87 | silence_duration: 2.66
[silencedetect @ 0x55f] silence_start: 10.0
[silencedetect @ 0x55f] silence_end: 12.5 | silence_duration: 2.5`

	spans := parseSilence(out)
	require.Len(t, spans, 2)
	require.InDelta(t, 3.21, spans[0].Start, 1e-9)
	require.InDelta(t, 5.87, spans[0].End, 1e-9)
	require.InDelta(t, 10.0, spans[1].Start, 1e-9)
	require.InDelta(t, 12.5, spans[1].End, 1e-9)
}

func TestParseSilenceUnterminated(t *testing.T) {
	t.Parallel()

	// A silence still open at end of file has no end marker and is dropped.
	out := "[silencedetect @ 0x55f] silence_start: 58.4\n"
	require.Empty(t, parseSilence(out))
}

func TestParseRational(t *testing.T) {
	t.Parallel()

	v, ok := parseRational("30000/1001")
	require.True(t, ok)
	require.InDelta(t, 29.97, v, 0.01)

	v, ok = parseRational("25/1")
	require.True(t, ok)
	require.InDelta(t, 25, v, 1e-9)

	v, ok = parseRational("24")
	require.True(t, ok)
	require.InDelta(t, 24, v, 1e-9)

	_, ok = parseRational("0/0")
	require.False(t, ok)

	_, ok = parseRational("")
	require.False(t, ok)
}

func TestParseRawProbe(t *testing.T) {
	t.Parallel()

	out := `[STREAM]
index=0
codec_type=video
width=1920
height=1080
r_frame_rate=30000/1001
[/STREAM]
[STREAM]
index=1
codec_type=audio
r_frame_rate=0/0
[/STREAM]
[FORMAT]
filename=in.mp4
duration=123.456000
[/FORMAT]`

	asset, err := parseRawProbe("in.mp4", out)
	require.NoError(t, err)
	require.Equal(t, 1920, asset.Width)
	require.Equal(t, 1080, asset.Height)
	require.True(t, asset.HasAudio)
	require.InDelta(t, 29.97, asset.FPS, 0.01)
	require.InDelta(t, 123.456, asset.DurationSeconds, 1e-9)
}

func TestParseRawProbeNoVideo(t *testing.T) {
	t.Parallel()

	out := `[STREAM]
codec_type=audio
[/STREAM]
[FORMAT]
duration=5.0
[/FORMAT]`

	_, err := parseRawProbe("audio.mp3", out)
	require.Error(t, err)
}

func TestBuildConcatManifest(t *testing.T) {
	t.Parallel()

	got := BuildConcatManifest([]string{
		"/tmp/clips/shorts_clip_1.mp4",
		`C:\clips\it's here.mp4`,
	})
	want := "file '/tmp/clips/shorts_clip_1.mp4'\n" +
		"file 'C:/clips/it'\\''s here.mp4'\n"
	require.Equal(t, want, got)
}

func TestEscapeFilterPath(t *testing.T) {
	t.Parallel()
	require.Equal(t, `C\:/subs/it\'s.srt`, EscapeFilterPath(`C:\subs\it's.srt`))
}

func TestTail(t *testing.T) {
	t.Parallel()
	require.Equal(t, "cde", tail("abcde", 3))
	require.Equal(t, "ab", tail("  ab  ", 10))
}
