package ffmpeg

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/shortsforge/shortsforge/internal/types"
)

// The analysis filters write their measurements to stderr as free-form
// diagnostic text; these patterns pull the numbers back out.
var (
	loudnessRe     = regexp.MustCompile(`M:\s*(-?\d+(?:\.\d+)?)`)
	sceneTimeRe    = regexp.MustCompile(`pts_time:(\d+(?:\.\d+)?)`)
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(\d+(?:\.\d+)?)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(\d+(?:\.\d+)?)`)
)

// MeasureLoudness samples momentary loudness over the whole file via the
// ebur128 filter. One sample lands roughly every 0.4 seconds. A tool
// failure yields an empty series, never an error the caller must handle.
func (a *Adapter) MeasureLoudness(ctx context.Context, path string) ([]float64, error) {
	out, err := a.runScrape(ctx, "measure loudness",
		"-i", path,
		"-filter_complex", "ebur128=metadata=1:peak=true",
		"-f", "null", "-",
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		a.log.Warn().Str("path", path).Err(err).Msg("loudness measurement produced no output")
		return nil, nil
	}
	return parseLoudness(out), nil
}

func parseLoudness(out string) []float64 {
	matches := loudnessRe.FindAllStringSubmatch(out, -1)
	samples := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			samples = append(samples, v)
		}
	}
	return samples
}

// DetectScenes reports the timestamps of visual cuts scoring above 0.3.
// Same recovery policy as MeasureLoudness.
func (a *Adapter) DetectScenes(ctx context.Context, path string) ([]float64, error) {
	out, err := a.runScrape(ctx, "detect scenes",
		"-i", path,
		"-filter_complex", `select=gt(scene\,0.3),showinfo`,
		"-f", "null", "-",
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		a.log.Warn().Str("path", path).Err(err).Msg("scene detection produced no output")
		return nil, nil
	}
	return parseSceneTimes(out), nil
}

func parseSceneTimes(out string) []float64 {
	matches := sceneTimeRe.FindAllStringSubmatch(out, -1)
	times := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			times = append(times, v)
		}
	}
	return times
}

// DetectSilence locates spans quieter than noiseDB lasting at least
// minDuration seconds.
func (a *Adapter) DetectSilence(ctx context.Context, path string, noiseDB, minDuration float64) ([]types.SilenceSpan, error) {
	out, err := a.runScrape(ctx, "detect silence",
		"-i", path,
		"-af", "silencedetect=noise="+fmtSeconds(noiseDB)+"dB:d="+fmtSeconds(minDuration),
		"-f", "null", "-",
	)
	if err != nil {
		return nil, err
	}
	return parseSilence(out), nil
}

func parseSilence(out string) []types.SilenceSpan {
	var spans []types.SilenceSpan
	var open *types.SilenceSpan
	for _, line := range strings.Split(out, "\n") {
		if m := silenceStartRe.FindStringSubmatch(line); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			open = &types.SilenceSpan{Start: v}
			continue
		}
		if m := silenceEndRe.FindStringSubmatch(line); m != nil && open != nil {
			open.End, _ = strconv.ParseFloat(m[1], 64)
			spans = append(spans, *open)
			open = nil
		}
	}
	return spans
}
