package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/types"
)

const defaultFPS = 25

// Probe extracts container and stream metadata. The structured JSON query
// runs first; when it errors or returns unparseable data the same tool is
// re-invoked in raw flat-text mode. The second tier is mandatory: the JSON
// printer is known to choke on inputs the default printer handles fine.
func (a *Adapter) Probe(ctx context.Context, path string) (types.VideoAsset, error) {
	if _, err := os.Stat(path); err != nil {
		return types.VideoAsset{}, &ports.ProbeError{Path: path, Reason: "file not found", Err: err}
	}

	asset, err := a.probeJSON(ctx, path)
	if err == nil {
		return asset, nil
	}
	var pe *ports.ProbeError
	if errors.As(err, &pe) && pe.Reason == reasonNoVideoStream {
		// A definitive answer; the raw tier would only repeat it.
		return types.VideoAsset{}, err
	}

	a.log.Warn().Str("path", path).Err(err).Msg("structured probe failed, retrying raw")
	return a.probeRaw(ctx, path)
}

const reasonNoVideoStream = "no video stream"

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

func (a *Adapter) probeJSON(ctx context.Context, path string) (types.VideoAsset, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return types.VideoAsset{}, &ports.ToolError{Op: "ffprobe json", Err: err}
	}

	var res probeResult
	if err := json.Unmarshal(out, &res); err != nil {
		return types.VideoAsset{}, fmt.Errorf("parse ffprobe json: %w", err)
	}

	asset := types.VideoAsset{Path: path, FPS: defaultFPS}
	if d, err := strconv.ParseFloat(strings.TrimSpace(res.Format.Duration), 64); err == nil {
		asset.DurationSeconds = d
	}

	hasVideo := false
	for _, s := range res.Streams {
		switch s.CodecType {
		case "video":
			hasVideo = true
			asset.Width = s.Width
			asset.Height = s.Height
			if fps, ok := parseRational(s.RFrameRate); ok {
				asset.FPS = fps
			}
		case "audio":
			asset.HasAudio = true
		}
	}
	if !hasVideo {
		return types.VideoAsset{}, &ports.ProbeError{Path: path, Reason: reasonNoVideoStream}
	}
	if asset.Width <= 0 || asset.Height <= 0 {
		return types.VideoAsset{}, fmt.Errorf("probe %s: degenerate frame size %dx%d", path, asset.Width, asset.Height)
	}
	return asset, nil
}

func (a *Adapter) probeRaw(ctx context.Context, path string) (types.VideoAsset, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return types.VideoAsset{}, &ports.ProbeError{Path: path, Reason: "ffprobe failed", Err: err}
	}
	asset, err := parseRawProbe(path, string(out))
	if err != nil {
		return types.VideoAsset{}, err
	}
	return asset, nil
}

// parseRawProbe reads ffprobe's default flat output: [STREAM]...[/STREAM]
// sections with key=value lines, followed by a [FORMAT] section.
func parseRawProbe(path, out string) (types.VideoAsset, error) {
	asset := types.VideoAsset{Path: path, FPS: defaultFPS}
	hasVideo := false

	var section string
	var cur map[string]string
	flush := func() {
		if cur == nil {
			return
		}
		switch cur["codec_type"] {
		case "video":
			hasVideo = true
			asset.Width, _ = strconv.Atoi(cur["width"])
			asset.Height, _ = strconv.Atoi(cur["height"])
			if fps, ok := parseRational(cur["r_frame_rate"]); ok {
				asset.FPS = fps
			}
		case "audio":
			asset.HasAudio = true
		}
		cur = nil
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "[STREAM]":
			section = "stream"
			cur = map[string]string{}
		case line == "[/STREAM]":
			flush()
			section = ""
		case line == "[FORMAT]":
			section = "format"
		case line == "[/FORMAT]":
			section = ""
		case strings.Contains(line, "="):
			k, v, _ := strings.Cut(line, "=")
			if section == "stream" && cur != nil {
				cur[k] = v
			}
			if section == "format" && k == "duration" {
				if d, err := strconv.ParseFloat(v, 64); err == nil {
					asset.DurationSeconds = d
				}
			}
		}
	}
	flush()

	if !hasVideo {
		return types.VideoAsset{}, &ports.ProbeError{Path: path, Reason: reasonNoVideoStream}
	}
	if asset.Width <= 0 || asset.Height <= 0 {
		return types.VideoAsset{}, &ports.ProbeError{Path: path, Reason: "degenerate frame size"}
	}
	return asset, nil
}

// parseRational evaluates a "num/den" frame-rate field. The field comes
// from an external tool, so it is parsed, never evaluated as code.
func parseRational(s string) (float64, bool) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		v, err := strconv.ParseFloat(num, 64)
		return v, err == nil && v > 0
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0, false
	}
	v := n / d
	return v, v > 0
}
