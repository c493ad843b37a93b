package ports

import (
	"context"
	"fmt"

	"github.com/shortsforge/shortsforge/internal/types"
)

// TrimMode selects the extraction strategy for a single clip.
type TrimMode int

const (
	// TrimCopy is the fast codec-preserving path.
	TrimCopy TrimMode = iota
	// TrimReencode is the per-clip fallback with fixed bitrates.
	TrimReencode
)

// MixPolicy says what happens to the original audio when music is applied.
type MixPolicy string

const (
	// MixReplace drops the original track in favor of the looped music.
	MixReplace MixPolicy = "replace"
	// MixBlend keeps the original track and mixes the music underneath it.
	MixBlend MixPolicy = "mix"
)

// RenderSpec describes one filter-graph render: a main input, an optional
// watermark input, a complete filter_complex expression and the label of
// its terminal output.
type RenderSpec struct {
	Input         string
	Watermark     string // empty when no watermark is configured
	FilterComplex string
	OutputLabel   string
	MaxDuration   float64 // seconds; zero means no cap
	Output        string
}

// Engine is the transcoding capability the pipeline consumes. One
// implementation shells out to ffmpeg/ffprobe; tests use an in-memory fake.
type Engine interface {
	Probe(ctx context.Context, path string) (types.VideoAsset, error)
	MeasureLoudness(ctx context.Context, path string) ([]float64, error)
	DetectScenes(ctx context.Context, path string) ([]float64, error)
	Trim(ctx context.Context, input string, start, duration float64, output string, mode TrimMode) error
	RenderFilterGraph(ctx context.Context, spec RenderSpec) error
	RenderPlain(ctx context.Context, input, output string, maxDuration float64) error
	Concat(ctx context.Context, manifestPath, output string) error
	MixAudio(ctx context.Context, video, music, output string, duration float64, policy MixPolicy) error
	Screenshot(ctx context.Context, input, output string, timestamp float64) error
	ExtractAudioMono16k(ctx context.Context, input, output string) error
	DetectSilence(ctx context.Context, input string, noiseDB, minDuration float64) ([]types.SilenceSpan, error)
}

// Transcriber writes a transcript for a finished video to outPath. The
// default implementation is a silence-detection placeholder; a real
// recognizer can be plugged in without touching the composer.
type Transcriber interface {
	Transcribe(ctx context.Context, videoPath, outPath string) error
}

// Planner is the generative collaborator behind hashtags, content plans and
// music selection. Planner failures must never fail a session.
type Planner interface {
	ContentStrategy(ctx context.Context, description string) (types.ContentStrategy, error)
	SelectMusic(ctx context.Context, description string, tracks []string) (string, error)
}

// ProbeError is fatal: the file is missing or carries no video stream.
type ProbeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("probe %s: %s", e.Path, e.Reason)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ToolError wraps a failed external-tool invocation together with the tail
// of its diagnostic output.
type ToolError struct {
	Op     string
	Err    error
	Output string
}

func (e *ToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Op, e.Err, e.Output)
}

func (e *ToolError) Unwrap() error { return e.Err }
