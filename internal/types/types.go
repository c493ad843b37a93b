package types

// VideoAsset is the probed metadata of a media file. Immutable once probed.
type VideoAsset struct {
	Path            string
	DurationSeconds float64
	Width           int
	Height          int
	FPS             float64
	HasAudio        bool
}

// Interval is a [start,end) time range in seconds, End > Start >= 0.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Source tags a Moment with the signal that produced it. Informational only;
// merging is provenance-blind.
type Source string

const (
	SourceLoudness  Source = "loudness"
	SourceScene     Source = "scene"
	SourceSynthetic Source = "synthetic"
)

// Moment is a candidate highlight window.
type Moment struct {
	Interval
	Source Source
}

// Clip is one extracted sub-file, produced by the cutter. Owned by the
// session; lives for the lifetime of the session working directory.
type Clip struct {
	ID              int
	SourceInterval  Interval
	FilePath        string
	DurationSeconds float64
}

// PreparedClip is a clip after aspect normalization, captioning and optional
// watermarking. At most one per Clip; fewer when preparation fails.
type PreparedClip struct {
	FilePath        string
	DurationSeconds float64
}

// ShortsArtifact is the terminal output of one session.
type ShortsArtifact struct {
	Path                 string
	ThumbnailPath        string // empty when thumbnail extraction failed
	TranscriptPath       string
	TotalDurationSeconds float64
	MusicApplied         bool
}

// SilenceSpan is a detected period of silence in an audio track.
type SilenceSpan struct {
	Start float64
	End   float64
}

// ContentIdea is one future-video suggestion in a content plan.
type ContentIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContentStrategy is the promotional plan generated for a session.
type ContentStrategy struct {
	Hashtags    []string      `json:"hashtags"`
	ContentPlan []ContentIdea `json:"contentPlan"`
}
