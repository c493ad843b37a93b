// Package captions renders the caption track burned into each prepared
// clip. The current script is a static placeholder, not derived from the
// audio content; a real captioning collaborator can replace RenderScript's
// caller without touching the SRT rendering below.
package captions

import (
	"fmt"
	"math"
	"strings"
)

// Cue is one timed caption.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// PlaceholderScript is the fixed three-line script applied to a clip of the
// given duration. Line boundaries clamp to the clip length so short clips
// still get well-formed cues.
func PlaceholderScript(duration float64) []Cue {
	return []Cue{
		{Start: 0, End: math.Min(duration, 2), Text: "Wow! Check this out!"},
		{Start: math.Min(duration, 2), End: math.Min(duration, 4), Text: "This is actually insane!"},
		{Start: math.Min(duration, 4), End: duration, Text: "Like and subscribe!"},
	}
}

// RenderSRT serializes cues as a SubRip file.
func RenderSRT(cues []Cue) string {
	var b strings.Builder
	for i, c := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, srtTime(c.Start), srtTime(c.End), sanitize(c.Text))
	}
	return b.String()
}

// BurnStyle is the force_style applied when the SRT is burned in.
const BurnStyle = "FontSize=24,FontName=Arial,Alignment=2,BorderStyle=3,Outline=1,Shadow=1,MarginV=30"

func srtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	ms := int(math.Round((seconds - float64(whole)) * 1000))
	if ms >= 1000 {
		whole++
		ms -= 1000
	}
	h := whole / 3600
	m := whole % 3600 / 60
	s := whole % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
