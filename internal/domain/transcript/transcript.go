// Package transcript formats the best-effort transcript placeholder. Real
// speech understanding is intentionally absent; the pipeline only knows
// where speech happens, not what is said.
package transcript

import (
	"fmt"
	"strings"

	"github.com/shortsforge/shortsforge/internal/types"
)

const header = "VIDEO TRANSCRIPT\n=========================\n\n" +
	"Speech recognition is not configured for this deployment, so the words\n" +
	"themselves are unavailable. The spans below mark where speech was detected:\n\n"

// FailureText is written when even silence analysis is impossible.
const FailureText = "TRANSCRIPTION FAILED\n\n" +
	"A transcript could not be produced for this video.\n\n" +
	"Check that the transcoding toolchain is installed and readable.\n"

// SpeechSpans inverts silence spans over [0, total]: everything that is not
// silence is assumed to be speech.
func SpeechSpans(silences []types.SilenceSpan, total float64) []types.Interval {
	var out []types.Interval
	cursor := 0.0
	for _, s := range silences {
		if s.Start > cursor {
			out = append(out, types.Interval{Start: cursor, End: s.Start})
		}
		if s.End > cursor {
			cursor = s.End
		}
	}
	if cursor < total {
		out = append(out, types.Interval{Start: cursor, End: total})
	}
	return out
}

// Render produces the placeholder transcript text for the detected spans.
func Render(spans []types.Interval) string {
	var b strings.Builder
	b.WriteString(header)
	for i, sp := range spans {
		fmt.Fprintf(&b, "[%s - %s]: speech segment %d\n\n", clock(sp.Start), clock(sp.End), i+1)
	}
	if len(spans) == 0 {
		b.WriteString("(no speech detected)\n")
	}
	return b.String()
}

func clock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}
