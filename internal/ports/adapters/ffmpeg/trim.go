package ffmpeg

import (
	"context"

	"github.com/shortsforge/shortsforge/internal/ports"
)

// Fixed fallback bitrates. Stream copy preserves whatever the source
// carries; the re-encode tier trades fidelity for robustness.
const (
	fallbackVideoBitrate = "1000k"
	fallbackAudioBitrate = "128k"
)

// Trim extracts [start, start+duration) from input. TrimCopy performs a
// codec-preserving cut; TrimReencode re-encodes with fixed bitrates for
// sources whose codecs refuse a clean copy. A failed or cancelled trim
// removes its partial output.
func (a *Adapter) Trim(ctx context.Context, input string, start, duration float64, output string, mode ports.TrimMode) error {
	args := []string{
		"-ss", fmtSeconds(start),
		"-i", input,
		"-t", fmtSeconds(duration),
	}
	if mode == ports.TrimCopy {
		args = append(args, "-c", "copy")
	} else {
		args = append(args,
			"-c:v", "libx264",
			"-b:v", fallbackVideoBitrate,
			"-c:a", "aac",
			"-b:a", fallbackAudioBitrate,
		)
	}
	args = append(args, output)

	if err := a.run(ctx, "trim", args...); err != nil {
		a.removePartial(output)
		return err
	}
	return nil
}
