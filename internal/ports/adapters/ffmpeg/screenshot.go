package ffmpeg

import "context"

// Screenshot grabs a single frame at the given timestamp, scaled to the
// standard thumbnail size.
func (a *Adapter) Screenshot(ctx context.Context, input, output string, timestamp float64) error {
	err := a.run(ctx, "screenshot",
		"-ss", fmtSeconds(timestamp),
		"-i", input,
		"-vframes", "1",
		"-q:v", "2",
		"-vf", "scale=640:360",
		output,
	)
	if err != nil {
		a.removePartial(output)
		return err
	}
	return nil
}
