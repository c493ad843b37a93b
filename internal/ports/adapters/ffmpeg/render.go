package ffmpeg

import (
	"context"
	"fmt"

	"github.com/shortsforge/shortsforge/internal/ports"
)

// Uniform encoding settings across every prepared clip. Concatenation
// relies on all clips sharing these parameters.
const (
	targetWidth  = 1080
	targetHeight = 1920
)

// RenderFilterGraph renders one clip through a complete filter_complex
// expression (crop/pad, caption burn-in, optional watermark overlay).
func (a *Adapter) RenderFilterGraph(ctx context.Context, spec ports.RenderSpec) error {
	args := []string{"-i", spec.Input}
	if spec.Watermark != "" {
		args = append(args, "-i", spec.Watermark)
	}
	args = append(args,
		"-filter_complex", spec.FilterComplex,
		"-map", "["+spec.OutputLabel+"]",
		"-map", "0:a?",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-s", fmt.Sprintf("%dx%d", targetWidth, targetHeight),
	)
	if spec.MaxDuration > 0 {
		args = append(args, "-t", fmtSeconds(spec.MaxDuration))
	}
	args = append(args, spec.Output)

	if err := a.run(ctx, "render filter graph", args...); err != nil {
		a.removePartial(spec.Output)
		return err
	}
	return nil
}

// RenderPlain is the degraded rendition used when the full graph fails:
// a plain re-encode at target resolution with no captions or overlays.
func (a *Adapter) RenderPlain(ctx context.Context, input, output string, maxDuration float64) error {
	args := []string{
		"-i", input,
		"-vf", fmt.Sprintf(
			"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black",
			targetWidth, targetHeight, targetWidth, targetHeight),
		"-c:v", "libx264",
		"-c:a", "aac",
	}
	if maxDuration > 0 {
		args = append(args, "-t", fmtSeconds(maxDuration))
	}
	args = append(args, output)

	if err := a.run(ctx, "render plain", args...); err != nil {
		a.removePartial(output)
		return err
	}
	return nil
}
