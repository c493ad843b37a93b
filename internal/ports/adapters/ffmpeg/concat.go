package ffmpeg

import (
	"context"
	"fmt"
	"strings"
)

// Concat joins the files listed in a concat-demuxer manifest with a
// lossless stream copy. All inputs must share codec parameters; the
// composer guarantees that by encoding every prepared clip identically.
func (a *Adapter) Concat(ctx context.Context, manifestPath, output string) error {
	err := a.run(ctx, "concat",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		output,
	)
	if err != nil {
		a.removePartial(output)
		return err
	}
	return nil
}

// BuildConcatManifest renders the concat-demuxer file list. Single quotes
// in paths are escaped the way the demuxer expects.
func BuildConcatManifest(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		p = strings.ReplaceAll(p, "\\", "/")
		p = strings.ReplaceAll(p, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", p)
	}
	return b.String()
}
