// Package ffmpeg adapts the ffmpeg/ffprobe command line tools to the
// engine capability the pipeline consumes.
package ffmpeg

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shortsforge/shortsforge/internal/ports"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	log     zerolog.Logger
}

func New(ffmpegPath, ffprobePath string, log zerolog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		log:     log.With().Str("component", "ffmpeg").Logger(),
	}
}

var _ ports.Engine = (*Adapter)(nil)

// run executes ffmpeg and returns a ToolError carrying the tail of the
// combined output on failure.
func (a *Adapter) run(ctx context.Context, op string, args ...string) error {
	full := append([]string{"-y", "-hide_banner"}, args...)
	a.log.Debug().Str("op", op).Strs("args", full).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, a.ffmpeg, full...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ports.ToolError{Op: op, Err: err, Output: tail(string(b), 2000)}
	}
	return nil
}

// runScrape executes ffmpeg for its diagnostics: stderr is the product, a
// non-zero exit is tolerated as long as output was produced. The analysis
// filters run with "-f null -" and routinely exit non-zero.
func (a *Adapter) runScrape(ctx context.Context, op string, args ...string) (string, error) {
	full := append([]string{"-hide_banner"}, args...)
	a.log.Debug().Str("op", op).Strs("args", full).Msg("scraping ffmpeg diagnostics")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.ffmpeg, full...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	out := stderr.String()
	if err != nil && out == "" {
		return "", &ports.ToolError{Op: op, Err: err}
	}
	return out, nil
}

// removePartial deletes an output file left behind by a failed or cancelled
// invocation. Removal failures are swallowed: cleanup must never mask the
// original error.
func (a *Adapter) removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		a.log.Warn().Str("path", path).Err(err).Msg("could not remove partial output")
	}
}

func fmtSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// EscapeFilterPath escapes a path embedded in a filter expression.
func EscapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.ReplaceAll(p, ":", "\\:")
	p = strings.ReplaceAll(p, "'", "\\'")
	return p
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
