package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shortsforge/shortsforge/internal/domain/moments"
	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/types"
)

const (
	// At most this many clips per session, keeping the longest moments.
	maxClips = 10
	// Concurrent trim invocations. ffmpeg is already multithreaded, so the
	// win here is pipelining I/O, not saturating cores.
	trimParallelism = 3
	// Length of the single fallback clip when no moment survives analysis.
	fallbackClipSeconds = 10.0
)

type CutInput struct {
	Input  string
	OutDir string // clip_<n>.mp4 files land here
}

type CutResult struct {
	Asset types.VideoAsset
	Clips []types.Clip
}

// CutHighlights probes the source, scores it for loud and visually busy
// moments and extracts each surviving moment as its own file. Analysis
// failures degrade to the synthetic fallback; only an unreadable source or
// a fully failed extraction is fatal.
func (u Usecase) CutHighlights(ctx context.Context, in CutInput) (CutResult, error) {
	asset, err := u.d.Engine.Probe(ctx, in.Input)
	if err != nil {
		return CutResult{}, err
	}
	u.d.Log.Info().
		Str("input", in.Input).
		Float64("duration", asset.DurationSeconds).
		Int("width", asset.Width).
		Int("height", asset.Height).
		Bool("has_audio", asset.HasAudio).
		Msg("source probed")

	var loud []types.Moment
	if asset.HasAudio {
		samples, err := u.d.Engine.MeasureLoudness(ctx, in.Input)
		if err != nil {
			return CutResult{}, err
		}
		loud = moments.LoudWindows(samples)
	}

	sceneTimes, err := u.d.Engine.DetectScenes(ctx, in.Input)
	if err != nil {
		return CutResult{}, err
	}
	scene := moments.SceneWindows(sceneTimes)

	selected := moments.Combine(loud, scene, asset.DurationSeconds)
	if len(selected) == 0 {
		end := fallbackClipSeconds
		if end > asset.DurationSeconds {
			end = asset.DurationSeconds
		}
		selected = []types.Moment{{
			Interval: types.Interval{Start: 0, End: end},
			Source:   types.SourceSynthetic,
		}}
	}
	selected = capByDuration(selected, maxClips)
	u.d.Log.Info().
		Int("loud", len(loud)).
		Int("scene", len(scene)).
		Int("selected", len(selected)).
		Msg("moments selected")

	clips, err := u.extractClips(ctx, in.Input, in.OutDir, selected)
	if err != nil {
		return CutResult{}, err
	}
	if len(clips) == 0 {
		return CutResult{}, ErrNoClips
	}
	return CutResult{Asset: asset, Clips: clips}, nil
}

// capByDuration keeps the n longest moments, then restores chronological
// order so clip numbering follows the source timeline.
func capByDuration(ms []types.Moment, n int) []types.Moment {
	if len(ms) <= n {
		return ms
	}
	byLen := make([]types.Moment, len(ms))
	copy(byLen, ms)
	sort.SliceStable(byLen, func(i, j int) bool {
		return byLen[i].Duration() > byLen[j].Duration()
	})
	kept := byLen[:n]
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// extractClips trims every moment concurrently. Each clip settles on its
// own: a failed clip is logged and dropped without touching its siblings.
// Numbering follows the moment's position, so failures leave gaps rather
// than renumbering the survivors.
func (u Usecase) extractClips(ctx context.Context, input, outDir string, selected []types.Moment) ([]types.Clip, error) {
	var (
		mu    sync.Mutex
		clips []types.Clip
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(trimParallelism)

	for i, m := range selected {
		id := i + 1
		m := m
		g.Go(func() error {
			out := filepath.Join(outDir, fmt.Sprintf("clip_%d.mp4", id))
			err := firstSuccess(gctx,
				stage{"copy trim", func(c context.Context) error {
					return u.d.Engine.Trim(c, input, m.Start, m.Duration(), out, ports.TrimCopy)
				}},
				stage{"re-encode trim", func(c context.Context) error {
					return u.d.Engine.Trim(c, input, m.Start, m.Duration(), out, ports.TrimReencode)
				}},
			)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				u.d.Log.Warn().Int("clip", id).Err(err).Msg("clip extraction failed, dropping")
				return nil
			}
			mu.Lock()
			clips = append(clips, types.Clip{
				ID:              id,
				SourceInterval:  m.Interval,
				FilePath:        out,
				DurationSeconds: m.Duration(),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(clips, func(i, j int) bool { return clips[i].ID < clips[j].ID })
	return clips, nil
}
