package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shortsforge/shortsforge/internal/domain/captions"
	"github.com/shortsforge/shortsforge/internal/domain/frame"
	"github.com/shortsforge/shortsforge/internal/domain/transcript"
	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/ports/adapters/ffmpeg"
	"github.com/shortsforge/shortsforge/internal/types"
)

const (
	// A prepared clip never exceeds this, whatever its source moment was.
	maxPreparedSeconds = 30.0
	// The watermark fades out after this many seconds of each clip.
	watermarkVisibleSeconds = 30
	// Thumbnail frame timestamp, clamped to the reel length.
	thumbnailSeconds = 1.0

	reelFileName          = "youtube_shorts.mp4"
	reelWithMusicFileName = "youtube_shorts_with_music.mp4"
	thumbnailFileName     = "thumbnail.jpg"
	transcriptFileName    = "text_transcript.txt"
)

type ComposeInput struct {
	Clips     []types.Clip
	OutDir    string // final artifacts land here
	TmpDir    string // prepared clips and manifests; caller owns cleanup
	Watermark string // optional watermark image
	Music     string // optional music track
	MixPolicy ports.MixPolicy
}

// ComposeShorts prepares every clip for a vertical reel, concatenates the
// survivors and attaches the optional extras. Preparation failures drop the
// clip; concatenation failure is fatal; transcript, music and thumbnail
// failures degrade the artifact without failing the session.
func (u Usecase) ComposeShorts(ctx context.Context, in ComposeInput) (types.ShortsArtifact, error) {
	if len(in.Clips) == 0 {
		return types.ShortsArtifact{}, ErrNoClips
	}

	prepared := make([]types.PreparedClip, 0, len(in.Clips))
	for _, clip := range in.Clips {
		pc, err := u.prepareClip(ctx, clip, in.TmpDir, in.Watermark)
		if err != nil {
			if ctx.Err() != nil {
				return types.ShortsArtifact{}, ctx.Err()
			}
			u.d.Log.Warn().Int("clip", clip.ID).Err(err).Msg("clip preparation failed, dropping")
			continue
		}
		prepared = append(prepared, pc)
	}
	if len(prepared) == 0 {
		return types.ShortsArtifact{}, ErrNothingPrepared
	}

	reelPath := filepath.Join(in.OutDir, reelFileName)
	if err := u.concatPrepared(ctx, prepared, in.TmpDir, reelPath); err != nil {
		return types.ShortsArtifact{}, err
	}

	total := 0.0
	for _, pc := range prepared {
		total += pc.DurationSeconds
	}
	artifact := types.ShortsArtifact{
		Path:                 reelPath,
		TotalDurationSeconds: total,
	}

	artifact.TranscriptPath = u.writeTranscript(ctx, reelPath, in.OutDir)

	if in.Music != "" {
		withMusic := filepath.Join(in.OutDir, reelWithMusicFileName)
		if err := u.d.Engine.MixAudio(ctx, reelPath, in.Music, withMusic, total, in.MixPolicy); err != nil {
			if ctx.Err() != nil {
				return types.ShortsArtifact{}, ctx.Err()
			}
			u.d.Log.Warn().Err(err).Msg("music mix failed, keeping plain reel")
		} else {
			artifact.Path = withMusic
			artifact.MusicApplied = true
		}
	}

	ts := thumbnailSeconds
	if total < ts {
		ts = total / 2
	}
	thumbPath := filepath.Join(in.OutDir, thumbnailFileName)
	if err := u.d.Engine.Screenshot(ctx, artifact.Path, thumbPath, ts); err != nil {
		if ctx.Err() != nil {
			return types.ShortsArtifact{}, ctx.Err()
		}
		u.d.Log.Warn().Err(err).Msg("thumbnail extraction failed")
	} else {
		artifact.ThumbnailPath = thumbPath
	}

	return artifact, nil
}

// prepareClip normalizes one clip to 9:16 with burned captions and the
// optional watermark. When the full filter graph fails the clip is re-tried
// as a plain scaled rendition without decorations.
func (u Usecase) prepareClip(ctx context.Context, clip types.Clip, tmpDir, watermark string) (types.PreparedClip, error) {
	asset, err := u.d.Engine.Probe(ctx, clip.FilePath)
	if err != nil {
		return types.PreparedClip{}, err
	}

	duration := asset.DurationSeconds
	if duration > maxPreparedSeconds {
		duration = maxPreparedSeconds
	}

	srtPath := filepath.Join(tmpDir, fmt.Sprintf("captions_%d.srt", clip.ID))
	srt := captions.RenderSRT(captions.PlaceholderScript(duration))
	if err := os.WriteFile(srtPath, []byte(srt), 0o644); err != nil {
		return types.PreparedClip{}, fmt.Errorf("write captions: %w", err)
	}

	out := filepath.Join(tmpDir, fmt.Sprintf("shorts_clip_%d.mp4", clip.ID))
	spec := ports.RenderSpec{
		Input:         clip.FilePath,
		Watermark:     watermark,
		FilterComplex: buildClipGraph(asset.Width, asset.Height, srtPath, watermark != ""),
		OutputLabel:   "outv",
		MaxDuration:   duration,
		Output:        out,
	}

	err = firstSuccess(ctx,
		stage{"filter graph", func(c context.Context) error {
			return u.d.Engine.RenderFilterGraph(c, spec)
		}},
		stage{"plain render", func(c context.Context) error {
			return u.d.Engine.RenderPlain(c, clip.FilePath, out, duration)
		}},
	)
	if err != nil {
		return types.PreparedClip{}, err
	}
	return types.PreparedClip{FilePath: out, DurationSeconds: duration}, nil
}

// buildClipGraph chains aspect normalization, caption burn-in and the
// optional watermark overlay into one filter_complex ending at [outv].
func buildClipGraph(width, height int, srtPath string, withWatermark bool) string {
	var stages []string
	stages = append(stages, frame.Normalize(width, height).FilterExpr("0:v", "framed"))

	subsLabel := "outv"
	if withWatermark {
		subsLabel = "withsubs"
	}
	stages = append(stages, fmt.Sprintf("[framed]subtitles='%s':force_style='%s'[%s]",
		ffmpeg.EscapeFilterPath(srtPath), captions.BurnStyle, subsLabel))

	if withWatermark {
		stages = append(stages, fmt.Sprintf(
			"[withsubs][1:v]overlay=W-w-10:10:enable='between(t,0,%d)'[outv]",
			watermarkVisibleSeconds))
	}
	return strings.Join(stages, ";")
}

func (u Usecase) concatPrepared(ctx context.Context, prepared []types.PreparedClip, tmpDir, reelPath string) error {
	paths := make([]string, 0, len(prepared))
	for _, pc := range prepared {
		paths = append(paths, pc.FilePath)
	}
	manifestPath := filepath.Join(tmpDir, "concat_list.txt")
	if err := os.WriteFile(manifestPath, []byte(ffmpeg.BuildConcatManifest(paths)), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	if err := u.d.Engine.Concat(ctx, manifestPath, reelPath); err != nil {
		return fmt.Errorf("concatenate reel: %w", err)
	}
	return nil
}

// writeTranscript runs the transcriber and falls back to the static failure
// notice, so the transcript file exists for every finished session.
func (u Usecase) writeTranscript(ctx context.Context, reelPath, outDir string) string {
	txPath := filepath.Join(outDir, transcriptFileName)
	if err := u.d.Transcriber.Transcribe(ctx, reelPath, txPath); err != nil {
		u.d.Log.Warn().Err(err).Msg("transcription failed, writing failure notice")
		if werr := os.WriteFile(txPath, []byte(transcript.FailureText), 0o644); werr != nil {
			u.d.Log.Error().Err(werr).Msg("could not write transcript failure notice")
			return ""
		}
	}
	return txPath
}
