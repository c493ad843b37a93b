// Package pipeline wires the adapters to the session operations and owns
// the per-session directory layout.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/ports/adapters/ffmpeg"
	"github.com/shortsforge/shortsforge/internal/ports/adapters/gemini"
	"github.com/shortsforge/shortsforge/internal/ports/adapters/silencetx"
	"github.com/shortsforge/shortsforge/internal/types"
	"github.com/shortsforge/shortsforge/internal/usecase"
)

type Config struct {
	Input       string
	OutDir      string // session directories are created under this; defaults to "clips"
	Description string
	CutOnly     bool // stop after clip extraction; no reel, no extras

	Watermark string // optional watermark image
	MusicPath string // explicit track; overrides library selection
	MusicDir  string // library scanned when MusicPath is empty
	MixPolicy ports.MixPolicy

	FFmpegPath  string
	FFprobePath string

	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	GeminiAllowedHosts []string

	Log zerolog.Logger
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	switch c.MixPolicy {
	case "", ports.MixReplace, ports.MixBlend:
	default:
		return fmt.Errorf("unknown mix policy %q", c.MixPolicy)
	}
	if c.Watermark != "" {
		if _, err := os.Stat(c.Watermark); err != nil {
			return fmt.Errorf("stat watermark: %w", err)
		}
	}
	if c.MusicPath != "" {
		if _, err := os.Stat(c.MusicPath); err != nil {
			return fmt.Errorf("stat music: %w", err)
		}
	}
	return gemini.ValidateBaseURL(c.GeminiBaseURL, c.GeminiAllowedHosts)
}

// Result is the session summary, also serialized as result.json inside the
// session directory.
type Result struct {
	SessionID  string                 `json:"sessionId"`
	SessionDir string                 `json:"sessionDir"`
	Clips      []types.Clip           `json:"clips"`
	Artifact   types.ShortsArtifact   `json:"artifact"`
	MusicTrack string                 `json:"musicTrack,omitempty"`
	Strategy   *types.ContentStrategy `json:"strategy,omitempty"`
}

// Run executes one full session: cut highlights, compose the reel, attach
// the generative extras and persist the summary. Every artifact of the
// session lives under one uuid-named directory.
func Run(ctx context.Context, cfg Config) (Result, error) {
	log := cfg.Log

	engine := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, log)
	tx := silencetx.New(engine, log)
	planner := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, log)
	uc := usecase.New(usecase.Deps{Engine: engine, Transcriber: tx, Log: log})

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "clips"
	}
	sessionID := uuid.NewString()
	sessionDir := filepath.Join(outDir, sessionID)
	tmpDir := filepath.Join(sessionDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return Result{}, err
	}
	log.Info().Str("session", sessionID).Str("dir", sessionDir).Msg("session started")

	cut, err := uc.CutHighlights(ctx, usecase.CutInput{Input: cfg.Input, OutDir: sessionDir})
	if err != nil {
		return Result{}, err
	}

	if cfg.CutOnly {
		res := Result{
			SessionID:  sessionID,
			SessionDir: sessionDir,
			Clips:      cut.Clips,
		}
		if err := writeResult(sessionDir, res); err != nil {
			return Result{}, err
		}
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Warn().Str("dir", tmpDir).Err(err).Msg("could not remove session tmp dir")
		}
		log.Info().Str("session", sessionID).Int("clips", len(cut.Clips)).Msg("cut-only session finished")
		return res, nil
	}

	music := cfg.MusicPath
	if music == "" && cfg.MusicDir != "" {
		music = pickMusic(ctx, planner, cfg.MusicDir, cfg.Description, log)
	}

	mix := cfg.MixPolicy
	if mix == "" {
		mix = ports.MixReplace
	}
	artifact, err := uc.ComposeShorts(ctx, usecase.ComposeInput{
		Clips:     cut.Clips,
		OutDir:    sessionDir,
		TmpDir:    tmpDir,
		Watermark: cfg.Watermark,
		Music:     music,
		MixPolicy: mix,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		SessionID:  sessionID,
		SessionDir: sessionDir,
		Clips:      cut.Clips,
		Artifact:   artifact,
	}
	if artifact.MusicApplied {
		res.MusicTrack = filepath.Base(music)
	}
	if cfg.Description != "" {
		if strategy, err := planner.ContentStrategy(ctx, cfg.Description); err == nil {
			res.Strategy = &strategy
		} else {
			log.Warn().Err(err).Msg("content strategy unavailable")
		}
	}

	if err := writeResult(sessionDir, res); err != nil {
		return Result{}, err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		log.Warn().Str("dir", tmpDir).Err(err).Msg("could not remove session tmp dir")
	}
	log.Info().
		Str("session", sessionID).
		Int("clips", len(cut.Clips)).
		Float64("duration", artifact.TotalDurationSeconds).
		Bool("music", artifact.MusicApplied).
		Msg("session finished")
	return res, nil
}

// pickMusic scans the library and lets the planner choose a track. Any
// failure means no music, never a failed session.
func pickMusic(ctx context.Context, planner ports.Planner, dir, description string, log zerolog.Logger) string {
	tracks := ScanMusicLibrary(dir)
	if len(tracks) == 0 {
		log.Warn().Str("dir", dir).Msg("music library is empty")
		return ""
	}
	track, err := planner.SelectMusic(ctx, description, tracks)
	if err != nil {
		log.Warn().Err(err).Msg("music selection failed")
		return ""
	}
	return filepath.Join(dir, track)
}

// ScanMusicLibrary lists the audio file names in dir, sorted for stable
// selection.
func ScanMusicLibrary(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var tracks []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".mp3", ".wav", ".m4a", ".aac", ".ogg":
			tracks = append(tracks, e.Name())
		}
	}
	sort.Strings(tracks)
	return tracks
}

func writeResult(sessionDir string, res Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(filepath.Join(sessionDir, "result.json"), b, 0o644)
}

// ensure adapters implement ports
var (
	_ ports.Engine      = (*ffmpeg.Adapter)(nil)
	_ ports.Transcriber = (*silencetx.Transcriber)(nil)
	_ ports.Planner     = (*gemini.Adapter)(nil)
)
