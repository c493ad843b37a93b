// Package silencetx is the placeholder transcriber: it locates speech by
// inverting silence detection and writes a timestamped outline instead of
// recognized words.
package silencetx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shortsforge/shortsforge/internal/domain/transcript"
	"github.com/shortsforge/shortsforge/internal/ports"
)

// Silence detection tuning. Quieter than -30 dB for at least half a second
// counts as a gap between speech.
const (
	noiseFloorDB   = -30.0
	minSilenceSecs = 0.5
)

type Transcriber struct {
	engine ports.Engine
	log    zerolog.Logger
}

func New(engine ports.Engine, log zerolog.Logger) *Transcriber {
	return &Transcriber{
		engine: engine,
		log:    log.With().Str("component", "transcriber").Logger(),
	}
}

var _ ports.Transcriber = (*Transcriber)(nil)

// Transcribe extracts a mono 16 kHz track, runs silence detection over it
// and writes the rendered speech outline to outPath. The intermediate wav
// lives next to the output and is removed best-effort.
func (t *Transcriber) Transcribe(ctx context.Context, videoPath, outPath string) error {
	asset, err := t.engine.Probe(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	wav := filepath.Join(filepath.Dir(outPath), "audio_"+uuid.NewString()+".wav")
	if err := t.engine.ExtractAudioMono16k(ctx, videoPath, wav); err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	defer func() {
		if err := os.Remove(wav); err != nil && !os.IsNotExist(err) {
			t.log.Warn().Str("path", wav).Err(err).Msg("could not remove intermediate audio")
		}
	}()

	silences, err := t.engine.DetectSilence(ctx, wav, noiseFloorDB, minSilenceSecs)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	spans := transcript.SpeechSpans(silences, asset.DurationSeconds)
	t.log.Info().Int("speech_spans", len(spans)).Str("out", outPath).Msg("writing transcript outline")
	if err := os.WriteFile(outPath, []byte(transcript.Render(spans)), 0o644); err != nil {
		return fmt.Errorf("transcribe: write %s: %w", outPath, err)
	}
	return nil
}
