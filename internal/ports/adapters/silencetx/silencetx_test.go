package silencetx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/types"
)

type stubEngine struct {
	ports.Engine

	duration  float64
	silences  []types.SilenceSpan
	extracted []string
}

func (s *stubEngine) Probe(ctx context.Context, path string) (types.VideoAsset, error) {
	return types.VideoAsset{Path: path, DurationSeconds: s.duration, Width: 1080, Height: 1920, FPS: 25, HasAudio: true}, nil
}

func (s *stubEngine) ExtractAudioMono16k(ctx context.Context, input, output string) error {
	s.extracted = append(s.extracted, output)
	return os.WriteFile(output, []byte("wav"), 0o644)
}

func (s *stubEngine) DetectSilence(ctx context.Context, input string, noiseDB, minDuration float64) ([]types.SilenceSpan, error) {
	return s.silences, nil
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	eng := &stubEngine{
		duration: 30,
		silences: []types.SilenceSpan{{Start: 5, End: 10}, {Start: 20, End: 22}},
	}
	tx := New(eng, zerolog.Nop())

	out := filepath.Join(dir, "text_transcript.txt")
	require.NoError(t, tx.Transcribe(context.Background(), "in.mp4", out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(b)
	require.Contains(t, text, "VIDEO TRANSCRIPT")
	require.Contains(t, text, "[00:00:00 - 00:00:05]: speech segment 1")
	require.Contains(t, text, "[00:00:10 - 00:00:20]: speech segment 2")
	require.Contains(t, text, "[00:00:22 - 00:00:30]: speech segment 3")

	// The intermediate wav must be gone.
	require.Len(t, eng.extracted, 1)
	_, err = os.Stat(eng.extracted[0])
	require.True(t, os.IsNotExist(err))
}
