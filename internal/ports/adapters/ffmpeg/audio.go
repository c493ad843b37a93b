package ffmpeg

import (
	"context"
	"fmt"

	"github.com/shortsforge/shortsforge/internal/ports"
)

// MixAudio loops the music track indefinitely, trims it to the video's
// duration and applies it according to policy: MixReplace maps the looped
// track in place of the original audio, MixBlend mixes the two with the
// music weighted well below the original. Video is stream-copied either way.
func (a *Adapter) MixAudio(ctx context.Context, video, music, output string, duration float64, policy ports.MixPolicy) error {
	var filter string
	audioMap := "[audioout]"
	switch policy {
	case ports.MixBlend:
		filter = fmt.Sprintf(
			"[1:a]aloop=loop=-1:size=2e+09[loopedaudio];"+
				"[loopedaudio]atrim=0:%s[audiocut];"+
				"[0:a][audiocut]amix=inputs=2:duration=longest:dropout_transition=2:weights=1 0.1[audioout]",
			fmtSeconds(duration))
	default:
		filter = fmt.Sprintf(
			"[1:a]aloop=loop=-1:size=2e+09[loopedaudio];"+
				"[loopedaudio]atrim=0:%s[audioout]",
			fmtSeconds(duration))
	}

	err := a.run(ctx, "mix audio",
		"-i", video,
		"-i", music,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", audioMap,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		output,
	)
	if err != nil {
		a.removePartial(output)
		return err
	}
	return nil
}

// ExtractAudioMono16k pulls the audio track as 16 kHz mono PCM, the format
// speech tooling expects.
func (a *Adapter) ExtractAudioMono16k(ctx context.Context, input, output string) error {
	err := a.run(ctx, "extract audio",
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		output,
	)
	if err != nil {
		a.removePartial(output)
		return err
	}
	return nil
}
