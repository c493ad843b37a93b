package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shortsforge/shortsforge/internal/logging"
	"github.com/shortsforge/shortsforge/internal/pipeline"
	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/server"
	"github.com/shortsforge/shortsforge/internal/share"
)

func run(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	description, _ := cmd.Flags().GetString("description")
	watermark, _ := cmd.Flags().GetString("watermark")
	music, _ := cmd.Flags().GetString("music")
	musicDir, _ := cmd.Flags().GetString("music-dir")
	mix, _ := cmd.Flags().GetString("mix")
	cutOnly, _ := cmd.Flags().GetBool("cut-only")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := basePipelineConfig()
	cfg.Input = absIn
	cfg.OutDir = outDir
	cfg.Description = description
	cfg.Watermark = watermark
	cfg.MusicPath = music
	cfg.MusicDir = musicDir
	cfg.MixPolicy = ports.MixPolicy(mix)
	cfg.CutOnly = cutOnly

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d clips in %s\n", res.SessionID, len(res.Clips), res.SessionDir)
	if res.Artifact.Path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "reel: %s\n", res.Artifact.Path)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	publicBase, _ := cmd.Flags().GetString("public-base")
	clipsDir, _ := cmd.Flags().GetString("clips-dir")
	uploadDir, _ := cmd.Flags().GetString("upload-dir")
	dbPath, _ := cmd.Flags().GetString("db")
	maxSessions, _ := cmd.Flags().GetInt64("max-sessions")
	watermark, _ := cmd.Flags().GetString("watermark")
	musicDir, _ := cmd.Flags().GetString("music-dir")

	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return err
	}

	store, err := share.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tmpl := basePipelineConfig()
	tmpl.Watermark = watermark
	tmpl.MusicDir = musicDir

	srv := server.New(server.Config{
		Addr:        addr,
		PublicBase:  publicBase,
		ClipsDir:    clipsDir,
		UploadDir:   uploadDir,
		MaxSessions: maxSessions,
		Pipeline:    tmpl,
		Store:       store,
		Log:         logging.Base(),
	})
	return srv.ListenAndServe()
}

func basePipelineConfig() pipeline.Config {
	return pipeline.Config{
		FFmpegPath:  getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenvDefault("FFPROBE_PATH", "ffprobe"),

		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getenvDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:      os.Getenv("GEMINI_BASE_URL"),
		GeminiAllowedHosts: splitHosts(os.Getenv("GEMINI_ALLOWED_HOSTS")),

		Log: logging.Base(),
	}
}

func splitHosts(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
