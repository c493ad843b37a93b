package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shortsforge/shortsforge/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	var verbose bool

	root := &cobra.Command{
		Use:          "shortsforge <input>",
		Short:        "Turn a long video into a vertical shorts reel",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	root.Flags().String("out", "clips", "Output directory for sessions")
	root.Flags().String("description", "", "Video description for content planning")
	root.Flags().String("watermark", "", "Watermark image overlaid on each clip")
	root.Flags().String("music", "", "Background music file")
	root.Flags().String("music-dir", "", "Music library; a track is picked per session")
	root.Flags().String("mix", "replace", `Music policy: "replace" or "mix"`)
	root.Flags().Bool("cut-only", false, "Extract highlight clips without composing a reel")

	serve := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP upload service",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runServe,
	}
	serve.Flags().String("addr", ":3000", "Listen address")
	serve.Flags().String("public-base", "http://localhost:3000", "Externally reachable base URL")
	serve.Flags().String("clips-dir", "clips", "Session output root, served at /clips/")
	serve.Flags().String("upload-dir", "uploads", "Incoming upload directory")
	serve.Flags().String("db", "share.db", "Short URL database path")
	serve.Flags().Int64("max-sessions", 2, "Concurrent processing sessions")
	serve.Flags().String("watermark", "", "Watermark image overlaid on each clip")
	serve.Flags().String("music-dir", "", "Music library; a track is picked per session")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
