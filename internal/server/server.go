// Package server exposes the pipeline over HTTP: multipart uploads in,
// session artifacts and share links out.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/shortsforge/shortsforge/internal/pipeline"
	"github.com/shortsforge/shortsforge/internal/share"
)

const (
	defaultMaxUploadBytes = 100 << 20
	defaultMaxSessions    = 2
	// Whole-session ceiling; a stuck ffmpeg must not pin a slot forever.
	sessionTimeout = 30 * time.Minute
)

type Config struct {
	Addr       string
	PublicBase string // externally reachable base URL, e.g. http://localhost:3000
	ClipsDir   string // session output root, also served at /clips/
	UploadDir  string // incoming uploads before processing

	MaxUploadBytes int64
	MaxSessions    int64

	// Session template; Input and OutDir are filled per request.
	Pipeline pipeline.Config

	Store *share.Store
	Log   zerolog.Logger
}

type Server struct {
	cfg     Config
	store   *share.Store
	sem     *semaphore.Weighted
	log     zerolog.Logger
	started time.Time
}

func New(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.ClipsDir == "" {
		cfg.ClipsDir = "clips"
	}
	return &Server{
		cfg:     cfg,
		store:   cfg.Store,
		sem:     semaphore.NewWeighted(cfg.MaxSessions),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		started: time.Now(),
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/create-shorts", s.handleCreateShorts)
	r.Post("/upload", s.handleUpload)
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/share", s.handleShare)
	r.Get("/api/share/qr/{shortID}", s.handleShareQR)
	r.Get("/s/{shortID}", s.handleRedirect)
	r.Handle("/clips/*", http.StripPrefix("/clips/", http.FileServer(http.Dir(s.cfg.ClipsDir))))

	return r
}

// ListenAndServe blocks serving the router on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
	return srv.ListenAndServe()
}
