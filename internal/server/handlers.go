package server

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shortsforge/shortsforge/internal/pipeline"
	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/share"
	"github.com/shortsforge/shortsforge/internal/types"
)

type sessionResponse struct {
	SessionID     string                 `json:"sessionId"`
	VideoURL      string                 `json:"videoUrl,omitempty"`
	ThumbnailURL  string                 `json:"thumbnailUrl,omitempty"`
	TranscriptURL string                 `json:"transcriptUrl,omitempty"`
	Clips         []clipResponse         `json:"clips"`
	Duration      float64                `json:"durationSeconds,omitempty"`
	MusicApplied  bool                   `json:"musicApplied"`
	Strategy      *types.ContentStrategy `json:"strategy,omitempty"`
	Share         *share.Links           `json:"share,omitempty"`
}

type clipResponse struct {
	ID       int     `json:"id"`
	URL      string  `json:"url"`
	Start    float64 `json:"startSeconds"`
	End      float64 `json:"endSeconds"`
	Duration float64 `json:"durationSeconds"`
}

// handleCreateShorts runs the full session: cut, compose, extras.
func (s *Server) handleCreateShorts(w http.ResponseWriter, r *http.Request) {
	s.runSession(w, r, false)
}

// handleUpload runs the cut-only session: highlight clips, no reel.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.runSession(w, r, true)
}

func (s *Server) runSession(w http.ResponseWriter, r *http.Request, cutOnly bool) {
	if !s.sem.TryAcquire(1) {
		writeError(w, http.StatusServiceUnavailable,
			"server is busy processing other videos, try again shortly", "BUSY")
		return
	}
	defer s.sem.Release(1)

	upload, description, ok := s.acceptUpload(w, r)
	if !ok {
		return
	}
	defer func() {
		if err := os.Remove(upload); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Str("path", upload).Err(err).Msg("could not remove upload")
		}
	}()

	cfg := s.cfg.Pipeline
	cfg.Input = upload
	cfg.OutDir = s.cfg.ClipsDir
	cfg.Description = description
	cfg.CutOnly = cutOnly
	cfg.Log = s.log
	if mix := r.FormValue("audioMode"); mix != "" {
		cfg.MixPolicy = ports.MixPolicy(mix)
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionTimeout)
	defer cancel()

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		s.log.Error().Err(err).Msg("session failed")
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.buildSessionResponse(r.Context(), res))
}

// acceptUpload validates and persists the multipart video field. On failure
// it writes the error response itself and reports ok=false.
func (s *Server) acceptUpload(w http.ResponseWriter, r *http.Request) (path, description string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds the %d MB limit or is malformed", s.cfg.MaxUploadBytes>>20), "UPLOAD_TOO_LARGE")
		return "", "", false
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, `multipart field "video" is required`, "BAD_REQUEST")
		return "", "", false
	}
	defer file.Close()

	if !isVideoUpload(header) {
		writeError(w, http.StatusBadRequest, "only video uploads are accepted", "INVALID_VIDEO")
		return "", "", false
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "could not store upload", "STORAGE_FAILED")
		return "", "", false
	}
	dst := filepath.Join(s.cfg.UploadDir, uuid.NewString()+filepath.Ext(header.Filename))
	out, err := os.Create(dst)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not store upload", "STORAGE_FAILED")
		return "", "", false
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		_ = os.Remove(dst)
		writeError(w, http.StatusInternalServerError, "could not store upload", "STORAGE_FAILED")
		return "", "", false
	}

	return dst, r.FormValue("description"), true
}

func isVideoUpload(header *multipart.FileHeader) bool {
	ct := header.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "video/") {
		return true
	}
	// Some clients send uploads as octet-stream; fall back to the extension.
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".mp4", ".mov", ".mkv", ".webm", ".avi":
		return true
	}
	return false
}

func (s *Server) buildSessionResponse(ctx context.Context, res pipeline.Result) sessionResponse {
	resp := sessionResponse{
		SessionID:    res.SessionID,
		Duration:     res.Artifact.TotalDurationSeconds,
		MusicApplied: res.Artifact.MusicApplied,
		Strategy:     res.Strategy,
		Clips:        make([]clipResponse, 0, len(res.Clips)),
	}
	for _, c := range res.Clips {
		resp.Clips = append(resp.Clips, clipResponse{
			ID:       c.ID,
			URL:      s.clipURL(res.SessionID, filepath.Base(c.FilePath)),
			Start:    c.SourceInterval.Start,
			End:      c.SourceInterval.End,
			Duration: c.DurationSeconds,
		})
	}
	if res.Artifact.Path != "" {
		resp.VideoURL = s.clipURL(res.SessionID, filepath.Base(res.Artifact.Path))
	}
	if res.Artifact.ThumbnailPath != "" {
		resp.ThumbnailURL = s.clipURL(res.SessionID, filepath.Base(res.Artifact.ThumbnailPath))
	}
	if res.Artifact.TranscriptPath != "" {
		resp.TranscriptURL = s.clipURL(res.SessionID, filepath.Base(res.Artifact.TranscriptPath))
	}

	if s.store != nil && resp.VideoURL != "" {
		if id, err := s.store.Shorten(ctx, resp.VideoURL); err == nil {
			links := share.BuildLinks(s.cfg.PublicBase, id, resp.VideoURL, "Check out my short!")
			resp.Share = &links
		} else {
			s.log.Warn().Err(err).Msg("could not issue short url")
		}
	}
	return resp
}

func (s *Server) clipURL(sessionID, name string) string {
	return fmt.Sprintf("%s/clips/%s/%s", s.cfg.PublicBase, sessionID, name)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(s.started).Seconds()),
		"maxSessions":   s.cfg.MaxSessions,
	})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "sharing is not configured", "NOT_CONFIGURED")
		return
	}
	var req struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required", "BAD_REQUEST")
		return
	}
	id, err := s.store.Shorten(r.Context(), req.URL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create short url", "SHORTEN_FAILED")
		return
	}
	title := req.Title
	if title == "" {
		title = "Check out my short!"
	}
	writeJSON(w, http.StatusOK, share.BuildLinks(s.cfg.PublicBase, id, req.URL, title))
}

func (s *Server) handleShareQR(w http.ResponseWriter, r *http.Request) {
	shortID := chi.URLParam(r, "shortID")
	if s.store != nil {
		if _, err := s.store.Resolve(r.Context(), shortID); err != nil {
			writeError(w, http.StatusNotFound, "unknown short url", "NOT_FOUND")
			return
		}
	}
	png, err := share.QRCodePNG(fmt.Sprintf("%s/s/%s", s.cfg.PublicBase, shortID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not render qr code", "QR_FAILED")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "unknown short url", "NOT_FOUND")
		return
	}
	target, err := s.store.Resolve(r.Context(), chi.URLParam(r, "shortID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown short url", "NOT_FOUND")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
