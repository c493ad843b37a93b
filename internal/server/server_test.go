package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/share"
	"github.com/shortsforge/shortsforge/internal/usecase"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := share.OpenStore(filepath.Join(t.TempDir(), "share.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(Config{
		Addr:       ":0",
		PublicBase: "http://localhost:3000",
		ClipsDir:   t.TempDir(),
		UploadDir:  t.TempDir(),
		Store:      store,
		Log:        zerolog.Nop(),
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestShareAndRedirect(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"url":"http://localhost:3000/clips/abc/youtube_shorts.mp4","title":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/share", body)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var links share.Links
	require.NoError(t, decodeBody(rec, &links))
	require.Contains(t, links.ShortURL, "http://localhost:3000/s/")
	shortID := strings.TrimPrefix(links.ShortURL, "http://localhost:3000/s/")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/"+shortID, nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "http://localhost:3000/clips/abc/youtube_shorts.mp4", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/share/qr/"+shortID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestShareRequiresURL(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader(`{"title":"x"}`))
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedirectUnknown(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/deadbeef", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateShortsRequiresVideoField(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("description", "no file attached"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create-shorts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "video")
}

func TestCreateShortsRejectsNonVideo(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("video", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create-shorts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_VIDEO")
}

func TestBusyServerRejectsUpload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.True(t, srv.sem.TryAcquire(srv.cfg.MaxSessions))
	defer srv.sem.Release(srv.cfg.MaxSessions)

	req := httptest.NewRequest(http.MethodPost, "/create-shorts", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "BUSY")
}

func TestClipsAreServedStatically(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	sessionDir := filepath.Join(srv.cfg.ClipsDir, "abc")
	require.NoError(t, os.MkdirAll(sessionDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sessionDir, "thumbnail.jpg"), []byte("jpg"), 0o644))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clips/abc/thumbnail.jpg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jpg", rec.Body.String())
}

func TestWriteSessionError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&ports.ProbeError{Path: "x", Reason: "no video stream"}, http.StatusBadRequest, "INVALID_VIDEO"},
		{usecase.ErrNoClips, http.StatusUnprocessableEntity, "NO_CLIPS"},
		{usecase.ErrNothingPrepared, http.StatusUnprocessableEntity, "NO_CLIPS"},
		{errors.New("boom"), http.StatusInternalServerError, "PROCESSING_FAILED"},
		{context.DeadlineExceeded, http.StatusInternalServerError, "PROCESSING_FAILED"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeSessionError(rec, tc.err)
		require.Equal(t, tc.status, rec.Code)
		require.Contains(t, rec.Body.String(), tc.code)
	}
}

func decodeBody(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}
