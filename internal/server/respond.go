package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeSessionError maps pipeline failures onto client-meaningful statuses:
// an unreadable upload is the client's problem, a tool crash is ours.
func writeSessionError(w http.ResponseWriter, err error) {
	var pe *ports.ProbeError
	switch {
	case errors.As(err, &pe):
		writeError(w, http.StatusBadRequest,
			"the uploaded file could not be read as video: "+pe.Reason, "INVALID_VIDEO")
	case errors.Is(err, usecase.ErrNoClips), errors.Is(err, usecase.ErrNothingPrepared):
		writeError(w, http.StatusUnprocessableEntity,
			"no usable clips could be produced from this video", "NO_CLIPS")
	default:
		writeError(w, http.StatusInternalServerError,
			"video processing failed", "PROCESSING_FAILED")
	}
}
