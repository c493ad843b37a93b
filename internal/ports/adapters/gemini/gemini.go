// Package gemini plans content metadata with the Gemini REST API. Every
// entry point degrades to a deterministic local fallback, so a missing key,
// a network failure or malformed model output never fails a session.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shortsforge/shortsforge/internal/ports"
	"github.com/shortsforge/shortsforge/internal/types"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
	requestTimeout = 60 * time.Second
)

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func New(apiKey, model, baseURL string, log zerolog.Logger) *Adapter {
	if model == "" {
		model = defaultModel
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 2 * time.Minute},
		log:     log.With().Str("component", "gemini").Logger(),
	}
}

var _ ports.Planner = (*Adapter)(nil)

// ContentStrategy asks the model for hashtags and a posting plan for the
// given video description. Any failure yields the keyword fallback.
func (a *Adapter) ContentStrategy(ctx context.Context, description string) (types.ContentStrategy, error) {
	if a.key == "" {
		return fallbackStrategy(description), nil
	}

	prompt := "You are a short-form video strategist. For the video described below, " +
		"return strictly valid JSON (no markdown, no code fences) of the shape " +
		`{"hashtags": ["#tag", ...], "content_plan": [{"title": "...", "description": "..."}, ...]}. ` +
		"Give 8-12 hashtags and 3-5 future-video ideas.\n\nDescription:\n" + description

	content, err := a.generate(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Msg("content strategy request failed, using fallback")
		return fallbackStrategy(description), nil
	}

	clean, err := extractJSONObject(content)
	if err != nil {
		return fallbackStrategy(description), nil
	}
	var out struct {
		Hashtags    []string            `json:"hashtags"`
		ContentPlan []types.ContentIdea `json:"content_plan"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil || len(out.Hashtags) == 0 {
		return fallbackStrategy(description), nil
	}
	return types.ContentStrategy{Hashtags: out.Hashtags, ContentPlan: out.ContentPlan}, nil
}

// SelectMusic picks one track name from the library for the description.
// The answer must be an exact member of tracks; anything else falls back to
// the keyword heuristic.
func (a *Adapter) SelectMusic(ctx context.Context, description string, tracks []string) (string, error) {
	if len(tracks) == 0 {
		return "", errors.New("gemini: empty music library")
	}
	if a.key == "" {
		return fallbackMusic(description, tracks), nil
	}

	prompt := "Pick the single best background-music file for the video described below. " +
		"Answer with strictly valid JSON (no markdown) of the shape " +
		`{"track": "<file name>"}. The value must be copied exactly from the list.` +
		"\n\nDescription:\n" + description +
		"\n\nFiles:\n" + strings.Join(tracks, "\n")

	content, err := a.generate(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Msg("music selection request failed, using fallback")
		return fallbackMusic(description, tracks), nil
	}

	clean, err := extractJSONObject(content)
	if err != nil {
		return fallbackMusic(description, tracks), nil
	}
	var out struct {
		Track string `json:"track"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return fallbackMusic(description, tracks), nil
	}
	for _, t := range tracks {
		if t == strings.TrimSpace(out.Track) {
			return t, nil
		}
	}
	return fallbackMusic(description, tracks), nil
}

func (a *Adapter) generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.key)

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return "", errors.New(redactSecrets(err.Error(), a.key))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("gemini status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400))
	}

	var raw struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Candidates) == 0 {
		return "", errors.New("gemini: no candidates")
	}
	var b strings.Builder
	for _, p := range raw.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("gemini: empty content")
	}
	return b.String(), nil
}

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("gemini: empty content")
	}

	// Strip markdown code fences.
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	// Best-effort: take the first JSON object found.
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}
	return "", fmt.Errorf("gemini: could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	keyQueryRE    = regexp.MustCompile(`(?i)([?&]key=)[^&\s"]+`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = keyQueryRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
