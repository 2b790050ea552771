package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlay-api/internal/config"
	"parlay-api/internal/models"
)

const upstreamSlate = `[
  {"id":"1","home_team":"Chiefs","away_team":"Raiders","commence_time":"2026-10-25T17:00:00Z",
   "bookmakers":[{"key":"dk","markets":[{"key":"h2h","outcomes":[{"name":"Raiders","price":205},{"name":"Chiefs","price":-250}]}]}]},
  {"id":"2","home_team":"Bills","away_team":"Jets","commence_time":"2026-10-25T17:00:00Z",
   "bookmakers":[{"key":"dk","markets":[{"key":"h2h","outcomes":[{"name":"Jets","price":150},{"name":"Bills","price":-150}]}]}]},
  {"id":"3","home_team":"Packers","away_team":"Bears","commence_time":"2026-10-25T20:25:00Z",
   "bookmakers":[{"key":"dk","markets":[{"key":"h2h","outcomes":[{"name":"Bears","price":100},{"name":"Packers","price":-110}]}]}]}
]`

type testEnv struct {
	app   *fiber.App
	calls *int32
}

func newTestEnv(t *testing.T, apiKey string, status int, body string) testEnv {
	t.Helper()

	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Port:        "0",
		Environment: "test",
		Odds: config.OddsConfig{
			APIKey:     apiKey,
			BaseURL:    upstream.URL,
			Region:     "us",
			Format:     string(models.OddsFormatAmerican),
			DateFormat: "iso",
			Timeout:    2 * time.Second,
		},
		Parlay: config.ParlayConfig{MaxLegs: 10, DefaultLegs: 3},
		CORS:   config.CORSConfig{AllowOrigins: "*"},
	}

	log := zerolog.Nop()
	return testEnv{
		app:   New(cfg, NewBuilder(cfg, &log), &log),
		calls: &calls,
	}
}

func (e testEnv) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func (e testEnv) upstreamCalls() int {
	return int(atomic.LoadInt32(e.calls))
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Snap Picks API is live", body["message"])
}

func TestGetParlay_Safe(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/parlay?sport=nfl&style=safe&legs=2", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "NFL", body["sport"])
	assert.Equal(t, "safe", body["style"])
	assert.Equal(t, 42.9, body["estHitChance"])

	legs := body["legs"].([]any)
	require.Len(t, legs, 2)
	first := legs[0].(map[string]any)
	assert.Equal(t, "Chiefs", first["team"])
	assert.Equal(t, "ML", first["pick"])
	assert.Equal(t, "Raiders @ Chiefs", first["matchup"])
	assert.Equal(t, -250.0, first["odds"])
	assert.Equal(t, 1, env.upstreamCalls())
}

func TestGetParlay_Defaults(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/parlay", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NFL", body["sport"])
	assert.Equal(t, "normal", body["style"])
	assert.Len(t, body["legs"], 3)
}

func TestGetParlay_ValidationErrors(t *testing.T) {
	paths := []string{
		"/parlay?legs=0",
		"/parlay?legs=11",
		"/parlay?legs=abc",
		"/parlay?sport=epl",
		"/parlay?style=reckless",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

			resp, body := env.do(t, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, float64(http.StatusBadRequest), body["code"])
			assert.Equal(t, 0, env.upstreamCalls())
		})
	}
}

func TestGetParlay_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		status int
		body   string
		want   int
	}{
		{"missing key", "", http.StatusOK, upstreamSlate, http.StatusInternalServerError},
		{"provider error", "key", http.StatusInternalServerError, "oops", http.StatusBadGateway},
		{"garbage payload", "key", http.StatusOK, "<html>", http.StatusBadGateway},
		{"no events", "key", http.StatusOK, "[]", http.StatusNotFound},
		{"no priced outcomes", "key", http.StatusOK, `[{"home_team":"A","away_team":"B","bookmakers":[]}]`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.apiKey, tt.status, tt.body)

			resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/parlay?sport=nba&style=normal&legs=2", nil))
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, float64(tt.want), body["code"])
			assert.NotContains(t, body, "legs")
		})
	}
}

func TestPostParlay_Live(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

	req := httptest.NewRequest(http.MethodPost, "/parlay", strings.NewReader(`{"sport":"nfl","style":"spicy","legs":2}`))
	req.Header.Set("Content-Type", "application/json")

	resp, body := env.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	legs := body["legs"].([]any)
	require.Len(t, legs, 2)
	assert.Equal(t, "Raiders", legs[0].(map[string]any)["team"])
	assert.Equal(t, "Jets", legs[1].(map[string]any)["team"])
}

func TestPostParlay_ZeroLegsRejected(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

	req := httptest.NewRequest(http.MethodPost, "/parlay", strings.NewReader(`{"sport":"nfl","style":"safe","legs":0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, env.upstreamCalls())
}

func TestPostParlay_Echo(t *testing.T) {
	env := newTestEnv(t, "", http.StatusOK, upstreamSlate)

	payload := `{"sport":"nba","style":"normal","picks":[{"team":"Celtics"},{"team":"Lakers","pick":"ML"},{"team":"Knicks"}]}`
	req := httptest.NewRequest(http.MethodPost, "/parlay", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, body := env.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NBA", body["sport"])
	assert.Equal(t, "82%", body["confidence"])
	assert.NotContains(t, body, "estHitChance")
	assert.Len(t, body["legs"], 3)
	assert.Equal(t, 0, env.upstreamCalls())
}

func TestPostParlay_BadBody(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)

	req := httptest.NewRequest(http.MethodPost, "/parlay", strings.NewReader(`{"legs":`))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExample(t *testing.T) {
	env := newTestEnv(t, "", http.StatusOK, upstreamSlate)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/parlay/example", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "82%", body["confidence"])
	assert.Len(t, body["legs"], 3)
}

func TestReadiness(t *testing.T) {
	env := newTestEnv(t, "", http.StatusOK, upstreamSlate)
	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	env = newTestEnv(t, "key", http.StatusOK, upstreamSlate)
	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t, "key", http.StatusOK, upstreamSlate)
	env.do(t, httptest.NewRequest(http.MethodGet, "/parlay?legs=1", nil))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "parlay_http_requests_total")
	assert.Contains(t, string(raw), "parlay_builds_total")
}
