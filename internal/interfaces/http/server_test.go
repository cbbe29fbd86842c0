package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence/file"
	"github.com/TeamCinco/Poker-Analysis/internal/report"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

func newTestServer(t *testing.T, pls []float64) *Server {
	t.Helper()

	store, err := file.Open(filepath.Join(t.TempDir(), "sessions.json"))
	require.NoError(t, err)

	base := time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC)
	for i, pl := range pls {
		rec := session.NewRecord(base.AddDate(0, 0, i), 100, 100+pl, 0, "")
		require.NoError(t, store.Insert(context.Background(), rec))
	}

	cfg := config.Default()
	cfg.Forecast.Simulations = 50
	cfg.Forecast.SessionsAhead = 20
	cfg.Forecast.Seed = 42
	builder := report.NewBuilder(cfg.Analysis, cfg.Forecast)

	return NewServer(cfg.Server, store, nil, builder, nil, NewMetricsRegistry(), "test")
}

func doRequest(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(w, req)
	return w
}

func longRun() []float64 {
	cycle := []float64{30, -10, 25, -5, 20}
	pls := make([]float64, 0, 60)
	for i := 0; i < 12; i++ {
		pls = append(pls, cycle...)
	}
	return pls
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestReportEndpoint(t *testing.T) {
	s := newTestServer(t, longRun())
	w := doRequest(s, http.MethodGet, "/api/v1/report", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var rep map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Contains(t, rep, "basic_stats")
	assert.Contains(t, rep, "alpha_decay")
	assert.EqualValues(t, 60, rep["total_sessions"])
}

func TestDecayEndpointInsufficientIsOK(t *testing.T) {
	s := newTestServer(t, []float64{10, -5, 20})
	w := doRequest(s, http.MethodGet, "/api/v1/decay", nil)

	// A young bankroll is an expected state, not a failure.
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 50, resp["min_sessions"])
	assert.Contains(t, resp["error"], "need at least 50 sessions")
}

func TestDecayEndpointScores(t *testing.T) {
	s := newTestServer(t, longRun())
	w := doRequest(s, http.MethodGet, "/api/v1/decay", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "alpha_decay_score")
	assert.Contains(t, resp, "decay_level")
	assert.Contains(t, resp, "component_scores")
}

func TestForecastEndpoint(t *testing.T) {
	s := newTestServer(t, []float64{25, -10, 40, -15, 30})
	w := doRequest(s, http.MethodGet, "/api/v1/forecast", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "monte_carlo")
	assert.Contains(t, resp, "kelly")
}

func TestAddAndListSessions(t *testing.T) {
	s := newTestServer(t, nil)

	body, err := json.Marshal(addSessionRequest{
		Date:    time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		BuyIn:   200,
		CashOut: 290,
		Fees:    10,
		Notes:   "home game",
	})
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/api/v1/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created session.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.InDelta(t, 80, created.ProfitLoss, 1e-9)

	w = doRequest(s, http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []session.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)
}

func TestAddSessionBadPayload(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(s, http.MethodPost, "/api/v1/sessions", []byte("{broken"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(s, http.MethodDelete, "/api/v1/report", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimitRejects(t *testing.T) {
	s := newTestServer(t, nil)

	// Burst defaults to 20; hammering past it must produce 429s.
	rejected := 0
	for i := 0; i < 50; i++ {
		if doRequest(s, http.MethodGet, "/health", nil).Code == http.StatusTooManyRequests {
			rejected++
		}
	}
	assert.Greater(t, rejected, 0)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, longRun())
	doRequest(s, http.MethodGet, "/api/v1/report", nil)

	w := doRequest(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pokeranalysis_analysis_total")
}
