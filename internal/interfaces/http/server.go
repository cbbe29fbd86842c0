// Package http exposes the analytics reports over a JSON API. It is a
// display collaborator: it formats what the engine returns and never
// computes metrics itself.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence/cache"
	"github.com/TeamCinco/Poker-Analysis/internal/report"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

const reportCacheKey = "report:latest"

// Server serves analytics reports for the stored session sequence.
type Server struct {
	sessions  persistence.SessionRepo
	scores    persistence.ScoreRepo
	builder   *report.Builder
	cache     *cache.ReportCache
	metrics   *MetricsRegistry
	startTime time.Time
	version   string
	http      *http.Server
}

// NewServer wires the report API. cache and scores may be nil.
func NewServer(cfg config.ServerConfig, sessions persistence.SessionRepo, scores persistence.ScoreRepo,
	builder *report.Builder, reportCache *cache.ReportCache, metrics *MetricsRegistry, version string) *Server {

	s := &Server{
		sessions:  sessions,
		scores:    scores,
		builder:   builder,
		cache:     reportCache,
		metrics:   metrics,
		startTime: time.Now(),
		version:   version,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/decay", s.handleDecay).Methods(http.MethodGet)
	api.HandleFunc("/forecast", s.handleForecast).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleAddSession).Methods(http.MethodPost)

	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      logRequests(rateLimit(limiter, metrics, r)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.http.Addr).Msg("report API listening")
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.cache != nil {
		var cached map[string]interface{}
		if err := s.cache.Get(r.Context(), reportCacheKey, &cached); err == nil {
			s.metrics.CacheHits.Inc()
			writeJSON(w, http.StatusOK, cached)
			return
		}
		s.metrics.CacheMisses.Inc()
	}

	records, err := s.sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rep := s.builder.Build(records)
	s.metrics.SessionsStored.Set(float64(len(records)))
	s.metrics.ObserveAnalysis("report", start, nil)

	if s.cache != nil {
		s.cache.Set(r.Context(), reportCacheKey, rep)
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDecay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records, err := s.sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result, err := s.builder.Decay(records)
	s.metrics.ObserveAnalysis("decay", start, err)
	if err != nil {
		writeInsufficient(w, err)
		return
	}

	if s.scores != nil {
		snap := persistence.ScoreSnapshot{
			Timestamp:       time.Now().UTC(),
			Sessions:        len(records),
			AlphaDecayScore: result.AlphaDecayScore,
			DecayLevel:      result.DecayLevel,
			Recommendation:  result.Recommendation,
		}
		if err := s.scores.Insert(r.Context(), snap); err != nil {
			log.Warn().Err(err).Msg("failed to persist decay score")
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records, err := s.sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := s.builder.Forecast(records)
	s.metrics.ObserveAnalysis("forecast", start, nil)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	records, err := s.sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type addSessionRequest struct {
	Date    time.Time `json:"date"`
	BuyIn   float64   `json:"buy_in"`
	CashOut float64   `json:"cash_out"`
	Fees    float64   `json:"fees"`
	Notes   string    `json:"notes"`
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	var req addSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	rec := session.NewRecord(req.Date, req.BuyIn, req.CashOut, req.Fees, req.Notes)
	if err := s.sessions.Insert(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.cache != nil {
		s.cache.Invalidate(r.Context(), reportCacheKey)
	}
	writeJSON(w, http.StatusCreated, rec)
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Uptime        string `json:"uptime"`
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Version:       s.version,
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeInsufficient renders an insufficient-data error as a 200 payload
// with an error field: not enough sessions is an expected state for a
// young bankroll, not a server failure.
func writeInsufficient(w http.ResponseWriter, err error) {
	var insufficient *analytics.InsufficientDataError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"error":        insufficient.Error(),
			"min_sessions": insufficient.Required,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
