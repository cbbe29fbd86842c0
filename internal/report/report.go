// Package report runs every analyzer over one session sequence and
// assembles the nested result mapping the display layers consume.
// Insufficient-data conditions surface as {"error": ..., "min_sessions":
// N} sections so a UI can render a friendly empty state uniformly.
package report

import (
	"errors"
	"time"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/decay"
	"github.com/TeamCinco/Poker-Analysis/internal/forecast"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// Builder runs analyses with fixed configuration.
type Builder struct {
	analysis config.AnalysisConfig
	forecast config.ForecastConfig
}

// NewBuilder creates a report builder from configuration.
func NewBuilder(analysis config.AnalysisConfig, fc config.ForecastConfig) *Builder {
	return &Builder{analysis: analysis, forecast: fc}
}

// Build analyzes the full record sequence once and returns every
// section. The input is treated as immutable for the duration of the
// call; the derived table is private to it.
func (b *Builder) Build(records []session.Record) map[string]interface{} {
	t := session.NewTable(records)
	an := decay.NewAnalyzerWithWindows(t,
		b.analysis.RollingWindows, b.analysis.ShortMAWindow, b.analysis.LongMAWindow)

	out := map[string]interface{}{
		"generated_at":   time.Now().UTC(),
		"total_sessions": t.Len(),
		"bankroll":       analytics.Bankroll(records),
		"basic_stats":    analytics.Basic(t),
		"streaks":        analytics.Streaks(t),

		"performance_by_period": analytics.PerformanceByPeriod(t),
	}

	out["risk_metrics"] = section(analytics.Risk(t))
	out["rolling_performance"] = section(an.RollingPerformance())
	out["trends"] = section(an.Trends())
	out["regime"] = section(an.Regime())
	out["volatility"] = section(an.Volatility())
	out["alpha_decay"] = section(an.Score())

	eng := forecast.NewEngine(t, b.seed())
	out["monte_carlo"] = section(eng.MonteCarlo(b.forecast.Simulations, b.forecast.SessionsAhead))
	out["kelly"] = forecast.Kelly(t)

	return out
}

// Decay runs only the composite decay scorer.
func (b *Builder) Decay(records []session.Record) (decay.ScoreResult, error) {
	t := session.NewTable(records)
	an := decay.NewAnalyzerWithWindows(t,
		b.analysis.RollingWindows, b.analysis.ShortMAWindow, b.analysis.LongMAWindow)
	return an.Score()
}

// Forecast runs only the Monte Carlo projection and Kelly sizing.
func (b *Builder) Forecast(records []session.Record) map[string]interface{} {
	t := session.NewTable(records)
	eng := forecast.NewEngine(t, b.seed())
	return map[string]interface{}{
		"monte_carlo": section(eng.MonteCarlo(b.forecast.Simulations, b.forecast.SessionsAhead)),
		"kelly":       forecast.Kelly(t),
	}
}

func (b *Builder) seed() int64 {
	if b.forecast.Seed != 0 {
		return b.forecast.Seed
	}
	return time.Now().UnixNano()
}

// section renders a result-or-insufficient pair as one mapping value.
func section(result interface{}, err error) interface{} {
	if err == nil {
		return result
	}
	var insufficient *analytics.InsufficientDataError
	if errors.As(err, &insufficient) {
		return map[string]interface{}{
			"error":        insufficient.Error(),
			"min_sessions": insufficient.Required,
		}
	}
	return map[string]interface{}{"error": err.Error()}
}
