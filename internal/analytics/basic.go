// Package analytics computes distributional, risk, and streak metrics
// over a session table. Every analyzer is a pure function of the table:
// no shared state, no mutation, identical results on identical input.
package analytics

import (
	"encoding/json"
	"math"

	"github.com/TeamCinco/Poker-Analysis/internal/session"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// BasicStats summarizes the profit/loss distribution.
type BasicStats struct {
	TotalSessions    int     `json:"total_sessions"`
	WinRate          float64 `json:"win_rate"` // percent of sessions with positive P/L
	MeanProfitLoss   float64 `json:"mean_profit_loss"`
	MedianProfitLoss float64 `json:"median_profit_loss"`
	StdDev           float64 `json:"std_dev"`
	Variance         float64 `json:"variance"`
	Skewness         float64 `json:"skewness"`
	Kurtosis         float64 `json:"kurtosis"`
	MaxWin           float64 `json:"max_win"`
	MaxLoss          float64 `json:"max_loss"`
	ProfitFactor     float64 `json:"profit_factor"` // +Inf when there are no losing sessions
}

// MarshalJSON renders an infinite profit factor as the string "inf",
// since JSON cannot carry IEEE infinities.
func (b BasicStats) MarshalJSON() ([]byte, error) {
	type alias BasicStats
	if !math.IsInf(b.ProfitFactor, 1) {
		return json.Marshal(alias(b))
	}
	return json.Marshal(struct {
		alias
		ProfitFactor string `json:"profit_factor"`
	}{alias: alias(b), ProfitFactor: "inf"})
}

// Basic computes the distributional summary. An empty table yields the
// zero-valued placeholder result.
func Basic(t *session.Table) BasicStats {
	if t.Empty() {
		return BasicStats{}
	}

	pl := t.ProfitLoss
	wins := 0
	sumWins := 0.0
	sumLosses := 0.0
	for _, v := range pl {
		if v > 0 {
			wins++
			sumWins += v
		} else if v < 0 {
			sumLosses += v
		}
	}

	profitFactor := math.Inf(1)
	if sumLosses != 0 {
		profitFactor = math.Abs(sumWins / sumLosses)
	}

	return BasicStats{
		TotalSessions:    len(pl),
		WinRate:          float64(wins) / float64(len(pl)) * 100,
		MeanProfitLoss:   stats.Mean(pl),
		MedianProfitLoss: stats.Median(pl),
		StdDev:           stats.StdDev(pl),
		Variance:         stats.Variance(pl),
		Skewness:         stats.Skewness(pl),
		Kurtosis:         stats.Kurtosis(pl),
		MaxWin:           stats.Max(pl),
		MaxLoss:          stats.Min(pl),
		ProfitFactor:     profitFactor,
	}
}
