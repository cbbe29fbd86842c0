package decay

import (
	"math"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// Volatility regime labels and the ratio thresholds that pick them.
const (
	VolatilityHigh   = "High Volatility"
	VolatilityLow    = "Low Volatility"
	VolatilityNormal = "Normal"

	highVolRatio = 1.5
	lowVolRatio  = 0.7
)

const (
	minVolatilitySessions = 10
	shortVolWindow        = 5
	longVolWindow         = 10
)

// VolatilityResult compares the latest short-window volatility against
// its history to classify the volatility regime.
type VolatilityResult struct {
	CurrentVolatility5     float64   `json:"current_volatility_5session"`
	HistoricalVolatility5  float64   `json:"historical_volatility_5session"`
	CurrentVolatility10    float64   `json:"current_volatility_10session"`
	VolatilityRatio        float64   `json:"volatility_ratio"`
	VolatilityRegime       string    `json:"volatility_regime"`
	VolatilityTrend        []float64 `json:"volatility_trend"`
}

// Volatility analyzes volatility clustering in session outcomes.
// Requires at least 10 sessions.
func (a *Analyzer) Volatility() (VolatilityResult, error) {
	n := a.table.Len()
	if n < minVolatilitySessions {
		return VolatilityResult{}, analytics.ErrInsufficient("volatility analysis", minVolatilitySessions, n)
	}

	pl := a.table.ProfitLoss
	vol5 := stats.RollingStd(pl, shortVolWindow)
	vol10 := stats.RollingStd(pl, longVolWindow)

	current := zeroIfNaN(vol5[n-1])
	historical := 0.0
	if n > shortVolWindow {
		historical = zeroIfNaN(stats.NaNMean(vol5[:n-shortVolWindow]))
	}

	ratio := 1.0
	if historical > 0 {
		ratio = current / historical
	}

	regime := VolatilityNormal
	if historical > 0 {
		switch {
		case current >= historical*highVolRatio:
			regime = VolatilityHigh
		case current <= historical*lowVolRatio:
			regime = VolatilityLow
		}
	}

	trend := make([]float64, 0, shortVolWindow)
	for _, v := range vol5[n-shortVolWindow:] {
		if !math.IsNaN(v) {
			trend = append(trend, v)
		}
	}

	return VolatilityResult{
		CurrentVolatility5:    current,
		HistoricalVolatility5: historical,
		CurrentVolatility10:   zeroIfNaN(vol10[n-1]),
		VolatilityRatio:       ratio,
		VolatilityRegime:      regime,
		VolatilityTrend:       trend,
	}, nil
}
