package decay

import (
	"math"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// Regime labels. Neutral is only reachable when a moving-average series
// is empty, which the minimum-session gate rules out at the default
// windows; the branch stays for robustness if the gate is ever relaxed.
const (
	RegimeGood    = "Good Performance"
	RegimePoor    = "Poor Performance"
	RegimeNeutral = "Neutral"

	CrossoverBullish = "bullish"
	CrossoverBearish = "bearish"
)

const minRegimeSessions = 20

// Crossover records a short/long moving-average cross and the session
// index where it happened.
type Crossover struct {
	Type         string `json:"type"`
	SessionIndex int    `json:"session_index"`
}

// RegimeResult labels the current performance regime and lists the most
// recent moving-average crossovers.
type RegimeResult struct {
	CurrentRegime      string      `json:"current_regime"`
	RecentCrossovers   []Crossover `json:"recent_crossovers"`
	TotalRegimeChanges int         `json:"total_regime_changes"`
	ShortMACurrent     float64     `json:"short_ma_current"`
	LongMACurrent      float64     `json:"long_ma_current"`
}

// Regime detects performance-regime changes via the short/long
// moving-average crossover of session profit/loss. Requires at least 20
// sessions.
func (a *Analyzer) Regime() (RegimeResult, error) {
	n := a.table.Len()
	if n < minRegimeSessions {
		return RegimeResult{}, analytics.ErrInsufficient("regime detection", minRegimeSessions, n)
	}
	if n < a.longMA {
		return RegimeResult{}, analytics.ErrInsufficient("regime detection", a.longMA, n)
	}

	pl := a.table.ProfitLoss
	shortMA := stats.RollingMean(pl, a.shortMA)
	longMA := stats.RollingMean(pl, a.longMA)

	var crossovers []Crossover
	for i := a.longMA; i < n; i++ {
		if math.IsNaN(shortMA[i]) || math.IsNaN(longMA[i]) ||
			math.IsNaN(shortMA[i-1]) || math.IsNaN(longMA[i-1]) {
			continue
		}
		if shortMA[i-1] <= longMA[i-1] && shortMA[i] > longMA[i] {
			crossovers = append(crossovers, Crossover{Type: CrossoverBullish, SessionIndex: i})
		} else if shortMA[i-1] >= longMA[i-1] && shortMA[i] < longMA[i] {
			crossovers = append(crossovers, Crossover{Type: CrossoverBearish, SessionIndex: i})
		}
	}

	result := RegimeResult{
		CurrentRegime:      RegimeNeutral,
		TotalRegimeChanges: len(crossovers),
	}
	if n > 0 {
		result.ShortMACurrent = shortMA[n-1]
		result.LongMACurrent = longMA[n-1]
		if shortMA[n-1] > longMA[n-1] {
			result.CurrentRegime = RegimeGood
		} else {
			result.CurrentRegime = RegimePoor
		}
	}

	if len(crossovers) > 3 {
		crossovers = crossovers[len(crossovers)-3:]
	}
	result.RecentCrossovers = crossovers
	return result, nil
}
