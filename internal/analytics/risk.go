package analytics

import (
	"github.com/TeamCinco/Poker-Analysis/internal/session"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// RiskMetrics holds drawdown and tail-risk measures for the session
// sequence. Drawdown values are non-positive by construction.
type RiskMetrics struct {
	MaxDrawdown          float64 `json:"max_drawdown"`
	CurrentDrawdown      float64 `json:"current_drawdown"`
	SharpeRatio          float64 `json:"sharpe_ratio"` // mean/std, no risk-free adjustment
	VaR95                float64 `json:"var_95"`
	ExpectedShortfall95  float64 `json:"expected_shortfall_95"`
	Volatility           float64 `json:"volatility"`
	DownsideDeviation    float64 `json:"downside_deviation"`
}

// Risk computes risk-adjusted metrics. Requires at least two sessions.
func Risk(t *session.Table) (RiskMetrics, error) {
	if t.Len() < 2 {
		return RiskMetrics{}, ErrInsufficient("risk metrics", 2, t.Len())
	}

	pl := t.ProfitLoss
	cum := t.CumulativePL

	// Drawdown against the running maximum of cumulative P/L.
	runningMax := cum[0]
	maxDrawdown := 0.0
	currentDrawdown := 0.0
	for _, c := range cum {
		if c > runningMax {
			runningMax = c
		}
		dd := c - runningMax
		if dd < maxDrawdown {
			maxDrawdown = dd
		}
		currentDrawdown = dd
	}

	std := stats.StdDev(pl)
	sharpe := 0.0
	if std > 0 {
		sharpe = stats.Mean(pl) / std
	}

	var95 := stats.Percentile(pl, 5)
	var tail []float64
	for _, v := range pl {
		if v <= var95 {
			tail = append(tail, v)
		}
	}

	var losses []float64
	for _, v := range pl {
		if v < 0 {
			losses = append(losses, v)
		}
	}

	return RiskMetrics{
		MaxDrawdown:         maxDrawdown,
		CurrentDrawdown:     currentDrawdown,
		SharpeRatio:         sharpe,
		VaR95:               var95,
		ExpectedShortfall95: stats.Mean(tail),
		Volatility:          std,
		DownsideDeviation:   stats.StdDev(losses),
	}, nil
}
