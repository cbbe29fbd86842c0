package decay

import (
	"math"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// Trend direction and significance labels.
const (
	TrendImproving     = "Improving"
	TrendDeteriorating = "Deteriorating"

	SignificanceHigh     = "Highly Significant"
	SignificanceNormal   = "Significant"
	SignificanceMarginal = "Marginally Significant"
	SignificanceNone     = "Not Significant"
)

const minTrendSessions = 10

// MetricTrend is the regression of one metric against session number.
type MetricTrend struct {
	Slope          float64 `json:"slope"`
	RSquared       float64 `json:"r_squared"`
	PValue         float64 `json:"p_value"`
	TrendDirection string  `json:"trend_direction"`
	Significance   string  `json:"significance"`
	TrendStrength  float64 `json:"trend_strength"` // |r|
}

// TrendResult maps metric names (profit_loss, cumulative_pl, roi) to
// their fitted trends.
type TrendResult map[string]MetricTrend

// Trends regresses each tracked metric over the session index to
// classify direction and statistical significance. Requires at least 10
// sessions.
func (a *Analyzer) Trends() (TrendResult, error) {
	n := a.table.Len()
	if n < minTrendSessions {
		return nil, analytics.ErrInsufficient("trend analysis", minTrendSessions, n)
	}

	x := a.table.SessionIndex()
	metrics := map[string][]float64{
		"profit_loss":   a.table.ProfitLoss,
		"cumulative_pl": a.table.CumulativePL,
		"roi":           a.table.ROI,
	}

	result := make(TrendResult, len(metrics))
	for name, values := range metrics {
		reg := stats.Linregress(x, values)

		// A flat slope counts as deteriorating: no improvement is the
		// conservative read for an edge that should be growing.
		direction := TrendDeteriorating
		if reg.Slope > 0 {
			direction = TrendImproving
		}

		result[name] = MetricTrend{
			Slope:          reg.Slope,
			RSquared:       reg.RSquared,
			PValue:         reg.PValue,
			TrendDirection: direction,
			Significance:   classifySignificance(reg.PValue),
			TrendStrength:  math.Abs(reg.R),
		}
	}
	return result, nil
}

func classifySignificance(p float64) string {
	switch {
	case p < 0.01:
		return SignificanceHigh
	case p < 0.05:
		return SignificanceNormal
	case p < 0.10:
		return SignificanceMarginal
	default:
		return SignificanceNone
	}
}
