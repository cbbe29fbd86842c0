package decay

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// RollingSeries carries the full per-window rolling series so callers can
// plot them. Positions before the window is populated hold NaN in memory
// and serialize as null, keeping every entry aligned with its session
// index (JSON has no NaN).
type RollingSeries struct {
	Mean    []float64 `json:"mean"`
	Sharpe  []float64 `json:"sharpe"`
	WinRate []float64 `json:"winrate"`
}

// MarshalJSON renders NaN positions as null without shifting indices.
func (s RollingSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mean    []*float64 `json:"mean"`
		Sharpe  []*float64 `json:"sharpe"`
		WinRate []*float64 `json:"winrate"`
	}{
		Mean:    nullNaN(s.Mean),
		Sharpe:  nullNaN(s.Sharpe),
		WinRate: nullNaN(s.WinRate),
	})
}

func nullNaN(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i, x := range xs {
		if !math.IsNaN(x) {
			v := x
			out[i] = &v
		}
	}
	return out
}

// WindowPerformance compares the most recent rolling value against the
// historical baseline (the mean of all rolling values excluding the
// trailing window). Deterioration is negative when recent performance is
// worse than history; win-rate deterioration is an absolute
// percentage-point difference.
type WindowPerformance struct {
	Window                 int           `json:"window"`
	CurrentAvgPL           float64       `json:"current_avg_pl"`
	HistoricalAvgPL        float64       `json:"historical_avg_pl"`
	PLDeterioration        float64       `json:"pl_deterioration"`
	CurrentSharpe          float64       `json:"current_sharpe"`
	HistoricalSharpe       float64       `json:"historical_sharpe"`
	SharpeDeterioration    float64       `json:"sharpe_deterioration"`
	CurrentWinRate         float64       `json:"current_winrate"`
	HistoricalWinRate      float64       `json:"historical_winrate"`
	WinRateDeterioration   float64       `json:"winrate_deterioration"`
	Series                 RollingSeries `json:"rolling_series"`
}

// RollingResult maps "<n>_session" keys to per-window comparisons.
type RollingResult map[string]WindowPerformance

// RollingPerformance analyzes performance over each configured rolling
// window. Requires at least max(windows) sessions.
func (a *Analyzer) RollingPerformance() (RollingResult, error) {
	n := a.table.Len()
	need := a.maxWindow()
	if n < need {
		return nil, analytics.ErrInsufficient("rolling performance analysis", need, n)
	}

	pl := a.table.ProfitLoss
	winIndicator := make([]float64, n)
	for i, v := range pl {
		if v > 0 {
			winIndicator[i] = 100
		}
	}

	result := make(RollingResult, len(a.windows))
	for _, w := range a.windows {
		rollMean := stats.RollingMean(pl, w)
		rollStd := stats.RollingStd(pl, w)
		rollWin := stats.RollingMean(winIndicator, w)

		rollSharpe := make([]float64, n)
		for i := range rollMean {
			switch {
			case math.IsNaN(rollMean[i]) || math.IsNaN(rollStd[i]):
				rollSharpe[i] = math.NaN()
			case rollStd[i] == 0:
				rollSharpe[i] = 0
			default:
				rollSharpe[i] = rollMean[i] / rollStd[i]
			}
		}

		// Historical baseline: every rolling value except the ones that
		// overlap the trailing w sessions.
		hist := n - w
		perf := WindowPerformance{
			Window:  w,
			Series:  RollingSeries{Mean: rollMean, Sharpe: rollSharpe, WinRate: rollWin},
		}
		perf.CurrentAvgPL = rollMean[n-1]
		perf.HistoricalAvgPL = zeroIfNaN(stats.NaNMean(rollMean[:hist]))
		perf.PLDeterioration = relativeChange(perf.CurrentAvgPL, perf.HistoricalAvgPL)

		perf.CurrentSharpe = rollSharpe[n-1]
		perf.HistoricalSharpe = zeroIfNaN(stats.NaNMean(rollSharpe[:hist]))
		perf.SharpeDeterioration = relativeChange(perf.CurrentSharpe, perf.HistoricalSharpe)

		perf.CurrentWinRate = rollWin[n-1]
		perf.HistoricalWinRate = zeroIfNaN(stats.NaNMean(rollWin[:hist]))
		perf.WinRateDeterioration = perf.CurrentWinRate - perf.HistoricalWinRate

		result[fmt.Sprintf("%d_session", w)] = perf
	}
	return result, nil
}

// relativeChange expresses current against historical as a percentage.
// A zero (or empty) historical baseline yields 0 rather than a blow-up.
func relativeChange(current, historical float64) float64 {
	if historical == 0 {
		return 0
	}
	return (current - historical) / math.Abs(historical) * 100
}

func zeroIfNaN(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}
