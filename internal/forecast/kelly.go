package forecast

import (
	"math"

	"github.com/TeamCinco/Poker-Analysis/internal/session"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// KellyResult is the Kelly-criterion optimal stake fraction together
// with the inputs that produced it. Fraction is floored at zero: a
// negative edge never recommends a negative stake.
type KellyResult struct {
	Fraction    float64 `json:"kelly_fraction"`
	WinRate     float64 `json:"win_rate"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"` // absolute value
	PayoffRatio float64 `json:"payoff_ratio"`
}

// Kelly computes the optimal fractional-bankroll stake from historical
// win probability and payoff ratio. It needs at least one winning and
// one losing session; otherwise the fraction is 0.
func Kelly(t *session.Table) KellyResult {
	var wins, losses []float64
	for _, v := range t.ProfitLoss {
		if v > 0 {
			wins = append(wins, v)
		} else if v < 0 {
			losses = append(losses, v)
		}
	}
	if len(wins) == 0 || len(losses) == 0 || t.Len() == 0 {
		return KellyResult{}
	}

	p := float64(len(wins)) / float64(t.Len())
	avgWin := stats.Mean(wins)
	avgLoss := math.Abs(stats.Mean(losses))
	if avgLoss == 0 {
		return KellyResult{WinRate: p, AvgWin: avgWin}
	}

	b := avgWin / avgLoss
	q := 1 - p
	fraction := (b*p - q) / b

	return KellyResult{
		Fraction:    math.Max(0, fraction),
		WinRate:     p,
		AvgWin:      avgWin,
		AvgLoss:     avgLoss,
		PayoffRatio: b,
	}
}
