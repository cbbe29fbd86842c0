package analytics

import (
	"fmt"

	"github.com/TeamCinco/Poker-Analysis/internal/session"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// StreakStats describes consecutive-win and consecutive-loss runs.
// Break-even sessions count as neither and terminate both kinds of run.
type StreakStats struct {
	MaxWinStreak  int     `json:"max_win_streak"`
	MaxLossStreak int     `json:"max_loss_streak"`
	AvgWinStreak  float64 `json:"avg_win_streak"`
	AvgLossStreak float64 `json:"avg_loss_streak"`
	CurrentStreak string  `json:"current_streak"`
}

// Streaks computes run-length statistics over the profit/loss column.
func Streaks(t *session.Table) StreakStats {
	if t.Empty() {
		return StreakStats{CurrentStreak: "No sessions"}
	}

	pl := t.ProfitLoss
	winRuns := runLengths(pl, func(v float64) bool { return v > 0 })
	lossRuns := runLengths(pl, func(v float64) bool { return v < 0 })

	return StreakStats{
		MaxWinStreak:  maxRun(winRuns),
		MaxLossStreak: maxRun(lossRuns),
		AvgWinStreak:  stats.Mean(winRuns),
		AvgLossStreak: stats.Mean(lossRuns),
		CurrentStreak: currentStreak(pl),
	}
}

// runLengths collects the lengths of maximal runs matching the predicate.
func runLengths(pl []float64, match func(float64) bool) []float64 {
	var runs []float64
	current := 0
	for _, v := range pl {
		if match(v) {
			current++
			continue
		}
		if current > 0 {
			runs = append(runs, float64(current))
		}
		current = 0
	}
	if current > 0 {
		runs = append(runs, float64(current))
	}
	return runs
}

func maxRun(runs []float64) int {
	max := 0
	for _, r := range runs {
		if int(r) > max {
			max = int(r)
		}
	}
	return max
}

// currentStreak measures the run in progress backward from the most
// recent session. The streak type is keyed off the latest result; a
// break-even most-recent session yields a zero-length losing streak.
func currentStreak(pl []float64) string {
	last := pl[len(pl)-1]
	kind := "losing"
	if last > 0 {
		kind = "winning"
	}
	count := 0
	for i := len(pl) - 1; i >= 0; i-- {
		v := pl[i]
		if (kind == "winning" && v > 0) || (kind == "losing" && v < 0) {
			count++
			continue
		}
		break
	}
	return fmt.Sprintf("%d session %s streak", count, kind)
}
