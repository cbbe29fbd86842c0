// Package decay detects deterioration of a player's statistical edge
// ("alpha decay") by comparing recent rolling-window performance against
// history, regressing metrics over time, and watching moving-average
// regime crossovers. The composite scorer folds the individual detectors
// into a single 0-100 severity score.
package decay

import (
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// Default analysis parameters, matching the windows the scorer's weights
// were tuned against.
const (
	DefaultShortMAWindow = 5
	DefaultLongMAWindow  = 15
)

// DefaultWindows are the rolling lookback periods used when none are
// configured.
var DefaultWindows = []int{10, 20, 50}

// Analyzer runs the decay detectors against one session table. It holds
// no mutable state: every method is a pure function of the table and the
// configured windows.
type Analyzer struct {
	table   *session.Table
	windows []int
	shortMA int
	longMA  int
}

// NewAnalyzer builds an analyzer with the default windows.
func NewAnalyzer(t *session.Table) *Analyzer {
	return NewAnalyzerWithWindows(t, DefaultWindows, DefaultShortMAWindow, DefaultLongMAWindow)
}

// NewAnalyzerWithWindows builds an analyzer with explicit rolling windows
// and moving-average spans.
func NewAnalyzerWithWindows(t *session.Table, windows []int, shortMA, longMA int) *Analyzer {
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	if shortMA <= 0 {
		shortMA = DefaultShortMAWindow
	}
	if longMA <= shortMA {
		longMA = DefaultLongMAWindow
	}
	ws := make([]int, len(windows))
	copy(ws, windows)
	return &Analyzer{table: t, windows: ws, shortMA: shortMA, longMA: longMA}
}

// maxWindow returns the largest configured rolling window.
func (a *Analyzer) maxWindow() int {
	max := 0
	for _, w := range a.windows {
		if w > max {
			max = w
		}
	}
	return max
}
