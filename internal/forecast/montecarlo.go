// Package forecast projects future bankroll outcomes: a Monte Carlo
// simulation of cumulative profit/loss and a Kelly-criterion stake
// fraction. Session outcomes are modeled i.i.d. normal with the
// empirical mean and standard deviation; that independence assumption is
// part of the model, not an accident.
package forecast

import (
	"math/rand"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
	"github.com/TeamCinco/Poker-Analysis/internal/stats"
)

// Simulation parameter defaults.
const (
	DefaultSimulations   = 1000
	DefaultSessionsAhead = 100
)

// MonteCarloResult summarizes the simulated final-P/L distribution.
type MonteCarloResult struct {
	MeanExpectedPL   float64 `json:"mean_expected_pl"`
	MedianExpectedPL float64 `json:"median_expected_pl"`
	StdExpectedPL    float64 `json:"std_expected_pl"`
	ProbProfit       float64 `json:"prob_profit"` // percent of runs ending net positive
	Percentile5      float64 `json:"percentile_5"`
	Percentile95     float64 `json:"percentile_95"`
	SessionsAhead    int     `json:"sessions_simulated"`
	Simulations      int     `json:"simulations_run"`
}

// Engine runs forecasts against one session table with an injectable
// random source so tests can pin the seed.
type Engine struct {
	table *session.Table
	rng   *rand.Rand
}

// NewEngine builds a forecast engine seeded from the given value.
// Identical seeds and inputs produce identical forecasts.
func NewEngine(t *session.Table, seed int64) *Engine {
	return &Engine{table: t, rng: rand.New(rand.NewSource(seed))}
}

// MonteCarlo simulates sessionsAhead future sessions simulations times,
// drawing i.i.d. normal outcomes from the historical mean and standard
// deviation. Requires at least two sessions for a defined deviation.
func (e *Engine) MonteCarlo(simulations, sessionsAhead int) (MonteCarloResult, error) {
	if e.table.Len() < 2 {
		return MonteCarloResult{}, analytics.ErrInsufficient("monte carlo simulation", 2, e.table.Len())
	}
	if simulations <= 0 {
		simulations = DefaultSimulations
	}
	if sessionsAhead <= 0 {
		sessionsAhead = DefaultSessionsAhead
	}

	pl := e.table.ProfitLoss
	mean := stats.Mean(pl)
	std := stats.StdDev(pl)

	finals := make([]float64, simulations)
	profitable := 0
	for i := 0; i < simulations; i++ {
		total := 0.0
		for j := 0; j < sessionsAhead; j++ {
			total += e.rng.NormFloat64()*std + mean
		}
		finals[i] = total
		if total > 0 {
			profitable++
		}
	}

	return MonteCarloResult{
		MeanExpectedPL:   stats.Mean(finals),
		MedianExpectedPL: stats.Median(finals),
		StdExpectedPL:    stats.StdDev(finals),
		ProbProfit:       float64(profitable) / float64(simulations) * 100,
		Percentile5:      stats.Percentile(finals, 5),
		Percentile95:     stats.Percentile(finals, 95),
		SessionsAhead:    sessionsAhead,
		Simulations:      simulations,
	}, nil
}
