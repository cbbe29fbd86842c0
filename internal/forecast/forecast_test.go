package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

func tableOf(t *testing.T, pls []float64) *session.Table {
	t.Helper()
	records := make([]session.Record, len(pls))
	base := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	for i, pl := range pls {
		records[i] = session.NewRecord(base.AddDate(0, 0, i), 100, 100+pl, 0, "")
	}
	return session.NewTable(records)
}

func TestKellyEvenMoney(t *testing.T) {
	// 50% win rate at 2:1 payoff: f = (2*0.5 - 0.5) / 2 = 0.25.
	table := tableOf(t, []float64{10, 10, -5, -5})
	result := Kelly(table)

	assert.InDelta(t, 0.25, result.Fraction, 1e-12)
	assert.InDelta(t, 0.5, result.WinRate, 1e-12)
	assert.InDelta(t, 10, result.AvgWin, 1e-12)
	assert.InDelta(t, 5, result.AvgLoss, 1e-12)
	assert.InDelta(t, 2, result.PayoffRatio, 1e-12)
}

func TestKellyNegativeEdgeFloorsAtZero(t *testing.T) {
	table := tableOf(t, []float64{5, -50, -50, -50})
	result := Kelly(table)
	assert.Equal(t, 0.0, result.Fraction)
}

func TestKellyNoLosses(t *testing.T) {
	table := tableOf(t, []float64{10, 20, 30})
	assert.Equal(t, KellyResult{}, Kelly(table))
}

func TestKellyNoWins(t *testing.T) {
	table := tableOf(t, []float64{-10, -20})
	assert.Equal(t, KellyResult{}, Kelly(table))
}

func TestMonteCarloGate(t *testing.T) {
	e := NewEngine(tableOf(t, []float64{10}), 1)
	_, err := e.MonteCarlo(100, 10)

	var insufficient *analytics.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Required)
	assert.Equal(t, 1, insufficient.Have)
}

func TestMonteCarloDeterministicWithSeed(t *testing.T) {
	pls := []float64{25, -10, 40, -15, 30, 5, -20, 35}

	first, err := NewEngine(tableOf(t, pls), 42).MonteCarlo(500, 50)
	require.NoError(t, err)
	second, err := NewEngine(tableOf(t, pls), 42).MonteCarlo(500, 50)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMonteCarloDistributionShape(t *testing.T) {
	// Strong positive expectancy with modest variance: nearly every
	// 100-session run should finish profitable.
	pls := []float64{50, 40, 60, 45, 55, 50, 48, 52}
	result, err := NewEngine(tableOf(t, pls), 7).MonteCarlo(2000, 100)
	require.NoError(t, err)

	assert.Equal(t, 2000, result.Simulations)
	assert.Equal(t, 100, result.SessionsAhead)
	assert.Greater(t, result.ProbProfit, 99.0)
	assert.Greater(t, result.MeanExpectedPL, 0.0)
	assert.Less(t, result.Percentile5, result.Percentile95)
	assert.Greater(t, result.StdExpectedPL, 0.0)
}

func TestMonteCarloDefaults(t *testing.T) {
	result, err := NewEngine(tableOf(t, []float64{10, -5, 20}), 3).MonteCarlo(0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulations, result.Simulations)
	assert.Equal(t, DefaultSessionsAhead, result.SessionsAhead)
}
