package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/decay"
	"github.com/TeamCinco/Poker-Analysis/internal/forecast"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

func newDecayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decay",
		Short: "Alpha-decay detection and composite score",
		Long: `Runs the rolling-performance, trend, regime, and volatility
detectors and composes them into a 0-100 decay score with a
recommendation tier. All detectors must have enough sessions; otherwise
the insufficient-data condition is reported as a whole.`,
	}
	cmd.Flags().Bool("full", false, "Include every detector's output, not just the score")

	cmd.RunE = analysisRunner(func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error) {
		an := decay.NewAnalyzerWithWindows(t,
			cfg.Analysis.RollingWindows, cfg.Analysis.ShortMAWindow, cfg.Analysis.LongMAWindow)

		full, _ := cmd.Flags().GetBool("full")
		if !full {
			return insufficientAsResult(an.Score())
		}

		return map[string]interface{}{
			"rolling_performance": firstValue(an.RollingPerformance()),
			"trends":              firstValue(an.Trends()),
			"regime":              firstValue(an.Regime()),
			"volatility":          firstValue(an.Volatility()),
			"alpha_decay":         firstValue(an.Score()),
		}, nil
	})
	return cmd
}

func newForecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Monte Carlo projection and Kelly stake sizing",
	}
	cmd.Flags().Int("simulations", 0, "Number of simulation runs (default from config)")
	cmd.Flags().Int("sessions-ahead", 0, "Sessions to project forward (default from config)")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible runs")

	cmd.RunE = analysisRunner(func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error) {
		sims, _ := cmd.Flags().GetInt("simulations")
		ahead, _ := cmd.Flags().GetInt("sessions-ahead")
		seed, _ := cmd.Flags().GetInt64("seed")
		if sims > 0 {
			cfg.Forecast.Simulations = sims
		}
		if ahead > 0 {
			cfg.Forecast.SessionsAhead = ahead
		}
		if seed != 0 {
			cfg.Forecast.Seed = seed
		}

		eng := forecast.NewEngine(t, forecastSeed(cfg))
		mc, err := eng.MonteCarlo(cfg.Forecast.Simulations, cfg.Forecast.SessionsAhead)
		out := map[string]interface{}{"kelly": forecast.Kelly(t)}
		if err != nil {
			return insufficientMonteCarlo(out, err)
		}
		out["monte_carlo"] = mc
		return out, nil
	})
	return cmd
}

func insufficientMonteCarlo(out map[string]interface{}, err error) (interface{}, error) {
	var insufficient *analytics.InsufficientDataError
	if !errors.As(err, &insufficient) {
		return nil, err
	}
	out["monte_carlo"] = map[string]interface{}{
		"error":        insufficient.Error(),
		"min_sessions": insufficient.Required,
	}
	return out, nil
}

// insufficientAsResult converts the tagged insufficient-data error into
// the uniform {"error", "min_sessions"} payload instead of failing the
// command.
func insufficientAsResult(result interface{}, err error) (interface{}, error) {
	if err == nil {
		return result, nil
	}
	var insufficient *analytics.InsufficientDataError
	if errors.As(err, &insufficient) {
		return map[string]interface{}{
			"error":        insufficient.Error(),
			"min_sessions": insufficient.Required,
		}, nil
	}
	return nil, err
}

func firstValue(result interface{}, err error) interface{} {
	v, _ := insufficientAsResult(result, err)
	return v
}

func forecastSeed(cfg *config.Config) int64 {
	if cfg.Forecast.Seed != 0 {
		return cfg.Forecast.Seed
	}
	return time.Now().UnixNano()
}
