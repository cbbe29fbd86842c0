package main

import (
	"github.com/spf13/cobra"

	"github.com/TeamCinco/Poker-Analysis/internal/analytics"
	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// analysisRunner loads sessions, derives the table, and hands both to fn
// for one analysis command.
func analysisRunner(fn func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		repo, closeRepo, err := openSessions(cmd, cfg)
		if err != nil {
			return err
		}
		defer closeRepo()

		records, err := repo.List(cmd.Context())
		if err != nil {
			return err
		}

		result, err := fn(cfg, records, session.NewTable(records))
		if err != nil {
			return err
		}
		return printJSON(result)
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Distributional summary and lifetime bankroll totals",
		RunE: analysisRunner(func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error) {
			return map[string]interface{}{
				"basic_stats":           analytics.Basic(t),
				"bankroll":              analytics.Bankroll(records),
				"performance_by_period": analytics.PerformanceByPeriod(t),
			}, nil
		}),
	}
}

func newRiskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "risk",
		Short: "Drawdown, Sharpe, VaR, and expected shortfall",
		RunE: analysisRunner(func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error) {
			return analytics.Risk(t)
		}),
	}
}

func newStreaksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Win and loss streak statistics",
		RunE: analysisRunner(func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error) {
			return analytics.Streaks(t), nil
		}),
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Full analytics report, every section",
		RunE: analysisRunner(func(cfg *config.Config, records []session.Record, t *session.Table) (interface{}, error) {
			return newReportBuilder(cfg).Build(records), nil
		}),
	}
}
