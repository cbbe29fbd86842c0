package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TeamCinco/Poker-Analysis/internal/config"
	"github.com/TeamCinco/Poker-Analysis/internal/infrastructure/db"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence/file"
	"github.com/TeamCinco/Poker-Analysis/internal/report"
)

const (
	appName = "pokeranalysis"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Bankroll performance analytics for poker sessions",
		Version: version,
		Long: `Tracks poker sessions and analyzes bankroll health: distributional
statistics, drawdown and tail risk, streaks, rolling-window performance
comparison, trend regression, regime detection, alpha-decay scoring, and
Monte Carlo forecasting.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("store", "", "Session store override (file path or 'postgres')")

	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRiskCmd())
	rootCmd.AddCommand(newStreaksCmd())
	rootCmd.AddCommand(newDecayCmd())
	rootCmd.AddCommand(newForecastCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig resolves configuration from --config or defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openSessions opens the configured session store. The returned closer
// releases database resources when the postgres backend is active.
func openSessions(cmd *cobra.Command, cfg *config.Config) (persistence.SessionRepo, func(), error) {
	backend := cfg.Store.Backend
	path := cfg.Store.Path
	if override, _ := cmd.Flags().GetString("store"); override != "" {
		if override == "postgres" {
			backend = "postgres"
		} else {
			backend = "file"
			path = override
		}
	}

	switch backend {
	case "postgres":
		manager, err := db.NewManager(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repos := manager.Repos()
		if repos == nil {
			manager.Close()
			return nil, nil, fmt.Errorf("postgres store requires database.enabled: true")
		}
		return repos.Sessions, func() { manager.Close() }, nil
	default:
		store, err := file.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func newReportBuilder(cfg *config.Config) *report.Builder {
	return report.NewBuilder(cfg.Analysis, cfg.Forecast)
}
