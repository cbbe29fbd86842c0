package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TeamCinco/Poker-Analysis/internal/infrastructure/db"
	httpapi "github.com/TeamCinco/Poker-Analysis/internal/interfaces/http"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence"
	"github.com/TeamCinco/Poker-Analysis/internal/persistence/cache"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics report API",
		Long: `Serves the JSON report API with Prometheus metrics on /metrics.
Reports are cached in Redis when configured; the cache fails open.`,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address override")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	sessions, closeSessions, err := openSessions(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	// Score history persists only with the database backend.
	var scores persistence.ScoreRepo
	if cfg.Database.Enabled {
		manager, err := db.NewManager(cfg.Database)
		if err != nil {
			log.Warn().Err(err).Msg("score persistence unavailable")
		} else if repos := manager.Repos(); repos != nil {
			scores = repos.Scores
			defer manager.Close()
		}
	}

	var reportCache *cache.ReportCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		reportCache = cache.New(client, cfg.Redis.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("report cache enabled")
	}

	metrics := httpapi.NewMetricsRegistry()
	server := httpapi.NewServer(cfg.Server, sessions, scores,
		newReportBuilder(cfg), reportCache, metrics, version)

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
