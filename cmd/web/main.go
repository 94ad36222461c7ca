package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/config"
	"github.com/padelyzer/bracket-engine/internal/db"
	"github.com/padelyzer/bracket-engine/internal/metrics"
	"github.com/padelyzer/bracket-engine/internal/service"
	"github.com/padelyzer/bracket-engine/internal/store"
)

const shutdownTimeout = 15 * time.Second

func setupLogger(cfg *config.Config) {
	if cfg.IsProduction() {
		log.SetFormatter(log.JSONFormatter)
	}
	level, err := log.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", "err", err)
	}
	setupLogger(cfg)

	database, err := db.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "err", err)
	}
	defer database.Close()

	tournamentStore := store.NewTournamentStore(database)
	metricsSvc := metrics.NewService()

	router := newRouter(&app{
		db:             database,
		tournaments:    service.NewTournamentService(database, tournamentStore),
		brackets:       service.NewBracketService(database, tournamentStore, bracket.NewSeeder(nil), metricsSvc),
		matches:        service.NewMatchService(database, tournamentStore, metricsSvc),
		defaultSeeding: bracket.SeedingMethod(cfg.Brackets.DefaultSeeding),
		metricsHandler: metrics.NewMetricsHandler(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server", "name", cfg.App.Name, "port", cfg.App.Port, "environment", cfg.App.Environment)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server terminated with error", "err", err)
		os.Exit(1)
	}
}
