package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/statsmock/internal/config"
	server "github.com/mauv0809/statsmock/internal/http"
	"github.com/mauv0809/statsmock/internal/metrics"
	"github.com/mauv0809/statsmock/internal/stats"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	cfg := config.Load()
	cfg.ApplyLogging()

	mockCfg, err := config.LoadMock(cfg.MockConfigPath)
	if err != nil {
		log.Fatalf("Failed to load mock configuration: %s", err)
	}
	snapshot, err := stats.Synthesize(mockCfg, stats.WithToday(cfg.TodayOr(time.Now())))
	if err != nil {
		log.Fatalf("Failed to synthesize mock data: %s", err)
	}
	synthDuration := time.Since(startTime)
	log.Info("Mock data synthesis time recorded", "duration_ms", synthDuration.Milliseconds())

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counts := snapshot.Counts()
	metricsSvc.SetEntityCount(metrics.KindUsers, counts.Users)
	metricsSvc.SetEntityCount(metrics.KindGames, counts.Games)
	metricsSvc.SetEntityCount(metrics.KindTournaments, counts.Tournaments)

	s := server.NewServer(snapshot, metricsSvc, metricsHandler)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "current_user", snapshot.CurrentUser())
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
