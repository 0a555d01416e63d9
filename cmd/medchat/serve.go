package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medchat/internal/auth"
	"medchat/internal/chat"
	"medchat/internal/config"
	"medchat/internal/db"
	"medchat/internal/jobs"
	"medchat/internal/metrics"
	"medchat/internal/server"
	"medchat/internal/store"
)

// serveCmd runs the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	r, err := loadResponder(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Key-value storage for sessions, chat history and pending codes
	var (
		kv             store.Storage
		sessionStorage fiber.Storage
		sweeper        jobs.Sweeper
	)
	if cfg.HasRedis() {
		rs := store.NewRedis(cfg.RedisURL)
		defer rs.Close()
		kv = rs
		sessionStorage = rs
		logger.Info("using redis storage")
	} else {
		mem := store.NewMemory()
		kv = mem
		sweeper = mem
		logger.Info("using in-memory storage")
	}

	// Reply outcome counters
	var (
		outcomes metrics.OutcomeStore
		pruner   jobs.OutcomePruner
		deps     server.Deps
	)
	if cfg.HasDatabase() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations completed successfully")

		outcomes = database
		pruner = database
		deps.DB = database
	} else {
		ms := metrics.NewMemoryStore()
		outcomes = ms
		pruner = ms
	}

	recorder := metrics.NewRecorder(outcomes, logger)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := recorder.Register(reg); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	deps.Chat = chat.NewService(kv, r, recorder, chat.Config{
		TTL:        cfg.SessionTTL,
		MaxHistory: cfg.MaxHistory,
	}, logger)
	deps.Auth = auth.NewService(kv, auth.LogSender{Logger: logger}, cfg.OTPTTL, logger)
	deps.Recorder = recorder
	deps.Gatherer = reg

	srv := server.New(cfg, logger, sessionStorage)
	srv.RegisterRoutes(deps)

	go jobs.NewPruner(pruner, sweeper, cfg.PruneInterval, cfg.OutcomeRetention, logger).Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	recorder.Wait()
	logger.Info("server exited")
	return nil
}
