package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"jokes-fetcher/internal/aggregator"
	"jokes-fetcher/internal/api"
	"jokes-fetcher/internal/bot"
	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/database"
	"jokes-fetcher/internal/providers"
	"jokes-fetcher/internal/queue"
	"jokes-fetcher/internal/scheduler"
	"jokes-fetcher/internal/service"
	"jokes-fetcher/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrEmptyDBPassword) {
			fmt.Fprintln(os.Stderr, "Error: DB_PASSWORD environment variable is required")
		} else if errors.Is(err, config.ErrEmptyBotToken) {
			fmt.Fprintln(os.Stderr, "Error: BOT_TOKEN environment variable is required when BOT_ENABLED=true")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}
		os.Exit(1)
	}

	logger.Init(cfg.App.LogLevel, nil)
	logger.Info("Starting jokes-fetcher",
		logger.String("app", cfg.App.Name),
		logger.String("environment", cfg.App.Environment),
	)

	if err := run(cfg); err != nil {
		logger.Error("Application error", logger.Err(err))
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		var dbErr *database.ConnectionError
		if errors.As(err, &dbErr) {
			logger.Error("Failed to connect to database",
				logger.Err(dbErr),
				logger.String("host", cfg.Database.Host),
				logger.Int("port", cfg.Database.Port),
			)
		}
		return err
	}
	defer db.Close()
	logger.Info("Connected to database")

	pool := providers.All(cfg.Providers)
	agg := aggregator.New(pool, aggregator.WithConcurrency(cfg.Providers.Concurrency))
	logger.Info("Providers configured", logger.Int("count", len(pool)))

	opts := []service.Option{service.WithDefaultCount(cfg.Retrieve.DefaultCount)}
	if cfg.NATS.Enabled {
		q, err := queue.New(cfg.NATS)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer q.Close()
		opts = append(opts, service.WithPublisher(q))
		logger.Info("Connected to NATS", logger.String("url", cfg.NATS.URL))
	}

	svc := service.NewJokeService(agg, database.NewJokeRepository(db), db, opts...)

	var telegramBot *bot.Bot
	if cfg.Bot.Enabled {
		if telegramBot, err = bot.New(cfg.Bot, svc); err != nil {
			return err
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Address(),
		Handler:      api.NewRouter(svc),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", logger.String("address", cfg.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down HTTP server", logger.Err(err))
		}
		return nil
	})

	if cfg.Scheduler.Enabled {
		g.Go(func() error {
			return scheduler.New(svc, cfg.Scheduler).Start(gCtx)
		})
	}

	if telegramBot != nil {
		g.Go(func() error {
			return telegramBot.Start(gCtx)
		})
	}

	return g.Wait()
}
