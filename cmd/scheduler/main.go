package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	leadrepo "leadbot_backend/internal/leads/repository"
	"leadbot_backend/internal/reminder"
	"leadbot_backend/internal/whatsapp"
	"leadbot_backend/platform/config"
	"leadbot_backend/platform/db"
	"leadbot_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	sender := whatsapp.NewClient(cfg, log)
	if sender == nil {
		log.Warn("WHATSAPP_URL not configured; reminder nudges will be dropped")
	}

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		log.Error("invalid business timezone", "timezone", cfg.BusinessTimezone, "error", err)
		panic("invalid business timezone: " + err.Error())
	}

	window := reminder.ActiveWindow{
		Start: cfg.BusinessHoursStart,
		End:   cfg.BusinessHoursEnd,
		Loc:   loc,
	}

	sweeper := reminder.NewSweeper(leadrepo.New(pool), sender, cfg.ReminderTiers, window, log)

	client, err := reminder.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder client", "error", err)
		panic("failed to initialize reminder client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	dispatcher := reminder.NewDispatcher(client, cfg.SweepInterval, log)
	go dispatcher.Run(ctx)

	worker, err := reminder.NewWorker(cfg, sweeper, log)
	if err != nil {
		log.Error("failed to initialize reminder worker", "error", err)
		panic("failed to initialize reminder worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
