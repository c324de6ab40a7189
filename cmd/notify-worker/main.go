package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cashtrack/internal/alert"
	"cashtrack/internal/amqp"
	"cashtrack/internal/config"
	applog "cashtrack/internal/log"
	"cashtrack/internal/notify"
	"cashtrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting notify-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		sender     alert.Sender
		amqpClient *amqp.Client
	)
	switch cfg.AlertSink {
	case "amqp":
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		sender = amqpClient
		logger.Info("Alert sink initialized", "sink", "amqp", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	case "smtp":
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword, cfg.SMTPTo)
		logger.Info("Alert sink initialized", "sink", "smtp", "host", cfg.SMTPHost, "to", cfg.SMTPTo)
	default:
		sender = notify.LogSender{}
		logger.Info("Alert sink initialized", "sink", "log")
	}

	engine := alert.NewEngine(repo, sender, cfg.CurrencySymbol)

	reminderAt, err := config.ParseClock(cfg.ReminderAt)
	if err != nil {
		logger.Error("Invalid reminder schedule", "error", err)
		os.Exit(1)
	}
	var budgetAt []config.Clock
	for _, at := range cfg.BudgetCheckAt {
		c, err := config.ParseClock(at)
		if err != nil {
			logger.Error("Invalid budget check schedule", "error", err)
			os.Exit(1)
		}
		budgetAt = append(budgetAt, c)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Catch up missed notifications on startup; dedup makes this idempotent.
	if cfg.RunOnStart {
		if err := engine.Run(ctx); err != nil {
			logger.Error("Startup notification pass failed", "error", err)
		}
	}

	g.Go(func() error {
		return runSchedule(ctx, logger, engine, reminderAt, budgetAt, cfg.TickInterval)
	})

	// When alerts flow through the broker and SMTP is configured, this
	// worker also drains the queue and delivers the messages by mail.
	if amqpClient != nil && cfg.SMTPFrom != "" && cfg.SMTPTo != "" {
		mailer := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword, cfg.SMTPTo)
		g.Go(func() error {
			logger.Info("Starting alert queue consumer")
			return amqpClient.ConsumeAlerts(ctx, func(ctx context.Context, msg *amqp.AlertMessage) error {
				return mailer.Send(ctx, msg.Subject, msg.Body, msg.HTML)
			})
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

// runSchedule ticks once per interval and fires the reminder and budget
// passes when the wall clock crosses their configured minutes. The engine
// dedups per day, so overlapping matches within a minute are harmless.
func runSchedule(ctx context.Context, logger *applog.Logger, engine *alert.Engine, reminderAt config.Clock, budgetAt []config.Clock, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if reminderAt.Matches(now) {
				if _, err := engine.SendDailyReminder(ctx); err != nil {
					logger.Error("Daily reminder pass failed", "error", err)
				}
			}
			for _, at := range budgetAt {
				if at.Matches(now) {
					if _, err := engine.CheckBudgets(ctx); err != nil {
						logger.Error("Budget check pass failed", "error", err)
					}
					break
				}
			}
		}
	}
}
