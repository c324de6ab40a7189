package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

// ReminderKey is the dedup key for the daily expense-logging reminder.
const ReminderKey = "last_daily_reminder"

// Sender is the outbound-message transport collaborator. The engine
// decides whether and what to send; the sender decides how.
type Sender interface {
	Send(ctx context.Context, subject, body string, html bool) error
}

// Engine evaluates budgets against their limits and gates every
// notification behind a per-key per-day dedup record. A mutex serializes
// evaluation passes; check-then-mark is not atomic so two concurrent
// passes over the same state store could double-send.
type Engine struct {
	mu       sync.Mutex
	repo     *storage.Repository
	sender   Sender
	currency string
	now      func() time.Time
}

func NewEngine(repo *storage.Repository, sender Sender, currencySymbol string) *Engine {
	return &Engine{
		repo:     repo,
		sender:   sender,
		currency: currencySymbol,
		now:      time.Now,
	}
}

func budgetAlertKey(category string, day core.Date) string {
	return fmt.Sprintf("budget_alert_%s_%s", category, day)
}

// CheckBudgets evaluates every configured budget for the current month and
// dispatches at most one alert per category per calendar day. Categories
// are evaluated independently: a dispatch failure or an already-sent key
// never stops the rest of the batch. Returns how many alerts were sent.
func (e *Engine) CheckBudgets(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	today := core.DateOf(now)

	statuses, err := e.repo.BudgetStatuses(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return 0, fmt.Errorf("load budget statuses: %w", err)
	}

	sent := 0
	for _, status := range statuses {
		a, ok := Classify(status)
		if !ok {
			continue
		}

		key := budgetAlertKey(a.Category, today)
		last, found, err := e.repo.LastSent(ctx, key)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to read notification state",
				"key", key, "error", err)
			continue
		}
		if found && last.String() == today.String() {
			slog.DebugContext(ctx, "Budget alert already sent today",
				"category", a.Category, "type", a.Type)
			continue
		}

		subject, body := budgetAlertEmail(a, e.currency)
		if err := e.sender.Send(ctx, subject, body, true); err != nil {
			// Key stays unmarked so a later check can retry today.
			slog.ErrorContext(ctx, "Budget alert dispatch failed",
				"category", a.Category, "type", a.Type, "error", err)
			continue
		}

		if err := e.repo.MarkSent(ctx, key, today); err != nil {
			slog.ErrorContext(ctx, "Failed to mark alert sent",
				"key", key, "error", err)
		}

		slog.InfoContext(ctx, "Budget alert sent",
			"category", a.Category,
			"type", a.Type,
			"percentage", a.Percentage)
		sent++
	}

	return sent, nil
}

// SendDailyReminder dispatches the daily expense-logging reminder at most
// once per calendar day. Reports whether a reminder went out.
func (e *Engine) SendDailyReminder(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	today := core.DateOf(now)

	last, found, err := e.repo.LastSent(ctx, ReminderKey)
	if err != nil {
		return false, fmt.Errorf("read reminder state: %w", err)
	}
	if found && last.String() == today.String() {
		slog.DebugContext(ctx, "Daily reminder already sent today")
		return false, nil
	}

	summary, err := e.repo.MonthlySummary(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return false, fmt.Errorf("load monthly summary: %w", err)
	}

	todayTxs, err := e.repo.ListTransactions(ctx, storage.TransactionFilter{Start: today, End: today})
	if err != nil {
		return false, fmt.Errorf("load today's transactions: %w", err)
	}
	spentToday := 0.0
	for _, tx := range todayTxs {
		if tx.Type == core.Expense {
			spentToday += tx.Amount
		}
	}

	subject, body := dailyReminderEmail(now, summary, len(todayTxs), spentToday, e.currency)
	if err := e.sender.Send(ctx, subject, body, true); err != nil {
		return false, fmt.Errorf("dispatch daily reminder: %w", err)
	}

	if err := e.repo.MarkSent(ctx, ReminderKey, today); err != nil {
		slog.ErrorContext(ctx, "Failed to mark reminder sent", "error", err)
	}

	slog.InfoContext(ctx, "Daily reminder sent", "date", today.String())
	return true, nil
}

// Run performs one full scheduled pass: the daily reminder followed by the
// budget checks. Both legs are deduped, so the pass is idempotent however
// often the scheduler invokes it within a day.
func (e *Engine) Run(ctx context.Context) error {
	if _, err := e.SendDailyReminder(ctx); err != nil {
		slog.ErrorContext(ctx, "Daily reminder pass failed", "error", err)
	}

	sent, err := e.CheckBudgets(ctx)
	if err != nil {
		return fmt.Errorf("budget check pass: %w", err)
	}
	if sent > 0 {
		slog.InfoContext(ctx, "Budget check pass complete", "alerts_sent", sent)
	}
	return nil
}
