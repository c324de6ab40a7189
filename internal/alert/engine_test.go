package alert

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

type fakeSender struct {
	sent    []string // subjects, in dispatch order
	failFor string   // substring of subjects that must fail
}

func (f *fakeSender) Send(ctx context.Context, subject, body string, html bool) error {
	if f.failFor != "" && strings.Contains(subject, f.failFor) {
		return errors.New("transport down")
	}
	f.sent = append(f.sent, subject)
	return nil
}

func newTestEngine(t *testing.T, sender Sender, now time.Time) (*Engine, *storage.Repository) {
	t.Helper()
	repo, err := storage.New(filepath.Join(t.TempDir(), "cashtrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	e := NewEngine(repo, sender, "NT$")
	e.now = func() time.Time { return now }
	return e, repo
}

func seedExpense(t *testing.T, repo *storage.Repository, date, category string, amount float64) {
	t.Helper()
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if _, err := repo.AddTransaction(context.Background(), core.Transaction{
		Date: d, Type: core.Expense, Category: category, Amount: amount,
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
}

func TestCheckBudgetsDedupsPerDay(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	sender := &fakeSender{}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	if err := repo.SetBudget(ctx, "Food", 1000); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	seedExpense(t, repo, "2024-06-01", "Food", 500)
	seedExpense(t, repo, "2024-06-02", "Food", 400)

	sent, err := e.CheckBudgets(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("first check sent %d alerts (%d dispatches), want 1", sent, len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "WARNING") {
		t.Errorf("subject = %q, want a WARNING alert at 90%%", sender.sent[0])
	}

	// Same day: key is marked, nothing fires again.
	sent, err = e.CheckBudgets(ctx)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if sent != 0 || len(sender.sent) != 1 {
		t.Errorf("second check sent %d alerts (%d total), want 0", sent, len(sender.sent))
	}
}

func TestCheckBudgetsFiresAgainNextDay(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	sender := &fakeSender{}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	if err := repo.SetBudget(ctx, "Food", 1000); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	seedExpense(t, repo, "2024-06-01", "Food", 1500)

	if _, err := e.CheckBudgets(ctx); err != nil {
		t.Fatalf("check: %v", err)
	}

	// The key comparison is against the current date, so the state resets
	// implicitly at midnight.
	e.now = func() time.Time { return now.AddDate(0, 0, 1) }
	sent, err := e.CheckBudgets(ctx)
	if err != nil {
		t.Fatalf("next-day check: %v", err)
	}
	if sent != 1 || len(sender.sent) != 2 {
		t.Errorf("next-day check sent %d alerts (%d total), want 1 (2 total)", sent, len(sender.sent))
	}
}

func TestCheckBudgetsRetriesAfterDispatchFailure(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	sender := &fakeSender{failFor: "Food"}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	if err := repo.SetBudget(ctx, "Food", 1000); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	seedExpense(t, repo, "2024-06-01", "Food", 1200)

	sent, err := e.CheckBudgets(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if sent != 0 {
		t.Fatalf("sent = %d with failing transport, want 0", sent)
	}

	// The key was never marked, so a later check the same day succeeds.
	sender.failFor = ""
	sent, err = e.CheckBudgets(ctx)
	if err != nil {
		t.Fatalf("retry check: %v", err)
	}
	if sent != 1 || len(sender.sent) != 1 {
		t.Errorf("retry sent %d alerts (%d dispatches), want 1", sent, len(sender.sent))
	}
}

func TestCheckBudgetsEvaluatesCategoriesIndependently(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	sender := &fakeSender{failFor: "Bills"}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	if err := repo.SetBudget(ctx, "Bills", 100); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if err := repo.SetBudget(ctx, "Food", 1000); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	// Zero-limit budgets never alert however much was spent.
	if err := repo.SetBudget(ctx, "Entertainment", 0); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	seedExpense(t, repo, "2024-06-01", "Bills", 150)
	seedExpense(t, repo, "2024-06-01", "Food", 850)
	seedExpense(t, repo, "2024-06-01", "Entertainment", 400)

	sent, err := e.CheckBudgets(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	// Bills failed to dispatch, Food still got its warning.
	if sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("sent = %d (%d dispatches), want 1", sent, len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], "Food") {
		t.Errorf("dispatched subject = %q, want the Food warning", sender.sent[0])
	}
}

func TestSendDailyReminder(t *testing.T) {
	now := time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)
	sender := &fakeSender{}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	seedExpense(t, repo, "2024-06-12", "Food", 80)

	sent, err := e.SendDailyReminder(ctx)
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if !sent || len(sender.sent) != 1 {
		t.Fatalf("sent = %v (%d dispatches), want exactly one", sent, len(sender.sent))
	}

	// Stored date must now be today.
	last, ok, err := repo.LastSent(ctx, ReminderKey)
	if err != nil || !ok {
		t.Fatalf("LastSent = ok %v, err %v", ok, err)
	}
	if last.String() != "2024-06-12" {
		t.Errorf("stored date = %s, want 2024-06-12", last)
	}

	// Second check in the same day must not dispatch.
	sent, err = e.SendDailyReminder(ctx)
	if err != nil {
		t.Fatalf("second reminder: %v", err)
	}
	if sent || len(sender.sent) != 1 {
		t.Errorf("second reminder sent = %v (%d dispatches), want none", sent, len(sender.sent))
	}
}

func TestSendDailyReminderAfterYesterday(t *testing.T) {
	now := time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)
	sender := &fakeSender{}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	yesterday, _ := core.ParseDate("2024-06-11")
	if err := repo.MarkSent(ctx, ReminderKey, yesterday); err != nil {
		t.Fatalf("mark: %v", err)
	}

	sent, err := e.SendDailyReminder(ctx)
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if !sent || len(sender.sent) != 1 {
		t.Fatalf("sent = %v (%d dispatches), want exactly one", sent, len(sender.sent))
	}

	last, _, _ := repo.LastSent(ctx, ReminderKey)
	if last.String() != "2024-06-12" {
		t.Errorf("stored date = %s, want updated to 2024-06-12", last)
	}
}

func TestSendDailyReminderDispatchFailure(t *testing.T) {
	now := time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)
	sender := &fakeSender{failFor: "Reminder"}
	e, repo := newTestEngine(t, sender, now)
	ctx := context.Background()

	if _, err := e.SendDailyReminder(ctx); err == nil {
		t.Fatal("reminder error = nil with failing transport, want error")
	}

	// State stays unmarked for a same-day retry.
	if _, ok, _ := repo.LastSent(ctx, ReminderKey); ok {
		t.Error("reminder key marked despite dispatch failure")
	}
}
