package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

func newTestRepo(t *testing.T) *storage.Repository {
	t.Helper()

	repo, err := storage.New(filepath.Join(t.TempDir(), "cashtrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLedgerServiceRejectsInvalidTransaction(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLedgerService(repo)
	ctx := context.Background()

	tests := []struct {
		name string
		tx   core.Transaction
		want error
	}{
		{
			name: "zero amount",
			tx:   core.Transaction{Date: core.NewDate(2025, 3, 10), Type: core.Expense, Category: "Food", Amount: 0},
			want: core.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			tx:   core.Transaction{Date: core.NewDate(2025, 3, 10), Type: core.Expense, Category: "Food", Amount: -50},
			want: core.ErrInvalidAmount,
		},
		{
			name: "missing date",
			tx:   core.Transaction{Type: core.Expense, Category: "Food", Amount: 100},
			want: core.ErrInvalidDate,
		},
		{
			name: "bad type",
			tx:   core.Transaction{Date: core.NewDate(2025, 3, 10), Type: "Transfer", Category: "Food", Amount: 100},
			want: core.ErrInvalidType,
		},
		{
			name: "blank category",
			tx:   core.Transaction{Date: core.NewDate(2025, 3, 10), Type: core.Expense, Category: "  ", Amount: 100},
			want: core.ErrEmptyCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tt.tx); !errors.Is(err, tt.want) {
				t.Errorf("Add() error = %v, want %v", err, tt.want)
			}
		})
	}

	// A rejected mutation must leave the store untouched.
	got, err := svc.List(ctx, storage.TransactionFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() returned %d transactions after rejected writes, want 0", len(got))
	}
}

func TestLedgerServiceUpdateRejectedBeforeWrite(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLedgerService(repo)
	ctx := context.Background()

	id, err := svc.Add(ctx, core.Transaction{
		Date: core.NewDate(2025, 3, 10), Type: core.Expense, Category: "Food", Amount: 120,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	bad := core.Transaction{Date: core.NewDate(2025, 3, 11), Type: core.Expense, Category: "Food", Amount: -1}
	if err := svc.Update(ctx, id, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("Update() error = %v, want %v", err, core.ErrInvalidAmount)
	}

	got, err := svc.List(ctx, storage.TransactionFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Amount != 120 {
		t.Errorf("transaction changed after rejected update: %+v", got)
	}
}

func TestBudgetServiceSetValidates(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewBudgetService(repo)
	ctx := context.Background()

	if err := svc.Set(ctx, "", 1000); !errors.Is(err, core.ErrEmptyCategory) {
		t.Errorf("Set(empty category) error = %v, want %v", err, core.ErrEmptyCategory)
	}
	if err := svc.Set(ctx, "Food", -5); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("Set(negative limit) error = %v, want %v", err, core.ErrInvalidAmount)
	}

	// Zero is a legal limit: it disables alerting, not the budget row.
	if err := svc.Set(ctx, "Food", 0); err != nil {
		t.Fatalf("Set(zero limit) error = %v", err)
	}

	budgets, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(budgets) != 1 || budgets[0].LimitAmount != 0 {
		t.Errorf("List() = %+v, want single zero-limit Food budget", budgets)
	}
}

func TestSavingsServiceAddAmount(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSavingsService(repo)
	ctx := context.Background()

	id, err := svc.CreateGoal(ctx, core.SavingsGoal{Name: "Emergency fund", TargetAmount: 10000})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	if err := svc.AddAmount(ctx, id, 1500); err != nil {
		t.Fatalf("AddAmount() error = %v", err)
	}
	if err := svc.AddAmount(ctx, id, 500); err != nil {
		t.Fatalf("AddAmount() error = %v", err)
	}

	goals, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("List() returned %d goals, want 1", len(goals))
	}
	if goals[0].CurrentAmount != 2000 {
		t.Errorf("CurrentAmount = %v, want 2000", goals[0].CurrentAmount)
	}
}

func TestSavingsServiceAddAmountRejectsNonPositive(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSavingsService(repo)
	ctx := context.Background()

	id, err := svc.CreateGoal(ctx, core.SavingsGoal{Name: "Trip", TargetAmount: 3000})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	for _, delta := range []float64{0, -100} {
		if err := svc.AddAmount(ctx, id, delta); !errors.Is(err, core.ErrInvalidAmount) {
			t.Errorf("AddAmount(%v) error = %v, want %v", delta, err, core.ErrInvalidAmount)
		}
	}
}

func TestSavingsServiceAddAmountUnknownIDIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSavingsService(repo)
	ctx := context.Background()

	if err := svc.AddAmount(ctx, 999, 100); err != nil {
		t.Errorf("AddAmount(unknown id) error = %v, want nil", err)
	}
}

func TestSavingsServiceCreateGoalValidates(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSavingsService(repo)
	ctx := context.Background()

	tests := []struct {
		name string
		goal core.SavingsGoal
		want error
	}{
		{"empty name", core.SavingsGoal{TargetAmount: 1000}, core.ErrEmptyName},
		{"zero target", core.SavingsGoal{Name: "Car"}, core.ErrInvalidTarget},
		{"bad deadline", core.SavingsGoal{Name: "Car", TargetAmount: 1000, Deadline: "soon"}, core.ErrInvalidDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateGoal(ctx, tt.goal); !errors.Is(err, tt.want) {
				t.Errorf("CreateGoal() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReportServicePeriodResolution(t *testing.T) {
	repo := newTestRepo(t)
	ledger := NewLedgerService(repo)
	reports := NewReportService(repo)
	ctx := context.Background()

	seed := []struct {
		date   core.Date
		amount float64
	}{
		{core.NewDate(2025, 3, 15), 200}, // inside this_month
		{core.NewDate(2025, 2, 10), 300}, // previous month
	}
	for _, s := range seed {
		if _, err := ledger.Add(ctx, core.Transaction{
			Date: s.date, Type: core.Expense, Category: "Food", Amount: s.amount,
		}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	now := core.NewDate(2025, 3, 20).Time
	totals, err := reports.ExpensesByCategoryForPeriod(ctx, core.PeriodThisMonth, now)
	if err != nil {
		t.Fatalf("ExpensesByCategoryForPeriod() error = %v", err)
	}
	if len(totals) != 1 || totals[0].Total != 200 {
		t.Errorf("this_month totals = %+v, want Food 200", totals)
	}

	// this_year picks up both rows.
	totals, err = reports.ExpensesByCategoryForPeriod(ctx, core.PeriodThisYear, now)
	if err != nil {
		t.Fatalf("ExpensesByCategoryForPeriod() error = %v", err)
	}
	if len(totals) != 1 || totals[0].Total != 500 {
		t.Errorf("this_year totals = %+v, want Food 500", totals)
	}
}

func TestCategoryServiceAddAndList(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewCategoryService(repo)
	ctx := context.Background()

	if err := svc.Add(ctx, "", core.Expense); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("Add(empty name) error = %v, want %v", err, core.ErrEmptyName)
	}
	if err := svc.Add(ctx, "Pets", "Both"); !errors.Is(err, core.ErrInvalidType) {
		t.Errorf("Add(bad type) error = %v, want %v", err, core.ErrInvalidType)
	}

	if err := svc.Add(ctx, "Pets", core.Expense); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	cats, err := svc.List(ctx, core.Expense)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	found := false
	for _, c := range cats {
		if c.Name == "Pets" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %+v, want to include Pets", cats)
	}

	if err := svc.Remove(ctx, "Pets"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
}
