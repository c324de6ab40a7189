package core

import "testing"

func TestMonthlySummarySavingsRate(t *testing.T) {
	s := MonthlySummary{TotalIncome: 2000, TotalExpense: 1500, Balance: 500}
	if got := s.SavingsRate(); got != 25 {
		t.Errorf("SavingsRate() = %v, want 25", got)
	}

	empty := MonthlySummary{TotalExpense: 300, Balance: -300}
	if got := empty.SavingsRate(); got != 0 {
		t.Errorf("SavingsRate() with zero income = %v, want 0", got)
	}
}

func TestBudgetStatusPercentages(t *testing.T) {
	tests := []struct {
		name        string
		limit       float64
		spent       float64
		wantRaw     float64
		wantDisplay float64
		wantLeft    float64
	}{
		{name: "under budget", limit: 1000, spent: 250, wantRaw: 25, wantDisplay: 25, wantLeft: 750},
		{name: "at limit", limit: 1000, spent: 1000, wantRaw: 100, wantDisplay: 100, wantLeft: 0},
		{name: "over budget keeps raw ratio", limit: 1000, spent: 1500, wantRaw: 150, wantDisplay: 100, wantLeft: 0},
		{name: "zero limit", limit: 0, spent: 400, wantRaw: 0, wantDisplay: 0, wantLeft: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BudgetStatus{Category: "Food", LimitAmount: tt.limit, Spent: tt.spent}
			if got := b.PercentUsed(); got != tt.wantRaw {
				t.Errorf("PercentUsed() = %v, want %v", got, tt.wantRaw)
			}
			if got := b.DisplayPercent(); got != tt.wantDisplay {
				t.Errorf("DisplayPercent() = %v, want %v", got, tt.wantDisplay)
			}
			if got := b.Remaining(); got != tt.wantLeft {
				t.Errorf("Remaining() = %v, want %v", got, tt.wantLeft)
			}
		})
	}
}

func TestBudgetAlertMessage(t *testing.T) {
	warning := BudgetAlert{Category: "Food", Percentage: 90, Type: AlertWarning}
	if got := warning.Message(); got != "Food: 90% of budget used" {
		t.Errorf("warning Message() = %q", got)
	}

	exceeded := BudgetAlert{Category: "Bills", Percentage: 150, Type: AlertExceeded}
	if got := exceeded.Message(); got != "Bills: budget EXCEEDED (150%)" {
		t.Errorf("exceeded Message() = %q", got)
	}
}
