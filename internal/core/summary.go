package core

import "fmt"

const (
	// AlertWarning fires when spending reaches 80% of the limit.
	AlertWarning AlertType = "warning"
	// AlertExceeded fires when spending reaches or passes the limit.
	AlertExceeded AlertType = "exceeded"
)

type (
	AlertType string

	// MonthlySummary aggregates one calendar month of the ledger. It is
	// recomputed from source rows on every request, never cached.
	MonthlySummary struct {
		Year         int
		Month        int // 1-12
		TotalIncome  float64
		TotalExpense float64
		Balance      float64
	}

	// BudgetStatus is the spent-vs-limit join result for one category in
	// one month. A budgeted category with no matching expenses reports
	// Spent == 0.
	BudgetStatus struct {
		Category    string
		LimitAmount float64
		Spent       float64
	}

	// BudgetAlert is a classified warning/exceeded state derived from a
	// BudgetStatus. Percentage carries the raw ratio, which may exceed 100.
	BudgetAlert struct {
		Category    string
		LimitAmount float64
		SpentAmount float64
		Percentage  float64
		Type        AlertType
	}

	// CategoryTotal is one row of the expenses-by-category breakdown.
	CategoryTotal struct {
		Category string
		Total    float64
	}

	// DailyTotal is one day of the daily spending series.
	DailyTotal struct {
		Date  Date
		Total float64
	}
)

// SavingsRate is the share of income left over, as a percentage. Zero when
// there is no income.
func (s MonthlySummary) SavingsRate() float64 {
	if s.TotalIncome == 0 {
		return 0
	}
	return s.Balance / s.TotalIncome * 100
}

// PercentUsed is the raw spent/limit ratio as a percentage. It may exceed
// 100 and is the value alert classification works from. Zero when the
// limit is zero.
func (b BudgetStatus) PercentUsed() float64 {
	if b.LimitAmount == 0 {
		return 0
	}
	return b.Spent / b.LimitAmount * 100
}

// DisplayPercent clamps PercentUsed to [0, 100] for presentation.
func (b BudgetStatus) DisplayPercent() float64 {
	if p := b.PercentUsed(); p < 100 {
		return p
	}
	return 100
}

// Remaining is the budget headroom, never negative.
func (b BudgetStatus) Remaining() float64 {
	if r := b.LimitAmount - b.Spent; r > 0 {
		return r
	}
	return 0
}

// Message renders the one-line alert text shown in notification subjects.
func (a BudgetAlert) Message() string {
	if a.Type == AlertExceeded {
		return fmt.Sprintf("%s: budget EXCEEDED (%.0f%%)", a.Category, a.Percentage)
	}
	return fmt.Sprintf("%s: %.0f%% of budget used", a.Category, a.Percentage)
}
