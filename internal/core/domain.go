package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type (
	// TransactionType tags a transaction as money in or money out.
	TransactionType string

	// Date is a calendar date carried as YYYY-MM-DD throughout the system.
	Date struct {
		time.Time
	}

	// Transaction is one row of the ledger. Amounts are non-negative
	// currency units; the type decides the sign of its contribution.
	Transaction struct {
		ID          int64
		Date        Date
		Type        TransactionType
		Category    string
		Amount      float64
		Description string
		CreatedAt   time.Time
	}

	// Budget is a monthly spending limit for one category. Category is the
	// natural key: at most one budget per category.
	Budget struct {
		ID          int64
		Category    string
		LimitAmount float64
		CreatedAt   time.Time
	}

	// SavingsGoal is a target amount with a manually updated progress
	// amount. Deadline is kept as raw text because the store does not
	// enforce its format.
	SavingsGoal struct {
		ID            int64
		Name          string
		TargetAmount  float64
		CurrentAmount float64
		Deadline      string
		CreatedAt     time.Time
	}

	// Category is an entry in the custom category registry.
	Category struct {
		ID        int64
		Name      string
		Type      TransactionType
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidTarget   = errors.New("invalid target amount")
	ErrInvalidDeadline = errors.New("invalid deadline")
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day. Out-of-range values are
// normalized the way time.Date does (month 13 becomes January year+1).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// IsEmpty reports whether the date is unset, used for optional filter bounds.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (tx Transaction) Validate() error {
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if tx.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Signed returns the transaction amount with the sign its type implies.
func (tx Transaction) Signed() float64 {
	if tx.Type == Expense {
		return -tx.Amount
	}
	return tx.Amount
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.LimitAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	if g.Deadline != "" {
		if _, err := ParseDate(g.Deadline); err != nil {
			return ErrInvalidDeadline
		}
	}
	return nil
}

// ProgressPercent is the goal progress clamped to [0, 100].
func (g SavingsGoal) ProgressPercent() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// RemainingAmount is the amount still to save, never negative.
func (g SavingsGoal) RemainingAmount() float64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

func (g SavingsGoal) IsCompleted() bool {
	return g.CurrentAmount >= g.TargetAmount
}

// DaysRemaining counts the days from now until the deadline, clamped to
// zero. A missing or malformed deadline counts as zero rather than an error.
func (g SavingsGoal) DaysRemaining(now time.Time) int {
	deadline, err := ParseDate(g.Deadline)
	if err != nil {
		return 0
	}
	days := int(deadline.Sub(DateOf(now).Time).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
