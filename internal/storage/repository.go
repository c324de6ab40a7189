// Package storage owns the sqlite-backed persistence for the tracker.
// Every operation opens a short-lived statement against the shared pool and
// is durable before it returns; nothing is cached, so reads always reflect
// the latest committed writes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cashtrack/internal/core"

	_ "modernc.org/sqlite"
)

// DefaultBusyTimeout bounds how long a statement waits on the sqlite lock
// before the operation surfaces a storage failure instead of hanging.
const DefaultBusyTimeout = 30 * time.Second

type Repository struct {
	db *sql.DB
}

// TransactionFilter narrows ListTransactions. Zero-value fields are
// unbounded; date bounds are inclusive on both sides.
type TransactionFilter struct {
	Start    core.Date
	End      core.Date
	Category string
	Type     core.TransactionType
}

func New(dbPath string) (*Repository, error) {
	return NewWithTimeout(dbPath, DefaultBusyTimeout)
}

func NewWithTimeout(dbPath string, busyTimeout time.Duration) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", dbPath, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction inserts a ledger row and returns its assigned id. Ids are
// unique and monotonically increasing within a store.
func (r *Repository) AddTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (date, type, category, amount, description)
		VALUES (?, ?, ?, ?, ?)`,
		tx.Date.String(), string(tx.Type), tx.Category, tx.Amount, tx.Description)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"date", tx.Date.String(),
		"type", tx.Type,
		"category", tx.Category,
		"amount", tx.Amount)

	return id, nil
}

// ListTransactions returns ledger rows matching the filter, newest date
// first (ties broken by descending id).
func (r *Repository) ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, date, type, category, amount, description, created_at
		FROM transactions WHERE 1=1`)
	var args []any

	if !f.Start.IsEmpty() {
		sb.WriteString(" AND date >= ?")
		args = append(args, f.Start.String())
	}
	if !f.End.IsEmpty() {
		sb.WriteString(" AND date <= ?")
		args = append(args, f.End.String())
	}
	if f.Category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, f.Category)
	}
	if f.Type != "" {
		sb.WriteString(" AND type = ?")
		args = append(args, string(f.Type))
	}
	sb.WriteString(" ORDER BY date DESC, id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// UpdateTransaction replaces all mutable fields of a ledger row. Updating
// an unknown id is a no-op success; callers relying on existence must list
// first.
func (r *Repository) UpdateTransaction(ctx context.Context, id int64, tx core.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, type = ?, category = ?, amount = ?, description = ?
		WHERE id = ?`,
		tx.Date.String(), string(tx.Type), tx.Category, tx.Amount, tx.Description, id)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.WarnContext(ctx, "Update matched no transaction", "id", id)
	}
	return nil
}

// DeleteTransaction removes a ledger row. Deleting an unknown id is a
// no-op success.
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.WarnContext(ctx, "Delete matched no transaction", "id", id)
	}
	return nil
}

// MonthlySummary recomputes income, expense and balance for one calendar
// month from source rows.
func (r *Repository) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	start, end := core.MonthRange(year, month)

	var income, expense sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			SUM(CASE WHEN type = 'Income' THEN amount ELSE 0 END),
			SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END)
		FROM transactions
		WHERE date >= ? AND date < ?`,
		start.String(), end.String()).Scan(&income, &expense)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("monthly summary: %w", err)
	}

	return core.MonthlySummary{
		Year:         year,
		Month:        month,
		TotalIncome:  income.Float64,
		TotalExpense: expense.Float64,
		Balance:      income.Float64 - expense.Float64,
	}, nil
}

// ExpensesByCategory sums Expense rows per category in the inclusive date
// range, largest total first. Empty bounds are unbounded.
func (r *Repository) ExpensesByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT category, SUM(amount) AS total
		FROM transactions WHERE type = 'Expense'`)
	var args []any
	if !start.IsEmpty() {
		sb.WriteString(" AND date >= ?")
		args = append(args, start.String())
	}
	if !end.IsEmpty() {
		sb.WriteString(" AND date <= ?")
		args = append(args, end.String())
	}
	sb.WriteString(" GROUP BY category ORDER BY total DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	return totals, nil
}

// DailySpending sums Expense rows per day in the inclusive date range,
// oldest day first. Empty bounds are unbounded.
func (r *Repository) DailySpending(ctx context.Context, start, end core.Date) ([]core.DailyTotal, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT date, SUM(amount) AS total
		FROM transactions WHERE type = 'Expense'`)
	var args []any
	if !start.IsEmpty() {
		sb.WriteString(" AND date >= ?")
		args = append(args, start.String())
	}
	if !end.IsEmpty() {
		sb.WriteString(" AND date <= ?")
		args = append(args, end.String())
	}
	sb.WriteString(" GROUP BY date ORDER BY date ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("daily spending: %w", err)
	}
	defer rows.Close()

	var totals []core.DailyTotal
	for rows.Next() {
		var (
			day   string
			total float64
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		d, err := core.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", day, err)
		}
		totals = append(totals, core.DailyTotal{Date: d, Total: total})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily spending: %w", err)
	}
	return totals, nil
}

// SetBudget upserts the monthly limit for a category. Category is the
// natural key; an existing limit is replaced with no history kept.
func (r *Repository) SetBudget(ctx context.Context, category string, limitAmount float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (category, limit_amount)
		VALUES (?, ?)
		ON CONFLICT(category) DO UPDATE SET limit_amount = excluded.limit_amount`,
		category, limitAmount)
	if err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget set", "category", category, "limit", limitAmount)
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, limit_amount, created_at
		FROM budgets ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var (
			b       core.Budget
			created sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Category, &b.LimitAmount, &created); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.CreatedAt = parseTimestamp(created)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// DeleteBudget removes the budget for a category. Unknown categories are a
// no-op success.
func (r *Repository) DeleteBudget(ctx context.Context, category string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, category); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// BudgetStatuses joins every configured budget against the month's Expense
// rows. The left join keeps budgets with no spending at zero; categories
// without a budget never appear.
func (r *Repository) BudgetStatuses(ctx context.Context, year, month int) ([]core.BudgetStatus, error) {
	start, end := core.MonthRange(year, month)

	rows, err := r.db.QueryContext(ctx, `
		SELECT b.category, b.limit_amount, COALESCE(SUM(t.amount), 0) AS spent
		FROM budgets b
		LEFT JOIN transactions t ON b.category = t.category
			AND t.type = 'Expense'
			AND t.date >= ? AND t.date < ?
		GROUP BY b.category
		ORDER BY b.category`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("budget statuses: %w", err)
	}
	defer rows.Close()

	var statuses []core.BudgetStatus
	for rows.Next() {
		var s core.BudgetStatus
		if err := rows.Scan(&s.Category, &s.LimitAmount, &s.Spent); err != nil {
			return nil, fmt.Errorf("scan budget status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("budget statuses: %w", err)
	}
	return statuses, nil
}

// AddSavingsGoal inserts a goal with zero progress and returns its id.
func (r *Repository) AddSavingsGoal(ctx context.Context, g core.SavingsGoal) (int64, error) {
	deadline := sql.NullString{String: g.Deadline, Valid: g.Deadline != ""}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO savings_goals (name, target_amount, current_amount, deadline)
		VALUES (?, ?, 0, ?)`,
		g.Name, g.TargetAmount, deadline)
	if err != nil {
		return 0, fmt.Errorf("insert savings goal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("savings goal id: %w", err)
	}

	slog.InfoContext(ctx, "Savings goal created",
		"id", id, "name", g.Name, "target", g.TargetAmount, "deadline", g.Deadline)

	return id, nil
}

// ListSavingsGoals returns all goals ordered by deadline ascending; goals
// without a deadline sort first under sqlite's NULL ordering.
func (r *Repository) ListSavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM savings_goals ORDER BY deadline`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		var (
			g        core.SavingsGoal
			deadline sql.NullString
			created  sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &created); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		g.Deadline = deadline.String
		g.CreatedAt = parseTimestamp(created)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	return goals, nil
}

// SetSavingsGoalAmount sets the absolute saved amount for a goal. Unknown
// ids are a no-op success.
func (r *Repository) SetSavingsGoalAmount(ctx context.Context, id int64, amount float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE savings_goals SET current_amount = ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("update savings goal amount: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.WarnContext(ctx, "Update matched no savings goal", "id", id)
	}
	return nil
}

func (r *Repository) DeleteSavingsGoal(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return nil
}

// AddCategory registers a custom category in the registry.
func (r *Repository) AddCategory(ctx context.Context, name string, typ core.TransactionType) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (name, type) VALUES (?, ?)`, name, string(typ)); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// ListCategories returns registry entries for one transaction type,
// ordered by name.
func (r *Repository) ListCategories(ctx context.Context, typ core.TransactionType) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, created_at
		FROM categories WHERE type = ? ORDER BY name`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var (
			c       core.Category
			typ     string
			created sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &typ, &created); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.TransactionType(typ)
		c.CreatedAt = parseTimestamp(created)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// LastSent returns the date a notification key was last dispatched, with
// ok=false when the key has never been marked.
func (r *Repository) LastSent(ctx context.Context, key string) (core.Date, bool, error) {
	var stored string
	err := r.db.QueryRowContext(ctx, `
		SELECT sent_date FROM notification_state WHERE key = ?`, key).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Date{}, false, nil
	}
	if err != nil {
		return core.Date{}, false, fmt.Errorf("read notification state: %w", err)
	}

	d, err := core.ParseDate(stored)
	if err != nil {
		return core.Date{}, false, fmt.Errorf("parse stored sent date %q: %w", stored, err)
	}
	return d, true, nil
}

// MarkSent records that a notification key was dispatched on the given
// date, replacing any earlier record for the key.
func (r *Repository) MarkSent(ctx context.Context, key string, date core.Date) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_state (key, sent_date)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET sent_date = excluded.sent_date`,
		key, date.String())
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		tx      core.Transaction
		date    string
		typ     string
		created sql.NullString
	)
	if err := rows.Scan(&tx.ID, &date, &typ, &tx.Category, &tx.Amount, &tx.Description, &created); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	tx.Date = d
	tx.Type = core.TransactionType(typ)
	tx.CreatedAt = parseTimestamp(created)
	return tx, nil
}

// parseTimestamp decodes sqlite's CURRENT_TIMESTAMP text form. An
// unparseable value degrades to the zero time instead of failing a read.
func parseTimestamp(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, v.String); err == nil {
			return t
		}
	}
	return time.Time{}
}
