package alert

import (
	"fmt"
	"time"

	"cashtrack/internal/core"
)

// budgetAlertEmail renders the subject and HTML body for one classified
// budget alert.
func budgetAlertEmail(a core.BudgetAlert, symbol string) (subject, body string) {
	status := "WARNING"
	advice := "Please monitor your spending carefully."
	if a.Type == core.AlertExceeded {
		status = "EXCEEDED"
		advice = fmt.Sprintf("You have exceeded your budget by %s!",
			core.FormatAmount(symbol, a.SpentAmount-a.LimitAmount))
	}

	subject = fmt.Sprintf("Budget %s: %s", status, a.Category)
	body = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Budget Alert: %s</h2>
  <p>Your <strong>%s</strong> budget needs attention:</p>
  <table style="width: 100%%; margin: 20px 0;">
    <tr><td>Budget Limit:</td><td style="text-align: right;">%s</td></tr>
    <tr><td>Amount Spent:</td><td style="text-align: right;">%s</td></tr>
    <tr><td><strong>Percentage Used:</strong></td><td style="text-align: right;"><strong>%.1f%%</strong></td></tr>
  </table>
  <p><strong>%s</strong></p>
  <p style="font-size: 12px;">This is an automated alert from Cash Tracker.</p>
</body>
</html>`,
		status,
		a.Category,
		core.FormatAmount(symbol, a.LimitAmount),
		core.FormatAmount(symbol, a.SpentAmount),
		a.Percentage,
		advice)
	return subject, body
}

// dailyReminderEmail renders the daily expense-logging reminder with the
// month's running summary and today's activity.
func dailyReminderEmail(now time.Time, summary core.MonthlySummary, todayCount int, spentToday float64, symbol string) (subject, body string) {
	subject = "Daily Expense Reminder - Cash Tracker"
	body = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Daily Expense Reminder</h2>
  <p>Time to log your expenses for <strong>%s</strong></p>
  <h3>Today's Activity</h3>
  <p>Transactions logged: <strong>%d</strong></p>
  <p>Total spent today: <strong>%s</strong></p>
  <h3>This Month's Summary</h3>
  <table style="width: 100%%;">
    <tr><td>Income:</td><td style="text-align: right;">%s</td></tr>
    <tr><td>Expenses:</td><td style="text-align: right;">%s</td></tr>
    <tr><td><strong>Balance:</strong></td><td style="text-align: right;"><strong>%s</strong></td></tr>
  </table>
  <p style="font-size: 12px;">This is your daily reminder from Cash Tracker.</p>
</body>
</html>`,
		now.Format("January 2, 2006"),
		todayCount,
		core.FormatAmount(symbol, spentToday),
		core.FormatAmount(symbol, summary.TotalIncome),
		core.FormatAmount(symbol, summary.TotalExpense),
		core.FormatAmount(symbol, summary.Balance))
	return subject, body
}
