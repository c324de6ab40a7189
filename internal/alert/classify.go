// Package alert turns budget usage into classified alerts and decides,
// against a per-day dedup record, whether a notification may be dispatched.
// It never sends anything itself; delivery goes through the Sender port.
package alert

import "cashtrack/internal/core"

// Classification thresholds, applied to the raw spent/limit percentage.
const (
	WarningThreshold  = 80.0
	ExceededThreshold = 100.0
)

// Classify maps one budget status to an alert. The raw percentage decides:
// >= 100 is exceeded, >= 80 is warning, anything below is no alert. A zero
// limit reports zero percent and never alerts, whatever was spent.
func Classify(s core.BudgetStatus) (core.BudgetAlert, bool) {
	if s.LimitAmount == 0 {
		return core.BudgetAlert{}, false
	}

	p := s.PercentUsed()
	var typ core.AlertType
	switch {
	case p >= ExceededThreshold:
		typ = core.AlertExceeded
	case p >= WarningThreshold:
		typ = core.AlertWarning
	default:
		return core.BudgetAlert{}, false
	}

	return core.BudgetAlert{
		Category:    s.Category,
		LimitAmount: s.LimitAmount,
		SpentAmount: s.Spent,
		Percentage:  p,
		Type:        typ,
	}, true
}
