package core

import "time"

// MonthRange returns the half-open window [first of month, first of next
// month) used by all monthly aggregations. December rolls over to January
// of the following year.
func MonthRange(year, month int) (start, end Date) {
	return NewDate(year, month, 1), NewDate(year, month+1, 1)
}

// Reporting periods accepted by the range helpers.
const (
	PeriodToday      = "today"
	PeriodThisWeek   = "this_week"
	PeriodThisMonth  = "this_month"
	PeriodThisYear   = "this_year"
	PeriodLast30Days = "last_30_days"
	PeriodLast90Days = "last_90_days"
)

// PeriodRange resolves a named reporting period to an inclusive date range
// ending today. Unknown periods fall back to the last 30 days.
func PeriodRange(period string, now time.Time) (start, end Date) {
	today := DateOf(now)
	switch period {
	case PeriodToday:
		return today, today
	case PeriodThisWeek:
		// Monday-based week
		offset := (int(today.Weekday()) + 6) % 7
		return Date{Time: today.AddDate(0, 0, -offset)}, today
	case PeriodThisMonth:
		return NewDate(today.Year(), int(today.Month()), 1), today
	case PeriodThisYear:
		return NewDate(today.Year(), 1, 1), today
	case PeriodLast90Days:
		return Date{Time: today.AddDate(0, 0, -90)}, today
	case PeriodLast30Days:
		return Date{Time: today.AddDate(0, 0, -30)}, today
	default:
		return Date{Time: today.AddDate(0, 0, -30)}, today
	}
}
