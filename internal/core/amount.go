// Package core holds the domain model of the tracker: transactions,
// budgets, savings goals and the derived summary types, together with the
// parsing and validation rules applied before anything is persisted.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount parses a user-entered amount string into currency units.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Anything non-numeric, negative or zero is rejected with ErrInvalidAmount;
// amounts must be strictly positive before they reach the ledger.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders an amount with the currency symbol and two decimals
// for notification bodies and logs.
func FormatAmount(symbol string, amount float64) string {
	return symbol + strconv.FormatFloat(amount, 'f', 2, 64)
}
