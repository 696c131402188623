// Package core holds the domain records and invariants of the financial
// reconciliation engine: operations, budgets, goals and the derived monthly
// summary. Everything here is plain data plus validation; calculations live
// in internal/engine.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to a monetary value. It accepts both
// dot (12.34) and comma (12,34) decimal separators. Only strictly positive
// amounts are accepted; signs are rejected because the operation nature,
// not the sign, says which way money moved.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
