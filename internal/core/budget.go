package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BudgetType string

const (
	BudgetManual    BudgetType = "manual"
	BudgetAutomatic BudgetType = "automatic"
)

var (
	ErrEmptyBudgetName  = errors.New("empty budget name")
	ErrInvalidPeriod    = errors.New("invalid budget period")
	ErrInvalidBudgetTyp = errors.New("invalid budget type")
)

// Budget is a user's planned amounts per category for a period. The store
// keeps exactly one active budget per user; this package does not enforce
// that.
type Budget struct {
	ID     string
	UserID string
	Name   string
	Start  Date
	End    Date
	Type   BudgetType
	// BaseMonth seeds item actuals for automatic budgets; unset otherwise.
	BaseMonth    *Month
	TotalPlanned decimal.Decimal
	TotalActual  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BudgetItem is one category's planned value within a budget. Actual is
// pre-computed only for automatic budgets.
type BudgetItem struct {
	ID       string
	BudgetID string
	Category string
	Type     Nature
	Planned  decimal.Decimal
	Actual   *decimal.Decimal
	Position int
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUser
	}
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyBudgetName
	}
	if b.Start.IsZero() || b.End.IsZero() || b.End.Before(b.Start) {
		return ErrInvalidPeriod
	}
	switch b.Type {
	case BudgetManual, BudgetAutomatic:
	default:
		return ErrInvalidBudgetTyp
	}
	if b.Type == BudgetAutomatic && b.BaseMonth == nil {
		return errors.New("automatic budget requires a base month")
	}
	return nil
}

func (i BudgetItem) Validate() error {
	if strings.TrimSpace(i.Category) == "" {
		return ErrEmptyCategory
	}
	if !i.Type.Valid() {
		return ErrInvalidNature
	}
	if i.Planned.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// DedupeItems drops items whose (category, type) pair was already seen,
// keeping the first occurrence. Duplicate insertions are silently collapsed
// rather than rejected.
func DedupeItems(items []BudgetItem) []BudgetItem {
	type key struct {
		category string
		typ      Nature
	}
	seen := make(map[key]struct{}, len(items))
	out := make([]BudgetItem, 0, len(items))
	for _, it := range items {
		k := key{category: it.Category, typ: it.Type}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// SumPlanned totals planned values for items of the given nature.
func SumPlanned(items []BudgetItem, n Nature) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Type == n {
			total = total.Add(it.Planned)
		}
	}
	return total
}
