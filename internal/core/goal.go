package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type GoalType string

const (
	GoalEconomia GoalType = "economia"
	GoalCompra   GoalType = "compra"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalCancelled GoalStatus = "cancelled"
)

var (
	ErrInvalidGoalType   = errors.New("invalid goal type")
	ErrInvalidGoalStatus = errors.New("invalid goal status")
	ErrInvalidPriority   = errors.New("priority must be between 1 and 5")
	ErrInvalidParcels    = errors.New("number of parcels must be positive")
)

// Goal is a savings or purchase target funded by a fixed monthly
// contribution. The income/expense/available fields are a snapshot of the
// monthly summary at creation time and are never re-derived.
type Goal struct {
	ID                  string
	UserID              string
	Description         string
	Type                GoalType
	TargetValue         decimal.Decimal
	Start               Date
	End                 Date
	MonthlyIncome       decimal.Decimal
	FixedExpenses       decimal.Decimal
	AvailablePerMonth   decimal.Decimal
	Importance          string
	Priority            int
	Strategy            string
	MonthlyContribution decimal.Decimal
	Parcels             int
	Status              GoalStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (t GoalType) Valid() bool {
	return t == GoalEconomia || t == GoalCompra
}

// Nature returns the operation nature that counts toward progress for this
// goal type: deposits (income) for economia, purchases (expense) for compra.
func (t GoalType) Nature() Nature {
	if t == GoalEconomia {
		return NatureIncome
	}
	return NatureExpense
}

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalCancelled:
		return true
	}
	return false
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return ErrEmptyUser
	}
	if strings.TrimSpace(g.Description) == "" {
		return errors.New("empty goal description")
	}
	if !g.Type.Valid() {
		return ErrInvalidGoalType
	}
	if !g.TargetValue.IsPositive() {
		return ErrInvalidAmount
	}
	if err := g.Start.Validate(); err != nil {
		return err
	}
	if g.Priority < 1 || g.Priority > 5 {
		return ErrInvalidPriority
	}
	if g.Parcels <= 0 {
		return ErrInvalidParcels
	}
	if !g.Status.Valid() {
		return ErrInvalidGoalStatus
	}
	return nil
}

// ContributesIn reports whether the goal reserves its monthly contribution
// in the given month: active status and a [start, end] interval overlapping
// the month.
func (g Goal) ContributesIn(m Month) bool {
	return g.Status == GoalActive && m.WithinRange(g.Start, g.End)
}
