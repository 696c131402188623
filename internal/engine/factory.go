// Package engine implements the financial reconciliation calculations:
// operation construction, budget performance, the monthly summary fold and
// goal strategy math. Everything is a pure function over records fetched by
// the caller; the package performs no I/O and keeps no state.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"financas/internal/core"
)

// Categories whose operations always come in linked pairs. Any other
// category is rejected by NewDouble.
const (
	CategoryInternalTransfer = "internal transfer"
	CategoryPersonalAdvance  = "personal advance"
	CategoryRepair           = "repair/reimbursement"
)

// Intent carries the user's request to record an operation. NewSimple copies
// it verbatim; NewDouble derives natures and states per category.
type Intent struct {
	UserID             string
	Nature             core.Nature
	State              core.State
	PaymentMethod      string
	SourceAccount      string
	DestinationAccount string
	Date               core.Date
	Value              decimal.Decimal
	Category           string
	Details            string
	Receipt            []byte
	Project            string
	GoalID             string
}

func (in Intent) operation() core.Operation {
	return core.Operation{
		UserID:             in.UserID,
		Nature:             in.Nature,
		State:              in.State,
		PaymentMethod:      in.PaymentMethod,
		SourceAccount:      in.SourceAccount,
		DestinationAccount: in.DestinationAccount,
		Date:               in.Date,
		Value:              in.Value,
		Category:           in.Category,
		Details:            in.Details,
		Receipt:            in.Receipt,
		Project:            in.Project,
		GoalID:             in.GoalID,
	}
}

// NewSimple builds a single operation from the intent. It stamps a fresh id
// and validates; no state derivation happens here.
func NewSimple(in Intent, now time.Time) (core.Operation, error) {
	op := in.operation()
	op.ID = uuid.NewString()
	op.CreatedAt = now
	op.UpdatedAt = now
	if err := op.Validate(); err != nil {
		return core.Operation{}, err
	}
	return op, nil
}

// NewDouble builds the linked operations for the three pair-producing
// categories. It returns one or two legs sharing a PairID:
//
//   - internal transfer: always two legs, an expense/transferir on the
//     source and a mirrored income/receber on the destination.
//   - personal advance: two legs following the input nature; the mirrored
//     leg swaps accounts and nature, modelling the other side of a loan.
//   - repair/reimbursement: one leg always; a second future expense leg to
//     restock the replaced item only when the input is an income (the
//     asymmetry is intentional: being reimbursed implies a later purchase,
//     paying for a repair implies nothing further).
func NewDouble(in Intent, now time.Time) ([]core.Operation, error) {
	first := in.operation()
	first.ID = uuid.NewString()
	first.PairID = uuid.NewString()
	first.CreatedAt = now
	first.UpdatedAt = now

	mirror := func() core.Operation {
		m := first
		m.ID = uuid.NewString()
		m.Nature = first.Nature.Opposite()
		m.State = m.Nature.PendingState()
		m.SourceAccount = first.DestinationAccount
		m.DestinationAccount = first.SourceAccount
		return m
	}

	var legs []core.Operation
	switch in.Category {
	case CategoryInternalTransfer:
		first.Nature = core.NatureExpense
		first.State = core.StateTransferir
		second := mirror()
		second.State = core.StateReceber
		legs = []core.Operation{first, second}

	case CategoryPersonalAdvance:
		if !in.Nature.Valid() {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidNature, in.Nature)
		}
		first.State = in.Nature.PendingState()
		legs = []core.Operation{first, mirror()}

	case CategoryRepair:
		if !in.Nature.Valid() {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidNature, in.Nature)
		}
		first.State = in.Nature.PendingState()
		legs = []core.Operation{first}
		if in.Nature == core.NatureIncome {
			// Reimbursed: a future expense restocks the replaced item.
			legs = append(legs, mirror())
		}

	default:
		return nil, fmt.Errorf("%w: category %q does not produce double operations", core.ErrInvalidCategory, in.Category)
	}

	for _, leg := range legs {
		if err := leg.Validate(); err != nil {
			return nil, err
		}
	}
	return legs, nil
}

// TransitionState moves an operation to next, failing when next is not in
// the current state's transition set. Terminal states reject everything.
func TransitionState(op core.Operation, next core.State) (core.Operation, error) {
	if !next.Valid() {
		return core.Operation{}, fmt.Errorf("%w: %q", core.ErrInvalidState, next)
	}
	if !op.State.CanTransition(next) {
		return core.Operation{}, fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, op.State, next)
	}
	op.State = next
	return op, nil
}
