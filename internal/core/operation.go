package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Nature is the closed union of transaction directions. Categories carry the
// same union, so an operation can never be posted against a category of the
// opposite kind.
type Nature string

const (
	NatureExpense Nature = "expense"
	NatureIncome  Nature = "income"
)

// State is the lifecycle state of an operation. Pending states (pagar,
// receber, transferir) each have exactly one terminal successor; terminal
// states admit no further transition.
type State string

const (
	StatePagar       State = "pagar"
	StatePago        State = "pago"
	StateReceber     State = "receber"
	StateRecebido    State = "recebido"
	StateTransferir  State = "transferir"
	StateTransferido State = "transferido"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidNature     = errors.New("invalid nature")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrEmptyUser         = errors.New("empty user id")
	ErrEmptyAccount      = errors.New("empty source account")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrNotFound          = errors.New("not found")
)

var transitions = map[State][]State{
	StatePagar:       {StatePago},
	StateReceber:     {StateRecebido},
	StateTransferir:  {StateTransferido},
	StatePago:        {},
	StateRecebido:    {},
	StateTransferido: {},
}

func (n Nature) Valid() bool {
	return n == NatureExpense || n == NatureIncome
}

// Opposite returns the other side of the union.
func (n Nature) Opposite() Nature {
	if n == NatureExpense {
		return NatureIncome
	}
	return NatureExpense
}

// PendingState returns the pending lifecycle state implied by the nature:
// expenses wait to be paid, incomes wait to be received.
func (n Nature) PendingState() State {
	if n == NatureExpense {
		return StatePagar
	}
	return StateReceber
}

func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Transitions returns the set of states reachable from s. Terminal states
// return an empty set.
func (s State) Transitions() []State {
	return transitions[s]
}

// CanTransition reports whether next is a legal successor of s.
func (s State) CanTransition(next State) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transition.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// Posted reports whether the operation value counts toward budget actuals
// and monthly totals. Transfer legs settle (transferido) but move money
// between the user's own accounts, so they never count.
func (s State) Posted() bool {
	return s == StatePago || s == StateRecebido
}

// Category pairs a name with the nature of operations it accepts.
type Category struct {
	Name string
	Type Nature
}

// Operation is a single recorded transaction.
type Operation struct {
	ID                 string
	UserID             string
	Nature             Nature
	State              State
	PaymentMethod      string
	SourceAccount      string
	DestinationAccount string
	Date               Date
	Value              decimal.Decimal
	Category           string
	Details            string
	Receipt            []byte
	Project            string
	GoalID             string
	// PairID links the two legs of a double operation; empty for simple ones.
	PairID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Operation) Validate() error {
	if strings.TrimSpace(o.UserID) == "" {
		return ErrEmptyUser
	}
	if !o.Nature.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidNature, o.Nature)
	}
	if !o.State.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, o.State)
	}
	if strings.TrimSpace(o.SourceAccount) == "" {
		return ErrEmptyAccount
	}
	if err := o.Date.Validate(); err != nil {
		return err
	}
	if !o.Value.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(o.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// AbsValue returns the operation value as a magnitude. Aggregations always
// compare magnitudes; direction comes from the nature.
func (o Operation) AbsValue() decimal.Decimal {
	return o.Value.Abs()
}
