package assign

import (
	"fmt"

	"github.com/matzehuels/giftring/pkg/errors"
)

// Pairing is one directed edge of a completed assignment: From gives a gift
// to To.
type Pairing struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// String formats the pairing as "From → To".
func (p Pairing) String() string { return p.From + " → " + p.To }

// Constraint is a caller-supplied directed edge used as an intent. Banned
// constraints are avoided when possible; forced constraints must appear in
// every generated assignment.
type Constraint struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// String formats the constraint as "From → To".
func (c Constraint) String() string { return c.From + " → " + c.To }

// Cycle is one closed loop of an assignment, as participant indices in
// traversal order.
type Cycle []int

// Chain is a maximal run of participants linked by forced edges. Members
// are participant indices; consecutive members are joined by a forced edge.
//
// A Closed chain is a forced loop: its last member is also forced to give
// to its first, so the chain can only ever form a cycle on its own.
type Chain struct {
	Members []int
	Closed  bool
}

// Len returns the number of participants in the chain.
func (c Chain) Len() int { return len(c.Members) }

// Head returns the first participant of the chain.
func (c Chain) Head() int { return c.Members[0] }

// Tail returns the last participant of the chain.
func (c Chain) Tail() int { return c.Members[len(c.Members)-1] }

// Result is the outcome of one generation call.
//
// Success is true iff an assignment with no banned pairings and exact shape
// compliance was found within the attempt budget. Otherwise Pairings holds
// the best attempt (or is empty when generation was refused up front),
// Warning explains what is unsatisfied and Reason carries the
// machine-readable cause.
type Result struct {
	Pairings []Pairing   `json:"pairings"`
	Success  bool        `json:"success"`
	Attempts int         `json:"attempts"`
	Warning  string      `json:"warning,omitempty"`
	Cycles   []Cycle     `json:"cycles,omitempty"`
	Reason   errors.Code `json:"reason,omitempty"`
}

// failure builds a result for a request refused before any attempt ran.
func failure(code errors.Code, format string, args ...any) Result {
	return Result{
		Pairings: []Pairing{},
		Success:  false,
		Attempts: 0,
		Warning:  fmt.Sprintf(format, args...),
		Reason:   code,
	}
}
