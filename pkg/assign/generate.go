package assign

import (
	"fmt"

	"github.com/matzehuels/giftring/pkg/errors"
)

// problem is the validated, indexed input shared by all strategies. It is
// read-only once built, so attempts may run concurrently.
type problem struct {
	participants []string
	banned       edgeSet
	links        ForcedLinks
	chains       []Chain

	size     int
	op       Operator
	flagHalf bool // Greater bound above n/2
}

// strategy builds a result for one shape family.
type strategy func(pr *problem, opts Options) Result

// Generate produces a gift-exchange assignment over participants whose
// cycle structure follows shape.
//
// Banned and forced constraints that name unknown participants are dropped.
// A constraint that is both forced and banned aborts generation with no
// attempts spent, as does a participant forced towards two different
// partners. Otherwise the matching strategy searches up to opts.Attempts
// random candidates and the cycle decomposition of the returned pairings is
// attached to the result.
//
// Generate never panics on well-typed input; every refusal is a Result with
// Success false and a Reason code. A nil shape means [Unconstrained].
func Generate(participants []string, shape Shape, banned, forced []Constraint, opts Options) Result {
	pr, run, res, ok := prepare(participants, shape, banned, forced)
	if !ok {
		return res
	}

	res = run(pr, opts)
	if IsPermutation(res.Pairings, participants) {
		res.Cycles = DetectCycles(res.Pairings, participants)
	}
	return res
}

// Report describes a request as [Generate] sees it before searching.
type Report struct {
	// Banned and Forced are the constraints left after dropping unknown
	// names and repeats.
	Banned []Constraint `json:"banned"`
	Forced []Constraint `json:"forced"`

	// Ignored counts the dropped constraints.
	Ignored int `json:"ignored"`

	// Chains lists every forced chain of two or more participants.
	Chains []string `json:"chains,omitempty"`

	// Failure is set when Generate would refuse the request without
	// spending any attempts.
	Failure *Result `json:"failure,omitempty"`
}

// Check runs the validation steps of [Generate] without searching.
func Check(participants []string, shape Shape, banned, forced []Constraint) Report {
	rep := Report{
		Banned: FilterConstraints(participants, banned),
		Forced: FilterConstraints(participants, forced),
	}
	rep.Ignored = len(banned) + len(forced) - len(rep.Banned) - len(rep.Forced)

	pr, _, res, ok := prepare(participants, shape, banned, forced)
	if !ok {
		rep.Failure = &res
		return rep
	}
	for _, c := range pr.chains {
		if c.Len() > 1 || c.Closed {
			rep.Chains = append(rep.Chains, formatChain(c, participants))
		}
	}
	return rep
}

// prepare validates the input, indexes it and selects the strategy for
// shape. When ok is false, res is the failure to return.
func prepare(participants []string, shape Shape, banned, forced []Constraint) (pr *problem, run strategy, res Result, ok bool) {
	n := len(participants)
	if n == 0 {
		return nil, nil, failure(errors.ErrCodeEmptyParticipants, "No participants to assign."), false
	}
	if shape == nil {
		shape = Unconstrained{}
	}

	banned = FilterConstraints(participants, banned)
	forced = FilterConstraints(participants, forced)
	if c, conflict := FindConflict(forced, banned); conflict {
		return nil, nil, failure(errors.ErrCodeConstraintConflict,
			"Conflicting constraints: %s → %s is both forced and banned.", c.From, c.To), false
	}
	links, err := NewForcedLinks(participants, forced)
	if err != nil {
		return nil, nil, failure(errors.GetCode(err), "Conflicting forced pairings: %s.", errors.UserMessage(err)), false
	}

	pr = &problem{
		participants: participants,
		banned:       newEdgeSet(participants, banned),
		links:        links,
		chains:       BuildChains(n, links),
	}

	switch s := shape.(type) {
	case Unconstrained:
		// n+1 can never be reached, so any cycle structure passes.
		pr.size, pr.op = n+1, Less
		run = inequalityCycles
	case Hamiltonian:
		if c, loop := closedLoop(pr.chains, n); loop {
			return nil, nil, failure(errors.ErrCodeInfeasibleShape,
				"Forced pairings close the loop %s, so no single cycle can include all %d participants.",
				formatChain(c, participants), n), false
		}
		run = hamiltonian
	case EqualCycles:
		switch {
		case s.Size <= 0:
			return nil, nil, failure(errors.ErrCodeInvalidShape, "Cycle size must be positive, got %d.", s.Size), false
		case s.Size > n:
			return nil, nil, failure(errors.ErrCodeInfeasibleShape,
				"Cycle size %d is larger than the %d participants.", s.Size, n), false
		}
		pr.size = s.Size
		run = equalCycles
	case InequalityCycles:
		if res, feasible := checkInequality(n, s); !feasible {
			return nil, nil, res, false
		}
		pr.size, pr.op = s.Size, s.Op
		pr.flagHalf = s.Op == Greater && s.Size > n/2
		run = inequalityCycles
	default:
		return nil, nil, failure(errors.ErrCodeInvalidShape, "Unsupported shape %v.", shape), false
	}
	if n == 1 {
		run = loneParticipant
	}
	return pr, run, Result{}, true
}

// loneParticipant answers a group of one: the only possible assignment is
// the self-pair, whatever the shape.
func loneParticipant(pr *problem, _ Options) Result {
	return selfPairing(pr, fmt.Sprintf("Only one participant: %s gives to themself.", pr.participants[0]))
}

// checkInequality rejects bounds no assignment of n participants can meet.
func checkInequality(n int, s InequalityCycles) (Result, bool) {
	if s.Size <= 0 {
		return failure(errors.ErrCodeInvalidShape, "Cycle bound must be positive, got %d.", s.Size), false
	}
	switch s.Op {
	case Greater:
		if s.Size >= n {
			return failure(errors.ErrCodeInfeasibleShape,
				"No cycle of %d participants can be longer than %d.", n, s.Size), false
		}
	case Less:
		// Cycles of two cover even groups; odd groups need one of three.
		// A single participant only ever forms a cycle of one.
		if (n == 1 && s.Size <= 1) || (n > 1 && (s.Size <= 2 || (s.Size == 3 && n%2 == 1))) {
			return failure(errors.ErrCodeInfeasibleShape,
				"%d participants cannot be split into cycles shorter than %d.", n, s.Size), false
		}
	default:
		return failure(errors.ErrCodeInvalidShape, "Unknown operator %q.", s.Op), false
	}
	return Result{}, true
}

// result converts a search outcome into a Result without warnings.
func (pr *problem) result(out outcome) Result {
	res := Result{
		Pairings: []Pairing{},
		Success:  out.perfect,
		Attempts: out.attempts,
	}
	if out.found {
		res.Pairings = pairingsOf(out.best.succ, pr.participants)
	}
	return res
}

// pairingsOf lists the pairings of a successor array cycle by cycle.
func pairingsOf(succ []int, participants []string) []Pairing {
	pairings := make([]Pairing, 0, len(succ))
	for _, c := range cyclesOf(succ) {
		for _, i := range c {
			if succ[i] == none {
				continue
			}
			pairings = append(pairings, Pairing{From: participants[i], To: participants[succ[i]]})
		}
	}
	return pairings
}
