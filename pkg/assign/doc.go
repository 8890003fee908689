// Package assign generates gift-exchange assignments with a constrained
// cycle structure.
//
// # Overview
//
// An assignment maps every participant to exactly one receiver and gives
// every participant exactly one giver, so it is a permutation and splits
// into disjoint cycles. [Generate] builds assignments whose cycles follow a
// caller-chosen [Shape]:
//
//   - [Hamiltonian]: one cycle through everyone
//   - [EqualCycles]: cycles of an exact size, plus one overflow cycle when
//     the group does not divide evenly
//   - [InequalityCycles]: every cycle longer or shorter than a bound
//   - [Unconstrained]: any structure
//
// Forced constraints must appear in the assignment. Banned constraints are
// avoided when possible.
//
// # Search
//
// Exact search over permutations with forced edges is expensive, so each
// strategy builds independent random candidates, scores them, and keeps the
// best of a bounded number of attempts ([DefaultAttempts] unless
// [Options.Attempts] says otherwise). The first perfect candidate ends the
// search. Attempts share no state, so [Options.Workers] can spread them
// over goroutines.
//
// Forced edges are honoured by construction. [BuildChains] folds them into
// maximal chains; the Hamiltonian and equal-cycle strategies only reorder
// and reconnect whole chains ([PackChains] groups them into target-sized
// cycles), and the inequality strategy places forced pairings before
// drawing the rest.
//
// # Results
//
// Generation never returns a Go error. Refused requests (no participants,
// a constraint both forced and banned, an impossible shape) come back as a
// [Result] with Success false, no pairings, zero attempts and a Reason
// code. Exhausting the budget returns the best candidate with a warning
// describing what remains unsatisfied.
//
// # Usage
//
//	res := assign.Generate(
//	    []string{"Ana", "Ben", "Cleo", "Dev"},
//	    assign.Hamiltonian{},
//	    []assign.Constraint{{From: "Ana", To: "Ben"}}, // banned
//	    nil,                                           // forced
//	    assign.Options{Seed: 42},
//	)
//	for _, p := range res.Pairings {
//	    fmt.Println(p)
//	}
//
// [DetectCycles] recovers the cycle decomposition of any complete
// assignment.
package assign
