package assign

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/giftring/pkg/errors"
)

// hamiltonian builds one cycle through every participant.
//
// Chains are fixed for the whole search; each attempt only shuffles their
// order and joins each tail to the next head, wrapping the last chain back
// to the first. Forced edges therefore survive every attempt. A closed
// chain shorter than n has already been rejected by [prepare].
func hamiltonian(pr *problem, opts Options) Result {
	n := len(pr.participants)
	attempt := func(rng *rand.Rand) (candidate, bool) {
		order := slices.Clone(pr.chains)
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		succ := newSuccessors(n)
		linkChains(succ, order)
		return candidate{succ: succ, score: score{Banned: pr.banned.count(succ)}}, true
	}

	out := search(opts, attempt, bannedFirst)
	res := pr.result(out)
	if !out.perfect {
		res.Reason = errors.ErrCodeUnsatisfied
		res.Warning = fmt.Sprintf(
			"Could not avoid every banned pairing in %d attempts; the best single cycle uses %d banned pairing(s).",
			out.attempts, out.best.score.Banned)
	}
	return res
}

// linkChains writes each chain's forced edges into succ, then joins the
// chains into one cycle in the given order.
func linkChains(succ []int, chains []Chain) {
	for k, c := range chains {
		for i := 0; i+1 < c.Len(); i++ {
			succ[c.Members[i]] = c.Members[i+1]
		}
		next := chains[(k+1)%len(chains)]
		succ[c.Tail()] = next.Head()
	}
}

func newSuccessors(n int) []int {
	succ := make([]int, n)
	for i := range succ {
		succ[i] = none
	}
	return succ
}

// closedLoop returns the first closed chain that does not span all n
// participants.
func closedLoop(chains []Chain, n int) (Chain, bool) {
	for _, c := range chains {
		if c.Closed && c.Len() < n {
			return c, true
		}
	}
	return Chain{}, false
}
