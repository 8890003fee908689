package assign

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/giftring/pkg/errors"
)

// equalCycles builds disjoint cycles of exactly pr.size participants, plus
// one overflow cycle of size + n%size when n is not a multiple of size.
//
// Each attempt shuffles the chains, packs them into groups with
// [PackChains] and closes every group into its own cycle. Attempts are
// scored by banned pairings first, then by the mean distance of each
// non-overflow cycle from the target size. Sizes outside 1..n have already
// been rejected by [prepare].
func equalCycles(pr *problem, opts Options) Result {
	n, size := len(pr.participants), pr.size
	if size == 1 {
		return selfPairing(pr, "Cycle size 1 selects self-pairing mode: every participant gives to themself.")
	}
	remainder := n % size

	attempt := func(rng *rand.Rand) (candidate, bool) {
		order := slices.Clone(pr.chains)
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		succ := newSuccessors(n)
		var deviation float64
		counted := 0
		for _, g := range PackChains(order, size, n) {
			cs := slices.Clone(g.Chains)
			rng.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
			linkChains(succ, cs)
			if g.Overflow {
				continue
			}
			deviation += math.Abs(float64(g.Size - size))
			counted++
		}
		if counted > 0 {
			deviation /= float64(counted)
		}
		return candidate{succ: succ, score: score{Banned: pr.banned.count(succ), Deviation: deviation}}, true
	}

	out := search(opts, attempt, bannedFirst)
	res := pr.result(out)

	var notes []string
	if remainder != 0 {
		notes = append(notes, fmt.Sprintf(
			"%d participants do not divide evenly into cycles of %d; one overflow cycle has %d members.",
			n, size, size+remainder))
	}
	if !out.perfect {
		res.Reason = errors.ErrCodeUnsatisfied
		best := out.best.score
		if best.Banned > 0 {
			notes = append(notes, fmt.Sprintf(
				"Could not avoid every banned pairing in %d attempts; the best assignment uses %d banned pairing(s).",
				out.attempts, best.Banned))
		}
		if best.Deviation > 0 {
			notes = append(notes, fmt.Sprintf(
				"Could not form cycles of exactly %d (average deviation %.2f).", size, best.Deviation))
		}
		if c, ok := oversizedChain(pr.chains, size, remainder); ok {
			notes = append(notes, fmt.Sprintf(
				"Forced chain %s has %d members and cannot fit a cycle of %d.",
				formatChain(c, pr.participants), c.Len(), size))
		}
	}
	res.Warning = strings.Join(notes, " ")
	return res
}

// oversizedChain returns the longest chain that no cycle of the requested
// size can hold.
func oversizedChain(chains []Chain, size, remainder int) (Chain, bool) {
	var worst Chain
	found := false
	for _, c := range chains {
		bad := c.Len() > size+remainder ||
			(c.Closed && c.Len() != size && c.Len() != size+remainder)
		if bad && (!found || c.Len() > worst.Len()) {
			worst, found = c, true
		}
	}
	return worst, found
}

// selfPairing assigns everyone to themself without searching. It serves
// cycle size 1 and groups of a single participant.
func selfPairing(pr *problem, warning string) Result {
	n := len(pr.participants)
	succ := make([]int, n)
	for i := range succ {
		succ[i] = i
	}

	broken := 0
	for from, to := range pr.links.Next {
		if to != none && to != from {
			broken++
		}
	}
	banned := pr.banned.count(succ)

	res := Result{
		Pairings: pairingsOf(succ, pr.participants),
		Success:  broken == 0 && banned == 0,
		Warning:  warning,
	}
	if broken > 0 {
		res.Warning += fmt.Sprintf(" %d forced pairing(s) are ignored.", broken)
	}
	if banned > 0 {
		res.Warning += fmt.Sprintf(" %d banned self-pairing(s) are used.", banned)
	}
	if !res.Success {
		res.Reason = errors.ErrCodeUnsatisfied
	}
	return res
}
