package assign

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/giftring/pkg/errors"
)

// inequalityCycles builds an assignment whose cycles are all longer
// (Greater) or all shorter (Less) than pr.size.
//
// Attempts are greedy rather than chain based: forced pairings are placed
// first, then every remaining giver draws from a shuffled pool of unused
// receivers, taking the first one that is neither banned nor the giver.
// A banned receiver is accepted only when nothing else is left. A giver
// whose only option is themself leaves the attempt incomplete, and
// incomplete attempts are discarded.
func inequalityCycles(pr *problem, opts Options) Result {
	n, size, op := len(pr.participants), pr.size, pr.op

	attempt := func(rng *rand.Rand) (candidate, bool) {
		succ := newSuccessors(n)
		taken := make([]bool, n)
		for from, to := range pr.links.Next {
			if to != none {
				succ[from] = to
				taken[to] = true
			}
		}
		open := make([]int, 0, n)
		for i := range n {
			if !taken[i] {
				open = append(open, i)
			}
		}

		for giver := range n {
			if succ[giver] != none || len(open) == 0 {
				continue
			}
			rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
			k := pickReceiver(pr, giver, open)
			if k < 0 {
				continue
			}
			succ[giver] = open[k]
			open = slices.Delete(open, k, k+1)
		}
		if slices.Contains(succ, none) {
			return candidate{}, false
		}

		_, deviation := violations(cyclesOf(succ), size, op)
		return candidate{succ: succ, score: score{Banned: pr.banned.count(succ), Deviation: deviation}}, true
	}

	out := search(opts, attempt, shapeFirst)
	res := pr.result(out)

	var notes []string
	if pr.flagHalf {
		notes = append(notes, fmt.Sprintf(
			"Every cycle must be longer than %d, more than half of the %d participants, so only one cycle through everyone can qualify.",
			size, n))
	}
	if !out.perfect {
		res.Reason = errors.ErrCodeUnsatisfied
		if !out.found {
			notes = append(notes, fmt.Sprintf("No complete assignment could be built in %d attempts.", out.attempts))
		} else {
			if bad, _ := violations(cyclesOf(out.best.succ), size, op); bad > 0 {
				notes = append(notes, fmt.Sprintf(
					"Could not make every cycle %s %d in %d attempts; %d cycle(s) in the best assignment break the bound.",
					op.Symbol(), size, out.attempts, bad))
			}
			if b := out.best.score.Banned; b > 0 {
				notes = append(notes, fmt.Sprintf("The best assignment uses %d banned pairing(s).", b))
			}
		}
	}
	res.Warning = strings.Join(notes, " ")
	return res
}

// pickReceiver returns the index in open of the receiver for giver, or -1
// when giver is the only one left.
func pickReceiver(pr *problem, giver int, open []int) int {
	fallback := -1
	for k, to := range open {
		if to == giver {
			continue
		}
		if !pr.banned.has(giver, to) {
			return k
		}
		if fallback < 0 {
			fallback = k
		}
	}
	return fallback
}

// violations counts cycles that break the bound and returns the mean length
// of those cycles (0 when none do). Self-pairs never violate Greater.
func violations(cycles []Cycle, size int, op Operator) (int, float64) {
	count, total := 0, 0
	for _, c := range cycles {
		l := len(c)
		var bad bool
		switch op {
		case Greater:
			bad = l <= size && l != 1
		case Less:
			bad = l >= size
		}
		if bad {
			count++
			total += l
		}
	}
	if count == 0 {
		return 0, 0
	}
	return count, float64(total) / float64(count)
}
