package assign

import (
	"math/rand/v2"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// score rates one candidate. Zero in both fields is a perfect candidate.
type score struct {
	Banned    int     // banned pairings used
	Deviation float64 // shape penalty, strategy specific
}

func (s score) perfect() bool { return s.Banned == 0 && s.Deviation == 0 }

// bannedFirst orders by banned count, then by deviation.
func bannedFirst(a, b score) bool {
	if a.Banned != b.Banned {
		return a.Banned < b.Banned
	}
	return a.Deviation < b.Deviation
}

// shapeFirst orders by deviation, then by banned count.
func shapeFirst(a, b score) bool {
	if a.Deviation != b.Deviation {
		return a.Deviation < b.Deviation
	}
	return a.Banned < b.Banned
}

// candidate is one complete assignment as a successor array.
type candidate struct {
	succ  []int
	score score
}

// attemptFunc builds one candidate. It returns false when the attempt
// produced no usable assignment. Implementations must be safe to call from
// several goroutines with distinct random sources.
type attemptFunc func(rng *rand.Rand) (candidate, bool)

// outcome is the best candidate of a search.
type outcome struct {
	best     candidate
	found    bool // best holds a usable candidate
	perfect  bool
	attempts int
}

// search runs attempts until one is perfect or the budget is spent, keeping
// the best candidate under better.
//
// With several workers the budget is split into consecutive shares, one per
// worker, and the outcome is the one a single loop over those shares in
// worker order would produce. A worker only stops early once a worker with a
// lower index has found a perfect candidate, so the result depends on the
// seed and the worker count but never on scheduling.
func search(opts Options, attempt attemptFunc, better func(a, b score) bool) outcome {
	budget := opts.attempts()
	k := opts.workers()
	if k == 1 {
		return runAttempts(opts.source(), budget, attempt, better, func() bool { return false })
	}

	seeds := opts.workerSeeds(k)
	results := make([]outcome, k)
	var winner atomic.Int64 // lowest worker index with a perfect candidate
	winner.Store(int64(k))

	var g errgroup.Group
	for i := range k {
		share := budget / k
		if i < budget%k {
			share++
		}
		g.Go(func() error {
			stop := func() bool { return winner.Load() < int64(i) }
			results[i] = runAttempts(newRand(seeds[i]), share, attempt, better, stop)
			if results[i].perfect {
				for {
					cur := winner.Load()
					if int64(i) >= cur || winner.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return merge(results, better)
}

// merge folds worker outcomes in index order and stops at the first perfect
// one. Workers after it may have been cut short and are ignored. Ties keep
// the earlier worker's candidate.
func merge(results []outcome, better func(a, b score) bool) outcome {
	var merged outcome
	for _, r := range results {
		merged.attempts += r.attempts
		if r.perfect {
			merged.best, merged.found, merged.perfect = r.best, true, true
			return merged
		}
		if r.found && (!merged.found || better(r.best.score, merged.best.score)) {
			merged.best, merged.found = r.best, true
		}
	}
	return merged
}

func runAttempts(rng *rand.Rand, budget int, attempt attemptFunc, better func(a, b score) bool, stop func() bool) outcome {
	var out outcome
	for out.attempts < budget && !stop() {
		out.attempts++
		c, ok := attempt(rng)
		if !ok {
			continue
		}
		if c.score.perfect() {
			out.best, out.found, out.perfect = c, true, true
			return out
		}
		if !out.found || better(c.score, out.best.score) {
			out.best, out.found = c, true
		}
	}
	return out
}
