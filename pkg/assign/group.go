package assign

import "slices"

// Group is a set of chains that will be wired into one cycle.
type Group struct {
	Chains   []Chain
	Size     int  // total participants
	Overflow bool // the designated remainder group
}

// PackChains partitions chains into groups of size participants each.
//
// When total is not a multiple of size, one group is the overflow group and
// takes size + total%size participants. Closed chains cannot share a cycle,
// so each gets a group of its own first; the first closed chain of exactly
// the overflow length becomes the overflow group. The rest are packed
// greedily: for each group, chains are taken from the end of the list while
// they fit the group's target, stopping once it is hit exactly. Without a
// closed overflow group, the last group absorbs the remainder. If no chain
// fits, the smallest one is taken anyway and the group comes out
// wrong-sized; callers score that rather than fail.
//
// The input slice is not modified.
func PackChains(chains []Chain, size, total int) []Group {
	if size <= 0 {
		return nil
	}
	remainder := total % size
	overflowOpen := remainder != 0

	var groups []Group
	rest := make([]Chain, 0, len(chains))
	remaining := 0
	for _, c := range chains {
		if c.Closed {
			g := Group{Chains: []Chain{c}, Size: c.Len()}
			if overflowOpen && c.Len() == size+remainder {
				g.Overflow, overflowOpen = true, false
			}
			groups = append(groups, g)
			continue
		}
		rest = append(rest, c)
		remaining += c.Len()
	}

	for len(rest) > 0 {
		target := size
		last := overflowOpen && remaining < 2*size
		if last || remaining < size {
			target = remaining
		}

		var g Group
		for i := len(rest) - 1; i >= 0 && g.Size < target; i-- {
			if g.Size+rest[i].Len() <= target {
				g.Chains = append(g.Chains, rest[i])
				g.Size += rest[i].Len()
				rest = slices.Delete(rest, i, i+1)
			}
		}
		if len(g.Chains) == 0 {
			i := smallest(rest)
			g.Chains = []Chain{rest[i]}
			g.Size = rest[i].Len()
			rest = slices.Delete(rest, i, i+1)
		}

		remaining -= g.Size
		g.Overflow = last && len(rest) == 0
		groups = append(groups, g)
	}
	return groups
}

func smallest(chains []Chain) int {
	best := 0
	for i, c := range chains {
		if c.Len() < chains[best].Len() {
			best = i
		}
	}
	return best
}
