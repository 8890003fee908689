package assign

import (
	"strings"

	"github.com/matzehuels/giftring/pkg/errors"
)

// none marks a missing forced neighbour in [ForcedLinks].
const none = -1

// ForcedLinks holds the forced neighbours of each participant by index:
// Next[i] is the participant i is forced to give to, Prev[i] the one forced
// to give to i. Missing neighbours are -1.
type ForcedLinks struct {
	Next []int
	Prev []int
}

// NewForcedLinks indexes forced constraints over participants.
//
// Constraints naming unknown participants are skipped. A participant forced
// to give to two different receivers, or to receive from two different
// givers, cannot be honoured and is reported with
// [errors.ErrCodeForcedConflict].
func NewForcedLinks(participants []string, forced []Constraint) (ForcedLinks, error) {
	n := len(participants)
	links := ForcedLinks{Next: make([]int, n), Prev: make([]int, n)}
	for i := range n {
		links.Next[i], links.Prev[i] = none, none
	}

	index := indexOf(participants)
	for _, c := range forced {
		from, okFrom := index[c.From]
		to, okTo := index[c.To]
		if !okFrom || !okTo {
			continue
		}
		if cur := links.Next[from]; cur != none && cur != to {
			return ForcedLinks{}, errors.New(errors.ErrCodeForcedConflict,
				"%q is forced to give to both %q and %q", c.From, participants[cur], c.To)
		}
		if cur := links.Prev[to]; cur != none && cur != from {
			return ForcedLinks{}, errors.New(errors.ErrCodeForcedConflict,
				"%q is forced to receive from both %q and %q", c.To, participants[cur], c.From)
		}
		links.Next[from] = to
		links.Prev[to] = from
	}
	return links, nil
}

// BuildChains returns the maximal forced chains over n participants.
//
// Participants are scanned in index order. One with a forced predecessor is
// skipped, since it is reached from that predecessor's chain; every other
// participant starts a chain that follows Next until a dead end. Forced
// loops have no such starting point, so a second pass opens each loop at
// its lowest index and marks the chain Closed.
//
// Every participant belongs to exactly one chain, and the chain's internal
// edges are exactly the forced edges between consecutive members.
func BuildChains(n int, links ForcedLinks) []Chain {
	visited := make([]bool, n)
	var chains []Chain

	follow := func(start int) Chain {
		var c Chain
		for i := start; i != none && !visited[i]; i = links.Next[i] {
			visited[i] = true
			c.Members = append(c.Members, i)
		}
		return c
	}

	for i := range n {
		if visited[i] || links.Prev[i] != none {
			continue
		}
		chains = append(chains, follow(i))
	}

	for i := range n {
		if visited[i] {
			continue
		}
		c := follow(i)
		c.Closed = links.Next[c.Tail()] == c.Head()
		chains = append(chains, c)
	}
	return chains
}

// formatChain renders a chain as "A → B → C".
func formatChain(c Chain, participants []string) string {
	names := make([]string, 0, c.Len()+1)
	for _, m := range c.Members {
		names = append(names, participants[m])
	}
	if c.Closed {
		names = append(names, participants[c.Head()])
	}
	return strings.Join(names, " → ")
}
