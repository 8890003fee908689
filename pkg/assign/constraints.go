package assign

// FilterConstraints drops constraints that name a participant not in
// participants, and repeated constraints. Order is otherwise preserved.
func FilterConstraints(participants []string, constraints []Constraint) []Constraint {
	index := indexOf(participants)
	seen := make(map[Constraint]bool, len(constraints))
	out := make([]Constraint, 0, len(constraints))
	for _, c := range constraints {
		_, okFrom := index[c.From]
		_, okTo := index[c.To]
		if !okFrom || !okTo || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// FindConflict returns the first forced constraint that is also banned.
func FindConflict(forced, banned []Constraint) (Constraint, bool) {
	bannedSet := make(map[Constraint]bool, len(banned))
	for _, b := range banned {
		bannedSet[b] = true
	}
	for _, f := range forced {
		if bannedSet[f] {
			return f, true
		}
	}
	return Constraint{}, false
}

// edgeSet is a set of directed index pairs.
type edgeSet map[[2]int]bool

func newEdgeSet(participants []string, constraints []Constraint) edgeSet {
	index := indexOf(participants)
	set := make(edgeSet, len(constraints))
	for _, c := range constraints {
		from, okFrom := index[c.From]
		to, okTo := index[c.To]
		if okFrom && okTo {
			set[[2]int{from, to}] = true
		}
	}
	return set
}

func (s edgeSet) has(from, to int) bool { return s[[2]int{from, to}] }

// count returns how many edges of the successor array are in the set.
func (s edgeSet) count(succ []int) int {
	n := 0
	for from, to := range succ {
		if to != none && s.has(from, to) {
			n++
		}
	}
	return n
}
