package assign

// DetectCycles decomposes a complete assignment into its cycles.
//
// Every participant must appear exactly once as a pairing source; the
// successor graph is then a permutation and each walk from an unvisited
// participant closes back on itself. Cycles are returned in order of their
// first member's position in participants, each listed in traversal order.
//
// On input that is not a complete assignment the output is still a
// partition of the participant indices, but the grouping is meaningless.
// Pairings naming unknown participants are ignored, and for duplicate names
// the first occurrence wins.
func DetectCycles(pairings []Pairing, participants []string) []Cycle {
	index := indexOf(participants)
	succ := make([]int, len(participants))
	for i := range succ {
		succ[i] = -1
	}
	for _, p := range pairings {
		from, okFrom := index[p.From]
		to, okTo := index[p.To]
		if okFrom && okTo {
			succ[from] = to
		}
	}
	return cyclesOf(succ)
}

// cyclesOf walks a successor array (-1 for no successor).
func cyclesOf(succ []int) []Cycle {
	visited := make([]bool, len(succ))
	var cycles []Cycle
	for start := range succ {
		if visited[start] {
			continue
		}
		var c Cycle
		for i := start; i >= 0 && !visited[i]; i = succ[i] {
			visited[i] = true
			c = append(c, i)
		}
		cycles = append(cycles, c)
	}
	return cycles
}

// IsPermutation reports whether pairings name every participant exactly
// once as a giver and exactly once as a receiver.
func IsPermutation(pairings []Pairing, participants []string) bool {
	if len(pairings) != len(participants) {
		return false
	}
	index := indexOf(participants)
	if len(index) != len(participants) {
		return false
	}
	gives := make([]bool, len(participants))
	gets := make([]bool, len(participants))
	for _, p := range pairings {
		from, okFrom := index[p.From]
		to, okTo := index[p.To]
		if !okFrom || !okTo || gives[from] || gets[to] {
			return false
		}
		gives[from], gets[to] = true, true
	}
	return true
}

// indexOf maps each name to its first position.
func indexOf(participants []string) map[string]int {
	index := make(map[string]int, len(participants))
	for i, p := range participants {
		if _, dup := index[p]; !dup {
			index[p] = i
		}
	}
	return index
}
