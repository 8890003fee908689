package assign

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/giftring/pkg/errors"
)

func names(n int) []string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("p%02d", i)
	}
	return ps
}

func cycleLengths(cycles []Cycle) []int {
	lens := make([]int, len(cycles))
	for i, c := range cycles {
		lens[i] = len(c)
	}
	slices.Sort(lens)
	return lens
}

// assertAssignment checks the permutation and cycle partition invariants.
func assertAssignment(t *testing.T, res Result, ps []string) {
	t.Helper()
	if !IsPermutation(res.Pairings, ps) {
		t.Fatalf("pairings are not a permutation: %v", res.Pairings)
	}
	if res.Cycles == nil {
		t.Fatal("Cycles not attached to a complete assignment")
	}
	assertPartition(t, res.Cycles, len(ps))
}

func assertForced(t *testing.T, res Result, forced []Constraint) {
	t.Helper()
	for _, f := range forced {
		if !slices.Contains(res.Pairings, Pairing{From: f.From, To: f.To}) {
			t.Errorf("forced pairing %s missing from %v", f, res.Pairings)
		}
	}
}

func TestGenerate_EmptyParticipants(t *testing.T) {
	res := Generate(nil, Hamiltonian{}, nil, nil, Options{})

	if res.Success || res.Attempts != 0 || len(res.Pairings) != 0 {
		t.Errorf("Generate(nil) = %+v, want immediate failure", res)
	}
	if res.Reason != errors.ErrCodeEmptyParticipants {
		t.Errorf("Reason = %s, want %s", res.Reason, errors.ErrCodeEmptyParticipants)
	}
}

func TestGenerate_ContradictionShortCircuits(t *testing.T) {
	shapes := []Shape{Unconstrained{}, Hamiltonian{}, EqualCycles{Size: 2}, InequalityCycles{Size: 2, Op: Greater}}
	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			res := Generate(
				[]string{"A", "B", "C", "D"},
				shape,
				[]Constraint{{From: "A", To: "B"}},
				[]Constraint{{From: "A", To: "B"}},
				Options{Seed: 1},
			)

			if res.Success {
				t.Error("Success = true, want false")
			}
			if res.Pairings == nil || len(res.Pairings) != 0 {
				t.Errorf("Pairings = %v, want empty non-nil", res.Pairings)
			}
			if res.Attempts != 0 {
				t.Errorf("Attempts = %d, want 0", res.Attempts)
			}
			if !strings.Contains(res.Warning, "A") || !strings.Contains(res.Warning, "B") {
				t.Errorf("Warning = %q, want it to name A and B", res.Warning)
			}
			if res.Reason != errors.ErrCodeConstraintConflict {
				t.Errorf("Reason = %s, want %s", res.Reason, errors.ErrCodeConstraintConflict)
			}
		})
	}
}

func TestGenerate_ForcedConflict(t *testing.T) {
	res := Generate(
		[]string{"A", "B", "C"},
		Hamiltonian{},
		nil,
		[]Constraint{{From: "A", To: "B"}, {From: "A", To: "C"}},
		Options{Seed: 1},
	)

	if res.Success || res.Attempts != 0 {
		t.Errorf("Generate() = %+v, want immediate failure", res)
	}
	if res.Reason != errors.ErrCodeForcedConflict {
		t.Errorf("Reason = %s, want %s", res.Reason, errors.ErrCodeForcedConflict)
	}
}

func TestGenerate_UnknownConstraintsIgnored(t *testing.T) {
	ps := []string{"A", "B", "C"}
	res := Generate(ps, Hamiltonian{},
		[]Constraint{{From: "A", To: "Zed"}},
		[]Constraint{{From: "Zed", To: "A"}},
		Options{Seed: 3})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	assertAssignment(t, res, ps)
}

func TestGenerate_SelfPairingMode(t *testing.T) {
	ps := []string{"A", "B", "C"}
	res := Generate(ps, EqualCycles{Size: 1}, nil, nil, Options{Seed: 1})

	if !res.Success {
		t.Errorf("Success = false, want true")
	}
	if res.Warning == "" {
		t.Error("Warning should announce self-pairing mode")
	}
	got := slices.Clone(res.Pairings)
	slices.SortFunc(got, func(a, b Pairing) int { return strings.Compare(a.From, b.From) })
	want := []Pairing{{"A", "A"}, {"B", "B"}, {"C", "C"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pairings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1, 1}, cycleLengths(res.Cycles)); diff != "" {
		t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SelfPairingIgnoresForced(t *testing.T) {
	res := Generate([]string{"A", "B"}, EqualCycles{Size: 1}, nil,
		[]Constraint{{From: "A", To: "B"}}, Options{})

	if res.Success {
		t.Error("Success = true, want false when forced pairings are dropped")
	}
	if !strings.Contains(res.Warning, "forced") {
		t.Errorf("Warning = %q, want it to mention forced pairings", res.Warning)
	}
}

func TestGenerate_InvalidEqualSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		res := Generate([]string{"A", "B"}, EqualCycles{Size: size}, nil, nil, Options{})
		if res.Success || res.Attempts != 0 || res.Reason != errors.ErrCodeInvalidShape {
			t.Errorf("EqualCycles{%d} = %+v, want invalid shape failure", size, res)
		}
	}
}

func TestGenerate_EqualSizeLargerThanGroup(t *testing.T) {
	res := Generate([]string{"A", "B", "C"}, EqualCycles{Size: 5}, nil, nil, Options{})
	if res.Success || res.Reason != errors.ErrCodeInfeasibleShape {
		t.Errorf("Generate() = %+v, want infeasible shape failure", res)
	}
}

func TestGenerate_Hamiltonian(t *testing.T) {
	ps := []string{"A", "B", "C", "D"}
	res := Generate(ps, Hamiltonian{}, nil, nil, Options{Seed: 42})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1 without banned pairings", res.Attempts)
	}
	assertAssignment(t, res, ps)
	if diff := cmp.Diff([]int{4}, cycleLengths(res.Cycles)); diff != "" {
		t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_HamiltonianAvoidsBanned(t *testing.T) {
	ps := names(8)
	banned := []Constraint{{From: ps[0], To: ps[1]}, {From: ps[2], To: ps[3]}, {From: ps[4], To: ps[0]}}
	res := Generate(ps, Hamiltonian{}, banned, nil, Options{Seed: 7})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	for _, b := range banned {
		if slices.Contains(res.Pairings, Pairing{From: b.From, To: b.To}) {
			t.Errorf("banned pairing %s used", b)
		}
	}
	if len(res.Cycles) != 1 {
		t.Errorf("len(Cycles) = %d, want 1", len(res.Cycles))
	}
}

func TestGenerate_HamiltonianUnavoidableBan(t *testing.T) {
	// With two participants the only cycle is A → B → A.
	ps := []string{"A", "B"}
	res := Generate(ps, Hamiltonian{}, []Constraint{{From: "A", To: "B"}}, nil, Options{Seed: 1, Attempts: 20})

	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Attempts != 20 {
		t.Errorf("Attempts = %d, want the whole budget of 20", res.Attempts)
	}
	if res.Reason != errors.ErrCodeUnsatisfied {
		t.Errorf("Reason = %s, want %s", res.Reason, errors.ErrCodeUnsatisfied)
	}
	if !strings.Contains(res.Warning, "1 banned") {
		t.Errorf("Warning = %q, want it to name the violation count", res.Warning)
	}
	assertAssignment(t, res, ps)
}

func TestGenerate_HamiltonianForcedLoop(t *testing.T) {
	res := Generate([]string{"A", "B", "C"}, Hamiltonian{}, nil,
		[]Constraint{{From: "A", To: "B"}, {From: "B", To: "A"}}, Options{})

	if res.Success || res.Reason != errors.ErrCodeInfeasibleShape || res.Attempts != 0 {
		t.Errorf("Generate() = %+v, want infeasible shape failure", res)
	}
}

func TestGenerate_EqualCyclesExact(t *testing.T) {
	ps := names(9)
	res := Generate(ps, EqualCycles{Size: 3}, nil, nil, Options{Seed: 5})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	if res.Warning != "" {
		t.Errorf("Warning = %q, want none for an even split", res.Warning)
	}
	assertAssignment(t, res, ps)
	if diff := cmp.Diff([]int{3, 3, 3}, cycleLengths(res.Cycles)); diff != "" {
		t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_EqualCyclesOverflow(t *testing.T) {
	ps := names(5)
	res := Generate(ps, EqualCycles{Size: 2}, nil, nil, Options{Seed: 5})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	assertAssignment(t, res, ps)
	// One cycle of 2 and one overflow cycle of 2 + 5%2.
	if diff := cmp.Diff([]int{2, 3}, cycleLengths(res.Cycles)); diff != "" {
		t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.Warning, "do not divide evenly") {
		t.Errorf("Warning = %q, want it to mention the uneven split", res.Warning)
	}
}

func TestGenerate_EqualCyclesOverflowLargerGroup(t *testing.T) {
	ps := names(11)
	res := Generate(ps, EqualCycles{Size: 4}, nil, nil, Options{Seed: 9})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	if diff := cmp.Diff([]int{4, 7}, cycleLengths(res.Cycles)); diff != "" {
		t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_EqualCyclesOversizedForcedChain(t *testing.T) {
	ps := []string{"A", "B", "C", "D"}
	forced := []Constraint{{From: "A", To: "B"}, {From: "B", To: "C"}}
	res := Generate(ps, EqualCycles{Size: 2}, nil, forced, Options{Seed: 2, Attempts: 50})

	if res.Success {
		t.Fatal("Success = true, want false for a chain longer than the cycle size")
	}
	if res.Reason != errors.ErrCodeUnsatisfied {
		t.Errorf("Reason = %s, want %s", res.Reason, errors.ErrCodeUnsatisfied)
	}
	for _, want := range []string{"exactly 2", "Forced chain A → B → C"} {
		if !strings.Contains(res.Warning, want) {
			t.Errorf("Warning = %q, want it to contain %q", res.Warning, want)
		}
	}
	assertAssignment(t, res, ps)
	assertForced(t, res, forced)
}

func TestGenerate_EqualCyclesForcedLoopWithRemainder(t *testing.T) {
	ps := []string{"A", "B", "C", "D", "E"}
	tests := []struct {
		name   string
		forced []Constraint
	}{
		{"loop fills the overflow cycle", []Constraint{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "A"}}},
		{"loop fills a regular cycle", []Constraint{{From: "A", To: "B"}, {From: "B", To: "A"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(ps, EqualCycles{Size: 2}, nil, tt.forced, Options{Seed: 1})

			if !res.Success {
				t.Fatalf("Generate() failed after %d attempts: %s", res.Attempts, res.Warning)
			}
			if res.Attempts != 1 {
				t.Errorf("Attempts = %d, want 1", res.Attempts)
			}
			assertAssignment(t, res, ps)
			assertForced(t, res, tt.forced)
			if diff := cmp.Diff([]int{2, 3}, cycleLengths(res.Cycles)); diff != "" {
				t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
			}
			if strings.Contains(res.Warning, "Could not") {
				t.Errorf("Warning = %q, want only the uneven split note", res.Warning)
			}
		})
	}
}

func TestGenerate_EqualCyclesAllWarnings(t *testing.T) {
	// Five participants in cycles of two: the uneven split, a ban that
	// cannot be avoided and a forced chain that cannot fit all apply.
	ps := []string{"A", "B", "C", "D", "E"}
	forced := []Constraint{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "D"}, {From: "D", To: "E"}}
	banned := []Constraint{{From: "E", To: "A"}}
	res := Generate(ps, EqualCycles{Size: 2}, banned, forced, Options{Seed: 4, Attempts: 10})

	if res.Success {
		t.Fatal("Success = true, want false")
	}
	for _, want := range []string{"do not divide evenly", "banned", "Forced chain"} {
		if !strings.Contains(res.Warning, want) {
			t.Errorf("Warning = %q, want it to contain %q", res.Warning, want)
		}
	}
	assertForced(t, res, forced)
}

func TestGenerate_InequalityGreater(t *testing.T) {
	ps := names(8)
	res := Generate(ps, InequalityCycles{Size: 2, Op: Greater}, nil, nil, Options{Seed: 11})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	assertAssignment(t, res, ps)
	for _, c := range res.Cycles {
		if len(c) <= 2 {
			t.Errorf("cycle %v has length %d, want > 2", c, len(c))
		}
	}
}

func TestGenerate_InequalityLess(t *testing.T) {
	ps := names(8)
	res := Generate(ps, InequalityCycles{Size: 4, Op: Less}, nil, nil, Options{Seed: 11})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	assertAssignment(t, res, ps)
	for _, c := range res.Cycles {
		if len(c) >= 4 || len(c) == 1 {
			t.Errorf("cycle %v has length %d, want 2 or 3", c, len(c))
		}
	}
}

func TestGenerate_InequalityAboveHalfIsFlagged(t *testing.T) {
	ps := names(6)
	res := Generate(ps, InequalityCycles{Size: 4, Op: Greater}, nil, nil, Options{Seed: 13})

	if !strings.Contains(res.Warning, "more than half") {
		t.Errorf("Warning = %q, want the bound flagged", res.Warning)
	}
	if res.Success {
		if diff := cmp.Diff([]int{6}, cycleLengths(res.Cycles)); diff != "" {
			t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestGenerate_InequalityInfeasible(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		shape InequalityCycles
		code  errors.Code
	}{
		{"greater than everyone", 5, InequalityCycles{Size: 5, Op: Greater}, errors.ErrCodeInfeasibleShape},
		{"less than two", 6, InequalityCycles{Size: 2, Op: Less}, errors.ErrCodeInfeasibleShape},
		{"pairs only, odd group", 7, InequalityCycles{Size: 3, Op: Less}, errors.ErrCodeInfeasibleShape},
		{"zero bound", 6, InequalityCycles{Size: 0, Op: Less}, errors.ErrCodeInvalidShape},
		{"unknown operator", 6, InequalityCycles{Size: 2, Op: "eq"}, errors.ErrCodeInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(names(tt.n), tt.shape, nil, nil, Options{})
			if res.Success || res.Attempts != 0 {
				t.Errorf("Generate() = %+v, want immediate failure", res)
			}
			if res.Reason != tt.code {
				t.Errorf("Reason = %s, want %s", res.Reason, tt.code)
			}
		})
	}
}

func TestGenerate_Unconstrained(t *testing.T) {
	ps := names(7)
	banned := []Constraint{{From: ps[0], To: ps[1]}, {From: ps[1], To: ps[0]}}
	res := Generate(ps, nil, banned, nil, Options{Seed: 17})

	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	assertAssignment(t, res, ps)
	for _, p := range res.Pairings {
		if p.From == p.To {
			t.Errorf("self-pairing %s in unconstrained mode", p)
		}
	}
}

func TestGenerate_ForcedPreservedByEveryStrategy(t *testing.T) {
	ps := names(9)
	forced := []Constraint{
		{From: ps[0], To: ps[1]},
		{From: ps[1], To: ps[2]},
		{From: ps[5], To: ps[3]},
	}
	banned := []Constraint{{From: ps[2], To: ps[0]}, {From: ps[7], To: ps[8]}}
	shapes := []Shape{
		Unconstrained{},
		Hamiltonian{},
		EqualCycles{Size: 3},
		EqualCycles{Size: 4},
		InequalityCycles{Size: 2, Op: Greater},
		InequalityCycles{Size: 5, Op: Less},
	}

	for _, shape := range shapes {
		for seed := uint64(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%s/seed=%d", shape, seed), func(t *testing.T) {
				res := Generate(ps, shape, banned, forced, Options{Seed: seed, Attempts: 200})
				if len(res.Pairings) == 0 {
					t.Fatalf("no pairings: %s", res.Warning)
				}
				assertAssignment(t, res, ps)
				assertForced(t, res, forced)
			})
		}
	}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	ps := names(10)
	banned := []Constraint{{From: ps[3], To: ps[4]}}
	for _, shape := range []Shape{Unconstrained{}, Hamiltonian{}, EqualCycles{Size: 3}} {
		a := Generate(ps, shape, banned, nil, Options{Seed: 99})
		b := Generate(ps, shape, banned, nil, Options{Seed: 99})
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s: results differ for the same seed (-a +b):\n%s", shape, diff)
		}
	}
}

func TestGenerate_ExplicitRand(t *testing.T) {
	ps := names(6)
	res := Generate(ps, Hamiltonian{}, nil, nil, Options{Rand: rand.New(rand.NewPCG(1, 2))})
	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	assertAssignment(t, res, ps)
}

func TestGenerate_ParallelWorkers(t *testing.T) {
	ps := names(12)
	banned := []Constraint{{From: ps[0], To: ps[1]}, {From: ps[5], To: ps[6]}}
	forced := []Constraint{{From: ps[2], To: ps[3]}}

	res := Generate(ps, EqualCycles{Size: 4}, banned, forced, Options{Seed: 21, Workers: 4})
	if !res.Success {
		t.Fatalf("Generate() failed: %s", res.Warning)
	}
	if res.Attempts < 1 || res.Attempts > DefaultAttempts {
		t.Errorf("Attempts = %d, want within [1,%d]", res.Attempts, DefaultAttempts)
	}
	assertAssignment(t, res, ps)
	assertForced(t, res, forced)
}

func TestGenerate_ParallelSeedIsReproducible(t *testing.T) {
	ps := names(12)
	var banned []Constraint
	for i := range ps {
		for _, d := range []int{1, 2, 5} {
			banned = append(banned, Constraint{From: ps[i], To: ps[(i+d)%len(ps)]})
		}
	}

	for _, shape := range []Shape{Hamiltonian{}, EqualCycles{Size: 3}, InequalityCycles{Size: 4, Op: Less}} {
		t.Run(shape.String(), func(t *testing.T) {
			opts := Options{Seed: 42, Workers: 8, Attempts: 400}
			want := Generate(ps, shape, banned, nil, opts)
			for range 30 {
				got := Generate(ps, shape, banned, nil, opts)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("results differ for the same seed (-first +later):\n%s", diff)
				}
			}
		})
	}
}

func TestMerge_FirstPerfectWorkerWins(t *testing.T) {
	worse := candidate{succ: []int{0}, score: score{Banned: 2}}
	good := candidate{succ: []int{1}, score: score{}}
	other := candidate{succ: []int{2}, score: score{}}
	results := []outcome{
		{best: worse, found: true, attempts: 10},
		{attempts: 10},
		{best: good, found: true, perfect: true, attempts: 4},
		{best: other, found: true, perfect: true, attempts: 1},
	}

	got := merge(results, bannedFirst)
	if !got.perfect || got.best.succ[0] != 1 {
		t.Errorf("merge() picked %+v, want the perfect candidate of worker 2", got.best)
	}
	if got.attempts != 24 {
		t.Errorf("attempts = %d, want 24 (workers after the winner ignored)", got.attempts)
	}
}

func TestMerge_KeepsEarlierOnTies(t *testing.T) {
	first := candidate{succ: []int{0}, score: score{Banned: 1}}
	second := candidate{succ: []int{1}, score: score{Banned: 1}}
	got := merge([]outcome{
		{best: first, found: true, attempts: 5},
		{best: second, found: true, attempts: 5},
	}, bannedFirst)

	if got.best.succ[0] != 0 || got.attempts != 10 {
		t.Errorf("merge() = %+v, want worker 0's candidate after 10 attempts", got)
	}
}

func TestGenerate_SingleParticipant(t *testing.T) {
	ps := []string{"A"}
	shapes := []Shape{
		Unconstrained{},
		Hamiltonian{},
		EqualCycles{Size: 1},
		InequalityCycles{Size: 2, Op: Less},
	}
	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			res := Generate(ps, shape, nil, nil, Options{})
			if !res.Success || res.Attempts != 0 {
				t.Fatalf("Generate() = %+v, want the self-pair with no attempts", res)
			}
			if diff := cmp.Diff([]Pairing{{From: "A", To: "A"}}, res.Pairings); diff != "" {
				t.Errorf("pairings mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int{1}, cycleLengths(res.Cycles)); diff != "" {
				t.Errorf("cycle lengths mismatch (-want +got):\n%s", diff)
			}
		})
	}

	refused := []Shape{
		EqualCycles{Size: 2},
		InequalityCycles{Size: 1, Op: Greater},
		InequalityCycles{Size: 1, Op: Less},
	}
	for _, shape := range refused {
		res := Generate(ps, shape, nil, nil, Options{})
		if res.Success || res.Attempts != 0 || res.Reason != errors.ErrCodeInfeasibleShape {
			t.Errorf("Generate(%s) = %+v, want an immediate INFEASIBLE_SHAPE failure", shape, res)
		}
	}

	banned := Generate(ps, Hamiltonian{}, []Constraint{{From: "A", To: "A"}}, nil, Options{})
	if banned.Success || banned.Reason != errors.ErrCodeUnsatisfied {
		t.Errorf("Generate(banned self-pair) = %+v, want UNSATISFIED", banned)
	}
}

func TestGenerate_ParallelBudgetIsShared(t *testing.T) {
	ps := []string{"A", "B"}
	res := Generate(ps, Hamiltonian{}, []Constraint{{From: "A", To: "B"}}, nil,
		Options{Seed: 1, Attempts: 30, Workers: 4})

	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Attempts != 30 {
		t.Errorf("Attempts = %d, want 30 across all workers", res.Attempts)
	}
}
