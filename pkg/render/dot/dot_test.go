package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/giftring/pkg/assign"
)

func twoCycles() ([]string, assign.Result) {
	participants := []string{"Ana", "Ben", "Cleo", "Dev", "Eli"}
	res := assign.Result{
		Pairings: []assign.Pairing{
			{From: "Ana", To: "Ben"}, {From: "Ben", To: "Ana"},
			{From: "Cleo", To: "Dev"}, {From: "Dev", To: "Eli"}, {From: "Eli", To: "Cleo"},
		},
		Success: true,
		Cycles:  []assign.Cycle{{0, 1}, {2, 3, 4}},
	}
	return participants, res
}

func TestToDOTClusters(t *testing.T) {
	participants, res := twoCycles()
	dot := ToDOT(participants, res, Options{})

	for _, want := range []string{
		"digraph G {",
		"subgraph cluster_0 {",
		`label="cycle 1 (2)";`,
		"subgraph cluster_1 {",
		`label="cycle 2 (3)";`,
		`"Eli" -> "Cleo";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Count(dot, "->") != len(res.Pairings) {
		t.Errorf("ToDOT() has %d edges, want %d", strings.Count(dot, "->"), len(res.Pairings))
	}
}

func TestToDOTHighlights(t *testing.T) {
	participants, res := twoCycles()
	dot := ToDOT(participants, res, Options{
		Forced: []assign.Constraint{{From: "Cleo", To: "Dev"}},
		Banned: []assign.Constraint{{From: "Ben", To: "Ana"}, {From: "Ana", To: "Eli"}},
	})

	if !strings.Contains(dot, `"Cleo" -> "Dev" [penwidth=2.5];`) {
		t.Errorf("forced edge not bold:\n%s", dot)
	}
	if !strings.Contains(dot, `"Ben" -> "Ana" [color=red`) {
		t.Errorf("banned edge not red:\n%s", dot)
	}
	if strings.Contains(dot, `"Ana" -> "Eli"`) {
		t.Errorf("banned constraint absent from the result must not be drawn:\n%s", dot)
	}
}

func TestToDOTWithoutCycles(t *testing.T) {
	res := assign.Result{Pairings: []assign.Pairing{}}
	dot := ToDOT([]string{"Ana", "Ben"}, res, Options{})
	if strings.Contains(dot, "cluster") {
		t.Errorf("failed result should not produce clusters:\n%s", dot)
	}
	if !strings.Contains(dot, `"Ana";`) || !strings.Contains(dot, `"Ben";`) {
		t.Errorf("participants should still be drawn:\n%s", dot)
	}
}

func TestToDOTSelfCycle(t *testing.T) {
	res := assign.Result{
		Pairings: []assign.Pairing{{From: "Ana", To: "Ana"}},
		Cycles:   []assign.Cycle{{0}},
	}
	if dot := ToDOT([]string{"Ana"}, res, Options{}); !strings.Contains(dot, `label="cycle 1 (self)";`) {
		t.Errorf("self cycle label missing:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	participants, res := twoCycles()
	svg, err := RenderSVG(context.Background(), ToDOT(participants, res, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "Cleo") {
		t.Errorf("RenderSVG() output is not an SVG of the graph: %.200s", out)
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("normalizeViewBox() should leave SVGs without viewBox untouched")
	}
}
