// Package dot renders assignments as Graphviz graphs.
//
// [ToDOT] lays out each cycle of an assignment as its own cluster. Forced
// pairings are drawn bold and banned pairings that made it into the result
// are drawn red. [RenderSVG] and [RenderPNG] render the DOT source through
// the embedded Graphviz build in github.com/goccy/go-graphviz, so no system
// Graphviz install is needed.
package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/giftring/pkg/assign"
)

// Options configures DOT output.
type Options struct {
	// Forced pairings are drawn with bold edges.
	Forced []assign.Constraint
	// Banned pairings present in the result are drawn in red.
	Banned []assign.Constraint
}

// ToDOT converts a result to Graphviz DOT. When the result carries its
// cycle decomposition, each cycle becomes a cluster labelled with its
// length; otherwise the pairings are drawn flat.
func ToDOT(participants []string, res assign.Result, opts Options) string {
	forced := edgeSet(opts.Forced)
	banned := edgeSet(opts.Banned)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowsize=0.8];\n")

	if len(res.Cycles) > 0 {
		for i, c := range res.Cycles {
			fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", cycleLabel(i, len(c)))
			buf.WriteString("    style=\"rounded,dashed\";\n")
			for _, idx := range c {
				fmt.Fprintf(&buf, "    %q;\n", participants[idx])
			}
			buf.WriteString("  }\n")
		}
	} else {
		buf.WriteString("\n")
		for _, p := range participants {
			fmt.Fprintf(&buf, "  %q;\n", p)
		}
	}

	buf.WriteString("\n")
	for _, p := range res.Pairings {
		attrs := edgeAttrs(p, forced, banned)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.From, p.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", p.From, p.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cycleLabel(i, n int) string {
	if n == 1 {
		return fmt.Sprintf("cycle %d (self)", i+1)
	}
	return fmt.Sprintf("cycle %d (%d)", i+1, n)
}

func edgeAttrs(p assign.Pairing, forced, banned map[assign.Constraint]bool) []string {
	key := assign.Constraint{From: p.From, To: p.To}
	var attrs []string
	if forced[key] {
		attrs = append(attrs, "penwidth=2.5")
	}
	if banned[key] {
		attrs = append(attrs, "color=red", "fontcolor=red", `label="banned"`)
	}
	return attrs
}

func edgeSet(cs []assign.Constraint) map[assign.Constraint]bool {
	set := make(map[assign.Constraint]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}
