package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/giftring/pkg/assign"
	pkgio "github.com/matzehuels/giftring/pkg/io"
	"github.com/matzehuels/giftring/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleBanned = lipgloss.NewStyle().Foreground(colorRed)
	styleForced = lipgloss.NewStyle().Bold(true)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine formats run statistics on a single line.
func statsLine(out *pipeline.Output) string {
	parts := []string{
		fmt.Sprintf("%d participants", out.Stats.Participants),
		fmt.Sprintf("%d cycles", out.Stats.Cycles),
	}
	if out.Result.Attempts > 0 {
		parts = append(parts, fmt.Sprintf("%d attempts", out.Result.Attempts))
	}

	status := styleComputed.Render(iconFresh)
	if out.CacheHit {
		status = styleCached.Render(iconCached)
	}

	line := "  "
	for _, part := range parts {
		line += StyleDim.Render(part) + StyleDim.Render(" · ")
	}
	return line + status
}

// =============================================================================
// Tables
// =============================================================================

// assignmentTable renders pairings grouped by cycle. Forced pairings are
// bold and banned ones red.
func assignmentTable(req pkgio.Request, res assign.Result) string {
	forced := constraintSet(req.Forced)
	banned := constraintSet(req.Banned)

	var rows [][]string
	var marks []lipgloss.Style
	addRow := func(cycle string, p assign.Pairing) {
		style := styleTableCell
		note := ""
		key := assign.Constraint{From: p.From, To: p.To}
		switch {
		case banned[key]:
			style, note = styleTableCell.Inherit(styleBanned), "banned"
		case forced[key]:
			style, note = styleTableCell.Inherit(styleForced), "forced"
		}
		rows = append(rows, []string{cycle, p.From, p.To, note})
		marks = append(marks, style)
	}

	if len(res.Cycles) > 0 {
		for i, c := range res.Cycles {
			for j, idx := range c {
				label := ""
				if j == 0 {
					label = strconv.Itoa(i + 1)
				}
				addRow(label, assign.Pairing{
					From: req.Participants[idx],
					To:   req.Participants[c[(j+1)%len(c)]],
				})
			}
		}
	} else {
		for _, p := range res.Pairings {
			addRow("", p)
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Cycle", "Giver", "Receiver", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if row >= 0 && row < len(marks) {
				return marks[row]
			}
			return styleTableCell
		}).
		String()
}

// cyclesTable renders a cycle report with one row per cycle.
func cyclesTable(report *pipeline.CycleReport) string {
	rows := make([][]string, len(report.Cycles))
	for i, names := range report.Cycles {
		ring := strings.Join(names, " "+iconArrow+" ") + " " + iconArrow + " " + names[0]
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(report.Lengths[i]), ring}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Cycle", "Length", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		}).
		String()
}

func constraintSet(cs []assign.Constraint) map[assign.Constraint]bool {
	set := make(map[assign.Constraint]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}
