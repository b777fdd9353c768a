package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/holes"
	"github.com/matzehuels/railfill/pkg/railing"
)

// stdout receives all user-facing output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	colorAccent  = lipgloss.Color("36")  // teal
	colorOK      = lipgloss.Color("35")  // green
	colorWarn    = lipgloss.Color("220") // amber
	colorFail    = lipgloss.Color("167") // soft red
	colorCommand = lipgloss.Color("75")  // light blue
	colorValue   = lipgloss.Color("255") // bright white
	colorLabel   = lipgloss.Color("245") // gray
	colorMuted   = lipgloss.Color("240") // dim gray
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleHighlight for values the user should notice, like addresses.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)
	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	styleTableKey    = lipgloss.NewStyle().Foreground(colorLabel).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Foreground(colorValue).Padding(0, 1)
)

// statusIcons prefix status lines.
var statusIcons = map[string]lipgloss.Style{
	"✓": lipgloss.NewStyle().Foreground(colorOK),
	"✗": lipgloss.NewStyle().Foreground(colorFail),
	"!": lipgloss.NewStyle().Foreground(colorWarn),
	"›": lipgloss.NewStyle().Foreground(colorLabel),
}

// =============================================================================
// Status Lines
// =============================================================================

func printStatus(icon, msg string) {
	fmt.Fprintln(stdout, statusIcons[icon].Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus("✓", fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { printStatus("✗", fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { printStatus("›", fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	printStatus("!", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// =============================================================================
// Run Summary
// =============================================================================

// printStats prints run statistics on one dim line, ending with whether the
// result came from the cache.
func printStats(res *generate.Result, cached bool) {
	origin := StyleDim.Render("fresh")
	if cached {
		origin = StyleSuccess.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d/%d rods", res.Infill.RodCount(), res.Requested)),
		StyleDim.Render(fmt.Sprintf("fitness %.3f", res.Fitness)),
		StyleDim.Render(fmt.Sprintf("%d attempts", res.Attempts)),
		StyleDim.Render(fmt.Sprintf("%d iterations", res.Iterations)),
		StyleDim.Render(res.Duration.Round(time.Millisecond).String()),
		origin,
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// progressLine summarizes a progress event for spinners and the TUI.
func progressLine(p generate.Progress) string {
	line := fmt.Sprintf("Attempt %d · %s · %d iterations", p.Attempt, p.Phase, p.Iterations)
	if p.HasBest {
		line += fmt.Sprintf(" · best %.3f", p.BestFitness)
	}
	return line
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == 0:
				return styleTableKey
			}
			return styleTableCell
		})
}

// bomTable renders the bill of materials with a totals row.
func bomTable(in *railing.Infill) string {
	t := newTable("#", "Layer", "Length (cm)", "Cut start (°)", "Cut end (°)", "Weight (kg)")
	for _, e := range in.BOM() {
		t.Row(
			strconv.Itoa(e.ID),
			strconv.Itoa(e.Layer),
			fmt.Sprintf("%.2f", e.Length),
			fmt.Sprintf("%.1f", e.StartCutAngle),
			fmt.Sprintf("%.1f", e.EndCutAngle),
			fmt.Sprintf("%.3f", e.Weight),
		)
	}
	t.Row("Σ", "", fmt.Sprintf("%.2f", in.TotalLength()), "", "", fmt.Sprintf("%.3f", in.TotalWeight()))
	return t.Render()
}

// holesTable renders holes largest first with their share of the total.
func holesTable(hs []holes.Hole) string {
	total := holes.TotalArea(hs)
	t := newTable("#", "Area (cm²)", "Share", "Corners")
	for i, h := range hs {
		share := 0.0
		if total > 0 {
			share = h.Area / total * 100
		}
		t.Row(
			strconv.Itoa(i+1),
			fmt.Sprintf("%.1f", h.Area),
			fmt.Sprintf("%.1f%%", share),
			strconv.Itoa(len(h.Polygon)),
		)
	}
	return t.Render()
}
