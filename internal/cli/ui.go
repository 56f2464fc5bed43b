package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/anchorage/pkg/anchor"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, flips
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
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

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleFlipped = lipgloss.NewStyle().Foreground(colorYellow)
	styleKept    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconFlipped = "flipped"
	iconKept    = "kept"
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

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Placement Output
// =============================================================================

// resolved pairs a scenario label with its placement.
type resolved struct {
	Name      string
	Preferred anchor.Corner
	Placement anchor.Placement
	X, Y      float64
}

// writePlacementTable renders results as a table.
func writePlacementTable(w io.Writer, results []resolved) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := styleKept.Render(iconKept)
		if r.Placement.Flipped(r.Preferred) {
			status = styleFlipped.Render(iconFlipped)
		}
		rows = append(rows, []string{
			r.Name,
			r.Preferred.String(),
			r.Placement.Corner.String(),
			coordsString(r.Placement.Coords),
			formatNum(r.X) + "," + formatNum(r.Y),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Scenario", "Preferred", "Used", "Coords", "Top-left", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
}

// printSummary prints a one-line count of resolved and flipped scenarios.
func printSummary(w io.Writer, results []resolved) {
	flipped := 0
	for _, r := range results {
		if r.Placement.Flipped(r.Preferred) {
			flipped++
		}
	}
	line := fmt.Sprintf("%d resolved", len(results))
	if flipped > 0 {
		line += StyleDim.Render(" · ") + styleFlipped.Render(fmt.Sprintf("%d flipped", flipped))
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(line))
}

func coordsString(c anchor.Coords) string {
	switch c := c.(type) {
	case anchor.TopLeft:
		return "top " + formatNum(c.Top) + ", left " + formatNum(c.Left)
	case anchor.TopRight:
		return "top " + formatNum(c.Top) + ", right " + formatNum(c.Right)
	case anchor.BottomLeft:
		return "bottom " + formatNum(c.Bottom) + ", left " + formatNum(c.Left)
	case anchor.BottomRight:
		return "bottom " + formatNum(c.Bottom) + ", right " + formatNum(c.Right)
	}
	return "-"
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
