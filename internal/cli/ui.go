package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
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

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleUnset  = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconBullet  = "·"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Lists
// =============================================================================

// printList prints a titled list, one item per line, followed by a count.
// Empty names are shown as a placeholder so they stay visible.
func printList(w io.Writer, title string, items []string) {
	fmt.Fprintln(w, StyleTitle.Render(title))
	if len(items) == 0 {
		printDetail(w, "none available")
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, "  "+StyleDim.Render(iconBullet)+" "+displayName(item))
	}
	printDetail(w, "%d total", len(items))
}

func displayName(s string) string {
	if s == "" {
		return styleUnset.Render("(unnamed)")
	}
	return StyleValue.Render(s)
}

func yearStrings(years []int) []string {
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}

// =============================================================================
// Selection Display
// =============================================================================

// selectionTable renders a saved selection as a bordered table.
func selectionTable(profile string, st *vehicles.VehicleState) string {
	year, makeName, model := "—", "—", "—"
	if st.SelectedYear != nil {
		year = strconv.Itoa(*st.SelectedYear)
	}
	if st.SelectedMake != nil {
		makeName = *st.SelectedMake
	}
	if st.SelectedModel != nil {
		model = *st.SelectedModel
	}

	rows := [][]string{
		{"Year", year, countLabel(len(st.Years), "year")},
		{"Make", makeName, countLabel(len(st.Makes), "make")},
		{"Model", model, countLabel(len(st.Models), "model")},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Selected", "Options").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row < 0:
				return styleHeader
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			case col == 1 && rows[row][1] != "—":
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			default:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
		})

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Profile " + profile))
	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String()
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
