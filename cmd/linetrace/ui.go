package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"linetrace/pathfinding"
	"linetrace/validation"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
)

// printSummary writes one line per route and one per validation finding.
func printSummary(w io.Writer, session string, routes []pathfinding.Route, issues []validation.ValidationError) {
	fmt.Fprintf(w, "%s %s\n", styleTitle.Render("session"), styleDim.Render(session))
	for _, r := range routes {
		icon := styleSuccess.Render(iconSuccess)
		if r.Truncated {
			icon = styleWarning.Render(iconWarning)
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color)).Render("━━")
		fmt.Fprintf(w, "%s %s route %s  %s points  %s\n",
			icon, swatch,
			styleNumber.Render(fmt.Sprint(r.Index)),
			styleNumber.Render(fmt.Sprint(len(r.Points))),
			styleDim.Render(string(r.Strategy)))
	}
	for _, issue := range issues {
		fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), issue.Error())
	}
}
