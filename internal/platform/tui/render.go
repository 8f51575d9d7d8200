package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/schelling/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	core.ColorSlate:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	core.ColorBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
