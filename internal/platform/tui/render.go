package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinorun/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorCactus:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorCloud:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorDim:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorAlert:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorSkinGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorSkinRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	core.ColorSkinYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorSkinBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
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

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
