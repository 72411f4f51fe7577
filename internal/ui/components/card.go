package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/ui/theme"
)

// ContentWidth is the shared inner width for stacked cards.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Card wraps content in a rounded border at width cw.
func Card(content string, cw int, accent bool) string {
	border := theme.Border
	if accent {
		border = theme.Gold
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 2).
		Render(content)
}

// Frame centers content inside width x height with a double border.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
