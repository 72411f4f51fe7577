package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/ui/theme"
)

// ProgressBar renders "label  ████░░░░  42%".
type ProgressBar struct {
	Label   string
	Percent float64 // 0..1
	Width   int
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	barWidth := max(p.Width-lipgloss.Width(out)-6, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	out += lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled))
	out += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d%%", int(p.Percent*100)))
	return out
}
