package theme

import (
	"charm.land/lipgloss/v2"
)

// Space palette
var (
	Primary   = lipgloss.Color("#818CF8") // Nebula indigo
	Secondary = lipgloss.Color("#22D3EE") // Ion cyan
	Accent    = lipgloss.Color("#F59E0B") // Solar amber
	Gold      = lipgloss.Color("#FACC15") // Achievement gold
	Success   = lipgloss.Color("#34D399")
	Warning   = lipgloss.Color("#FBBF24")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#020617") // Deep space
	BgCard    = lipgloss.Color("#1E1B4B")
	Border    = lipgloss.Color("#3730A3")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Close = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Centered renders s centered across width in style st.
func Centered(st lipgloss.Style, width int, s string) string {
	return st.Width(width).Align(lipgloss.Center).Render(s)
}
