package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/ui/theme"
)

// MultiChoice selects one of up to nine options by arrows or digit keys.
type MultiChoice struct {
	Options  []string
	Selected int
}

func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor. chosen is true when the learner picked an option
// with Enter or a digit key.
func (m MultiChoice) Update(msg tea.Msg) (mc MultiChoice, chosen bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}
	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, len(m.Options) > 0
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				return m, true
			}
		}
	}
	return m, false
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
