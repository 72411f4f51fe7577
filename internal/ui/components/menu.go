package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/ui/theme"
)

// MenuItem is one row. Disabled rows are shown dimmed and skipped by the
// cursor; Heading rows are section titles.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
	Heading  bool
}

func (i MenuItem) selectable() bool { return !i.Disabled && !i.Heading }

// Menu is a vertical list with keyboard navigation.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	for i, item := range items {
		if item.selectable() {
			m.Selected = i
			break
		}
	}
	return m
}

// Select moves the cursor to the first selectable item matching label.
func (m *Menu) Select(label string) {
	for i, item := range m.Items {
		if item.selectable() && item.Label == label {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if m.Items[i].selectable() {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if m.Items[i].selectable() {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil && item.selectable() {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// View renders at most height rows, scrolling to keep the cursor visible.
func (m Menu) View(width, height int) string {
	start := 0
	if height > 0 && m.Selected >= height {
		start = m.Selected - height + 1
	}
	end := len(m.Items)
	if height > 0 {
		end = min(end, start+height)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.Items[i]
		var line string
		switch {
		case item.Heading:
			line = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
		case item.Disabled:
			line = theme.Locked.Render("    " + item.Label)
		default:
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Detail != "" {
			gap := max(width-lipgloss.Width(line)-lipgloss.Width(item.Detail)-2, 1)
			line += strings.Repeat(" ", gap) + theme.Locked.Render(item.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
