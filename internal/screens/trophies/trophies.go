package trophies

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/ui/layout"
	"github.com/abhisek/cosmath/internal/ui/theme"
)

// Filter selects which achievements are listed.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnlocked
	FilterLocked
)

var filters = []Filter{FilterAll, FilterUnlocked, FilterLocked}

func (f Filter) String() string {
	switch f {
	case FilterUnlocked:
		return "Unlocked"
	case FilterLocked:
		return "Locked"
	default:
		return "All"
	}
}

// TrophiesScreen is the trophy room.
type TrophiesScreen struct {
	table        *achievements.Table
	unlocked     map[string]progress.Unlock
	filter       int
	scrollOffset int
}

var _ screen.Screen = (*TrophiesScreen)(nil)
var _ screen.KeyHintProvider = (*TrophiesScreen)(nil)

// New creates the screen. learner may be nil before progress is loaded.
func New(table *achievements.Table, learner *progress.Learner) *TrophiesScreen {
	s := &TrophiesScreen{table: table}
	s.setLearner(learner)
	return s
}

func (s *TrophiesScreen) setLearner(l *progress.Learner) {
	s.unlocked = map[string]progress.Unlock{}
	if l != nil && l.Achievements != nil {
		s.unlocked = l.Achievements
	}
}

func (s *TrophiesScreen) Init() tea.Cmd { return nil }

func (s *TrophiesScreen) Title() string { return "Trophy Room" }

func (s *TrophiesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrophiesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LearnerUpdatedMsg:
		s.setLearner(msg.Learner)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.filter = (s.filter + 1) % len(filters)
			s.scrollOffset = 0
		case "shift+tab":
			s.filter = (s.filter - 1 + len(filters)) % len(filters)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *TrophiesScreen) filtered() []achievements.Definition {
	var out []achievements.Definition
	for _, d := range s.table.All() {
		_, ok := s.unlocked[d.ID]
		switch filters[s.filter] {
		case FilterUnlocked:
			if !ok {
				continue
			}
		case FilterLocked:
			if ok {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func (s *TrophiesScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Centered(theme.Body, width,
		fmt.Sprintf("\n%d of %d unlocked\n", len(s.unlocked), s.table.Len())))
	b.WriteString("\n")

	var tabs []string
	for i, f := range filters {
		if i == s.filter {
			tabs = append(tabs, theme.Selected.Render(f.String()))
		} else {
			tabs = append(tabs, theme.Locked.Render(f.String()))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.filtered()
	if len(list) == 0 {
		b.WriteString(theme.Centered(theme.Hint, width, "Nothing here yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(list))

	for _, d := range list[start:end] {
		u, ok := s.unlocked[d.ID]
		var line string
		if ok {
			line = lipgloss.NewStyle().Foreground(theme.Gold).
				Render(fmt.Sprintf("%s %-32s +%-4d %s", d.Icon, d.Name, d.XPReward, u.UnlockedAt.Local().Format("Jan 02, 2006")))
		} else {
			line = theme.Locked.
				Render(fmt.Sprintf("🔒 %-32s +%-4d %s", d.Name, d.XPReward, d.Description))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	if end < len(list) {
		b.WriteString("\n")
		b.WriteString(theme.Centered(theme.Subtitle, width, fmt.Sprintf("... %d more", len(list)-end)))
	}
	return b.String()
}
