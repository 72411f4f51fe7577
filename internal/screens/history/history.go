package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/session"
	"github.com/abhisek/cosmath/internal/ui/layout"
	"github.com/abhisek/cosmath/internal/ui/theme"
)

// Limit is how many completions the screen loads.
const Limit = 50

// Source lists a learner's recent completions, newest first.
type Source interface {
	Recent(ctx context.Context, learnerID string, limit int) ([]session.CompletionResult, error)
}

type historyLoadedMsg struct {
	Results []session.CompletionResult
	Err     error
}

// HistoryScreen lists past lesson completions.
type HistoryScreen struct {
	source    Source
	learnerID string
	catalog   *curriculum.Catalog
	table     *achievements.Table

	results  []session.CompletionResult
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. catalog and table are used to show names
// instead of IDs and may be nil.
func New(source Source, learnerID string, catalog *curriculum.Catalog, table *achievements.Table) *HistoryScreen {
	return &HistoryScreen{
		source:    source,
		learnerID: learnerID,
		catalog:   catalog,
		table:     table,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		results, err := s.source.Recent(context.Background(), s.learnerID, Limit)
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Flight Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(theme.Subtitle, width, "\n\n  Loading flight log...")
	}
	if len(s.results) == 0 {
		return theme.Centered(theme.Hint, width, "\n\n  No missions flown yet. Pick a lesson to launch!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		badge := ""
		if n := len(r.UnlockedAchievementIDs); n > 0 {
			badge = fmt.Sprintf("  ★%d", n)
		}
		line := fmt.Sprintf("%s%s  %-24s %3d/100  +%d XP  %d:%02d%s",
			prefix,
			r.CompletedAt.Local().Format("Jan 02 15:04"),
			s.lessonTitle(r),
			r.FinalScore,
			r.TotalXP(),
			r.TimeTakenSeconds/60, r.TimeTakenSeconds%60,
			badge,
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetail(width, r))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderDetail(width int, r session.CompletionResult) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	attempts := make([]string, len(r.AttemptsPerProblem))
	for i, a := range r.AttemptsPerProblem {
		attempts[i] = fmt.Sprint(a)
	}
	lines := []string{fmt.Sprintf("    Attempts per problem: %s", strings.Join(attempts, " "))}
	if r.BonusXPFromAchievements > 0 {
		lines = append(lines, fmt.Sprintf("    Lesson XP %d + bonus %d", r.XPEarned, r.BonusXPFromAchievements))
	}
	for _, id := range r.UnlockedAchievementIDs {
		name := id
		if s.table != nil {
			if def, ok := s.table.Get(id); ok {
				name = def.Icon + " " + def.Name
			}
		}
		lines = append(lines, "    "+lipgloss.NewStyle().Foreground(theme.Gold).Render(name))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(l)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) lessonTitle(r session.CompletionResult) string {
	if r.LessonTitle != "" {
		return r.LessonTitle
	}
	if s.catalog != nil {
		if l, err := s.catalog.Get(r.LessonID); err == nil {
			return l.Title
		}
	}
	return r.LessonID
}
