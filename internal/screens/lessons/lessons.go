package lessons

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/screens/game"
	"github.com/abhisek/cosmath/internal/screens/history"
	"github.com/abhisek/cosmath/internal/screens/trophies"
	"github.com/abhisek/cosmath/internal/ui/components"
	"github.com/abhisek/cosmath/internal/ui/layout"
	"github.com/abhisek/cosmath/internal/ui/theme"
)

// Deps wires the lesson picker. History is optional.
type Deps struct {
	Game        game.Deps
	DisplayName string
	History     history.Source
}

type loadFailedMsg struct {
	Err error
}

// LessonsScreen is the root screen: progress at a glance and the lesson
// map grouped by topic.
type LessonsScreen struct {
	deps    Deps
	learner *progress.Learner
	menu    components.Menu
	ids     []string // lesson ID per menu row, "" for headings
	errMsg  string
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

func New(deps Deps) *LessonsScreen {
	s := &LessonsScreen{deps: deps}
	s.rebuild()
	return s
}

// Init loads the learner and broadcasts it so the header fills in.
func (s *LessonsScreen) Init() tea.Cmd {
	svc, id, name := s.deps.Game.Service, s.deps.Game.LearnerID, s.deps.DisplayName
	return func() tea.Msg {
		l, err := svc.Learner(context.Background(), id, name)
		if err != nil {
			return loadFailedMsg{Err: err}
		}
		return screen.LearnerUpdatedMsg{Learner: l}
	}
}

func (s *LessonsScreen) Title() string { return "Lessons" }

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Topic"},
		{Key: "Enter", Description: "Launch"},
		{Key: "A", Description: "Trophies"},
	}
	if s.deps.History != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Flight log"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LearnerUpdatedMsg:
		s.learner = msg.Learner
		s.errMsg = ""
		s.rebuild()
		return s, nil

	case loadFailedMsg:
		s.errMsg = msg.Err.Error()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return s, tea.Quit
		case "a", "A":
			next := trophies.New(s.deps.Game.Service.Achievements(), s.learner)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "h", "H":
			if s.deps.History == nil {
				return s, nil
			}
			svc := s.deps.Game.Service
			next := history.New(s.deps.History, s.deps.Game.LearnerID, svc.Catalog(), svc.Achievements())
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "tab":
			s.jumpTopic(1)
			return s, nil
		case "shift+tab":
			s.jumpTopic(-1)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonsScreen) completed() map[string]bool {
	if s.learner == nil {
		return map[string]bool{}
	}
	return s.learner.Completed()
}

// rebuild recreates the menu from the catalog and the learner's progress,
// keeping the cursor on the same lesson.
func (s *LessonsScreen) rebuild() {
	var current string
	if s.menu.Selected >= 0 && s.menu.Selected < len(s.ids) {
		current = s.ids[s.menu.Selected]
	}

	catalog := s.deps.Game.Service.Catalog()
	completed := s.completed()

	var (
		items []components.MenuItem
		ids   []string
	)
	for _, topic := range catalog.Topics() {
		lessons := catalog.ByTopic(topic)
		done := 0
		for _, l := range lessons {
			if completed[l.ID] {
				done++
			}
		}
		items = append(items, components.MenuItem{
			Label:   fmt.Sprintf("%s %s  %d/%d", topic.Icon(), topic.DisplayName(), done, len(lessons)),
			Heading: true,
		})
		ids = append(ids, "")

		for _, l := range lessons {
			state := catalog.State(l.ID, completed)
			item := components.MenuItem{
				Label:    fmt.Sprintf("%s %s", state.Icon(), l.Title),
				Detail:   s.detail(l, state),
				Disabled: state == curriculum.StateLocked,
				Action:   s.launch(l.ID),
			}
			items = append(items, item)
			ids = append(ids, l.ID)
		}
	}

	s.menu = components.NewMenu(items)
	s.ids = ids
	if current != "" {
		for i, id := range ids {
			if id == current && !items[i].Disabled {
				s.menu.Selected = i
			}
		}
	}
}

func (s *LessonsScreen) detail(l curriculum.Lesson, state curriculum.LessonState) string {
	switch state {
	case curriculum.StateCompleted:
		rec := s.learner.CompletedLessons[l.ID]
		return fmt.Sprintf("best %d", rec.BestScore)
	case curriculum.StateLocked:
		return "locked"
	}
	return fmt.Sprintf("%d XP", l.XPReward)
}

func (s *LessonsScreen) launch(lessonID string) func() tea.Cmd {
	return func() tea.Cmd {
		next := game.New(s.deps.Game, lessonID)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

// jumpTopic moves the cursor to the first playable lesson of the next or
// previous topic.
func (s *LessonsScreen) jumpTopic(dir int) {
	i := s.menu.Selected
	if i < 0 {
		return
	}
	// Walk to a heading in dir, then to the first selectable row after it.
	for i += dir; i >= 0 && i < len(s.menu.Items); i += dir {
		if !s.menu.Items[i].Heading {
			continue
		}
		if dir < 0 {
			// Skip our own topic's heading.
			if !s.sameTopic(i, s.menu.Selected) {
				break
			}
			continue
		}
		break
	}
	if i < 0 || i >= len(s.menu.Items) {
		return
	}
	for j := i + 1; j < len(s.menu.Items) && !s.menu.Items[j].Heading; j++ {
		if !s.menu.Items[j].Disabled {
			s.menu.Selected = j
			return
		}
	}
}

// sameTopic reports whether heading h is the heading that row belongs to.
func (s *LessonsScreen) sameTopic(h, row int) bool {
	for i := row; i >= 0; i-- {
		if s.menu.Items[i].Heading {
			return i == h
		}
	}
	return false
}

func (s *LessonsScreen) selectedLesson() (curriculum.Lesson, bool) {
	if s.menu.Selected < 0 || s.menu.Selected >= len(s.ids) || s.ids[s.menu.Selected] == "" {
		return curriculum.Lesson{}, false
	}
	l, err := s.deps.Game.Service.Catalog().Get(s.ids[s.menu.Selected])
	return l, err == nil
}

func (s *LessonsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, s.renderStats(cw))
	if s.errMsg != "" {
		sections = append(sections, theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), cw, s.errMsg))
	}

	detail := s.renderDetail(cw)
	menuHeight := max(height-lipgloss.Height(sections[0])-lipgloss.Height(detail)-4, 3)
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(s.menu.View(cw, menuHeight)))
	if detail != "" {
		sections = append(sections, detail)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func (s *LessonsScreen) renderStats(cw int) string {
	if s.learner == nil {
		return components.Card(theme.Hint.Render("Loading flight data..."), cw, false)
	}
	sum := progress.Summarize(s.learner, s.deps.Game.Service.Catalog(), s.deps.Game.Service.Achievements())

	gold := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	cyan := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	amber := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	line := fmt.Sprintf("%s   %s   %s",
		gold.Render(fmt.Sprintf("★ LEVEL %d", sum.Level)),
		cyan.Render(fmt.Sprintf("✓ %d/%d LESSONS", sum.LessonsCompleted, sum.LessonsTotal)),
		amber.Render(fmt.Sprintf("🔥 %d STREAK", sum.Streak)),
	)
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("%d XP to level %d", sum.XPToNextLevel, sum.Level+1),
		Percent: float64(sum.XPInLevel) / float64(progress.XPPerLevel),
		Width:   cw - 6,
	}
	return components.Card(line+"\n"+bar.View(), cw, false)
}

func (s *LessonsScreen) renderDetail(cw int) string {
	l, ok := s.selectedLesson()
	if !ok {
		return ""
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(l.Icon + " " + l.Title),
		dim.Render(fmt.Sprintf("%s · %d problems · %d XP", l.Difficulty, l.ProblemCount(), l.XPReward)),
	}
	if l.Description != "" {
		lines = append(lines, theme.Body.Render(l.Description))
	}
	if s.learner != nil {
		if rec, ok := s.learner.CompletedLessons[l.ID]; ok {
			lines = append(lines, dim.Render(fmt.Sprintf("Last score %d · best %d · played %d×",
				rec.FinalScore, rec.BestScore, s.learner.LessonAttempts[l.ID])))
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Left).Padding(0, 2).Render(strings.Join(lines, "\n"))
}
