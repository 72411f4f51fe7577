package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/session"
	"github.com/abhisek/cosmath/internal/ui/components"
	"github.com/abhisek/cosmath/internal/ui/layout"
	"github.com/abhisek/cosmath/internal/ui/theme"
)

// Params is everything the summary shows. When SaveErr is set the learner
// can retry persisting the result with Retry.
type Params struct {
	Result  session.CompletionResult
	Lesson  curriculum.Lesson
	Table   *achievements.Table
	SaveErr error
	Retry   func(ctx context.Context) (*progress.Learner, error)
}

type savedMsg struct {
	Learner *progress.Learner
	Err     error
}

// SummaryScreen shows the outcome of a finished lesson.
type SummaryScreen struct {
	p      Params
	saving bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(p Params) *SummaryScreen {
	return &SummaryScreen{p: p}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Mission Report" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Back to lessons"}}
	if s.p.SaveErr != nil && s.p.Retry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry save"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		s.p.SaveErr = msg.Err
		if msg.Err == nil && msg.Learner != nil {
			l := msg.Learner
			return s, func() tea.Msg { return screen.LearnerUpdatedMsg{Learner: l} }
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r", "R":
			if s.p.SaveErr == nil || s.p.Retry == nil || s.saving {
				return s, nil
			}
			s.saving = true
			retry := s.p.Retry
			return s, func() tea.Msg {
				l, err := retry(context.Background())
				return savedMsg{Learner: l, Err: err}
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.p.Result
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Title, width, fmt.Sprintf("%s %s complete!", s.p.Lesson.Icon, res.LessonTitle)))
	b.WriteString("\n\n")

	mins, secs := res.TimeTakenSeconds/60, res.TimeTakenSeconds%60
	stats := fmt.Sprintf("Score %d/100     Time %d:%02d     Attempts %d",
		res.FinalScore, mins, secs, res.TotalAttempts())
	b.WriteString(theme.Centered(theme.Body, width, stats))
	b.WriteString("\n\n")

	xp := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(fmt.Sprintf("+%d XP", res.TotalXP()))
	if res.BonusXPFromAchievements > 0 {
		xp += lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%d lesson + %d bonus)", res.XPEarned, res.BonusXPFromAchievements))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, xp))
	b.WriteString("\n\n")

	if len(res.UnlockedAchievementIDs) > 0 {
		var lines []string
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render("Achievements unlocked"))
		for _, id := range res.UnlockedAchievementIDs {
			lines = append(lines, s.achievementLine(id))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Card(strings.Join(lines, "\n"), cw, true)))
		b.WriteString("\n\n")
	}

	switch {
	case s.saving:
		b.WriteString(theme.Centered(theme.Hint, width, "Saving..."))
	case s.p.SaveErr != nil:
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"Progress not saved: "+s.p.SaveErr.Error()))
	default:
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "Progress saved"))
	}
	return b.String()
}

func (s *SummaryScreen) achievementLine(id string) string {
	if s.p.Table != nil {
		if def, ok := s.p.Table.Get(id); ok {
			return fmt.Sprintf("%s %s  +%d XP", def.Icon, def.Name, def.XPReward)
		}
	}
	return id
}
