package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/ui/components"
	"github.com/abhisek/cosmath/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	case s.sess == nil:
		return theme.Centered(theme.Subtitle, width, "\n\n\nPreparing for launch...")
	case s.finishing:
		return theme.Centered(theme.Subtitle, width, "\n\n\nDocking... saving your progress")
	case s.quitConfirm:
		return renderQuitConfirm(width)
	case s.feedback != nil:
		return s.renderFeedback(width)
	}
	return s.renderProblem(width)
}

func (s *GameScreen) statusLine(width int) string {
	lesson := s.sess.Lesson()
	elapsed := s.sess.Elapsed()

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s %s", lesson.Topic.Icon(), lesson.Topic.DisplayName()))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  Score %d  %s %d XP  %d:%02d",
			s.sess.Index()+1, lesson.ProblemCount(),
			s.sess.Score(),
			lipgloss.NewStyle().Foreground(theme.Gold).Render("★"),
			s.sess.ProjectedXP(),
			int(elapsed.Minutes()), int(elapsed.Seconds())%60,
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *GameScreen) renderProblem(width int) string {
	p, ok := s.sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.statusLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
	b.WriteString("\n\n")

	q := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Bold(true).Render(p.Question)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		answer := "Answer: " + s.input.View()
		if p.Unit != "" {
			answer += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Unit)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, answer))
	}

	if s.hint != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderHint(width)))
	}
	return b.String()
}

func (s *GameScreen) renderFeedback(width int) string {
	fb := s.feedback

	var b strings.Builder
	b.WriteString("\n\n")

	switch {
	case fb.Correct:
		b.WriteString(theme.Centered(theme.Correct, width, "Correct!"))
		b.WriteString("\n")
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Gold), width,
			fmt.Sprintf("+%d XP", fb.XPDelta)))
	case fb.PartialCredit > 0:
		b.WriteString(theme.Centered(theme.Close, width, "So close!"))
		b.WriteString("\n")
		b.WriteString(theme.Centered(theme.Subtitle, width, "You're within 10% of the answer. Try again."))
	default:
		b.WriteString(theme.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		b.WriteString(theme.Centered(theme.Subtitle, width, "Check your working and try again."))
	}

	b.WriteString("\n\n")
	scoreLine := fmt.Sprintf("Score: %d", fb.Score)
	if fb.Deduction > 0 {
		scoreLine += fmt.Sprintf("  (-%d)", fb.Deduction)
	}
	b.WriteString(theme.Centered(theme.Body, width, scoreLine))
	b.WriteString("\n\n")

	switch {
	case s.hintPending:
		b.WriteString(theme.Centered(theme.Hint, width, "Asking mission control for a hint..."))
		b.WriteString("\n\n")
	case s.hint != nil:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderHint(width)))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Centered(theme.Hint, width, "Press any key to continue..."))
	return b.String()
}

func (s *GameScreen) renderHint(width int) string {
	text := lipgloss.NewStyle().Foreground(theme.Text).Render("💡 " + s.hint.Text)
	if s.hint.Encouragement != "" {
		text += "\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render(s.hint.Encouragement)
	}
	return components.Card(text, components.ContentWidth(width), false)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Abort the mission?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Subtitle, width, "Progress in this lesson will be lost."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}
