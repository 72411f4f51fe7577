package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/screens/game"
	"github.com/abhisek/cosmath/internal/screens/history"
	"github.com/abhisek/cosmath/internal/screens/lessons"
	"github.com/abhisek/cosmath/internal/screens/welcome"
	"github.com/abhisek/cosmath/internal/ui/layout"
)

// Options configures the TUI. History is optional; without it the flight
// log is hidden.
type Options struct {
	Game        game.Deps
	DisplayName string
	History     history.Source

	// ResumeLesson, when set, skips the welcome screen and opens that
	// lesson on top of the lesson picker.
	ResumeLesson string
	SkipWelcome  bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	resume func() screen.Screen
	stats  layout.HeaderStats
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	root := func() screen.Screen {
		return lessons.New(lessons.Deps{
			Game:        opts.Game,
			DisplayName: opts.DisplayName,
			History:     opts.History,
		})
	}

	m := AppModel{}
	switch {
	case opts.ResumeLesson != "":
		m.router = router.New(root())
		m.resume = func() screen.Screen { return game.New(opts.Game, opts.ResumeLesson) }
	case opts.SkipWelcome:
		m.router = router.New(root())
	default:
		m.router = router.New(welcome.New(root))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.resume == nil {
		return cmd
	}
	next := m.resume()
	return tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: next} })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.LearnerUpdatedMsg:
		if l := msg.Learner; l != nil {
			m.stats = layout.HeaderStats{Level: l.Level(), XP: l.XP, Streak: l.Streak}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
