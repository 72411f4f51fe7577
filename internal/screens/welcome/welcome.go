package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const rocketArt = `      /\
     /  \
    | ◉  |
    | ±× |
    |    |
   /| ÷= |\
  /_|____|_\
     /\/\`

// stars twinkle around the rocket
var sparkleFrames = []string{"★", "✦", "·"}

type tickMsg time.Time

// WelcomeScreen shows a launch animation, then hands over to the lesson
// picker on the first key press.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with nextFactory() on a
// key press.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderRocket()}
	if w.elapsed < phase2End {
		sections = append(sections, "", flameFrame(w.tickCount))
	} else {
		sections = append(sections, "", RenderBanner(width), "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Math that's out of this world!"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// renderRocket draws the rocket, lifted while launching, with twinkling
// stars once the first phase is over.
func (w *WelcomeScreen) renderRocket() string {
	lines := strings.Split(lipgloss.NewStyle().Foreground(theme.Secondary).Render(rocketArt), "\n")
	if w.elapsed >= phase1End {
		star := sparkleFrames[w.tickCount%len(sparkleFrames)]
		amber := lipgloss.NewStyle().Foreground(theme.Accent).Render(star)
		cyan := lipgloss.NewStyle().Foreground(theme.Secondary).Render(star)
		for i, pair := range map[int][2]string{0: {amber, cyan}, 3: {cyan, amber}, 6: {amber, cyan}} {
			if i < len(lines) {
				lines[i] = pair[0] + "  " + lines[i] + "  " + pair[1]
			}
		}
	}
	for range w.lift() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// lift is how many blank lines are added under the rocket during launch.
func (w *WelcomeScreen) lift() int {
	if w.elapsed >= phase2End {
		return 0
	}
	return int((phase2End - w.elapsed) / (300 * time.Millisecond))
}

func flameFrame(tick int) string {
	frames := []string{"  ▲▲▲  ", "  ▼▲▼  ", "  ▲▼▲  "}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(frames[tick%len(frames)])
}
