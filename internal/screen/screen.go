package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/ui/layout"
)

// Screen is one page of the TUI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the content area, excluding header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// LearnerUpdatedMsg is broadcast after progress changes so the header and
// any listening screen can refresh.
type LearnerUpdatedMsg struct {
	Learner *progress.Learner
}
