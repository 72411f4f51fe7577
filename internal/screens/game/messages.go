package game

import (
	"time"

	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/session"
	"github.com/abhisek/cosmath/internal/tutor"
)

// startedMsg is sent when the lesson has been checked and a session begun.
type startedMsg struct {
	Session *session.Session
	Err     error
}

// hintMsg carries a tutor hint for the problem at Index.
type hintMsg struct {
	Index int
	Hint  tutor.Hint
	Err   error
}

// finishedMsg is sent once the completion result is built. SaveErr is set
// when the result could not be persisted.
type finishedMsg struct {
	Result  session.CompletionResult
	Learner *progress.Learner
	SaveErr error
	Err     error
}

// tickMsg refreshes the elapsed clock.
type tickMsg time.Time
