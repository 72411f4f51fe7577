package game

import (
	"context"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/screens/summary"
	"github.com/abhisek/cosmath/internal/session"
	"github.com/abhisek/cosmath/internal/tutor"
	"github.com/abhisek/cosmath/internal/ui/components"
	"github.com/abhisek/cosmath/internal/ui/layout"
)

// Deps are the services a lesson run needs. Tutor is optional.
type Deps struct {
	Service   *progress.Service
	LearnerID string
	Tutor     *tutor.Tutor
	Rand      *rand.Rand

	// TypedAnswers asks for a typed answer on problems without explicit
	// choices. By default every problem is multiple choice.
	TypedAnswers bool
}

// GameScreen plays one lesson from the first problem to completion.
type GameScreen struct {
	deps     Deps
	lessonID string
	sess     *session.Session

	input    components.TextInput
	mc       components.MultiChoice
	options  []curriculum.Answer
	mcActive bool

	feedback    *session.SubmissionResult
	hint        *tutor.Hint
	hintPending bool

	quitConfirm bool
	finishing   bool
	errMsg      string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)

func New(deps Deps, lessonID string) *GameScreen {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &GameScreen{
		deps:     deps,
		lessonID: lessonID,
		input:    components.NewTextInput("Type your answer...", false, 20),
	}
}

func (s *GameScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sess, err := s.deps.Service.Start(context.Background(), s.deps.LearnerID, s.lessonID)
		return startedMsg{Session: sess, Err: err}
	}
}

func (s *GameScreen) Title() string {
	if s.sess == nil {
		return "Lesson"
	}
	return s.sess.Lesson().Title
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.sess == nil || s.finishing:
		return nil
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave lesson"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mcActive:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sess = msg.Session
		return s, tea.Batch(s.prepareProblem(), tickCmd())

	case tickMsg:
		if s.sess == nil || s.sess.Phase() != session.PhaseActive {
			return s, nil
		}
		return s, tickCmd()

	case hintMsg:
		return s.handleHint(msg)

	case finishedMsg:
		return s.handleFinished(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.sess != nil && s.feedback == nil && !s.quitConfirm && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// prepareProblem sets up the input for the current problem. Options are
// synthesized for problems that carry none, unless typed answers are on.
func (s *GameScreen) prepareProblem() tea.Cmd {
	p, ok := s.sess.Current()
	if !ok {
		return nil
	}
	s.hint = nil
	s.hintPending = false

	if !s.deps.TypedAnswers || len(p.Choices) > 0 || p.Answer.Kind() == curriculum.KindBool {
		s.options = p.Options(s.deps.Rand)
		labels := make([]string, len(s.options))
		for i, o := range s.options {
			labels[i] = o.String()
		}
		s.mc = components.NewMultiChoice(labels)
		s.mcActive = true
		return nil
	}

	s.options = nil
	s.mcActive = false
	s.input = components.NewTextInput("Type your answer...", p.Answer.Kind() == curriculum.KindNumber, 20)
	return s.input.Init()
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sess == nil || s.finishing {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.deps.Service.Abandon(context.Background(), s.deps.LearnerID, s.sess)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.feedback != nil {
		advanced := s.feedback.Advanced
		s.feedback = nil
		if advanced {
			return s, s.prepareProblem()
		}
		if !s.mcActive {
			s.input = components.NewTextInput("Try again...", s.input.Numeric, 20)
			return s, s.input.Init()
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	if s.mcActive {
		var chosen bool
		s.mc, chosen = s.mc.Update(msg)
		if chosen {
			return s.submit(s.options[s.mc.Selected])
		}
		return s, nil
	}

	if key == "enter" {
		v := s.input.Value()
		if v == "" {
			return s, nil
		}
		return s.submit(curriculum.Text(v))
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GameScreen) submit(answer curriculum.Answer) (screen.Screen, tea.Cmd) {
	p, _ := s.sess.Current()
	res, err := s.sess.Submit(answer)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	if res.Done {
		s.finishing = true
		return s, s.finish()
	}

	s.feedback = &res
	if res.Correct || s.deps.Tutor == nil {
		return s, nil
	}
	s.hint = nil
	s.hintPending = true
	return s, s.requestHint(res.ProblemIndex, p, answer)
}

func (s *GameScreen) requestHint(idx int, p curriculum.Problem, wrong curriculum.Answer) tea.Cmd {
	t := s.deps.Tutor
	topic := s.sess.Lesson().Topic
	return func() tea.Msg {
		h, err := t.Hint(context.Background(), topic, p, wrong)
		return hintMsg{Index: idx, Hint: h, Err: err}
	}
}

func (s *GameScreen) handleHint(msg hintMsg) (screen.Screen, tea.Cmd) {
	// A hint that arrives after the learner moved on is dropped.
	if s.sess == nil || msg.Index != s.sess.Index() {
		return s, nil
	}
	s.hintPending = false
	if msg.Err != nil {
		return s, nil
	}
	h := msg.Hint
	s.hint = &h
	return s, nil
}

// finish builds and persists the completion result, then reloads the
// learner for the header.
func (s *GameScreen) finish() tea.Cmd {
	svc, learnerID, sess := s.deps.Service, s.deps.LearnerID, s.sess
	return func() tea.Msg {
		ctx := context.Background()
		res, err := svc.Finish(ctx, learnerID, sess)
		if res.SessionID == "" {
			return finishedMsg{Err: err}
		}
		out := finishedMsg{Result: res, SaveErr: err}
		if err == nil {
			out.Learner, _ = svc.Learner(ctx, learnerID, "")
		}
		return out
	}
}

func (s *GameScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.finishing = false
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	svc, learnerID := s.deps.Service, s.deps.LearnerID
	next := summary.New(summary.Params{
		Result:  msg.Result,
		Lesson:  s.sess.Lesson(),
		Table:   svc.Achievements(),
		SaveErr: msg.SaveErr,
		Retry: func(ctx context.Context) (*progress.Learner, error) {
			if err := svc.Persist(ctx, learnerID, msg.Result); err != nil {
				return nil, err
			}
			return svc.Learner(ctx, learnerID, "")
		},
	})

	cmds := []tea.Cmd{func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }}
	if msg.Learner != nil {
		l := msg.Learner
		cmds = append(cmds, func() tea.Msg { return screen.LearnerUpdatedMsg{Learner: l} })
	}
	return s, tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
