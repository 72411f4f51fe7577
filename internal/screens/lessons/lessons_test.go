package lessons

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
	"github.com/abhisek/cosmath/internal/screens/game"
	"github.com/abhisek/cosmath/internal/session"
)

type emptyHistory struct{}

func (emptyHistory) Recent(context.Context, string, int) ([]session.CompletionResult, error) {
	return nil, nil
}

func newTestScreen(t *testing.T) (*LessonsScreen, *progress.Service) {
	t.Helper()
	svc := progress.NewService(progress.NewMemoryRepo(), curriculum.Default(), achievements.DefaultTable())
	s := New(Deps{
		Game:        game.Deps{Service: svc, LearnerID: "u1"},
		DisplayName: "Ada",
		History:     emptyHistory{},
	})
	return s, svc
}

// loaded runs Init and feeds the broadcast back in.
func loaded(t *testing.T, s *LessonsScreen) {
	t.Helper()
	msg := s.Init()()
	if _, ok := msg.(screen.LearnerUpdatedMsg); !ok {
		t.Fatalf("Init produced %T, want LearnerUpdatedMsg", msg)
	}
	s.Update(msg)
}

func TestMenuGating(t *testing.T) {
	s, _ := newTestScreen(t)
	loaded(t, s)

	if got := s.ids[s.menu.Selected]; got != "alg0" {
		t.Errorf("cursor on %q, want alg0", got)
	}
	for i, id := range s.ids {
		if id == "" {
			if !s.menu.Items[i].Heading {
				t.Errorf("row %d: expected heading", i)
			}
			continue
		}
		want := !curriculum.Default().IsPlayable(id, nil)
		if s.menu.Items[i].Disabled != want {
			t.Errorf("%s disabled = %v, want %v", id, s.menu.Items[i].Disabled, want)
		}
	}
}

func TestEnterLaunchesGame(t *testing.T) {
	s, _ := newTestScreen(t)
	loaded(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*game.GameScreen); !ok {
		t.Errorf("pushed %T, want game", push.Screen)
	}
}

func TestCompletionUnlocksNextLesson(t *testing.T) {
	s, svc := newTestScreen(t)
	loaded(t, s)
	ctx := context.Background()

	res := session.CompletionResult{
		SessionID:          "s1",
		LessonID:           "alg0",
		LessonTitle:        "Stellar Arithmetic",
		Topic:              curriculum.TopicAlgebra,
		FinalScore:         90,
		XPEarned:           27,
		AttemptsPerProblem: []int{1, 1, 1, 1, 2},
		CompletedAt:        time.Now(),
	}
	if err := svc.Persist(ctx, "u1", res); err != nil {
		t.Fatal(err)
	}
	l, err := svc.Learner(ctx, "u1", "")
	if err != nil {
		t.Fatal(err)
	}
	s.Update(screen.LearnerUpdatedMsg{Learner: l})

	if got := s.ids[s.menu.Selected]; got != "alg0" {
		t.Errorf("cursor moved to %q, want alg0", got)
	}
	for i, id := range s.ids {
		if id == "alg1" && s.menu.Items[i].Disabled {
			t.Error("alg1 should be unlocked")
		}
		if id == "alg0" && s.menu.Items[i].Detail != "best 90" {
			t.Errorf("alg0 detail = %q", s.menu.Items[i].Detail)
		}
	}
	if !strings.Contains(s.View(100, 40), "1/11 LESSONS") {
		t.Error("stats should count the completion")
	}
}

func TestNavigationKeys(t *testing.T) {
	s, _ := newTestScreen(t)
	loaded(t, s)

	tests := []struct {
		key   rune
		title string
	}{
		{'a', "Trophy Room"},
		{'h', "Flight Log"},
	}
	for _, tt := range tests {
		_, cmd := s.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
		if cmd == nil {
			t.Fatalf("%c: expected a command", tt.key)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("%c: expected PushScreenMsg", tt.key)
		}
		if got := push.Screen.Title(); got != tt.title {
			t.Errorf("%c: pushed %q, want %q", tt.key, got, tt.title)
		}
	}
}

func TestTabJumpsTopic(t *testing.T) {
	s, _ := newTestScreen(t)
	loaded(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := s.ids[s.menu.Selected]; got != "geo0" {
		t.Errorf("after tab cursor on %q, want geo0", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if got := s.ids[s.menu.Selected]; got != "alg0" {
		t.Errorf("after shift+tab cursor on %q, want alg0", got)
	}
}
