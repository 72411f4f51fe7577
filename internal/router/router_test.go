package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want []string
	}{
		{"push", []tea.Msg{PushScreenMsg{&stubScreen{title: "game"}}}, []string{"lessons", "game"}},
		{"pop", []tea.Msg{PushScreenMsg{&stubScreen{title: "game"}}, PopScreenMsg{}}, []string{"lessons"}},
		{"pop at root is a no-op", []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}, []string{"lessons"}},
		{"replace keeps depth", []tea.Msg{PushScreenMsg{&stubScreen{title: "game"}}, ReplaceScreenMsg{&stubScreen{title: "summary"}}}, []string{"lessons", "summary"}},
		{"pop to root", []tea.Msg{
			PushScreenMsg{&stubScreen{title: "game"}},
			PushScreenMsg{&stubScreen{title: "summary"}},
			PopToRootMsg{},
		}, []string{"lessons"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "lessons"})
			for _, m := range tt.msgs {
				r.Update(m)
			}
			got := titles(r)
			if len(got) != len(tt.want) {
				t.Fatalf("stack = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("stack = %v, want %v", got, tt.want)
				}
			}
			if r.Active().Title() != tt.want[len(tt.want)-1] {
				t.Errorf("active = %q", r.Active().Title())
			}
		})
	}
}

func TestPushAndReplaceRunInit(t *testing.T) {
	r := New(&stubScreen{title: "root"})
	pushed := &stubScreen{title: "pushed"}
	r.Update(PushScreenMsg{pushed})
	replaced := &stubScreen{title: "replaced"}
	r.Update(ReplaceScreenMsg{replaced})
	if !pushed.initRan || !replaced.initRan {
		t.Error("Init should run on pushed and replacing screens")
	}
}

func TestInputGoesToActiveOnly(t *testing.T) {
	root := &stubScreen{title: "root"}
	top := &stubScreen{title: "top"}
	r := New(root)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if len(root.got) != 0 || len(top.got) != 1 {
		t.Errorf("root got %d, top got %d", len(root.got), len(top.got))
	}
}

func TestLearnerUpdateIsBroadcast(t *testing.T) {
	root := &stubScreen{title: "root"}
	top := &stubScreen{title: "top"}
	r := New(root)
	r.Push(top)

	r.Update(screen.LearnerUpdatedMsg{Learner: &progress.Learner{ID: "u1"}})
	if len(root.got) != 1 || len(top.got) != 1 {
		t.Errorf("root got %d, top got %d", len(root.got), len(top.got))
	}
}
