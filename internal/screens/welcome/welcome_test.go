package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cosmath/internal/router"
	"github.com/abhisek/cosmath/internal/screen"
)

type nextScreen struct{}

func (s *nextScreen) Init() tea.Cmd                          { return nil }
func (s *nextScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *nextScreen) View(int, int) string                   { return "lessons" }
func (s *nextScreen) Title() string                          { return "Lessons" }

// newCounted returns a welcome screen and the number of times it built the
// next screen.
func newCounted() (*WelcomeScreen, *int) {
	n := 0
	return New(func() screen.Screen {
		n++
		return &nextScreen{}
	}), &n
}

func tick(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestAnimationPhases(t *testing.T) {
	tests := []struct {
		ticks      int
		elapsed    time.Duration
		wantBanner bool
		wantStars  bool
	}{
		{0, 0, false, false},
		{5, 500 * time.Millisecond, false, true},
		{15, 1500 * time.Millisecond, true, true},
		{100, totalDur, true, true},
	}
	for _, tt := range tests {
		w, built := newCounted()
		tick(w, tt.ticks)

		if w.elapsed != tt.elapsed {
			t.Errorf("%d ticks: elapsed = %v, want %v", tt.ticks, w.elapsed, tt.elapsed)
		}
		view := w.View(80, 40)
		if got := strings.Contains(view, "out of this world"); got != tt.wantBanner {
			t.Errorf("%d ticks: banner visible = %v, want %v", tt.ticks, got, tt.wantBanner)
		}
		if got := strings.ContainsAny(view, "★✦·"); got != tt.wantStars {
			t.Errorf("%d ticks: stars visible = %v, want %v", tt.ticks, got, tt.wantStars)
		}
		if *built != 0 {
			t.Errorf("%d ticks: next screen built without a key press", tt.ticks)
		}
	}
}

func TestKeyPressReplaces(t *testing.T) {
	for _, ticks := range []int{0, 3, 45} {
		w, built := newCounted()
		tick(w, ticks)

		_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
		if cmd == nil {
			t.Fatalf("%d ticks: key press should transition", ticks)
		}
		msg, ok := cmd().(router.ReplaceScreenMsg)
		if !ok || msg.Screen == nil {
			t.Fatalf("%d ticks: expected ReplaceScreenMsg with a screen", ticks)
		}
		if *built != 1 {
			t.Errorf("%d ticks: built %d screens, want 1", ticks, *built)
		}
	}
}

func TestSecondKeyPressIgnored(t *testing.T) {
	w, built := newCounted()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second key press should not produce a command")
	}
	if *built != 1 {
		t.Errorf("built %d screens, want 1", *built)
	}
}

func TestLaunchLiftShrinks(t *testing.T) {
	w, _ := newCounted()
	if w.lift() == 0 {
		t.Fatal("rocket should start low")
	}
	tick(w, 15)
	if w.lift() != 0 {
		t.Errorf("lift = %d after launch, want 0", w.lift())
	}
}

func TestBannerCompact(t *testing.T) {
	if got := RenderBanner(50); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q", got)
	}
	if got := RenderBanner(100); strings.Contains(got, bannerCompact) {
		t.Error("wide terminals should get the block banner")
	}
	if (&WelcomeScreen{}).Title() != "" {
		t.Error("welcome has no header title")
	}
}
