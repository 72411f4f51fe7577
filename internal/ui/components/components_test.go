package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	if code >= ' ' && code <= '~' {
		return tea.KeyPressMsg{Code: code, Text: string(code)}
	}
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabledAndHeadings(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "Algebra", Heading: true},
		{Label: "a", Action: func() tea.Cmd { fired = "a"; return nil }},
		{Label: "b", Disabled: true},
		{Label: "c", Action: func() tea.Cmd { fired = "c"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyEnter))
	if fired != "c" {
		t.Errorf("fired = %q", fired)
	}
	m, _ = m.Update(key('k'))
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMultiChoice(t *testing.T) {
	mc := NewMultiChoice([]string{"3", "4", "5"})

	mc, chosen := mc.Update(key(tea.KeyDown))
	if chosen || mc.Selected != 1 {
		t.Fatalf("down: selected %d chosen %v", mc.Selected, chosen)
	}
	mc, chosen = mc.Update(key('3'))
	if !chosen || mc.Selected != 2 {
		t.Fatalf("digit: selected %d chosen %v", mc.Selected, chosen)
	}
	if _, chosen = mc.Update(key('7')); chosen {
		t.Error("out-of-range digit should not choose")
	}
}

func TestTextInputNumericFilter(t *testing.T) {
	ti := NewTextInput("", true, 10)
	for _, r := range "1a/2x" {
		ti, _ = ti.Update(key(r))
	}
	if got := ti.Value(); got != "1/2" {
		t.Errorf("value = %q, want 1/2", got)
	}
}
