package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/kanri/internal/app"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTextInputTypesOnlyInInsert(t *testing.T) {
	state := app.NewState()
	in := NewTextInput("Title").Max(5)
	in.Focus()

	if in.HandleKey(state, runes("x")) {
		t.Fatal("expected key to be ignored in navigation mode")
	}
	if in.Value() != "" {
		t.Fatalf("expected empty value, got %q", in.Value())
	}

	if !in.HandleKey(state, runes("i")) || state.Display.Mode != app.ModeInsert {
		t.Fatalf("expected i to enter insert, mode is %v", state.Display.Mode)
	}
	for _, r := range "abcdefg" {
		in.HandleKey(state, runes(string(r)))
	}
	if in.Value() != "abcde" {
		t.Errorf("expected value capped at 5 runes, got %q", in.Value())
	}

	in.HandleKey(state, tea.KeyMsg{Type: tea.KeyEsc})
	if state.Display.Mode != app.ModeNavigation {
		t.Errorf("expected esc to leave insert, mode is %v", state.Display.Mode)
	}
}

func TestTextInputSetValueTruncatesRunes(t *testing.T) {
	in := NewTextInput("Label").Max(3)
	in.SetValue("日本語です")
	if in.Value() != "日本語" {
		t.Errorf("expected 3 runes, got %q", in.Value())
	}
}

func TestTextInputExactLen(t *testing.T) {
	in := NewTextInput("Color").ExactLen(7)

	tests := []struct {
		value string
		valid bool
	}{
		{"", true},
		{"#ff", false},
		{"#ff00ff", true},
	}

	for _, tt := range tests {
		in.SetValue(tt.value)
		if in.Valid() != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.value, in.Valid(), tt.valid)
		}
	}
}

func TestButtonsWrap(t *testing.T) {
	b := NewButtons(Button[int]{1, "one"}, Button[int]{2, "two"})
	b.FocusPrev()
	if b.Focused() != 2 {
		t.Errorf("expected wrap to last, got %d", b.Focused())
	}
	b.FocusNext()
	if b.Focused() != 1 {
		t.Errorf("expected wrap to first, got %d", b.Focused())
	}
}

func TestScrollable(t *testing.T) {
	var s Scrollable
	s.Prev()
	if s.Cursor != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", s.Cursor)
	}
	for i := 0; i < 10; i++ {
		s.Next(4)
	}
	if s.Cursor != 3 {
		t.Fatalf("expected cursor at last item, got %d", s.Cursor)
	}

	start, end := s.Window(4, 2)
	if start != 2 || end != 4 {
		t.Errorf("expected window [2,4), got [%d,%d)", start, end)
	}

	s.Clamp(2)
	if s.Cursor != 1 {
		t.Errorf("expected clamp to 1, got %d", s.Cursor)
	}
	s.Clamp(0)
	if s.Cursor != 0 {
		t.Errorf("expected clamp to 0 on empty list, got %d", s.Cursor)
	}
}
