package widgets

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/ui/theme"
)

// TextInput is a titled single line input. Keys reach it only in insert
// mode; esc returns the view to its base mode.
type TextInput struct {
	Title string

	input    textinput.Model
	max      int
	exactLen int
	focused  bool
}

// NewTextInput creates an empty input with no length limit
func NewTextInput(title string) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)

	return TextInput{Title: title, input: ti}
}

// Max limits the value to n runes
func (t TextInput) Max(n int) TextInput {
	t.max = n
	t.input.CharLimit = n
	return t
}

// ExactLen makes the input valid only when empty or exactly n runes long
func (t TextInput) ExactLen(n int) TextInput {
	t.exactLen = n
	if t.max == 0 || t.max > n {
		t = t.Max(n)
	}
	return t
}

// Placeholder sets the hint shown while the input is empty
func (t TextInput) Placeholder(s string) TextInput {
	t.input.Placeholder = s
	return t
}

func (t *TextInput) Value() string {
	return t.input.Value()
}

// SetValue replaces the value, truncated to the rune limit
func (t *TextInput) SetValue(s string) {
	if t.max > 0 && utf8.RuneCountInString(s) > t.max {
		s = string([]rune(s)[:t.max])
	}
	t.input.SetValue(s)
	t.input.CursorEnd()
}

// Reset clears the value
func (t *TextInput) Reset() {
	t.input.Reset()
}

func (t *TextInput) Focus() {
	t.focused = true
	t.input.Focus()
}

func (t *TextInput) Blur() {
	t.focused = false
	t.input.Blur()
}

func (t *TextInput) Focused() bool {
	return t.focused
}

// Len is the value length in runes
func (t *TextInput) Len() int {
	return utf8.RuneCountInString(t.input.Value())
}

// Valid reports whether the value satisfies the exact length rule
func (t *TextInput) Valid() bool {
	if t.exactLen == 0 {
		return true
	}
	n := t.Len()
	return n == 0 || n == t.exactLen
}

// HandleKey feeds a key to the input. In insert mode every key but esc is
// typed; outside it, i starts typing. It reports whether the key was used.
func (t *TextInput) HandleKey(state *app.State, msg tea.KeyMsg) bool {
	if state.Display.Mode == app.ModeInsert {
		if msg.Type == tea.KeyEsc {
			state.Normal()
			return true
		}
		t.input, _ = t.input.Update(msg)
		return true
	}

	if msg.String() == "i" {
		state.EnterInsert()
		return true
	}
	return false
}

// View renders the input inside a titled box
func (t *TextInput) View(state *app.State, width int) string {
	s := theme.Current.Styles
	box := s.Input
	if t.focused {
		box = s.InputFocused
		if state.Display.Mode == app.ModeInsert {
			box = s.InputInsert
		}
	}

	title := s.Label.Render(t.Title)
	if t.max > 0 {
		title += s.Placeholder.Render(counter(t.Len(), t.max))
	}

	value := t.input.View()
	if !t.focused {
		value = t.input.Value()
		if value == "" {
			value = s.Placeholder.Render(t.input.Placeholder)
		}
	}

	if width > 2 {
		box = box.Width(width - 2)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, box.Render(value))
}

func counter(n, limit int) string {
	return fmt.Sprintf(" %d/%d", n, limit)
}
