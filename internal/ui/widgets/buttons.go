package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/ui/theme"
)

// Button is one labelled action of a Buttons group
type Button[A comparable] struct {
	Action A
	Label  string
}

// Buttons is a vertical group of actions with one focused entry
type Buttons[A comparable] struct {
	buttons []Button[A]
	focused int
}

// NewButtons creates a button group focused on its first entry
func NewButtons[A comparable](buttons ...Button[A]) Buttons[A] {
	return Buttons[A]{buttons: buttons}
}

// FocusNext moves to the next button, wrapping at the end
func (b *Buttons[A]) FocusNext() {
	if len(b.buttons) == 0 {
		return
	}
	b.focused = (b.focused + 1) % len(b.buttons)
}

// FocusPrev moves to the previous button, wrapping at the start
func (b *Buttons[A]) FocusPrev() {
	if len(b.buttons) == 0 {
		return
	}
	b.focused = (b.focused - 1 + len(b.buttons)) % len(b.buttons)
}

// Focused returns the action of the focused button
func (b *Buttons[A]) Focused() A {
	return b.buttons[b.focused].Action
}

func (b *Buttons[A]) View(active bool) string {
	s := theme.Current.Styles
	var rows []string
	for i, btn := range b.buttons {
		style := s.Button
		if active && i == b.focused {
			style = s.ButtonActive
		}
		rows = append(rows, style.Render(btn.Label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
