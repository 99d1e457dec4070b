// Package editors holds the popup editors for projects, lists and cards and
// the read-only card viewer. Each one takes keys through HandleKey and
// reports whether the key saved, cancelled or closed the popup.
package editors

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/kanri/internal/app"
)

const (
	TitleMax       = 50
	DescriptionMax = 500
	LabelTitleMax  = 15
	LabelColorLen  = 7
)

// Result is the outcome of one key sent to an editor or viewer
type Result int

const (
	Pending Result = iota
	Saved
	Cancelled
	Closed
)

// Done reports whether the popup finished and should be closed
func (r Result) Done() bool {
	return r != Pending
}

type action int

const (
	actionSave action = iota
	actionCancel
)

// Pane is the focused section of an editor
type Pane int

const (
	PaneTitle Pane = iota
	PaneDescription
	PaneLabels
	PaneActions
)

func (p Pane) String() string {
	switch p {
	case PaneTitle:
		return "title"
	case PaneDescription:
		return "description"
	case PaneLabels:
		return "labels"
	case PaneActions:
		return "actions"
	default:
		return "unknown"
	}
}

// cycle steps p through n panes, wrapping at both ends
func cycle[P ~int](p P, n int, step int) P {
	return P((int(p) + step + n) % n)
}

// typing reports whether keys should go to the focused input
func typing(a *app.App) bool {
	return a.State.Display.Mode == app.ModeInsert
}

func isKey(msg tea.KeyMsg, keys ...string) bool {
	k := msg.String()
	for _, want := range keys {
		if k == want {
			return true
		}
	}
	return false
}

func required(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return field + " is required"
	}
	return ""
}
