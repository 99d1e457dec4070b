package ui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	charmLog "github.com/charmbracelet/log"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/ui/views"
)

func newTestModel(t *testing.T) RootModel {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	a := &app.App{
		DB:     database,
		Config: config.Default(),
		Logger: charmLog.New(io.Discard),
		State:  app.NewState(),
	}
	m := NewRootModel(a)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(RootModel)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m RootModel, keys ...string) (RootModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(RootModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModuleSwitchKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "2")
	if m.app.State.Module != app.ModuleProjectManagement {
		t.Fatalf("expected project management, got %v", m.app.State.Module)
	}
	m, _ = press(m, "1")
	if m.app.State.Module != app.ModuleDashboard {
		t.Fatalf("expected dashboard, got %v", m.app.State.Module)
	}
}

func TestCommandPaletteQuit(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, ":")
	if !m.app.State.Is(app.ViewCommand, app.ModeInsert) {
		t.Fatalf("expected command palette, got %+v", m.app.State.Display)
	}

	// q is typed into the palette, not treated as quit
	m, cmd := press(m, "q", "u", "i", "t")
	if isQuit(cmd) {
		t.Fatal("typing in the palette should not quit")
	}

	_, cmd = press(m, "enter")
	if !isQuit(cmd) {
		t.Error("expected quit command to end the program")
	}
}

func TestHelpPopup(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "?")
	if m.app.State.Popup != app.PopupHelp {
		t.Fatalf("expected help popup")
	}
	if v := m.View(); v == "" {
		t.Error("expected help to render")
	}

	// module keys are ignored while help is open
	m, _ = press(m, "2")
	if m.app.State.Module != app.ModuleDashboard {
		t.Errorf("expected dashboard to stay active, got %v", m.app.State.Module)
	}

	m, _ = press(m, "esc")
	if m.app.State.Popup != app.PopupNone || !m.app.State.Is(app.ViewDefault, app.ModeNavigation) {
		t.Errorf("expected help closed, got popup %v display %+v", m.app.State.Popup, m.app.State.Display)
	}
}

func TestQuitOnlyFromTopPage(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "2", "n")
	if m.projects.Page() != views.PageNewProject {
		t.Fatalf("expected new project page, got %v", m.projects.Page())
	}

	m, cmd := press(m, "q")
	if isQuit(cmd) {
		t.Fatal("q in an editor should be typed, not quit")
	}

	_, cmd = press(m, "ctrl+c")
	if !isQuit(cmd) {
		t.Error("expected ctrl+c to quit from anywhere")
	}
}

func TestCyclePreset(t *testing.T) {
	m := newTestModel(t)
	before := m.app.Config.Colors.Preset

	m, _ = press(m, "ctrl+t")
	want := config.NextPreset(before)
	if m.app.Config.Colors.Preset != want {
		t.Errorf("expected preset %q, got %q", want, m.app.Config.Colors.Preset)
	}
	if m.statusMsg == "" {
		t.Error("expected a status message for the preset change")
	}
}
