// Package command is the command palette: a fuzzy filtered list of
// app-wide commands opened with ':'
package command

import (
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
	"github.com/sahilm/fuzzy"
)

// Command is one entry of the palette
type Command int

const (
	Dashboard Command = iota
	Help
	ProjectManagement
	Quit
)

func (c Command) String() string {
	switch c {
	case Dashboard:
		return "dashboard"
	case Help:
		return "help"
	case ProjectManagement:
		return "project management"
	case Quit:
		return "quit"
	default:
		return ""
	}
}

// Commands returns the command table in display order
func Commands() []Command {
	return []Command{Dashboard, Help, ProjectManagement, Quit}
}

type commandSource []Command

func (s commandSource) String(i int) string { return s[i].String() }
func (s commandSource) Len() int            { return len(s) }

// Filter returns the commands matching query, best match first. An empty
// query lists every command and a query longer than any command matches
// nothing. A query with an upper case letter matches case-sensitively.
func Filter(query string) []Command {
	all := Commands()

	longest := 0
	for _, c := range all {
		longest = max(longest, utf8.RuneCountInString(c.String()))
	}
	if utf8.RuneCountInString(query) > longest {
		return nil
	}
	if query == "" {
		return all
	}

	caseSensitive := hasUpper(query)
	var out []Command
	for _, m := range fuzzy.FindFrom(query, commandSource(all)) {
		c := all[m.Index]
		if caseSensitive && !subsequence(query, c.String()) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// subsequence reports whether every rune of pattern appears in s in order
func subsequence(pattern, s string) bool {
	p := []rune(pattern)
	i := 0
	for _, r := range s {
		if i < len(p) && p[i] == r {
			i++
		}
	}
	return i == len(p)
}

// Pane is the focused half of the palette
type Pane int

const (
	PaneInput Pane = iota
	PaneOptions
)

// Palette is the command palette state
type Palette struct {
	input    widgets.TextInput
	pane     Pane
	options  []Command
	selected int
}

func New() *Palette {
	p := &Palette{}
	p.Reset()
	return p
}

// Reset clears the query and focuses the input
func (p *Palette) Reset() {
	p.input = widgets.NewTextInput("Command").Max(50).Placeholder("Enter a command...")
	p.input.Focus()
	p.pane = PaneInput
	p.update()
}

func (p *Palette) update() {
	p.options = Filter(p.input.Value())
	p.selected = 0
}

// Options returns the commands currently listed
func (p *Palette) Options() []Command {
	return p.options
}

// Selected returns the highlighted option index
func (p *Palette) Selected() int {
	return p.selected
}

// Pane returns the focused pane
func (p *Palette) Pane() Pane {
	return p.pane
}

// Open shows the palette in insert mode
func (p *Palette) Open(a *app.App) {
	p.Reset()
	a.State.OpenCommand()
}

// HandleKey processes a key while the palette is open
func (p *Palette) HandleKey(a *app.App, msg tea.KeyMsg) {
	if a.State.Display.Mode == app.ModeInsert {
		switch msg.Type {
		case tea.KeyEnter:
			p.Execute(a)
		case tea.KeyEsc:
			a.State.Normal()
		default:
			p.input.HandleKey(a.State, msg)
			p.update()
		}
		return
	}

	switch msg.String() {
	case "enter":
		p.Execute(a)
	case "q", "esc":
		a.State.CloseCommand()
		p.Reset()
	case "i":
		p.pane = PaneInput
		p.input.Focus()
		a.State.EnterInsert()
	case "j", "down":
		if p.pane == PaneInput {
			p.pane = PaneOptions
			p.input.Blur()
		} else if p.selected < len(p.options)-1 {
			p.selected++
		}
	case "k", "up":
		if p.pane == PaneOptions {
			if p.selected == 0 {
				p.pane = PaneInput
				p.input.Focus()
			} else {
				p.selected--
			}
		}
	}
}

// Execute runs the selected command and resets the palette. Nothing happens
// when no command matches.
func (p *Palette) Execute(a *app.App) {
	if len(p.options) == 0 {
		return
	}
	cmd := p.options[p.selected]
	a.Logger.Debug("command executed", "command", cmd.String())

	switch cmd {
	case Dashboard:
		a.State.SwitchModule(app.ModuleDashboard)
	case ProjectManagement:
		a.State.SwitchModule(app.ModuleProjectManagement)
	case Help:
		a.State.CloseCommand()
		a.State.OpenHelp()
	case Quit:
		a.State.CloseCommand()
		a.State.Quit()
	}
	p.Reset()
}

func (p *Palette) View(a *app.App, width, height int) string {
	s := theme.Current.Styles
	inner := min(56, max(width-8, 20))

	var rows []string
	if len(p.options) == 0 {
		rows = append(rows, s.Placeholder.Render("No commands found."))
	}
	for i, c := range p.options {
		style := s.Button
		if i == p.selected {
			style = s.ButtonActive
		}
		rows = append(rows, style.Render(c.String()))
	}

	list := s.Panel
	if p.pane == PaneOptions {
		list = s.PanelActive
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.input.View(a.State, inner),
		list.Width(inner-2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return widgets.Overlay(widgets.Popup("Command", body, inner+4), width, height)
}
