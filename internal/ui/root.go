package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/command"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/views"
)

// RootModel is the main application model. It owns the modules and routes
// keys according to the shared display state.
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	dashboard *views.Dashboard
	projects  *views.Projects
	palette   *command.Palette

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model and loads the starting module
func NewRootModel(application *app.App) RootModel {
	theme.Apply(application.Config.Colors)

	h := help.New()
	h.ShowAll = true

	m := RootModel{
		app:       application,
		keys:      DefaultKeyMap(),
		help:      h,
		dashboard: views.NewDashboard(),
		projects:  views.NewProjects(),
		palette:   command.New(),
	}
	if err := m.refreshModule(); err != nil {
		application.Logger.Error("initial load failed", "err", err)
		m.errorMsg = err.Error()
	}
	return m
}

// Init sends the startup reminder for cards that need attention
func (m RootModel) Init() tea.Cmd {
	return sendReminders(m.app)
}

func sendReminders(a *app.App) tea.Cmd {
	if a.Notifier == nil || !a.Notifier.IsEnabled() {
		return nil
	}
	return func() tea.Msg {
		now := model.Now()
		until := now.AddDate(0, 0, a.Config.Modules.ProjectManagement.DueSoonDays)
		cards, err := a.DB.GetAttentionCards(until)
		if err != nil {
			return RemindersSentMsg{Err: err}
		}
		return RemindersSentMsg{Count: len(cards), Err: a.Notifier.SendCardReminders(cards, now)}
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if err := m.handleKey(msg); err != nil {
			m.app.Logger.Error("key handler failed", "key", msg.String(), "err", err)
			m.errorMsg = err.Error()
		}
		if m.app.State.Exit {
			return m, tea.Quit
		}
		return m, nil

	case RemindersSentMsg:
		if msg.Err != nil {
			m.app.Logger.Warn("startup reminder failed", "err", msg.Err)
			return m, nil
		}
		m.app.Logger.Debug("startup reminder sent", "cards", msg.Count)
		if msg.Count > 0 {
			m.statusMsg = fmt.Sprintf("%d cards need attention", msg.Count)
		}
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	return m, nil
}

func (m *RootModel) handleKey(msg tea.KeyMsg) error {
	state := m.app.State

	if state.Display.View == app.ViewCommand {
		before := state.Module
		m.palette.HandleKey(m.app, msg)
		if state.Module != before || state.Display.View == app.ViewDefault {
			return m.refreshModule()
		}
		return nil
	}

	if state.Popup == app.PopupHelp {
		switch msg.String() {
		case "esc", "q", "?":
			state.CloseHelp()
		}
		return nil
	}

	if state.Is(app.ViewDefault, app.ModeNavigation) {
		switch {
		case key.Matches(msg, m.keys.Command):
			m.palette.Open(m.app)
			return nil
		case key.Matches(msg, m.keys.Help):
			state.OpenHelp()
			return nil
		case key.Matches(msg, m.keys.ThemeCycle):
			m.cyclePreset()
			return nil
		case key.Matches(msg, m.keys.Dashboard):
			state.SwitchModule(app.ModuleDashboard)
			return m.refreshModule()
		case key.Matches(msg, m.keys.Projects):
			state.SwitchModule(app.ModuleProjectManagement)
			return m.refreshModule()
		case key.Matches(msg, m.keys.Quit) && m.atTop():
			state.Quit()
			return nil
		}
	}

	switch state.Module {
	case app.ModuleProjectManagement:
		return m.projects.HandleKey(m.app, msg)
	default:
		return m.dashboard.HandleKey(m.app, msg)
	}
}

// atTop reports whether no page is open below the module's first screen
func (m *RootModel) atTop() bool {
	if m.app.State.Module == app.ModuleProjectManagement {
		return m.projects.Page() == views.PageListProjects
	}
	return true
}

// refreshModule reloads whatever the active module shows
func (m *RootModel) refreshModule() error {
	switch m.app.State.Module {
	case app.ModuleProjectManagement:
		if m.projects.Page() == views.PageOpenProject {
			return m.projects.Board().Refresh(m.app)
		}
		return m.projects.Refresh(m.app)
	default:
		return m.dashboard.Refresh(m.app)
	}
}

// cyclePreset switches to the next color preset
func (m *RootModel) cyclePreset() {
	next := config.NextPreset(m.app.Config.Colors.Preset)
	m.app.SetPreset(next)
	theme.Apply(m.app.Config.Colors)
	m.statusMsg = fmt.Sprintf("Preset: %s", next)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	// Reserve: 1 line for header + 1 line for the status bar
	contentHeight := m.height - 2
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}
	contentHeight = max(contentHeight, 1)

	var content string
	switch {
	case m.app.State.Display.View == app.ViewCommand:
		content = m.palette.View(m.app, m.width, contentHeight)
	case m.app.State.Popup == app.PopupHelp:
		content = m.renderHelp(contentHeight)
	case m.app.State.Module == app.ModuleProjectManagement:
		content = m.projects.View(m.app, m.width, contentHeight)
	default:
		content = m.dashboard.View(m.app, m.width, contentHeight)
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the title, module tabs and the preset name
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles

	tabs := []string{styles.Header.Render("kanri")}
	for i, mod := range app.Modules() {
		style := styles.Tab
		if mod == m.app.State.Module {
			style = styles.TabActive
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, mod.String())))
	}
	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	rightSide := styles.Subtitle.Render(fmt.Sprintf("preset: %s", m.app.Config.Colors.Preset))

	gap := max(m.width-lipgloss.Width(leftSide)-lipgloss.Width(rightSide), 0)
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// modeBadge renders the status bar badge for the current mode
func (m RootModel) modeBadge() string {
	styles := theme.Current.Styles
	mode := m.app.State.Display.Mode

	style := styles.StatusNormal
	switch mode {
	case app.ModeInsert:
		style = styles.StatusInsert
	case app.ModePopup, app.ModeCommand:
		style = styles.StatusPopup
	case app.ModeDelete:
		style = styles.StatusDelete
	}
	return style.Render(mode.String())
}

// renderFooter renders the optional message line and the status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	var lines []string
	if m.errorMsg != "" {
		lines = append(lines, styles.Error.Render(m.errorMsg))
	} else if m.statusMsg != "" {
		lines = append(lines, styles.Success.Render(m.statusMsg))
	}

	profile := m.app.Profile.Name
	if profile == "" {
		profile = "default"
	}
	left := lipgloss.JoinHorizontal(lipgloss.Center,
		m.modeBadge(),
		styles.StatusKey.Render(m.app.State.Module.String()),
		styles.StatusValue.Render(profile))

	short := m.help
	short.ShowAll = false
	right := short.ShortHelpView(m.keys.ShortHelp())

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	lines = append(lines, styles.StatusBar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right))

	return strings.Join(lines, "\n")
}
