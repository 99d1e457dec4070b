package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

// renderHelp renders the help popup from the key map
func (m RootModel) renderHelp(height int) string {
	styles := theme.Current.Styles

	h := m.help
	h.ShowAll = true
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.HelpSeparator

	body := lipgloss.JoinVertical(lipgloss.Left,
		h.FullHelpView(m.keys.FullHelp()),
		"",
		styles.Placeholder.Render("In editors: J/K switch fields, i types, esc stops typing."),
		styles.Placeholder.Render("Presets: "+strings.Join(config.Presets(), ", ")),
		styles.Placeholder.Render("Press ? or esc to close"))

	width := min(max(lipgloss.Width(body)+4, 40), max(m.width, 40))
	return widgets.Overlay(widgets.Popup("Help", body, width), m.width, height)
}
