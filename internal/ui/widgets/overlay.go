package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/ui/theme"
)

// Popup frames content in the popup border with a title
func Popup(title, content string, width int) string {
	s := theme.Current.Styles
	body := lipgloss.JoinVertical(lipgloss.Left, s.PanelTitle.Render(title), "", content)
	style := s.Popup
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(body)
}

// Overlay centers a popup in a width x height area
func Overlay(popup string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup,
		lipgloss.WithWhitespaceBackground(theme.Current.Theme.PopupBG))
}
