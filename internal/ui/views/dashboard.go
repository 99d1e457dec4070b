package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

// Dashboard is the home module: a banner and the cards that need attention
type Dashboard struct {
	cards  []model.DueCard
	cursor widgets.Scrollable
	now    time.Time
}

func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Refresh reloads overdue and due-soon cards across all projects
func (d *Dashboard) Refresh(a *app.App) error {
	d.now = model.Now()
	until := d.now.AddDate(0, 0, a.Config.Modules.ProjectManagement.DueSoonDays)
	cards, err := a.DB.GetAttentionCards(until)
	if err != nil {
		return fmt.Errorf("failed to load due cards: %w", err)
	}
	d.cards = cards
	d.cursor.Clamp(len(cards))
	return nil
}

// Cards returns the cards shown on the dashboard
func (d *Dashboard) Cards() []model.DueCard {
	return d.cards
}

func (d *Dashboard) HandleKey(a *app.App, msg tea.KeyMsg) error {
	switch msg.String() {
	case "j", "down":
		d.cursor.Next(len(d.cards))
	case "k", "up":
		d.cursor.Prev()
	case "r":
		return d.Refresh(a)
	}
	return nil
}

func (d *Dashboard) View(a *app.App, width, height int) string {
	s := theme.Current.Styles
	home := a.Config.Modules.Home
	pm := a.Config.Modules.ProjectManagement

	banner := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(home.DashboardTitle),
		s.Subtitle.Render(home.DashboardMessage))

	var overdue int
	for i := range d.cards {
		if d.cards[i].IsOverdue(d.now) {
			overdue++
		}
	}

	rows := []string{s.PanelTitle.Render(fmt.Sprintf("Needs attention (%d overdue, %d due soon)",
		overdue, len(d.cards)-overdue))}
	if len(d.cards) == 0 {
		rows = append(rows, s.Placeholder.Render("Nothing overdue or due soon."))
	}

	start, end := d.cursor.Window(len(d.cards), max(height-8, 1))
	for i := start; i < end; i++ {
		c := &d.cards[i]
		style := s.CardNormal
		if c.IsOverdue(d.now) {
			style = s.CardOverdue
		}
		if i == d.cursor.Cursor {
			style = s.CardSelected
		}
		line := fmt.Sprintf("%s %s  %s / %s  %s",
			glyph(pm, c.Status(d.now, pm.DueSoonDays)),
			c.Title, c.ProjectTitle, c.ListTitle,
			model.FormatUserDate(c.DueDate))
		rows = append(rows, style.Width(max(width-8, 20)).Render(line))
	}

	panel := s.Panel.Width(max(width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, banner),
		"",
		panel)
}
