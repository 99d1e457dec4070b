package editors

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

// CardViewer shows a card read-only and manages its subtasks
type CardViewer struct {
	card    *model.Card
	labels  []model.Label
	cursor  widgets.Scrollable
	adding  bool
	subtask widgets.TextInput
}

func NewCardViewer() *CardViewer {
	return &CardViewer{subtask: newSubtaskInput()}
}

func newSubtaskInput() widgets.TextInput {
	return widgets.NewTextInput("New Subtask").Max(TitleMax)
}

// Set loads the card to show
func (v *CardViewer) Set(database *db.DB, id int64) error {
	card, err := database.GetCard(id)
	if err != nil {
		return err
	}
	if card == nil {
		return fmt.Errorf("card %d: %w", id, db.ErrNotFound)
	}
	labels, err := database.GetLabels(card.ProjectID)
	if err != nil {
		return err
	}
	v.card = card
	v.labels = labels
	v.cursor.Clamp(len(card.Subtasks))
	return nil
}

// Card returns the card on display
func (v *CardViewer) Card() *model.Card {
	return v.card
}

func (v *CardViewer) reload(a *app.App) error {
	return v.Set(a.DB, v.card.ID)
}

func (v *CardViewer) selected() *model.Subtask {
	if v.card == nil || len(v.card.Subtasks) == 0 {
		return nil
	}
	return &v.card.Subtasks[v.cursor.Cursor]
}

// HandleKey processes a key and reports Closed when the viewer was closed
func (v *CardViewer) HandleKey(a *app.App, msg tea.KeyMsg) (Result, error) {
	if v.card == nil {
		panic("card viewer: no card loaded")
	}

	switch a.State.Display.Mode {
	case app.ModeInsert:
		return Pending, v.handleAdd(a, msg)
	case app.ModeDelete:
		return Pending, v.handleDelete(a, msg)
	}

	switch msg.String() {
	case "esc", "q":
		v.adding = false
		v.cursor = widgets.Scrollable{}
		return Closed, nil
	case "j", "down":
		v.cursor.Next(len(v.card.Subtasks))
	case "k", "up":
		v.cursor.Prev()
	case "c":
		if st := v.selected(); st != nil {
			if err := a.DB.SetSubtaskCompleted(st.ID, !st.Completed); err != nil {
				return Pending, fmt.Errorf("failed to update subtask: %w", err)
			}
			return Pending, v.reload(a)
		}
	case "a":
		v.adding = true
		v.subtask = newSubtaskInput()
		v.subtask.Focus()
		a.State.EnterInsert()
	case "x":
		if v.selected() != nil {
			a.State.EnterDelete()
		}
	}
	return Pending, nil
}

func (v *CardViewer) handleAdd(a *app.App, msg tea.KeyMsg) error {
	switch msg.Type {
	case tea.KeyEnter:
		title := strings.TrimSpace(v.subtask.Value())
		v.adding = false
		a.State.Normal()
		if title == "" {
			return nil
		}
		if _, err := a.DB.CreateSubtask(v.card.ID, v.card.ProjectID, title); err != nil {
			return fmt.Errorf("failed to create subtask: %w", err)
		}
		if err := v.reload(a); err != nil {
			return err
		}
		v.cursor.Last(len(v.card.Subtasks))
		return nil
	case tea.KeyEsc:
		v.adding = false
		a.State.Normal()
		return nil
	}
	v.subtask.HandleKey(a.State, msg)
	return nil
}

func (v *CardViewer) handleDelete(a *app.App, msg tea.KeyMsg) error {
	switch msg.String() {
	case "y":
		st := v.selected()
		a.State.Normal()
		if st == nil {
			return nil
		}
		if err := a.DB.DeleteSubtask(st.ID); err != nil {
			return fmt.Errorf("failed to delete subtask: %w", err)
		}
		if err := v.reload(a); err != nil {
			return err
		}
		v.cursor.Clamp(len(v.card.Subtasks))
	case "n", "esc":
		a.State.Normal()
	}
	return nil
}

func (v *CardViewer) View(a *app.App, width, height int) string {
	if v.card == nil {
		return ""
	}
	s := theme.Current.Styles
	t := theme.Current.Theme
	pm := a.Config.Modules.ProjectManagement
	c := v.card
	inner := max(width-6, 20)

	status := c.Status(model.Now(), pm.DueSoonDays)
	header := s.Title.Render(c.Title) + "  " + s.Subtitle.Render(status.String())

	var meta []string
	if c.StartDate != nil {
		meta = append(meta, s.Label.Render("Start ")+s.DueDate.Render(model.FormatUserDate(c.StartDate)))
	}
	if c.DueDate != nil {
		meta = append(meta, s.Label.Render("Due ")+s.DueDate.Render(model.FormatUserDate(c.DueDate)))
	}

	var labels []string
	for _, l := range v.labels {
		if c.HasLabel(l.ID) {
			labels = append(labels, lipgloss.NewStyle().
				Foreground(theme.ColorOr(l.Color, t.Foreground)).
				Render("● "+l.Title))
		}
	}

	parts := []string{header}
	if len(meta) > 0 {
		parts = append(parts, strings.Join(meta, "   "))
	}
	if len(labels) > 0 {
		parts = append(parts, strings.Join(labels, " "))
	}
	if desc := renderMarkdown(c.Description, inner); desc != "" {
		parts = append(parts, "", desc)
	}

	done, total := c.SubtaskProgress()
	parts = append(parts, "", s.Label.Render(fmt.Sprintf("Subtasks %d/%d", done, total)))
	for i, st := range c.Subtasks {
		mark := "[ ] "
		style := s.CardNormal
		if st.Completed {
			mark = "[x] "
			style = s.CardDone
		}
		if i == v.cursor.Cursor {
			style = s.CardSelected
		}
		parts = append(parts, style.Render(mark+st.Title))
	}
	if v.adding {
		parts = append(parts, v.subtask.View(a.State, inner))
	}
	if a.State.Display.Mode == app.ModeDelete {
		parts = append(parts, s.Error.Render("Delete subtask? (y/n)"))
	}

	return widgets.Popup("Card", lipgloss.JoinVertical(lipgloss.Left, parts...), width)
}
