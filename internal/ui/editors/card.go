package editors

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

type cardPane int

const (
	cardPaneTitle cardPane = iota
	cardPaneDescription
	cardPaneImportant
	cardPaneStart
	cardPaneDue
	cardPaneLabels
	cardPaneActions
	cardPaneCount
)

// CardEditor creates or edits a card
type CardEditor struct {
	isNew     bool
	projectID int64
	listID    int64
	data      *model.Card

	pane        cardPane
	title       widgets.TextInput
	description widgets.TextInput
	important   bool
	start       widgets.TextInput
	due         widgets.TextInput
	labels      []model.Label
	checked     map[int64]bool
	labelCursor widgets.Scrollable
	actions     widgets.Buttons[action]

	err string
}

// NewCardEditor returns a blank editor that inserts a card
func NewCardEditor() *CardEditor {
	e := &CardEditor{isNew: true}
	e.reset()
	return e
}

func (e *CardEditor) reset() {
	e.pane = cardPaneTitle
	e.title = widgets.NewTextInput("Title").Max(TitleMax)
	e.description = widgets.NewTextInput("Description").Max(DescriptionMax)
	e.important = false
	e.start = widgets.NewTextInput("Start Date").ExactLen(len(model.UserDateLayout)).Placeholder("YYYY-MM-DD HH:MM")
	e.due = widgets.NewTextInput("Due Date").ExactLen(len(model.UserDateLayout)).Placeholder("YYYY-MM-DD HH:MM")
	e.checked = map[int64]bool{}
	e.labelCursor = widgets.Scrollable{}
	e.err = ""

	saveLabel := "Save Card"
	if e.isNew {
		saveLabel = "Create New Card"
	}
	e.actions = widgets.NewButtons(
		widgets.Button[action]{Action: actionSave, Label: saveLabel},
		widgets.Button[action]{Action: actionCancel, Label: "Cancel"},
	)
	e.focusInputs()
}

// Create prepares the editor for a new card at the end of a list
func (e *CardEditor) Create(projectID, listID int64, labels []model.Label) {
	e.isNew = true
	e.data = nil
	e.projectID = projectID
	e.listID = listID
	e.labels = labels
	e.reset()
}

// Set loads an existing card and switches the editor to edit mode
func (e *CardEditor) Set(database *db.DB, id int64) error {
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

	e.isNew = false
	e.projectID = card.ProjectID
	e.listID = card.ListID
	e.labels = labels
	e.reset()
	e.data = card
	e.title.SetValue(card.Title)
	e.description.SetValue(card.Description)
	e.important = card.Important
	e.start.SetValue(model.FormatUserDate(card.StartDate))
	e.due.SetValue(model.FormatUserDate(card.DueDate))
	for _, id := range card.LabelIDs {
		e.checked[id] = true
	}
	return nil
}

func (e *CardEditor) focused() *widgets.TextInput {
	switch e.pane {
	case cardPaneTitle:
		return &e.title
	case cardPaneDescription:
		return &e.description
	case cardPaneStart:
		return &e.start
	case cardPaneDue:
		return &e.due
	}
	return nil
}

func (e *CardEditor) focusInputs() {
	for _, in := range []*widgets.TextInput{&e.title, &e.description, &e.start, &e.due} {
		in.Blur()
	}
	if in := e.focused(); in != nil {
		in.Focus()
	}
}

func (e *CardEditor) toggle() {
	switch e.pane {
	case cardPaneImportant:
		e.important = !e.important
	case cardPaneLabels:
		if len(e.labels) > 0 {
			id := e.labels[e.labelCursor.Cursor].ID
			e.checked[id] = !e.checked[id]
		}
	}
}

// HandleKey processes a key and reports Saved or Cancelled once the card was
// written or the edit abandoned
func (e *CardEditor) HandleKey(a *app.App, msg tea.KeyMsg) (Result, error) {
	if typing(a) {
		if in := e.focused(); in != nil {
			in.HandleKey(a.State, msg)
		} else {
			a.State.Normal()
		}
		return Pending, nil
	}

	switch msg.String() {
	case "[", "esc":
		e.reset()
		return Cancelled, nil
	case "K":
		e.pane = cycle(e.pane, int(cardPaneCount), -1)
		e.focusInputs()
	case "J":
		e.pane = cycle(e.pane, int(cardPaneCount), 1)
		e.focusInputs()
	case "j":
		switch e.pane {
		case cardPaneLabels:
			e.labelCursor.Next(len(e.labels))
		case cardPaneActions:
			e.actions.FocusNext()
		}
	case "k":
		switch e.pane {
		case cardPaneLabels:
			e.labelCursor.Prev()
		case cardPaneActions:
			e.actions.FocusPrev()
		}
	case " ":
		e.toggle()
	case "enter":
		if e.pane != cardPaneActions {
			e.toggle()
			return Pending, nil
		}
		if e.actions.Focused() == actionCancel {
			e.reset()
			return Cancelled, nil
		}
		return e.save(a)
	default:
		if in := e.focused(); in != nil {
			in.HandleKey(a.State, msg)
		}
	}
	return Pending, nil
}

func optionalDate(field string, in *widgets.TextInput) (*time.Time, string) {
	if in.Value() == "" {
		return nil, ""
	}
	t, err := model.ParseUserDate(in.Value())
	if err != nil {
		return nil, field + ": " + err.Error()
	}
	return &t, ""
}

func (e *CardEditor) save(a *app.App) (Result, error) {
	if !e.isNew && e.data == nil {
		panic("card editor: saving in edit mode without card data")
	}
	if msg := required("title", e.title.Value()); msg != "" {
		e.err = msg
		return Pending, nil
	}
	start, msg := optionalDate("start date", &e.start)
	if msg != "" {
		e.err = msg
		return Pending, nil
	}
	due, msg := optionalDate("due date", &e.due)
	if msg != "" {
		e.err = msg
		return Pending, nil
	}

	in := db.CardInput{
		ListID:      e.listID,
		ProjectID:   e.projectID,
		Title:       e.title.Value(),
		Description: e.description.Value(),
		Important:   e.important,
		StartDate:   start,
		DueDate:     due,
	}
	if !e.isNew {
		in.ID = &e.data.ID
	}
	for _, l := range e.labels {
		if e.checked[l.ID] {
			in.LabelIDs = append(in.LabelIDs, l.ID)
		}
	}

	id, err := a.DB.SaveCard(in)
	if err != nil {
		return Pending, fmt.Errorf("failed to save card: %w", err)
	}
	a.Logger.Info("card saved", "id", id, "list_id", e.listID, "new", e.isNew)

	e.reset()
	return Saved, nil
}

func (e *CardEditor) View(a *app.App, width, height int) string {
	s := theme.Current.Styles
	t := theme.Current.Theme
	inner := max(width-6, 20)

	important := "[ ] Important"
	if e.important {
		important = "[x] Important"
	}
	importantStyle := s.Label
	if e.pane == cardPaneImportant {
		importantStyle = s.CardSelected
	}

	var labels []string
	for i, l := range e.labels {
		mark := "[ ] "
		if e.checked[l.ID] {
			mark = "[x] "
		}
		style := lipgloss.NewStyle().Foreground(theme.ColorOr(l.Color, t.Foreground))
		if e.pane == cardPaneLabels && i == e.labelCursor.Cursor {
			style = s.CardSelected
		}
		labels = append(labels, style.Render(mark+l.Title))
	}
	if len(labels) == 0 {
		labels = append(labels, s.Placeholder.Render("No labels in this project"))
	}
	labelBox := s.Panel
	if e.pane == cardPaneLabels {
		labelBox = s.PanelActive
	}

	parts := []string{
		e.title.View(a.State, inner),
		e.description.View(a.State, inner),
		importantStyle.Render(important),
		lipgloss.JoinHorizontal(lipgloss.Top,
			e.start.View(a.State, inner/2),
			e.due.View(a.State, inner/2)),
		labelBox.Width(inner - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
			append([]string{s.Label.Render("Labels")}, labels...)...)),
		e.actions.View(e.pane == cardPaneActions),
	}
	if e.err != "" {
		parts = append(parts, s.Error.Render(e.err))
	}

	title := "Edit Card"
	if e.isNew {
		title = "New Card"
	}
	return widgets.Popup(title, lipgloss.JoinVertical(lipgloss.Left, parts...), width)
}
