package editors

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

type labelRow struct {
	id    *int64
	title widgets.TextInput
	color widgets.TextInput
}

// ProjectEditor creates or edits a project and its labels
type ProjectEditor struct {
	isNew bool
	data  *model.Project

	pane        Pane
	title       widgets.TextInput
	description widgets.TextInput
	labels      []labelRow
	removed     []int64
	actions     widgets.Buttons[action]

	// selectedLabel runs over the label rows plus the trailing Add Label slot
	selectedLabel int
	colorCol      bool

	err string
}

// NewProjectEditor returns a blank editor that inserts a new project
func NewProjectEditor() *ProjectEditor {
	e := &ProjectEditor{isNew: true}
	e.reset()
	return e
}

func (e *ProjectEditor) reset() {
	e.data = nil
	e.pane = PaneTitle
	e.title = widgets.NewTextInput("Title").Max(TitleMax)
	e.description = widgets.NewTextInput("Description").Max(DescriptionMax)
	e.labels = nil
	e.removed = nil
	e.selectedLabel = 0
	e.colorCol = false
	e.err = ""

	saveLabel := "Save Project"
	if e.isNew {
		saveLabel = "Create New Project"
	}
	e.actions = widgets.NewButtons(
		widgets.Button[action]{Action: actionSave, Label: saveLabel},
		widgets.Button[action]{Action: actionCancel, Label: "Cancel"},
	)
	e.focusInputs()
}

// Set loads an existing project into the editor and switches it to edit mode
func (e *ProjectEditor) Set(database *db.DB, id int64) error {
	project, err := database.GetProject(id)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project %d: %w", id, db.ErrNotFound)
	}
	labels, err := database.GetLabels(id)
	if err != nil {
		return err
	}

	e.isNew = false
	e.reset()
	e.data = project
	e.title.SetValue(project.Title)
	e.description.SetValue(project.Description)
	for _, l := range labels {
		e.labels = append(e.labels, newLabelRow(&l.ID, l.Title, l.Color))
	}
	return nil
}

func newLabelRow(id *int64, title, color string) labelRow {
	row := labelRow{
		id:    id,
		title: widgets.NewTextInput("Title").Max(LabelTitleMax).Placeholder("Title"),
		color: widgets.NewTextInput("Color").ExactLen(LabelColorLen).Placeholder("Color"),
	}
	row.title.SetValue(title)
	row.color.SetValue(color)
	return row
}

// Pane returns the focused pane
func (e *ProjectEditor) Pane() Pane {
	return e.pane
}

// onAddLabel reports whether the Add Label slot is selected
func (e *ProjectEditor) onAddLabel() bool {
	return e.selectedLabel == len(e.labels)
}

// focused returns the input that receives typed keys, if any
func (e *ProjectEditor) focused() *widgets.TextInput {
	switch e.pane {
	case PaneTitle:
		return &e.title
	case PaneDescription:
		return &e.description
	case PaneLabels:
		if e.onAddLabel() {
			return nil
		}
		row := &e.labels[e.selectedLabel]
		if e.colorCol {
			return &row.color
		}
		return &row.title
	}
	return nil
}

func (e *ProjectEditor) focusInputs() {
	e.title.Blur()
	e.description.Blur()
	for i := range e.labels {
		e.labels[i].title.Blur()
		e.labels[i].color.Blur()
	}
	if in := e.focused(); in != nil {
		in.Focus()
	}
}

func (e *ProjectEditor) focusNext() {
	e.pane = cycle(e.pane, 4, 1)
	e.focusInputs()
}

func (e *ProjectEditor) focusPrev() {
	e.pane = cycle(e.pane, 4, -1)
	e.focusInputs()
}

func (e *ProjectEditor) nextLabel() {
	e.selectedLabel = (e.selectedLabel + 1) % (len(e.labels) + 1)
	e.focusInputs()
}

func (e *ProjectEditor) prevLabel() {
	e.selectedLabel = (e.selectedLabel + len(e.labels)) % (len(e.labels) + 1)
	e.focusInputs()
}

func (e *ProjectEditor) toggleLabelCol() {
	if e.pane == PaneLabels && !e.onAddLabel() {
		e.colorCol = !e.colorCol
		e.focusInputs()
	}
}

func (e *ProjectEditor) addLabel(fg string) {
	e.labels = append(e.labels, newLabelRow(nil, "", fg))
	e.selectedLabel = len(e.labels) - 1
	e.colorCol = false
	e.focusInputs()
}

func (e *ProjectEditor) removeLabel() {
	if e.pane != PaneLabels || e.onAddLabel() {
		return
	}
	if id := e.labels[e.selectedLabel].id; id != nil {
		e.removed = append(e.removed, *id)
	}
	e.labels = append(e.labels[:e.selectedLabel], e.labels[e.selectedLabel+1:]...)
	e.focusInputs()
}

// HandleKey processes a key and reports Saved or Cancelled once the project
// was written or the edit abandoned
func (e *ProjectEditor) HandleKey(a *app.App, msg tea.KeyMsg) (Result, error) {
	if typing(a) {
		if in := e.focused(); in != nil {
			in.HandleKey(a.State, msg)
		} else {
			a.State.Normal()
		}
		return Pending, nil
	}

	switch msg.String() {
	case "[":
		e.reset()
		return Cancelled, nil
	case "K":
		e.focusPrev()
	case "J":
		e.focusNext()
	case "j":
		switch e.pane {
		case PaneLabels:
			e.nextLabel()
		case PaneActions:
			e.actions.FocusNext()
		}
	case "k":
		switch e.pane {
		case PaneLabels:
			e.prevLabel()
		case PaneActions:
			e.actions.FocusPrev()
		}
	case "tab", "shift+tab":
		e.toggleLabelCol()
	case "D":
		e.removeLabel()
	case "enter":
		if e.pane == PaneLabels && e.onAddLabel() {
			e.addLabel(a.Config.Colors.FG)
			return Pending, nil
		}
		if e.pane == PaneActions {
			if e.actions.Focused() == actionCancel {
				e.reset()
				return Cancelled, nil
			}
			return e.save(a)
		}
	default:
		if in := e.focused(); in != nil {
			in.HandleKey(a.State, msg)
		}
	}
	return Pending, nil
}

func (e *ProjectEditor) validate() string {
	if msg := required("title", e.title.Value()); msg != "" {
		return msg
	}
	for i := range e.labels {
		row := &e.labels[i]
		if msg := required("label title", row.title.Value()); msg != "" {
			return msg
		}
		if !row.color.Valid() {
			return fmt.Sprintf("label %q color must be a 7 character hex color", row.title.Value())
		}
	}
	return ""
}

func (e *ProjectEditor) save(a *app.App) (Result, error) {
	if !e.isNew && e.data == nil {
		panic("project editor: saving in edit mode without project data")
	}
	if msg := e.validate(); msg != "" {
		e.err = msg
		return Pending, nil
	}

	in := db.ProjectInput{
		Title:         e.title.Value(),
		Description:   e.description.Value(),
		RemovedLabels: e.removed,
	}
	if !e.isNew {
		in.ID = &e.data.ID
	}
	for i := range e.labels {
		row := &e.labels[i]
		in.Labels = append(in.Labels, db.LabelInput{
			ID:    row.id,
			Title: row.title.Value(),
			Color: row.color.Value(),
		})
	}

	id, err := a.DB.SaveProject(in)
	if err != nil {
		return Pending, fmt.Errorf("failed to save project: %w", err)
	}
	a.Logger.Info("project saved", "id", id, "new", e.isNew, "labels", len(in.Labels))

	e.reset()
	return Saved, nil
}

// View renders the editor
func (e *ProjectEditor) View(a *app.App, width, height int) string {
	s := theme.Current.Styles
	inner := max(width-6, 20)

	title := "Edit Project"
	if e.isNew {
		title = "New Project"
	}

	parts := []string{
		e.title.View(a.State, inner),
		e.description.View(a.State, inner),
		e.viewLabels(a, inner),
		e.actions.View(e.pane == PaneActions),
	}
	if e.err != "" {
		parts = append(parts, s.Error.Render(e.err))
	}
	return widgets.Popup(title, lipgloss.JoinVertical(lipgloss.Left, parts...), width)
}

func (e *ProjectEditor) viewLabels(a *app.App, width int) string {
	s := theme.Current.Styles
	t := theme.Current.Theme
	active := e.pane == PaneLabels
	col := max((width-4)/3, 8)

	var rows []string
	for i := range e.labels {
		row := &e.labels[i]
		selected := active && i == e.selectedLabel
		cell := func(in *widgets.TextInput, on bool) string {
			style := s.Label
			if selected && on {
				style = s.CardSelected
			}
			v := in.Value()
			if v == "" {
				v = in.Title
			}
			return style.Width(col).Render(v)
		}
		preview := lipgloss.NewStyle().
			Foreground(theme.ColorOr(row.color.Value(), t.Background)).
			Render(" " + row.title.Value() + " ")
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(&row.title, !e.colorCol), cell(&row.color, e.colorCol), preview))
	}

	add := s.Button.Render("Add Label")
	if active && e.onAddLabel() {
		add = s.ButtonActive.Render("Add Label")
	}
	rows = append(rows, add)

	box := s.Panel
	if active {
		box = s.PanelActive
	}
	return box.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Label.Render("Labels")}, rows...)...))
}
