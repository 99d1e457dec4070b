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

// ListEditor creates or renames a list
type ListEditor struct {
	isNew     bool
	projectID int64
	data      *model.List
	title     widgets.TextInput
	err       string
}

// NewListEditor returns a blank editor that inserts a list
func NewListEditor() *ListEditor {
	e := &ListEditor{isNew: true}
	e.reset()
	return e
}

func (e *ListEditor) reset() {
	e.title = widgets.NewTextInput("Title").Max(TitleMax)
	e.title.Focus()
	e.err = ""
}

// Create prepares the editor for a new list in a project
func (e *ListEditor) Create(projectID int64) {
	e.isNew = true
	e.projectID = projectID
	e.data = nil
	e.reset()
}

// Set loads an existing list and switches the editor to edit mode
func (e *ListEditor) Set(database *db.DB, id int64) error {
	list, err := database.GetList(id)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("list %d: %w", id, db.ErrNotFound)
	}
	e.isNew = false
	e.projectID = list.ProjectID
	e.data = list
	e.reset()
	e.title.SetValue(list.Title)
	return nil
}

// HandleKey processes a key and reports Saved or Cancelled once the list was
// written or the edit abandoned
func (e *ListEditor) HandleKey(a *app.App, msg tea.KeyMsg) (Result, error) {
	if msg.Type == tea.KeyEnter {
		return e.save(a)
	}
	if !typing(a) && isKey(msg, "esc", "[") {
		e.reset()
		return Cancelled, nil
	}
	e.title.HandleKey(a.State, msg)
	return Pending, nil
}

func (e *ListEditor) save(a *app.App) (Result, error) {
	if msg := required("title", e.title.Value()); msg != "" {
		e.err = msg
		return Pending, nil
	}

	if e.isNew {
		id, err := a.DB.CreateList(e.projectID, e.title.Value())
		if err != nil {
			return Pending, fmt.Errorf("failed to create list: %w", err)
		}
		a.Logger.Info("list created", "id", id, "project_id", e.projectID)
	} else {
		if e.data == nil {
			panic("list editor: saving in edit mode without list data")
		}
		if err := a.DB.UpdateList(e.data.ID, e.title.Value()); err != nil {
			return Pending, fmt.Errorf("failed to update list: %w", err)
		}
		a.Logger.Info("list updated", "id", e.data.ID)
	}

	e.reset()
	return Saved, nil
}

func (e *ListEditor) View(a *app.App, width, height int) string {
	title := "Edit List"
	if e.isNew {
		title = "New List"
	}
	body := e.title.View(a.State, max(width-6, 20))
	if e.err != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, theme.Current.Styles.Error.Render(e.err))
	}
	return widgets.Popup(title, body, width)
}
