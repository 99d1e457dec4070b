package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/editors"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

// Page is the screen shown by the project management module
type Page int

const (
	PageListProjects Page = iota
	PageNewProject
	PageEditProject
	PageOpenProject
)

// Projects is the project management module: the project list plus the
// project editor and the open board
type Projects struct {
	page     Page
	projects []model.Project
	cursor   widgets.Scrollable
	deleting bool

	editor *editors.ProjectEditor
	board  *Board
}

func NewProjects() *Projects {
	return &Projects{
		editor: editors.NewProjectEditor(),
		board:  NewBoard(),
	}
}

// Page returns the current page
func (p *Projects) Page() Page {
	return p.page
}

// Board returns the open project board
func (p *Projects) Board() *Board {
	return p.board
}

// Projects returns the loaded projects in position order
func (p *Projects) Projects() []model.Project {
	return p.projects
}

// Cursor returns the selected project index
func (p *Projects) Cursor() int {
	return p.cursor.Cursor
}

// Refresh reloads the project list
func (p *Projects) Refresh(a *app.App) error {
	projects, err := a.DB.GetProjects(model.Now(), a.Config.Modules.ProjectManagement.DueSoonDays)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	p.projects = projects
	p.cursor.Clamp(len(projects))
	return nil
}

func (p *Projects) selected() *model.Project {
	if len(p.projects) == 0 {
		return nil
	}
	return &p.projects[p.cursor.Cursor]
}

// HandleKey routes a key to the current page
func (p *Projects) HandleKey(a *app.App, msg tea.KeyMsg) error {
	switch p.page {
	case PageNewProject, PageEditProject:
		res, err := p.editor.HandleKey(a, msg)
		if err != nil || !res.Done() {
			return err
		}
		created := p.page == PageNewProject && res == editors.Saved
		a.State.ClosePopup()
		p.page = PageListProjects
		if err := p.Refresh(a); err != nil {
			return err
		}
		if created {
			p.cursor.Last(len(p.projects))
		}
		return nil

	case PageOpenProject:
		done, err := p.board.HandleKey(a, msg)
		if err != nil || !done {
			return err
		}
		p.page = PageListProjects
		return p.Refresh(a)
	}

	if a.State.Display.Mode == app.ModeDelete {
		return p.handleDelete(a, msg)
	}
	if a.State.Display.Mode != app.ModeNavigation {
		return nil
	}

	switch msg.String() {
	case "j", "down":
		p.cursor.Next(len(p.projects))
	case "k", "up":
		p.cursor.Prev()
	case "J":
		return p.moveProject(a, 1)
	case "K":
		return p.moveProject(a, -1)
	case "n":
		p.editor = editors.NewProjectEditor()
		p.page = PageNewProject
		a.State.OpenPopup(app.ModeInsert)
	case "e":
		if project := p.selected(); project != nil {
			if err := p.editor.Set(a.DB, project.ID); err != nil {
				return err
			}
			p.page = PageEditProject
			a.State.OpenPopup(app.ModePopup)
		}
	case "enter", "l":
		if project := p.selected(); project != nil {
			if err := p.board.Open(a, project.ID); err != nil {
				return err
			}
			p.page = PageOpenProject
		}
	case "d":
		if p.selected() != nil {
			p.deleting = true
			a.State.EnterDelete()
		}
	}
	return nil
}

func (p *Projects) handleDelete(a *app.App, msg tea.KeyMsg) error {
	switch msg.String() {
	case "y":
		p.deleting = false
		a.State.Normal()
		project := p.selected()
		if project == nil {
			return nil
		}
		if err := a.DB.DeleteProject(project.ID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		a.Logger.Info("project deleted", "id", project.ID)
		return p.Refresh(a)
	case "n", "esc":
		p.deleting = false
		a.State.Normal()
	}
	return nil
}

func (p *Projects) moveProject(a *app.App, step int) error {
	target := p.cursor.Cursor + step
	if p.selected() == nil || target < 0 || target >= len(p.projects) {
		return nil
	}
	id := p.projects[p.cursor.Cursor].ID
	swapID := p.projects[target].ID

	var err error
	if step > 0 {
		err = a.DB.IncrementPosition("project", id, swapID)
	} else {
		err = a.DB.DecrementPosition("project", id, swapID)
	}
	if err != nil {
		return fmt.Errorf("failed to move project: %w", err)
	}
	p.cursor.Cursor = target
	return p.Refresh(a)
}

// View renders the current page
func (p *Projects) View(a *app.App, width, height int) string {
	switch p.page {
	case PageNewProject, PageEditProject:
		return widgets.Overlay(p.editor.View(a, min(max(width*2/3, 50), width), height), width, height)
	case PageOpenProject:
		return p.board.View(a, width, height)
	}

	s := theme.Current.Styles
	rows := []string{s.Title.Render("Projects"), ""}
	if len(p.projects) == 0 {
		rows = append(rows, s.Placeholder.Render("No projects yet. Press n to create one."))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	// two lines per project plus the spacer
	start, end := p.cursor.Window(len(p.projects), max((height-3)/3, 1))
	for i := start; i < end; i++ {
		project := &p.projects[i]
		style := s.CardNormal
		if i == p.cursor.Cursor {
			style = s.CardSelected
		}
		rows = append(rows,
			style.Width(max(width-4, 20)).Render(project.Title),
			s.Label.PaddingLeft(1).Render(projectSummary(project)),
			"")
	}

	if p.deleting {
		if project := p.selected(); project != nil {
			rows = append(rows, s.Error.Render(fmt.Sprintf("Delete project %q with all its lists and cards? (y/n)", project.Title)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func projectSummary(p *model.Project) string {
	parts := []string{
		fmt.Sprintf("%d lists", p.ListCount),
		fmt.Sprintf("%d/%d cards done", p.CompletedCount, p.CardCount),
	}
	if p.OverdueCount > 0 {
		parts = append(parts, fmt.Sprintf("%d overdue", p.OverdueCount))
	}
	if p.DueSoonCount > 0 {
		parts = append(parts, fmt.Sprintf("%d due soon", p.DueSoonCount))
	}
	if p.ImportantCount > 0 {
		parts = append(parts, fmt.Sprintf("%d important", p.ImportantCount))
	}
	if p.Description != "" {
		parts = append([]string{p.Description}, parts...)
	}
	return strings.Join(parts, " · ")
}
