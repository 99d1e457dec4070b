package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/editors"
	"github.com/dori/kanri/internal/ui/theme"
	"github.com/dori/kanri/internal/ui/widgets"
)

// Focus is the board row that receives navigation keys
type Focus int

const (
	FocusList Focus = iota
	FocusCard
)

// BoardPopup is the editor or viewer open over the board
type BoardPopup int

const (
	BoardPopupNone BoardPopup = iota
	BoardPopupNewList
	BoardPopupEditList
	BoardPopupViewCard
	BoardPopupNewCard
	BoardPopupEditCard
)

type deleteTarget int

const (
	deleteNone deleteTarget = iota
	deleteList
	deleteCard
)

// Board is the open project: its lists side by side, each with its cards
type Board struct {
	projectID int64
	data      *model.Board

	selectedList int
	cursors      []widgets.Scrollable
	focus        Focus
	popup        BoardPopup
	pending      deleteTarget
	status       string

	listEditor *editors.ListEditor
	cardEditor *editors.CardEditor
	cardViewer *editors.CardViewer
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{
		focus:      FocusCard,
		listEditor: editors.NewListEditor(),
		cardEditor: editors.NewCardEditor(),
		cardViewer: editors.NewCardViewer(),
	}
}

// Open loads a project with fresh selection state
func (b *Board) Open(a *app.App, projectID int64) error {
	b.projectID = projectID
	b.selectedList = 0
	b.cursors = nil
	b.focus = FocusCard
	b.popup = BoardPopupNone
	b.pending = deleteNone
	b.status = ""
	return b.Refresh(a)
}

// Refresh reloads the project tree. Cursors set by the last operation are
// kept and clamped to the new list lengths.
func (b *Board) Refresh(a *app.App) error {
	data, err := a.DB.GetBoard(b.projectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	b.data = data

	cursors := make([]widgets.Scrollable, len(data.Lists))
	copy(cursors, b.cursors)
	for i := range cursors {
		cursors[i].Clamp(len(data.Lists[i].Cards))
	}
	b.cursors = cursors

	b.selectedList = min(max(b.selectedList, 0), max(len(data.Lists)-1, 0))
	return nil
}

// Data returns the loaded project tree
func (b *Board) Data() *model.Board {
	return b.data
}

// Selection returns the selected list index, card index and focus
func (b *Board) Selection() (int, int, Focus) {
	card := 0
	if b.selectedList >= 0 && b.selectedList < len(b.cursors) {
		card = b.cursors[b.selectedList].Cursor
	}
	return b.selectedList, card, b.focus
}

// Popup returns the popup open over the board
func (b *Board) Popup() BoardPopup {
	return b.popup
}

// Status returns the last board message
func (b *Board) Status() string {
	return b.status
}

func (b *Board) list() *model.List {
	if b.data == nil || len(b.data.Lists) == 0 {
		return nil
	}
	return &b.data.Lists[b.selectedList]
}

func (b *Board) card() *model.Card {
	l := b.list()
	if l == nil || len(l.Cards) == 0 {
		return nil
	}
	return &l.Cards[b.cursors[b.selectedList].Cursor]
}

func (b *Board) openPopup(a *app.App, p BoardPopup) {
	b.popup = p
	mode := app.ModeInsert
	if p == BoardPopupViewCard {
		mode = app.ModePopup
	}
	a.State.OpenPopup(mode)
}

// HandleKey processes a key and returns true when the user leaves the board
func (b *Board) HandleKey(a *app.App, msg tea.KeyMsg) (bool, error) {
	if a.State.Display.View == app.ViewPopup && b.popup != BoardPopupNone {
		return false, b.handlePopup(a, msg)
	}
	if a.State.Display.Mode == app.ModeDelete {
		return false, b.handleDelete(a, msg)
	}
	if a.State.Display.Mode != app.ModeNavigation {
		return false, nil
	}

	b.status = ""
	switch msg.String() {
	case "[", "esc":
		return true, nil
	case "h", "left":
		if b.selectedList > 0 {
			b.selectedList--
		}
		return false, nil
	case "l", "right":
		if b.selectedList < len(b.data.Lists)-1 {
			b.selectedList++
		}
		return false, nil
	}

	if b.focus == FocusList {
		return false, b.handleListKey(a, msg)
	}
	return false, b.handleCardKey(a, msg)
}

func (b *Board) handlePopup(a *app.App, msg tea.KeyMsg) error {
	var res editors.Result
	var err error
	switch b.popup {
	case BoardPopupNewList, BoardPopupEditList:
		res, err = b.listEditor.HandleKey(a, msg)
	case BoardPopupViewCard:
		res, err = b.cardViewer.HandleKey(a, msg)
	case BoardPopupNewCard, BoardPopupEditCard:
		res, err = b.cardEditor.HandleKey(a, msg)
	}
	if err != nil || !res.Done() {
		return err
	}

	closed := b.popup
	b.popup = BoardPopupNone
	a.State.ClosePopup()
	if err := b.Refresh(a); err != nil {
		return err
	}

	if res != editors.Saved {
		return nil
	}
	switch closed {
	case BoardPopupNewList:
		b.selectedList = max(len(b.data.Lists)-1, 0)
		b.focus = FocusList
	case BoardPopupNewCard:
		if l := b.list(); l != nil {
			b.cursors[b.selectedList].Last(len(l.Cards))
			b.focus = FocusCard
		}
	}
	return nil
}

func (b *Board) newList(a *app.App) {
	limit := a.Config.Modules.ProjectManagement.MaxLists
	if len(b.data.Lists) >= limit {
		b.status = fmt.Sprintf("A project can have at most %d lists", limit)
		a.Logger.Debug("new list refused", "project_id", b.projectID, "max_lists", limit)
		return
	}
	b.listEditor.Create(b.projectID)
	b.openPopup(a, BoardPopupNewList)
}

func (b *Board) handleListKey(a *app.App, msg tea.KeyMsg) error {
	switch msg.String() {
	case "H":
		return b.moveList(a, -1)
	case "L":
		return b.moveList(a, 1)
	case "j", "down":
		b.focus = FocusCard
	case "n":
		b.newList(a)
	case "e":
		if l := b.list(); l != nil {
			if err := b.listEditor.Set(a.DB, l.ID); err != nil {
				return err
			}
			b.openPopup(a, BoardPopupEditList)
		}
	case "d":
		if b.list() != nil {
			b.pending = deleteList
			a.State.EnterDelete()
		}
	}
	return nil
}

func (b *Board) handleCardKey(a *app.App, msg tea.KeyMsg) error {
	l := b.list()
	if l == nil {
		if msg.String() == "n" {
			b.newList(a)
		}
		return nil
	}
	cur := &b.cursors[b.selectedList]

	switch msg.String() {
	case "k", "up":
		if cur.Cursor == 0 {
			b.focus = FocusList
		} else {
			cur.Prev()
		}
	case "j", "down":
		cur.Next(len(l.Cards))
	case "J":
		return b.swapCard(a, 1)
	case "K":
		return b.swapCard(a, -1)
	case "H":
		return b.moveCard(a, -1)
	case "L":
		return b.moveCard(a, 1)
	case "n":
		b.cardEditor.Create(b.projectID, l.ID, b.data.Labels)
		b.openPopup(a, BoardPopupNewCard)
	case "e":
		if c := b.card(); c != nil {
			if err := b.cardEditor.Set(a.DB, c.ID); err != nil {
				return err
			}
			b.openPopup(a, BoardPopupEditCard)
		}
	case "enter":
		if c := b.card(); c != nil {
			if err := b.cardViewer.Set(a.DB, c.ID); err != nil {
				return err
			}
			b.openPopup(a, BoardPopupViewCard)
		}
	case "c":
		if c := b.card(); c != nil {
			if err := a.DB.SetCardCompleted(c.ID, !c.Completed); err != nil {
				return fmt.Errorf("failed to toggle card: %w", err)
			}
			return b.Refresh(a)
		}
	case "i":
		if c := b.card(); c != nil {
			if err := a.DB.SetCardImportant(c.ID, !c.Important); err != nil {
				return fmt.Errorf("failed to toggle card: %w", err)
			}
			return b.Refresh(a)
		}
	case "d":
		if b.card() != nil {
			b.pending = deleteCard
			a.State.EnterDelete()
		}
	}
	return nil
}

func (b *Board) handleDelete(a *app.App, msg tea.KeyMsg) error {
	switch msg.String() {
	case "y":
		target := b.pending
		b.pending = deleteNone
		a.State.Normal()
		switch target {
		case deleteList:
			l := b.list()
			if l == nil {
				return nil
			}
			if err := a.DB.DeleteList(l.ID); err != nil {
				return fmt.Errorf("failed to delete list: %w", err)
			}
			i := b.selectedList
			b.cursors = append(b.cursors[:i], b.cursors[i+1:]...)
			a.Logger.Info("list deleted", "id", l.ID)
		case deleteCard:
			c := b.card()
			if c == nil {
				return nil
			}
			if err := a.DB.DeleteCard(c.ID); err != nil {
				return fmt.Errorf("failed to delete card: %w", err)
			}
			a.Logger.Info("card deleted", "id", c.ID)
		default:
			return nil
		}
		return b.Refresh(a)
	case "n", "esc":
		b.pending = deleteNone
		a.State.Normal()
	}
	return nil
}

func (b *Board) moveList(a *app.App, step int) error {
	target := b.selectedList + step
	if b.list() == nil || target < 0 || target >= len(b.data.Lists) {
		return nil
	}
	id := b.data.Lists[b.selectedList].ID
	swapID := b.data.Lists[target].ID

	var err error
	if step > 0 {
		err = a.DB.IncrementPosition("project_list", id, swapID)
	} else {
		err = a.DB.DecrementPosition("project_list", id, swapID)
	}
	if err != nil {
		return fmt.Errorf("failed to move list: %w", err)
	}

	b.cursors[b.selectedList], b.cursors[target] = b.cursors[target], b.cursors[b.selectedList]
	b.selectedList = target
	return b.Refresh(a)
}

func (b *Board) swapCard(a *app.App, step int) error {
	l := b.list()
	cur := &b.cursors[b.selectedList]
	target := cur.Cursor + step
	if l == nil || len(l.Cards) == 0 || target < 0 || target >= len(l.Cards) {
		return nil
	}
	id := l.Cards[cur.Cursor].ID
	swapID := l.Cards[target].ID

	var err error
	if step > 0 {
		err = a.DB.IncrementPosition("project_card", id, swapID)
	} else {
		err = a.DB.DecrementPosition("project_card", id, swapID)
	}
	if err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}

	cur.Cursor = target
	return b.Refresh(a)
}

func (b *Board) moveCard(a *app.App, step int) error {
	c := b.card()
	target := b.selectedList + step
	if c == nil || target < 0 || target >= len(b.data.Lists) {
		return nil
	}

	pos, err := a.DB.MoveCardToList(c.ID, b.data.Lists[target].ID)
	if err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}

	b.cursors[b.selectedList].Prev()
	b.cursors[target].Cursor = pos
	b.selectedList = target
	return b.Refresh(a)
}

// glyph picks the status character for a card from the configured set
func glyph(pm config.ProjectManagementModule, s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return pm.CompletedChar
	case model.StatusOverdue:
		return pm.OverdueChar
	case model.StatusDueSoon:
		return pm.DueSoonChar
	case model.StatusInProgress:
		return pm.InProgressChar
	case model.StatusImportant:
		return pm.ImportantChar
	default:
		return pm.DefaultChar
	}
}

// View renders the lists side by side with any open popup centered on top
func (b *Board) View(a *app.App, width, height int) string {
	if b.data == nil {
		return "Loading..."
	}
	s := theme.Current.Styles

	title := s.Title.Render(b.data.Project.Title)
	if b.data.Project.Description != "" {
		title += "  " + s.Subtitle.Render(b.data.Project.Description)
	}

	var body string
	if len(b.data.Lists) == 0 {
		body = s.Placeholder.Render("No lists yet. Press n to create one.")
	} else {
		body = b.viewLists(a, width, height-3)
	}

	footer := ""
	switch {
	case a.State.Display.Mode == app.ModeDelete && b.pending == deleteList:
		footer = s.Error.Render(fmt.Sprintf("Delete list %q and all its cards? (y/n)", b.list().Title))
	case a.State.Display.Mode == app.ModeDelete && b.pending == deleteCard:
		footer = s.Error.Render(fmt.Sprintf("Delete card %q? (y/n)", b.card().Title))
	case b.status != "":
		footer = s.Label.Render(b.status)
	}

	base := lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
	if b.popup == BoardPopupNone {
		return base
	}

	popupWidth := min(max(width*2/3, 40), width)
	var popup string
	switch b.popup {
	case BoardPopupNewList, BoardPopupEditList:
		popup = b.listEditor.View(a, popupWidth, height)
	case BoardPopupViewCard:
		popup = b.cardViewer.View(a, popupWidth, height)
	case BoardPopupNewCard, BoardPopupEditCard:
		popup = b.cardEditor.View(a, popupWidth, height)
	}
	return widgets.Overlay(popup, width, height)
}

func (b *Board) viewLists(a *app.App, width, height int) string {
	s := theme.Current.Styles
	t := theme.Current.Theme
	pm := a.Config.Modules.ProjectManagement
	now := model.Now()

	colWidth := max(width/len(b.data.Lists)-1, 20)
	// border, header and scroll hints
	visible := max(height-5, 1)

	var cols []string
	for i, l := range b.data.Lists {
		active := i == b.selectedList

		headerStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Width(colWidth - 4)
		if active && b.focus == FocusList {
			headerStyle = headerStyle.Foreground(t.Active).Background(t.ActiveBG)
		}
		items := []string{headerStyle.Render(fmt.Sprintf("%s (%d)", l.Title, len(l.Cards)))}

		start, end := b.cursors[i].Window(len(l.Cards), visible)
		if start > 0 {
			items = append(items, s.Label.Render(fmt.Sprintf("↑ %d more", start)))
		}
		for j := start; j < end; j++ {
			selected := active && b.focus == FocusCard && j == b.cursors[i].Cursor
			items = append(items, b.viewCard(&l.Cards[j], pm, now, colWidth-4, selected))
		}
		if end < len(l.Cards) {
			items = append(items, s.Label.Render(fmt.Sprintf("↓ %d more", len(l.Cards)-end)))
		}

		col := s.Panel
		if active {
			col = s.PanelActive
		}
		cols = append(cols, col.Width(colWidth).Height(height-2).Render(
			lipgloss.JoinVertical(lipgloss.Left, items...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (b *Board) viewCard(c *model.Card, pm config.ProjectManagementModule, now time.Time, width int, selected bool) string {
	s := theme.Current.Styles
	t := theme.Current.Theme
	status := c.Status(now, pm.DueSoonDays)

	style := s.CardNormal
	switch {
	case selected:
		style = s.CardSelected
	case status == model.StatusCompleted:
		style = s.CardDone
	case status == model.StatusOverdue:
		style = s.CardOverdue
	}

	line := glyph(pm, status) + " " + c.Title
	if done, total := c.SubtaskProgress(); total > 0 {
		line += fmt.Sprintf(" [%d/%d]", done, total)
	}

	var marks []string
	for _, id := range c.LabelIDs {
		if l, ok := b.data.Label(id); ok {
			marks = append(marks, lipgloss.NewStyle().
				Foreground(theme.ColorOr(l.Color, t.Foreground)).
				Render("●"))
		}
	}
	rows := []string{style.Width(width).Render(line)}
	meta := strings.Join(marks, "")
	if c.DueDate != nil {
		meta += " " + s.DueDate.Render(model.FormatUserDate(c.DueDate))
	}
	if strings.TrimSpace(meta) != "" {
		rows = append(rows, lipgloss.NewStyle().PaddingLeft(3).Render(meta))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
