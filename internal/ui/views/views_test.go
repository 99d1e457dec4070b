package views

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	charmLog "github.com/charmbracelet/log"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/model"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	a := &app.App{
		DB:     database,
		Config: config.Default(),
		Logger: charmLog.New(io.Discard),
		State:  app.NewState(),
	}
	a.State.SwitchModule(app.ModuleProjectManagement)
	return a
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func pressBoard(t *testing.T, a *app.App, b *Board, keys ...string) bool {
	t.Helper()
	var done bool
	for _, k := range keys {
		var err error
		done, err = b.HandleKey(a, keyMsg(k))
		if err != nil {
			t.Fatalf("key %q: %v", k, err)
		}
	}
	return done
}

// seedBoard creates a project with lists "Todo" and "Done" and cards a, b, c
// in Todo
func seedBoard(t *testing.T, a *app.App) int64 {
	t.Helper()
	projectID, err := a.DB.SaveProject(db.ProjectInput{Title: "Home"})
	if err != nil {
		t.Fatalf("failed to save project: %v", err)
	}
	todo, err := a.DB.CreateList(projectID, "Todo")
	if err != nil {
		t.Fatalf("failed to create list: %v", err)
	}
	if _, err := a.DB.CreateList(projectID, "Done"); err != nil {
		t.Fatalf("failed to create list: %v", err)
	}
	for _, title := range []string{"a", "b", "c"} {
		if _, err := a.DB.SaveCard(db.CardInput{ProjectID: projectID, ListID: todo, Title: title}); err != nil {
			t.Fatalf("failed to save card: %v", err)
		}
	}
	return projectID
}

func openBoard(t *testing.T, a *app.App) *Board {
	t.Helper()
	b := NewBoard()
	if err := b.Open(a, seedBoard(t, a)); err != nil {
		t.Fatalf("failed to open board: %v", err)
	}
	return b
}

func cardTitles(l model.List) []string {
	var out []string
	for _, c := range l.Cards {
		out = append(out, c.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func assertDense(t *testing.T, l model.List) {
	t.Helper()
	for i, c := range l.Cards {
		if c.Position != i {
			t.Fatalf("list %q: card %q at position %d, want %d", l.Title, c.Title, c.Position, i)
		}
	}
}

func TestBoardNavigation(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "j", "j", "j")
	if list, card, focus := b.Selection(); list != 0 || card != 2 || focus != FocusCard {
		t.Fatalf("expected (0, 2, card), got (%d, %d, %v)", list, card, focus)
	}

	pressBoard(t, a, b, "k", "k", "k")
	if _, card, focus := b.Selection(); card != 0 || focus != FocusList {
		t.Fatalf("expected k at the top to focus the list header, got card %d focus %v", card, focus)
	}

	pressBoard(t, a, b, "j")
	if _, _, focus := b.Selection(); focus != FocusCard {
		t.Fatal("expected j from the header to return to cards")
	}

	pressBoard(t, a, b, "l", "l")
	if list, _, _ := b.Selection(); list != 1 {
		t.Fatalf("expected selection to stop at the last list, got %d", list)
	}

	if !pressBoard(t, a, b, "[") {
		t.Error("expected [ to leave the board")
	}
}

func TestBoardSwapCards(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "J", "J")
	todo := b.Data().Lists[0]
	if got := cardTitles(todo); !equalStrings(got, []string{"b", "c", "a"}) {
		t.Fatalf("expected [b c a], got %v", got)
	}
	assertDense(t, todo)
	if _, card, _ := b.Selection(); card != 2 {
		t.Errorf("expected cursor to follow the card, got %d", card)
	}

	// the last card cannot move further down
	pressBoard(t, a, b, "J")
	if got := cardTitles(b.Data().Lists[0]); !equalStrings(got, []string{"b", "c", "a"}) {
		t.Errorf("expected no change at the bottom, got %v", got)
	}
}

func TestBoardMoveCardAcrossLists(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "j", "L")
	todo, done := b.Data().Lists[0], b.Data().Lists[1]
	if got := cardTitles(todo); !equalStrings(got, []string{"a", "c"}) {
		t.Fatalf("expected [a c] in Todo, got %v", got)
	}
	if got := cardTitles(done); !equalStrings(got, []string{"b"}) {
		t.Fatalf("expected [b] in Done, got %v", got)
	}
	assertDense(t, todo)
	assertDense(t, done)
	if list, card, _ := b.Selection(); list != 1 || card != 0 {
		t.Errorf("expected selection on the moved card, got (%d, %d)", list, card)
	}

	pressBoard(t, a, b, "H")
	todo = b.Data().Lists[0]
	if got := cardTitles(todo); !equalStrings(got, []string{"a", "c", "b"}) {
		t.Errorf("expected b appended to Todo, got %v", got)
	}
	assertDense(t, todo)
	if list, card, _ := b.Selection(); list != 0 || card != 2 {
		t.Errorf("expected selection on the moved card, got (%d, %d)", list, card)
	}
}

func TestBoardMoveList(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "k", "L")
	if b.Data().Lists[0].Title != "Done" || b.Data().Lists[1].Title != "Todo" {
		t.Fatalf("expected lists swapped, got %q, %q", b.Data().Lists[0].Title, b.Data().Lists[1].Title)
	}
	if list, _, _ := b.Selection(); list != 1 {
		t.Errorf("expected selection to follow the list, got %d", list)
	}
}

func TestBoardDeleteCardNeedsConfirmation(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "j", "j", "d")
	if a.State.Display.Mode != app.ModeDelete {
		t.Fatalf("expected delete mode, got %v", a.State.Display.Mode)
	}
	pressBoard(t, a, b, "n")
	if a.State.Display.Mode != app.ModeNavigation || len(b.Data().Lists[0].Cards) != 3 {
		t.Fatal("expected n to cancel the delete")
	}

	pressBoard(t, a, b, "d", "y")
	todo := b.Data().Lists[0]
	if got := cardTitles(todo); !equalStrings(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}
	assertDense(t, todo)
	if _, card, _ := b.Selection(); card != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", card)
	}
}

func TestBoardDeleteList(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "k", "d", "y")
	if len(b.Data().Lists) != 1 || b.Data().Lists[0].Title != "Done" {
		t.Fatalf("expected only Done left, got %+v", b.Data().Lists)
	}
	if b.Data().Lists[0].Position != 0 {
		t.Errorf("expected Done renumbered to 0, got %d", b.Data().Lists[0].Position)
	}
}

func TestBoardToggles(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "c", "i")
	c := b.Data().Lists[0].Cards[0]
	if !c.Completed || !c.Important {
		t.Errorf("expected completed and important, got %+v", c)
	}
	pressBoard(t, a, b, "c")
	if b.Data().Lists[0].Cards[0].Completed {
		t.Error("expected c to toggle completion back off")
	}
}

func TestBoardNewListPopup(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "k", "n")
	if b.Popup() != BoardPopupNewList || !a.State.Is(app.ViewPopup, app.ModeInsert) {
		t.Fatalf("expected new list popup in insert mode, got %v %+v", b.Popup(), a.State.Display)
	}
	for _, r := range "Later" {
		pressBoard(t, a, b, string(r))
	}
	pressBoard(t, a, b, "enter")

	if b.Popup() != BoardPopupNone || !a.State.Is(app.ViewDefault, app.ModeNavigation) {
		t.Fatalf("expected popup closed, got %v %+v", b.Popup(), a.State.Display)
	}
	if len(b.Data().Lists) != 3 || b.Data().Lists[2].Title != "Later" {
		t.Fatalf("expected Later appended, got %+v", b.Data().Lists)
	}
	if list, _, focus := b.Selection(); list != 2 || focus != FocusList {
		t.Errorf("expected the new list selected, got %d %v", list, focus)
	}
}

func TestBoardMaxLists(t *testing.T) {
	a := newTestApp(t)
	a.Config.Modules.ProjectManagement.MaxLists = 2
	b := openBoard(t, a)

	pressBoard(t, a, b, "k", "n")
	if b.Popup() != BoardPopupNone {
		t.Fatal("expected new list to be refused at the limit")
	}
	if b.Status() == "" {
		t.Error("expected a status message")
	}
}

func TestBoardNewCardSelectsIt(t *testing.T) {
	a := newTestApp(t)
	b := openBoard(t, a)

	pressBoard(t, a, b, "n")
	if !a.State.Is(app.ViewPopup, app.ModeInsert) {
		t.Fatalf("expected card editor in insert mode, got %+v", a.State.Display)
	}
	for _, r := range "d" {
		pressBoard(t, a, b, string(r))
	}
	// leave insert, jump to actions and save
	pressBoard(t, a, b, "esc", "K", "enter")

	if got := cardTitles(b.Data().Lists[0]); !equalStrings(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("expected d appended, got %v", got)
	}
	if _, card, _ := b.Selection(); card != 3 {
		t.Errorf("expected the new card selected, got %d", card)
	}
}

func TestProjectsDeleteRenumbers(t *testing.T) {
	a := newTestApp(t)
	for _, title := range []string{"one", "two", "three"} {
		if _, err := a.DB.SaveProject(db.ProjectInput{Title: title}); err != nil {
			t.Fatalf("failed to save project: %v", err)
		}
	}
	p := NewProjects()
	if err := p.Refresh(a); err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}

	for _, k := range []string{"j", "d", "y"} {
		if err := p.HandleKey(a, keyMsg(k)); err != nil {
			t.Fatalf("key %q: %v", k, err)
		}
	}

	projects := p.Projects()
	if len(projects) != 2 || projects[0].Title != "one" || projects[1].Title != "three" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
	for i, project := range projects {
		if project.Position != i {
			t.Errorf("project %q at position %d, want %d", project.Title, project.Position, i)
		}
	}
}

func TestProjectsOpenAndLeave(t *testing.T) {
	a := newTestApp(t)
	seedBoard(t, a)
	p := NewProjects()
	if err := p.Refresh(a); err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}

	if err := p.HandleKey(a, keyMsg("enter")); err != nil {
		t.Fatalf("failed to open project: %v", err)
	}
	if p.Page() != PageOpenProject || p.Board().Data().Project.Title != "Home" {
		t.Fatalf("expected Home open, got page %v", p.Page())
	}
	if err := p.HandleKey(a, keyMsg("[")); err != nil {
		t.Fatalf("failed to leave project: %v", err)
	}
	if p.Page() != PageListProjects {
		t.Errorf("expected project list, got page %v", p.Page())
	}
}

func TestDashboardAttentionCards(t *testing.T) {
	a := newTestApp(t)
	projectID := seedBoard(t, a)
	lists, _ := a.DB.GetBoard(projectID)
	listID := lists.Lists[0].ID

	past := model.Now().Add(-time.Hour)
	soon := model.Now().Add(24 * time.Hour)
	later := model.Now().AddDate(0, 1, 0)
	for _, due := range []time.Time{past, soon, later} {
		if _, err := a.DB.SaveCard(db.CardInput{ProjectID: projectID, ListID: listID, Title: "due", DueDate: &due}); err != nil {
			t.Fatalf("failed to save card: %v", err)
		}
	}

	d := NewDashboard()
	if err := d.Refresh(a); err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}
	if len(d.Cards()) != 2 {
		t.Fatalf("expected overdue and due soon cards, got %d", len(d.Cards()))
	}
	if d.Cards()[0].ProjectTitle != "Home" || d.Cards()[0].ListTitle != "Todo" {
		t.Errorf("unexpected card context: %+v", d.Cards()[0])
	}
}

func TestGlyphPriority(t *testing.T) {
	pm := config.Default().Modules.ProjectManagement
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name string
		card model.Card
		want string
	}{
		{"completed wins over overdue", model.Card{Completed: true, DueDate: &yesterday}, pm.CompletedChar},
		{"overdue", model.Card{DueDate: &yesterday, Important: true}, pm.OverdueChar},
		{"due soon", model.Card{DueDate: &tomorrow, StartDate: &yesterday}, pm.DueSoonChar},
		{"in progress", model.Card{StartDate: &yesterday, Important: true}, pm.InProgressChar},
		{"important", model.Card{Important: true}, pm.ImportantChar},
		{"default", model.Card{}, pm.DefaultChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := glyph(pm, tt.card.Status(now, pm.DueSoonDays)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoardCancelNewListOnEmptyProject(t *testing.T) {
	a := newTestApp(t)
	projectID, err := a.DB.SaveProject(db.ProjectInput{Title: "Empty"})
	if err != nil {
		t.Fatalf("failed to save project: %v", err)
	}
	b := NewBoard()
	if err := b.Open(a, projectID); err != nil {
		t.Fatalf("failed to open board: %v", err)
	}

	pressBoard(t, a, b, "n")
	if b.Popup() != BoardPopupNewList {
		t.Fatalf("expected new list popup on an empty project, got %v", b.Popup())
	}
	// leave insert, then cancel
	pressBoard(t, a, b, "esc", "esc")

	if b.Popup() != BoardPopupNone || !a.State.Is(app.ViewDefault, app.ModeNavigation) {
		t.Fatalf("expected popup closed, got %v %+v", b.Popup(), a.State.Display)
	}
	if list, card, _ := b.Selection(); list != 0 || card != 0 {
		t.Errorf("expected selection (0, 0), got (%d, %d)", list, card)
	}
	// the board stays usable
	pressBoard(t, a, b, "j", "k", "h", "l")
}

func TestBoardCancelKeepsSelection(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		list     int
		card     int
		focus    Focus
		numLists int
		numCards int
	}{
		{"new list", []string{"l", "k", "h", "n", "esc", "esc"}, 0, 0, FocusList, 2, 3},
		{"new card", []string{"j", "j", "n", "esc", "esc"}, 0, 2, FocusCard, 2, 3},
		{"new card from actions", []string{"j", "n", "esc", "K", "j", "enter"}, 0, 1, FocusCard, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			b := openBoard(t, a)

			pressBoard(t, a, b, tt.keys...)
			if b.Popup() != BoardPopupNone {
				t.Fatalf("expected popup closed, got %v", b.Popup())
			}
			if list, card, focus := b.Selection(); list != tt.list || card != tt.card || focus != tt.focus {
				t.Errorf("expected (%d, %d, %v), got (%d, %d, %v)", tt.list, tt.card, tt.focus, list, card, focus)
			}
			if got := len(b.Data().Lists); got != tt.numLists {
				t.Errorf("expected %d lists, got %d", tt.numLists, got)
			}
			if got := len(b.Data().Lists[0].Cards); got != tt.numCards {
				t.Errorf("expected %d cards, got %d", tt.numCards, got)
			}
		})
	}
}

func TestBoardMoveRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		// moves append, so only the last card comes back to its own slot
		{"last card", []string{"j", "j", "L", "H"}, []string{"a", "b", "c"}},
		{"first card", []string{"L", "H"}, []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			b := openBoard(t, a)

			pressBoard(t, a, b, tt.keys...)
			todo := b.Data().Lists[0]
			if got := cardTitles(todo); !equalStrings(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			assertDense(t, todo)
			if len(b.Data().Lists[1].Cards) != 0 {
				t.Errorf("expected Done empty, got %v", cardTitles(b.Data().Lists[1]))
			}
		})
	}
}
