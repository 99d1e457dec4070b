package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustProject(t *testing.T, db *DB, title string) int64 {
	t.Helper()
	id, err := db.SaveProject(ProjectInput{Title: title})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return id
}

func mustList(t *testing.T, db *DB, projectID int64, title string) int64 {
	t.Helper()
	id, err := db.CreateList(projectID, title)
	if err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	return id
}

func mustCard(t *testing.T, db *DB, projectID, listID int64, title string) int64 {
	t.Helper()
	id, err := db.SaveCard(CardInput{ProjectID: projectID, ListID: listID, Title: title})
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	return id
}

// cardPositions returns the card ids of a list in position order and fails
// unless positions are exactly 0..n-1
func cardPositions(t *testing.T, db *DB, listID int64) []int64 {
	t.Helper()
	rows, err := db.Query(`SELECT id, position FROM project_card WHERE list_id = ? ORDER BY position`, listID)
	if err != nil {
		t.Fatalf("Failed to query positions: %v", err)
	}
	defer rows.Close()

	var ids []int64
	for i := 0; rows.Next(); i++ {
		var id int64
		var pos int
		if err := rows.Scan(&id, &pos); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if pos != i {
			t.Fatalf("list %d: card %d at position %d, want %d", listID, id, pos, i)
		}
		ids = append(ids, id)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
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

func TestHighestPositionEmpty(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetHighestPosition("project")
	if err != nil {
		t.Fatalf("GetHighestPosition failed: %v", err)
	}
	if got != -1 {
		t.Errorf("GetHighestPosition on empty table = %d, want -1", got)
	}
}

func TestUnknownTableRejected(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetHighestPosition("card_subtask; DROP TABLE project"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
	if err := db.DecrementPositionsAfterWhere("project_list", 0, "title", "x"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable for bad partition, got %v", err)
	}
}

func TestDeleteCardKeepsPositionsDense(t *testing.T) {
	db := openTestDB(t)
	p := mustProject(t, db, "Home")
	l := mustList(t, db, p, "Todo")

	var ids []int64
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, mustCard(t, db, p, l, title))
	}

	if err := db.DeleteCard(ids[2]); err != nil {
		t.Fatalf("DeleteCard failed: %v", err)
	}
	got := cardPositions(t, db, l)
	want := []int64{ids[0], ids[1], ids[3], ids[4]}
	if !equalIDs(got, want) {
		t.Errorf("after delete got %v, want %v", got, want)
	}

	if err := db.DeleteCard(ids[0]); err != nil {
		t.Fatalf("DeleteCard failed: %v", err)
	}
	cardPositions(t, db, l)
}

func TestDeleteListRenumbersOnlyItsProject(t *testing.T) {
	db := openTestDB(t)
	p1 := mustProject(t, db, "One")
	p2 := mustProject(t, db, "Two")

	a := mustList(t, db, p1, "a")
	b := mustList(t, db, p1, "b")
	c := mustList(t, db, p1, "c")
	x := mustList(t, db, p2, "x")
	y := mustList(t, db, p2, "y")

	if err := db.DeleteList(a); err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}

	for id, want := range map[int64]int{b: 0, c: 1, x: 0, y: 1} {
		pos, err := db.GetPosition("project_list", id)
		if err != nil {
			t.Fatalf("GetPosition failed: %v", err)
		}
		if pos != want {
			t.Errorf("list %d position = %d, want %d", id, pos, want)
		}
	}
}

func TestSwapPositions(t *testing.T) {
	db := openTestDB(t)
	p := mustProject(t, db, "Home")
	l := mustList(t, db, p, "Todo")
	a := mustCard(t, db, p, l, "a")
	b := mustCard(t, db, p, l, "b")
	c := mustCard(t, db, p, l, "c")

	if err := db.IncrementPosition("project_card", a, b); err != nil {
		t.Fatalf("IncrementPosition failed: %v", err)
	}
	if got := cardPositions(t, db, l); !equalIDs(got, []int64{b, a, c}) {
		t.Errorf("after increment got %v", got)
	}

	if err := db.DecrementPosition("project_card", a, b); err != nil {
		t.Fatalf("DecrementPosition failed: %v", err)
	}
	if got := cardPositions(t, db, l); !equalIDs(got, []int64{a, b, c}) {
		t.Errorf("after decrement got %v", got)
	}

	if err := db.IncrementPosition("project_card", a, c); err == nil {
		t.Error("expected error swapping non-adjacent rows")
	}
	cardPositions(t, db, l)
}

func TestMoveCardRoundTrip(t *testing.T) {
	db := openTestDB(t)
	p := mustProject(t, db, "Home")
	la := mustList(t, db, p, "A")
	lb := mustList(t, db, p, "B")
	a0 := mustCard(t, db, p, la, "a0")
	a1 := mustCard(t, db, p, la, "a1")
	a2 := mustCard(t, db, p, la, "a2")
	b0 := mustCard(t, db, p, lb, "b0")

	pos, err := db.MoveCardToList(a1, lb)
	if err != nil {
		t.Fatalf("MoveCardToList failed: %v", err)
	}
	if pos != 1 {
		t.Errorf("moved card position = %d, want 1", pos)
	}
	if got := cardPositions(t, db, la); !equalIDs(got, []int64{a0, a2}) {
		t.Errorf("source list got %v", got)
	}
	if got := cardPositions(t, db, lb); !equalIDs(got, []int64{b0, a1}) {
		t.Errorf("destination list got %v", got)
	}

	if _, err := db.MoveCardToList(a1, la); err != nil {
		t.Fatalf("MoveCardToList back failed: %v", err)
	}
	if got := cardPositions(t, db, la); !equalIDs(got, []int64{a0, a2, a1}) {
		t.Errorf("after round trip got %v", got)
	}
	if got := cardPositions(t, db, lb); !equalIDs(got, []int64{b0}) {
		t.Errorf("destination after round trip got %v", got)
	}
}

func TestMoveLastCardRoundTripKeepsOrder(t *testing.T) {
	db := openTestDB(t)
	p := mustProject(t, db, "Home")
	la := mustList(t, db, p, "A")
	lb := mustList(t, db, p, "B")
	a0 := mustCard(t, db, p, la, "a0")
	a1 := mustCard(t, db, p, la, "a1")
	a2 := mustCard(t, db, p, la, "a2")

	if _, err := db.MoveCardToList(a2, lb); err != nil {
		t.Fatalf("MoveCardToList failed: %v", err)
	}
	pos, err := db.MoveCardToList(a2, la)
	if err != nil {
		t.Fatalf("MoveCardToList back failed: %v", err)
	}
	if pos != 2 {
		t.Errorf("returned position = %d, want 2", pos)
	}
	if got := cardPositions(t, db, la); !equalIDs(got, []int64{a0, a1, a2}) {
		t.Errorf("after round trip got %v", got)
	}
	if got := cardPositions(t, db, lb); len(got) != 0 {
		t.Errorf("destination after round trip got %v", got)
	}
}

func TestSaveProjectLabels(t *testing.T) {
	db := openTestDB(t)

	id, err := db.SaveProject(ProjectInput{
		Title: "Garden",
		Labels: []LabelInput{
			{Title: "urgent", Color: "#ff0000"},
			{Title: "later", Color: "#00ff00"},
			{Title: "maybe", Color: ""},
		},
	})
	if err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	labels, err := db.GetLabels(id)
	if err != nil {
		t.Fatalf("GetLabels failed: %v", err)
	}
	if len(labels) != 3 {
		t.Fatalf("got %d labels, want 3", len(labels))
	}
	for i, l := range labels {
		if l.Position != i {
			t.Errorf("label %q position = %d, want %d", l.Title, l.Position, i)
		}
	}

	// Drop the first label, rename the second, add one more
	keep := labels[1].ID
	_, err = db.SaveProject(ProjectInput{
		ID:    &id,
		Title: "Garden",
		Labels: []LabelInput{
			{ID: &keep, Title: "soon", Color: "#00ff00"},
			{ID: &labels[2].ID, Title: "maybe", Color: ""},
			{Title: "new", Color: "#0000ff"},
		},
		RemovedLabels: []int64{labels[0].ID},
	})
	if err != nil {
		t.Fatalf("SaveProject edit failed: %v", err)
	}

	labels, err = db.GetLabels(id)
	if err != nil {
		t.Fatalf("GetLabels failed: %v", err)
	}
	wantTitles := []string{"soon", "maybe", "new"}
	if len(labels) != len(wantTitles) {
		t.Fatalf("got %d labels, want %d", len(labels), len(wantTitles))
	}
	for i, l := range labels {
		if l.Title != wantTitles[i] || l.Position != i {
			t.Errorf("label %d = %q@%d, want %q@%d", i, l.Title, l.Position, wantTitles[i], i)
		}
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	db := openTestDB(t)
	p1 := mustProject(t, db, "One")
	p2 := mustProject(t, db, "Two")
	p3 := mustProject(t, db, "Three")
	l := mustList(t, db, p1, "Todo")
	c := mustCard(t, db, p1, l, "card")
	if _, err := db.CreateSubtask(c, p1, "step"); err != nil {
		t.Fatalf("CreateSubtask failed: %v", err)
	}

	if err := db.DeleteProject(p1); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	var n int
	for _, table := range []string{"project_list", "project_card", "card_subtask"} {
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after project delete", table, n)
		}
	}

	for id, want := range map[int64]int{p2: 0, p3: 1} {
		pos, err := db.GetPosition("project", id)
		if err != nil {
			t.Fatalf("GetPosition failed: %v", err)
		}
		if pos != want {
			t.Errorf("project %d position = %d, want %d", id, pos, want)
		}
	}
}

func TestCardFlagsAndLabels(t *testing.T) {
	db := openTestDB(t)
	pid, err := db.SaveProject(ProjectInput{
		Title:  "Home",
		Labels: []LabelInput{{Title: "red", Color: "#ff0000"}, {Title: "blue", Color: "#0000ff"}},
	})
	if err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	labels, _ := db.GetLabels(pid)
	l := mustList(t, db, pid, "Todo")

	due := time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)
	id, err := db.SaveCard(CardInput{
		ProjectID: pid,
		ListID:    l,
		Title:     "paint",
		DueDate:   &due,
		LabelIDs:  []int64{labels[1].ID},
	})
	if err != nil {
		t.Fatalf("SaveCard failed: %v", err)
	}
	if err := db.SetCardCompleted(id, true); err != nil {
		t.Fatalf("SetCardCompleted failed: %v", err)
	}
	if err := db.SetCardImportant(id, true); err != nil {
		t.Fatalf("SetCardImportant failed: %v", err)
	}

	card, err := db.GetCard(id)
	if err != nil || card == nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if !card.Completed || !card.Important {
		t.Errorf("flags not stored: completed=%v important=%v", card.Completed, card.Important)
	}
	if card.DueDate == nil || !card.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", card.DueDate, due)
	}
	if len(card.LabelIDs) != 1 || card.LabelIDs[0] != labels[1].ID {
		t.Errorf("labels = %v, want [%d]", card.LabelIDs, labels[1].ID)
	}

	if err := db.SetCardCompleted(9999, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestGetBoardNoDeadlock is a regression test for nested queries while a row
// set is still open. With SetMaxOpenConns(1) that would block forever.
func TestGetBoardNoDeadlock(t *testing.T) {
	db := openTestDB(t)
	pid, err := db.SaveProject(ProjectInput{
		Title:  "Board",
		Labels: []LabelInput{{Title: "one", Color: "#111111"}, {Title: "two", Color: "#222222"}},
	})
	if err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	labels, _ := db.GetLabels(pid)

	for i := 0; i < 3; i++ {
		l := mustList(t, db, pid, "list")
		for j := 0; j < 4; j++ {
			id, err := db.SaveCard(CardInput{
				ProjectID: pid, ListID: l, Title: "card",
				LabelIDs: []int64{labels[j%2].ID},
			})
			if err != nil {
				t.Fatalf("SaveCard failed: %v", err)
			}
			if _, err := db.CreateSubtask(id, pid, "sub"); err != nil {
				t.Fatalf("CreateSubtask failed: %v", err)
			}
		}
	}

	done := make(chan error, 1)
	go func() {
		b, err := db.GetBoard(pid)
		if err == nil && (len(b.Lists) != 3 || len(b.Lists[2].Cards) != 4 || len(b.Lists[0].Cards[0].Subtasks) != 1) {
			t.Errorf("unexpected board shape")
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("GetBoard failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out - possible deadlock detected")
	}
}

func TestLastRowIDAndRenumberProjects(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.LastRowID("project"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	a := mustProject(t, db, "a")
	b := mustProject(t, db, "b")
	c := mustProject(t, db, "c")

	last, err := db.LastRowID("project")
	if err != nil {
		t.Fatalf("LastRowID failed: %v", err)
	}
	if last != c {
		t.Errorf("LastRowID = %d, want %d", last, c)
	}

	// remove the first row by hand and close the gap
	if _, err := db.Exec(`DELETE FROM project WHERE id = ?`, a); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := db.DecrementPositionsAfter("project", 0); err != nil {
		t.Fatalf("DecrementPositionsAfter failed: %v", err)
	}

	for want, id := range []int64{b, c} {
		got, err := db.GetPosition("project", id)
		if err != nil {
			t.Fatalf("GetPosition failed: %v", err)
		}
		if got != want {
			t.Errorf("project %d at position %d, want %d", id, got, want)
		}
	}
}

func TestCountLists(t *testing.T) {
	db := openTestDB(t)
	p := mustProject(t, db, "Home")
	mustList(t, db, p, "Todo")
	mustList(t, db, p, "Done")
	mustList(t, db, mustProject(t, db, "Work"), "Inbox")

	n, err := db.CountLists(p)
	if err != nil {
		t.Fatalf("CountLists failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountLists = %d, want 2", n)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	p := mustProject(t, db, "Home")
	errBoom := errors.New("boom")

	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE project SET title = ? WHERE id = ?", "Work", p); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Transaction error = %v, want %v", err, errBoom)
	}
	got, err := db.GetProject(p)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Title != "Home" {
		t.Errorf("title = %q, want the update rolled back", got.Title)
	}
}

func TestTransactionReportsRollbackError(t *testing.T) {
	db := openTestDB(t)
	errBoom := errors.New("boom")

	err := db.Transaction(func(tx *sql.Tx) error {
		// committing here makes the rollback fail
		if err := tx.Commit(); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Errorf("expected the callback error, got %v", err)
	}
	if !errors.Is(err, sql.ErrTxDone) {
		t.Errorf("expected the rollback error joined in, got %v", err)
	}
}
