package db

import (
	"fmt"
	"time"

	"github.com/dori/kanri/internal/model"
)

// getSubtasks returns subtasks keyed by card id. col is card_id or
// project_id.
func getSubtasks(q querier, col string, val int64) (map[int64][]model.Subtask, error) {
	if col != "card_id" && col != "project_id" {
		return nil, fmt.Errorf("get subtasks: bad filter column %q", col)
	}
	rows, err := q.Query(fmt.Sprintf(`
		SELECT id, card_id, project_id, title, completed
		FROM card_subtask
		WHERE %s = ?
		ORDER BY id
	`, col), val)
	if err != nil {
		return nil, fmt.Errorf("get subtasks: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]model.Subtask)
	for rows.Next() {
		var s model.Subtask
		var completed int
		if err := rows.Scan(&s.ID, &s.CardID, &s.ProjectID, &s.Title, &completed); err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		s.Completed = completed == 1
		out[s.CardID] = append(out[s.CardID], s)
	}
	return out, rows.Err()
}

// CreateSubtask adds a subtask to a card
func (db *DB) CreateSubtask(cardID, projectID int64, title string) (int64, error) {
	defer db.trace("create_subtask", time.Now())

	ts := timestamp()
	res, err := db.Exec(`
		INSERT INTO card_subtask (card_id, project_id, title, completed, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
	`, cardID, projectID, title, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("insert subtask: %w", err)
	}
	return res.LastInsertId()
}

// SetSubtaskCompleted marks a subtask done or not
func (db *DB) SetSubtaskCompleted(id int64, completed bool) error {
	defer db.trace("set_subtask_completed", time.Now())

	res, err := db.Exec(`UPDATE card_subtask SET completed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(completed), timestamp(), id)
	if err != nil {
		return fmt.Errorf("set subtask %d completed: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set subtask %d completed: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSubtask removes a subtask
func (db *DB) DeleteSubtask(id int64) error {
	defer db.trace("delete_subtask", time.Now())

	if _, err := db.Exec(`DELETE FROM card_subtask WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete subtask %d: %w", id, err)
	}
	return nil
}
