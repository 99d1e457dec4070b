package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dori/kanri/internal/model"
)

// GetList returns a single list by ID, or nil when it does not exist
func (db *DB) GetList(id int64) (*model.List, error) {
	defer db.trace("get_list", time.Now())

	var l model.List
	err := db.QueryRow(`
		SELECT id, project_id, title, position FROM project_list WHERE id = ?
	`, id).Scan(&l.ID, &l.ProjectID, &l.Title, &l.Position)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list %d: %w", id, err)
	}
	return &l, nil
}

// FirstList returns the lowest positioned list of a project, or nil
func (db *DB) FirstList(projectID int64) (*model.List, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM project_list WHERE project_id = ? ORDER BY position LIMIT 1`,
		projectID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first list of project %d: %w", projectID, err)
	}
	return db.GetList(id)
}

// CountLists returns how many lists a project has
func (db *DB) CountLists(projectID int64) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM project_list WHERE project_id = ?`, projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lists: %w", err)
	}
	return n, nil
}

// CreateList appends a list to the end of a project
func (db *DB) CreateList(projectID int64, title string) (int64, error) {
	defer db.trace("create_list", time.Now())

	var id int64
	err := db.Transaction(func(tx *sql.Tx) error {
		highest, err := highestPosition(tx, "project_list", "project_id", projectID)
		if err != nil {
			return err
		}
		ts := timestamp()
		res, err := tx.Exec(`
			INSERT INTO project_list (project_id, title, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, projectID, title, highest+1, ts, ts)
		if err != nil {
			return fmt.Errorf("insert list: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// UpdateList renames a list
func (db *DB) UpdateList(id int64, title string) error {
	defer db.trace("update_list", time.Now())

	res, err := db.Exec(`UPDATE project_list SET title = ?, updated_at = ? WHERE id = ?`, title, timestamp(), id)
	if err != nil {
		return fmt.Errorf("update list %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update list %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteList deletes a list and its cards, then closes the gap among the
// project's remaining lists
func (db *DB) DeleteList(id int64) error {
	defer db.trace("delete_list", time.Now())

	return db.Transaction(func(tx *sql.Tx) error {
		var projectID int64
		var pos int
		err := tx.QueryRow(`SELECT project_id, position FROM project_list WHERE id = ?`, id).Scan(&projectID, &pos)
		if err == sql.ErrNoRows {
			return fmt.Errorf("delete list %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete list %d: %w", id, err)
		}
		if _, err := tx.Exec(`DELETE FROM project_list WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete list %d: %w", id, err)
		}
		return decrementPositionsAfter(tx, "project_list", pos, "project_id", projectID)
	})
}
