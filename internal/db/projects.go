package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dori/kanri/internal/model"
)

// ProjectInput is what the project editor saves
type ProjectInput struct {
	ID          *int64
	Title       string
	Description string
	Labels      []LabelInput
	// RemovedLabels are existing label ids dropped in the editor
	RemovedLabels []int64
}

// LabelInput is one label row of the project editor. A nil ID inserts.
type LabelInput struct {
	ID    *int64
	Title string
	Color string
}

// GetProjects returns all projects in position order with card counts
func (db *DB) GetProjects(now time.Time, dueSoonDays int) ([]model.Project, error) {
	defer db.trace("get_projects", time.Now())

	nowStr := model.Timestamp(now)
	soonStr := model.Timestamp(now.AddDate(0, 0, dueSoonDays))
	rows, err := db.Query(`
		SELECT p.id, p.title, p.description, p.position, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM project_list WHERE project_id = p.id) as list_count,
		       (SELECT COUNT(*) FROM project_card WHERE project_id = p.id) as card_count,
		       (SELECT COUNT(*) FROM project_card WHERE project_id = p.id AND completed = 1) as completed_count,
		       (SELECT COUNT(*) FROM project_card WHERE project_id = p.id AND completed = 0
		            AND due_date IS NOT NULL AND due_date < ?) as overdue_count,
		       (SELECT COUNT(*) FROM project_card WHERE project_id = p.id AND completed = 0
		            AND due_date IS NOT NULL AND due_date >= ? AND due_date <= ?) as due_soon_count,
		       (SELECT COUNT(*) FROM project_card WHERE project_id = p.id AND completed = 0
		            AND important = 1) as important_count
		FROM project p
		ORDER BY p.position
	`, nowStr, nowStr, soonStr)
	if err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var desc sql.NullString
		var created, updated string
		err := rows.Scan(
			&p.ID, &p.Title, &desc, &p.Position, &created, &updated,
			&p.ListCount, &p.CardCount, &p.CompletedCount,
			&p.OverdueCount, &p.DueSoonCount, &p.ImportantCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Description = desc.String
		if p.CreatedAt, err = model.ParseTimestamp(created); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = model.ParseTimestamp(updated); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// GetProject returns a single project by ID, or nil when it does not exist
func (db *DB) GetProject(id int64) (*model.Project, error) {
	defer db.trace("get_project", time.Now())
	return getProject(db.DB, id)
}

func getProject(q querier, id int64) (*model.Project, error) {
	var p model.Project
	var desc sql.NullString
	var created, updated string

	err := q.QueryRow(`
		SELECT id, title, description, position, created_at, updated_at
		FROM project WHERE id = ?
	`, id).Scan(&p.ID, &p.Title, &desc, &p.Position, &created, &updated)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}

	p.Description = desc.String
	if p.CreatedAt, err = model.ParseTimestamp(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = model.ParseTimestamp(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProjectByTitle returns the first project whose title matches,
// ignoring case, or nil
func (db *DB) FindProjectByTitle(title string) (*model.Project, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM project WHERE title = ? COLLATE NOCASE ORDER BY position LIMIT 1`,
		title).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project %q: %w", title, err)
	}
	return db.GetProject(id)
}

// SaveProject inserts or updates a project and its labels in one
// transaction and returns the project id. New projects go after the last
// one. New labels take their index in the input as position; existing
// labels are updated in place.
func (db *DB) SaveProject(in ProjectInput) (int64, error) {
	defer db.trace("save_project", time.Now())

	var projectID int64
	err := db.Transaction(func(tx *sql.Tx) error {
		ts := timestamp()

		if in.ID == nil {
			highest, err := highestPosition(tx, "project", "", nil)
			if err != nil {
				return err
			}
			res, err := tx.Exec(`
				INSERT INTO project (title, description, position, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)
			`, in.Title, nullString(in.Description), highest+1, ts, ts)
			if err != nil {
				return fmt.Errorf("insert project: %w", err)
			}
			if projectID, err = res.LastInsertId(); err != nil {
				return err
			}
		} else {
			projectID = *in.ID
			res, err := tx.Exec(`
				UPDATE project SET title = ?, description = ?, updated_at = ? WHERE id = ?
			`, in.Title, nullString(in.Description), ts, projectID)
			if err != nil {
				return fmt.Errorf("update project %d: %w", projectID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update project %d: %w", projectID, ErrNotFound)
			}
		}

		for _, id := range in.RemovedLabels {
			if err := deleteLabel(tx, id); err != nil {
				return err
			}
		}

		for i, l := range in.Labels {
			if l.ID == nil {
				_, err := tx.Exec(`
					INSERT INTO project_label (project_id, title, color, position, created_at, updated_at)
					VALUES (?, ?, ?, ?, ?, ?)
				`, projectID, l.Title, l.Color, i, ts, ts)
				if err != nil {
					return fmt.Errorf("insert label %q: %w", l.Title, err)
				}
				continue
			}
			_, err := tx.Exec(`
				UPDATE project_label SET title = ?, color = ?, updated_at = ?
				WHERE id = ? AND project_id = ?
			`, l.Title, l.Color, ts, *l.ID, projectID)
			if err != nil {
				return fmt.Errorf("update label %d: %w", *l.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return projectID, nil
}

// DeleteProject deletes a project with everything in it and renumbers the
// remaining projects
func (db *DB) DeleteProject(id int64) error {
	defer db.trace("delete_project", time.Now())

	return db.Transaction(func(tx *sql.Tx) error {
		pos, err := getPosition(tx, "project", id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM project WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete project %d: %w", id, err)
		}
		return decrementPositionsAfter(tx, "project", pos, "", nil)
	})
}
