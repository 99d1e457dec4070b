package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dori/kanri/internal/model"
)

// CardInput is what the card editor saves. A nil ID inserts.
type CardInput struct {
	ID          *int64
	ListID      int64
	ProjectID   int64
	Title       string
	Description string
	Important   bool
	StartDate   *time.Time
	DueDate     *time.Time
	LabelIDs    []int64
}

const cardColumns = `id, list_id, project_id, title, description, important,
		       start_date, due_date, completed, position, created_at, updated_at`

// GetCard returns a single card with its labels and subtasks, or nil
func (db *DB) GetCard(id int64) (*model.Card, error) {
	defer db.trace("get_card", time.Now())

	c, err := scanCard(db.QueryRow(`SELECT `+cardColumns+` FROM project_card WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get card %d: %w", id, err)
	}

	labels, err := getCardLabels(db.DB, c.ProjectID)
	if err != nil {
		return nil, err
	}
	c.LabelIDs = labels[c.ID]

	subtasks, err := getSubtasks(db.DB, "card_id", c.ID)
	if err != nil {
		return nil, err
	}
	c.Subtasks = subtasks[c.ID]
	return c, nil
}

// SaveCard inserts or updates a card and replaces its labels. New cards go
// to the end of their list.
func (db *DB) SaveCard(in CardInput) (int64, error) {
	defer db.trace("save_card", time.Now())

	var cardID int64
	err := db.Transaction(func(tx *sql.Tx) error {
		ts := timestamp()
		if in.ID == nil {
			highest, err := highestPosition(tx, "project_card", "list_id", in.ListID)
			if err != nil {
				return err
			}
			res, err := tx.Exec(`
				INSERT INTO project_card (project_id, list_id, title, description, important,
				                          start_date, due_date, completed, position, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
			`, in.ProjectID, in.ListID, in.Title, nullString(in.Description), boolToInt(in.Important),
				model.NullTimestamp(in.StartDate), model.NullTimestamp(in.DueDate), highest+1, ts, ts)
			if err != nil {
				return fmt.Errorf("insert card: %w", err)
			}
			if cardID, err = res.LastInsertId(); err != nil {
				return err
			}
		} else {
			cardID = *in.ID
			res, err := tx.Exec(`
				UPDATE project_card
				SET title = ?, description = ?, important = ?, start_date = ?, due_date = ?, updated_at = ?
				WHERE id = ?
			`, in.Title, nullString(in.Description), boolToInt(in.Important),
				model.NullTimestamp(in.StartDate), model.NullTimestamp(in.DueDate), ts, cardID)
			if err != nil {
				return fmt.Errorf("update card %d: %w", cardID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update card %d: %w", cardID, ErrNotFound)
			}
		}
		return setCardLabels(tx, cardID, in.ProjectID, in.LabelIDs)
	})
	if err != nil {
		return 0, err
	}
	return cardID, nil
}

// SetCardCompleted marks a card completed or not
func (db *DB) SetCardCompleted(id int64, completed bool) error {
	defer db.trace("set_card_completed", time.Now())
	return db.setCardFlag(id, "completed", completed)
}

// SetCardImportant marks a card important or not
func (db *DB) SetCardImportant(id int64, important bool) error {
	defer db.trace("set_card_important", time.Now())
	return db.setCardFlag(id, "important", important)
}

func (db *DB) setCardFlag(id int64, col string, v bool) error {
	res, err := db.Exec(fmt.Sprintf(`UPDATE project_card SET %s = ?, updated_at = ? WHERE id = ?`, col),
		boolToInt(v), timestamp(), id)
	if err != nil {
		return fmt.Errorf("set card %d %s: %w", id, col, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set card %d %s: %w", id, col, ErrNotFound)
	}
	return nil
}

// MoveCardToList moves a card to the end of another list. The card row is
// updated first, then the source list is renumbered. Returns the card's new
// position.
func (db *DB) MoveCardToList(id, destListID int64) (int, error) {
	defer db.trace("move_card_to_list", time.Now())

	var newPos int
	err := db.Transaction(func(tx *sql.Tx) error {
		var srcListID int64
		var pos int
		err := tx.QueryRow(`SELECT list_id, position FROM project_card WHERE id = ?`, id).Scan(&srcListID, &pos)
		if err == sql.ErrNoRows {
			return fmt.Errorf("move card %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("move card %d: %w", id, err)
		}
		if srcListID == destListID {
			newPos = pos
			return nil
		}

		highest, err := highestPosition(tx, "project_card", "list_id", destListID)
		if err != nil {
			return err
		}
		newPos = highest + 1
		if _, err := tx.Exec(`UPDATE project_card SET list_id = ?, position = ?, updated_at = ? WHERE id = ?`,
			destListID, newPos, timestamp(), id); err != nil {
			return fmt.Errorf("move card %d to list %d: %w", id, destListID, err)
		}
		return decrementPositionsAfter(tx, "project_card", pos, "list_id", srcListID)
	})
	return newPos, err
}

// DeleteCard deletes a card and closes the gap in its list
func (db *DB) DeleteCard(id int64) error {
	defer db.trace("delete_card", time.Now())

	return db.Transaction(func(tx *sql.Tx) error {
		var listID int64
		var pos int
		err := tx.QueryRow(`SELECT list_id, position FROM project_card WHERE id = ?`, id).Scan(&listID, &pos)
		if err == sql.ErrNoRows {
			return fmt.Errorf("delete card %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete card %d: %w", id, err)
		}
		if _, err := tx.Exec(`DELETE FROM project_card WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete card %d: %w", id, err)
		}
		return decrementPositionsAfter(tx, "project_card", pos, "list_id", listID)
	})
}

// GetAttentionCards returns incomplete cards across all projects that are
// overdue or due before until, soonest first
func (db *DB) GetAttentionCards(until time.Time) ([]model.DueCard, error) {
	defer db.trace("get_attention_cards", time.Now())

	rows, err := db.Query(`
		SELECT c.id, c.list_id, c.project_id, c.title, c.description, c.important,
		       c.start_date, c.due_date, c.completed, c.position, c.created_at, c.updated_at,
		       p.title, l.title
		FROM project_card c
		JOIN project p ON p.id = c.project_id
		JOIN project_list l ON l.id = c.list_id
		WHERE c.completed = 0 AND c.due_date IS NOT NULL AND c.due_date <= ?
		ORDER BY c.due_date
	`, model.Timestamp(until))
	if err != nil {
		return nil, fmt.Errorf("get attention cards: %w", err)
	}
	defer rows.Close()

	var out []model.DueCard
	for rows.Next() {
		var dc model.DueCard
		c, err := scanCard(rows, &dc.ProjectTitle, &dc.ListTitle)
		if err != nil {
			return nil, fmt.Errorf("scan attention card: %w", err)
		}
		dc.Card = *c
		out = append(out, dc)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanCard scans cardColumns followed by any extra destinations
func scanCard(s scanner, extra ...any) (*model.Card, error) {
	var c model.Card
	var description, startDate, dueDate sql.NullString
	var important, completed int
	var created, updated string

	dest := []any{
		&c.ID, &c.ListID, &c.ProjectID, &c.Title, &description, &important,
		&startDate, &dueDate, &completed, &c.Position, &created, &updated,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	c.Description = description.String
	c.Important = important == 1
	c.Completed = completed == 1

	var err error
	if c.StartDate, err = model.ParseNullTimestamp(startDate); err != nil {
		return nil, err
	}
	if c.DueDate, err = model.ParseNullTimestamp(dueDate); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = model.ParseTimestamp(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = model.ParseTimestamp(updated); err != nil {
		return nil, err
	}
	return &c, nil
}
