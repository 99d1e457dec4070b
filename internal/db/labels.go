package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dori/kanri/internal/model"
)

// GetLabels returns a project's labels in position order
func (db *DB) GetLabels(projectID int64) ([]model.Label, error) {
	defer db.trace("get_labels", time.Now())
	return getLabels(db.DB, projectID)
}

func getLabels(q querier, projectID int64) ([]model.Label, error) {
	rows, err := q.Query(`
		SELECT id, project_id, title, color, position
		FROM project_label
		WHERE project_id = ?
		ORDER BY position
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get labels: %w", err)
	}
	defer rows.Close()

	var labels []model.Label
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Title, &l.Color, &l.Position); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, l)
	}

	return labels, rows.Err()
}

// deleteLabel removes a label, its card associations and closes the gap in
// the project's label positions
func deleteLabel(tx *sql.Tx, id int64) error {
	var projectID int64
	var pos int
	err := tx.QueryRow(`SELECT project_id, position FROM project_label WHERE id = ?`, id).Scan(&projectID, &pos)
	if err == sql.ErrNoRows {
		return fmt.Errorf("delete label %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete label %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM project_label WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete label %d: %w", id, err)
	}
	return decrementPositionsAfter(tx, "project_label", pos, "project_id", projectID)
}

// setCardLabels replaces all labels on a card
func setCardLabels(tx *sql.Tx, cardID, projectID int64, labelIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM card_label WHERE card_id = ?`, cardID); err != nil {
		return fmt.Errorf("clear card %d labels: %w", cardID, err)
	}
	for _, labelID := range labelIDs {
		_, err := tx.Exec(`INSERT INTO card_label (card_id, label_id, project_id) VALUES (?, ?, ?)`,
			cardID, labelID, projectID)
		if err != nil {
			return fmt.Errorf("add label %d to card %d: %w", labelID, cardID, err)
		}
	}
	return nil
}

// getCardLabels returns the label ids for every card in a project, keyed by
// card id
func getCardLabels(q querier, projectID int64) (map[int64][]int64, error) {
	rows, err := q.Query(`
		SELECT cl.card_id, cl.label_id
		FROM card_label cl
		JOIN project_label pl ON pl.id = cl.label_id
		WHERE cl.project_id = ?
		ORDER BY pl.position
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get card labels: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var cardID, labelID int64
		if err := rows.Scan(&cardID, &labelID); err != nil {
			return nil, fmt.Errorf("scan card label: %w", err)
		}
		out[cardID] = append(out[cardID], labelID)
	}
	return out, rows.Err()
}
