package db

import (
	"fmt"
	"time"

	"github.com/dori/kanri/internal/model"
)

// GetBoard loads a project with its labels, lists, cards, card labels and
// subtasks. Every row set is drained before the next query runs.
func (db *DB) GetBoard(projectID int64) (*model.Board, error) {
	defer db.trace("get_board", time.Now())

	p, err := getProject(db.DB, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("get board %d: %w", projectID, ErrNotFound)
	}

	b := &model.Board{Project: *p}
	if b.Labels, err = getLabels(db.DB, projectID); err != nil {
		return nil, err
	}
	if b.Lists, err = getLists(db, projectID); err != nil {
		return nil, err
	}

	cards, err := getProjectCards(db, projectID)
	if err != nil {
		return nil, err
	}
	cardLabels, err := getCardLabels(db.DB, projectID)
	if err != nil {
		return nil, err
	}
	subtasks, err := getSubtasks(db.DB, "project_id", projectID)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(b.Lists))
	for i, l := range b.Lists {
		index[l.ID] = i
	}
	for _, c := range cards {
		c.LabelIDs = cardLabels[c.ID]
		c.Subtasks = subtasks[c.ID]
		if i, ok := index[c.ListID]; ok {
			b.Lists[i].Cards = append(b.Lists[i].Cards, c)
		}
	}
	return b, nil
}

func getLists(db *DB, projectID int64) ([]model.List, error) {
	rows, err := db.Query(`
		SELECT id, project_id, title, position
		FROM project_list
		WHERE project_id = ?
		ORDER BY position
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Title, &l.Position); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func getProjectCards(db *DB, projectID int64) ([]model.Card, error) {
	rows, err := db.Query(`SELECT `+cardColumns+`
		FROM project_card
		WHERE project_id = ?
		ORDER BY list_id, position
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get cards: %w", err)
	}
	defer rows.Close()

	var cards []model.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}
