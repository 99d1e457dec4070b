package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownTable is returned when a ledger operation names a table or
// partition column outside the allowlist
var ErrUnknownTable = errors.New("unknown positioned table")

// positioned lists every table that carries a dense position column, with
// the columns it may be partitioned by.
var positioned = map[string][]string{
	"project":       nil,
	"project_label": {"project_id"},
	"project_list":  {"project_id"},
	"project_card":  {"list_id", "project_id"},
}

func checkTable(table string) error {
	if _, ok := positioned[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}

func checkPartition(table, col string) error {
	cols, ok := positioned[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	for _, c := range cols {
		if c == col {
			return nil
		}
	}
	return fmt.Errorf("%w: %q has no partition %q", ErrUnknownTable, table, col)
}

// LastRowID returns the highest id in the table
func (db *DB) LastRowID(table string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	var id sql.NullInt64
	if err := db.QueryRow(fmt.Sprintf("SELECT MAX(id) FROM %s", table)).Scan(&id); err != nil {
		return 0, fmt.Errorf("last row id of %s: %w", table, err)
	}
	if !id.Valid {
		return 0, fmt.Errorf("last row id of %s: %w", table, ErrNotFound)
	}
	return id.Int64, nil
}

// GetPosition returns the position of a row
func (db *DB) GetPosition(table string, id int64) (int, error) {
	return getPosition(db.DB, table, id)
}

func getPosition(q querier, table string, id int64) (int, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	var pos int
	err := q.QueryRow(fmt.Sprintf("SELECT position FROM %s WHERE id = ?", table), id).Scan(&pos)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("position of %s %d: %w", table, id, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("position of %s %d: %w", table, id, err)
	}
	return pos, nil
}

// GetHighestPosition returns the highest position in the table, or -1 when
// the table is empty
func (db *DB) GetHighestPosition(table string) (int, error) {
	return highestPosition(db.DB, table, "", nil)
}

// GetHighestPositionWhere returns the highest position among rows where col
// equals val, or -1 when there are none
func (db *DB) GetHighestPositionWhere(table, col string, val any) (int, error) {
	return highestPosition(db.DB, table, col, val)
}

func highestPosition(q querier, table, col string, val any) (int, error) {
	query, args, err := partitioned("SELECT MAX(position) FROM %s", table, col, val)
	if err != nil {
		return 0, err
	}
	var pos sql.NullInt64
	if err := q.QueryRow(query, args...).Scan(&pos); err != nil {
		return 0, fmt.Errorf("highest position of %s: %w", table, err)
	}
	if !pos.Valid {
		return -1, nil
	}
	return int(pos.Int64), nil
}

// IncrementPosition moves a row one step later by swapping it with the row
// directly after it
func (db *DB) IncrementPosition(table string, id, swapID int64) error {
	defer db.trace("increment_position", time.Now())
	return db.swapPositions(table, id, swapID, 1)
}

// DecrementPosition moves a row one step earlier by swapping it with the
// row directly before it
func (db *DB) DecrementPosition(table string, id, swapID int64) error {
	defer db.trace("decrement_position", time.Now())
	return db.swapPositions(table, id, swapID, -1)
}

func (db *DB) swapPositions(table string, id, swapID int64, step int) error {
	return db.Transaction(func(tx *sql.Tx) error {
		pos, err := getPosition(tx, table, id)
		if err != nil {
			return err
		}
		swapPos, err := getPosition(tx, table, swapID)
		if err != nil {
			return err
		}
		if swapPos != pos+step {
			return fmt.Errorf("swap %s %d (position %d) with %d (position %d): not adjacent",
				table, id, pos, swapID, swapPos)
		}
		ts := timestamp()
		if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET position = ?, updated_at = ? WHERE id = ?", table),
			swapPos, ts, id); err != nil {
			return fmt.Errorf("swap %s positions: %w", table, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET position = ?, updated_at = ? WHERE id = ?", table),
			pos, ts, swapID); err != nil {
			return fmt.Errorf("swap %s positions: %w", table, err)
		}
		return nil
	})
}

// DecrementPositionsAfter closes the gap left at position after
func (db *DB) DecrementPositionsAfter(table string, after int) error {
	defer db.trace("decrement_positions_after", time.Now())
	return decrementPositionsAfter(db.DB, table, after, "", nil)
}

// DecrementPositionsAfterWhere closes the gap left at position after, only
// among rows where col equals val
func (db *DB) DecrementPositionsAfterWhere(table string, after int, col string, val any) error {
	defer db.trace("decrement_positions_after_where", time.Now())
	return decrementPositionsAfter(db.DB, table, after, col, val)
}

func decrementPositionsAfter(q querier, table string, after int, col string, val any) error {
	query, args, err := partitioned("UPDATE %s SET position = position - 1 WHERE position > ?", table, col, val)
	if err != nil {
		return err
	}
	args = append([]any{after}, args...)
	if _, err := q.Exec(query, args...); err != nil {
		return fmt.Errorf("renumber %s after %d: %w", table, after, err)
	}
	return nil
}

// partitioned formats a statement for table and appends the partition
// filter when col is set
func partitioned(format, table, col string, val any) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf(format, table)
	if col == "" {
		return query, nil, nil
	}
	if err := checkPartition(table, col); err != nil {
		return "", nil, err
	}
	if strings.Contains(format, "WHERE") {
		query += fmt.Sprintf(" AND %s = ?", col)
	} else {
		query += fmt.Sprintf(" WHERE %s = ?", col)
	}
	return query, []any{val}, nil
}

