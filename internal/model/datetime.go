package model

import (
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"
)

// UserDateLayout is the layout used for dates typed into editors
const UserDateLayout = "2006-01-02 15:04"

// Now returns the current time in UTC, truncated to seconds
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Timestamp formats a time the way it is stored
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimestamp parses a stored RFC3339 timestamp
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ParseNullTimestamp parses an optional stored timestamp
func ParseNullTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NullTimestamp converts an optional time to a nullable column value
func NullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: Timestamp(*t), Valid: true}
}

// ParseUserDate parses a "YYYY-MM-DD HH:MM" date typed by the user. The
// value is interpreted as UTC. Anything other than exactly 16 characters is
// rejected.
func ParseUserDate(s string) (time.Time, error) {
	if utf8.RuneCountInString(s) != len(UserDateLayout) {
		return time.Time{}, fmt.Errorf("date must be in the format YYYY-MM-DD HH:MM")
	}
	t, err := time.ParseInLocation(UserDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// FormatUserDate renders a time in the editor layout
func FormatUserDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(UserDateLayout)
}
