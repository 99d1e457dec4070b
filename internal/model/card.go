package model

import (
	"time"
)

// Status is the derived display state of a card. It is never stored.
type Status int

const (
	StatusDefault Status = iota
	StatusImportant
	StatusInProgress
	StatusDueSoon
	StatusOverdue
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusImportant:
		return "important"
	case StatusInProgress:
		return "in progress"
	case StatusDueSoon:
		return "due soon"
	case StatusOverdue:
		return "overdue"
	case StatusCompleted:
		return "completed"
	default:
		return "default"
	}
}

// Card is a single item within a list
type Card struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id"`
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Important   bool       `json:"important"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Loaded relationships (not stored in project_card)
	LabelIDs []int64   `json:"label_ids,omitempty"`
	Subtasks []Subtask `json:"subtasks,omitempty"`
}

// Subtask is a checklist entry on a card
type Subtask struct {
	ID        int64  `json:"id"`
	CardID    int64  `json:"card_id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// IsOverdue returns true if the card's due date has passed
func (c *Card) IsOverdue(now time.Time) bool {
	return c.DueDate != nil && now.After(*c.DueDate)
}

// IsDueSoon returns true if the card is due within the given number of days
// and is not already overdue
func (c *Card) IsDueSoon(now time.Time, days int) bool {
	if c.DueDate == nil || c.IsOverdue(now) {
		return false
	}
	return !now.AddDate(0, 0, days).Before(*c.DueDate)
}

// IsInProgress returns true if the card has started and is not overdue
func (c *Card) IsInProgress(now time.Time) bool {
	return c.StartDate != nil && now.After(*c.StartDate) && !c.IsOverdue(now)
}

// Status derives the card's display state. Completed dominates, then
// overdue, due soon, in progress and important.
func (c *Card) Status(now time.Time, dueSoonDays int) Status {
	switch {
	case c.Completed:
		return StatusCompleted
	case c.IsOverdue(now):
		return StatusOverdue
	case c.IsDueSoon(now, dueSoonDays):
		return StatusDueSoon
	case c.IsInProgress(now):
		return StatusInProgress
	case c.Important:
		return StatusImportant
	default:
		return StatusDefault
	}
}

// HasLabel reports whether the card carries the label
func (c *Card) HasLabel(id int64) bool {
	for _, l := range c.LabelIDs {
		if l == id {
			return true
		}
	}
	return false
}

// SubtaskProgress returns completed and total subtask counts
func (c *Card) SubtaskProgress() (done, total int) {
	for _, s := range c.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(c.Subtasks)
}

// DueCard is a card listed outside its board, with where it lives
type DueCard struct {
	Card
	ProjectTitle string `json:"project_title"`
	ListTitle    string `json:"list_title"`
}
