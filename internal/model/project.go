package model

import (
	"time"
)

// Project represents a board of lists and cards
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Computed fields (not stored)
	ListCount      int `json:"list_count,omitempty"`
	CardCount      int `json:"card_count,omitempty"`
	CompletedCount int `json:"completed_count,omitempty"`
	OverdueCount   int `json:"overdue_count,omitempty"`
	DueSoonCount   int `json:"due_soon_count,omitempty"`
	ImportantCount int `json:"important_count,omitempty"`
}

// Label is a project-scoped tag that cards can carry
type Label struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	Color     string `json:"color"`
	Position  int    `json:"position"`
}

// List is an ordered column of cards inside a project
type List struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`

	// Loaded relationships
	Cards []Card `json:"cards,omitempty"`
}

// Board is a fully loaded project tree
type Board struct {
	Project Project `json:"project"`
	Labels  []Label `json:"labels"`
	Lists   []List  `json:"lists"`
}

// Label returns the project label with the given id
func (b *Board) Label(id int64) (Label, bool) {
	for _, l := range b.Labels {
		if l.ID == id {
			return l, true
		}
	}
	return Label{}, false
}
