package main

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// Thursday
var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestParseNaturalDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"today", ptr(date(2026, 10, 15, 23, 59))},
		{"tomorrow", ptr(date(2026, 10, 16, 23, 59))},
		{"fri", ptr(date(2026, 10, 16, 23, 59))},
		{"thursday", ptr(date(2026, 10, 22, 23, 59))},
		{"nextweek", ptr(date(2026, 10, 22, 23, 59))},
		{"2026-12-01", ptr(date(2026, 12, 1, 23, 59))},
		{"2026-12-01T09:30", ptr(date(2026, 12, 1, 9, 30))},
		{"2026-13-01", nil},
		{"someday", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseNaturalDate(tt.in, testNow)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("parseNaturalDate(%q) = %v, want nil", tt.in, got)
			case tt.want != nil && got == nil:
				t.Errorf("parseNaturalDate(%q) = nil, want %v", tt.in, tt.want)
			case tt.want != nil && !got.Equal(*tt.want):
				t.Errorf("parseNaturalDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestParseQuickAdd(t *testing.T) {
	card, err := parseQuickAdd("Fix the sink !important due:tomorrow start:today", testNow)
	if err != nil {
		t.Fatalf("parseQuickAdd: %v", err)
	}
	if card.Title != "Fix the sink" {
		t.Errorf("expected title %q, got %q", "Fix the sink", card.Title)
	}
	if !card.Important {
		t.Error("expected important")
	}
	if card.DueDate == nil || !card.DueDate.Equal(date(2026, 10, 16, 23, 59)) {
		t.Errorf("unexpected due date %v", card.DueDate)
	}
	if card.StartDate == nil || !card.StartDate.Equal(date(2026, 10, 15, 23, 59)) {
		t.Errorf("unexpected start date %v", card.StartDate)
	}
}

func TestParseQuickAddKeepsUnknownMarkers(t *testing.T) {
	card, err := parseQuickAdd("Plan due:someday !urgent", testNow)
	if err != nil {
		t.Fatalf("parseQuickAdd: %v", err)
	}
	if card.Title != "Plan due:someday !urgent" {
		t.Errorf("expected markers kept in title, got %q", card.Title)
	}
	if card.DueDate != nil || card.Important {
		t.Errorf("expected no markers applied, got %+v", card)
	}
}

func TestParseQuickAddValidatesTitle(t *testing.T) {
	if _, err := parseQuickAdd("!important due:today", testNow); !errors.Is(err, errEmptyTitle) {
		t.Errorf("expected errEmptyTitle, got %v", err)
	}
	if _, err := parseQuickAdd(strings.Repeat("x", 51), testNow); err == nil {
		t.Error("expected error for a title over the limit")
	}
}
