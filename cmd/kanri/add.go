package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/model"
	"github.com/dori/kanri/internal/ui/editors"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project> <card>",
		Short: "Quick add a card to the first list of a project",
		Long: strings.TrimSpace(`
Quick add a card to the first list of a project.

Card syntax:
  Important:  !important (or !i)
  Due date:   due:today due:tomorrow due:friday due:2026-01-15 due:2026-01-15T09:30
  Start date: start:<date>, same forms as due

Dates without a time are set to 23:59 UTC.`),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := parseQuickAdd(strings.Join(args[1:], " "), model.Now())
			if err != nil {
				return err
			}
			return addCard(cmd, opts, args[0], card)
		},
	}
}

func addCard(cmd *cobra.Command, opts *cliOptions, projectTitle string, card quickAddCard) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return err
	}
	_, profile, err := config.Init(paths.ConfigDir, opts.profile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// No lock needed for quick add - just insert
	database, err := db.Open(paths.DBPath(profile))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	project, err := database.FindProjectByTitle(projectTitle)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("no project named %q", projectTitle)
	}
	list, err := database.FirstList(project.ID)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("project %q has no lists", project.Title)
	}

	if _, err := database.SaveCard(db.CardInput{
		ListID:    list.ID,
		ProjectID: project.ID,
		Title:     card.Title,
		Important: card.Important,
		StartDate: card.StartDate,
		DueDate:   card.DueDate,
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created: %s (%s / %s)\n", card.Title, project.Title, list.Title)
	if card.StartDate != nil {
		fmt.Fprintf(out, "Start: %s\n", model.FormatUserDate(card.StartDate))
	}
	if card.DueDate != nil {
		fmt.Fprintf(out, "Due: %s\n", model.FormatUserDate(card.DueDate))
	}
	if card.Important {
		fmt.Fprintln(out, "Important")
	}
	return nil
}

type quickAddCard struct {
	Title     string
	Important bool
	StartDate *time.Time
	DueDate   *time.Time
}

var errEmptyTitle = errors.New("card title is required")

// parseQuickAdd splits markers out of the card text. Words that look like
// markers but do not parse stay in the title.
func parseQuickAdd(text string, now time.Time) (quickAddCard, error) {
	var card quickAddCard
	var titleParts []string

	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		switch {
		case lower == "!important" || lower == "!i":
			card.Important = true

		case strings.HasPrefix(lower, "due:"):
			if parsed := parseNaturalDate(word[len("due:"):], now); parsed != nil {
				card.DueDate = parsed
			} else {
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(lower, "start:"):
			if parsed := parseNaturalDate(word[len("start:"):], now); parsed != nil {
				card.StartDate = parsed
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	card.Title = strings.Join(titleParts, " ")
	if card.Title == "" {
		return quickAddCard{}, errEmptyTitle
	}
	if n := utf8.RuneCountInString(card.Title); n > editors.TitleMax {
		return quickAddCard{}, fmt.Errorf("card title is %d characters, the limit is %d", n, editors.TitleMax)
	}
	return card, nil
}

// parseNaturalDate resolves a date word relative to now. Dates without a
// time land at the end of the day in UTC.
func parseNaturalDate(s string, now time.Time) *time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, time.UTC)

	switch strings.ToLower(s) {
	case "today":
		return &today
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t
	case "monday", "mon":
		return nextWeekday(today, time.Monday)
	case "tuesday", "tue":
		return nextWeekday(today, time.Tuesday)
	case "wednesday", "wed":
		return nextWeekday(today, time.Wednesday)
	case "thursday", "thu":
		return nextWeekday(today, time.Thursday)
	case "friday", "fri":
		return nextWeekday(today, time.Friday)
	case "saturday", "sat":
		return nextWeekday(today, time.Saturday)
	case "sunday", "sun":
		return nextWeekday(today, time.Sunday)
	case "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t
	}

	// 2026-01-15T09:30 is the one-word form of the editor layout
	if t, err := model.ParseUserDate(strings.Replace(s, "T", " ", 1)); err == nil {
		return &t
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		t = t.Add(23*time.Hour + 59*time.Minute)
		return &t
	}

	return nil
}

func nextWeekday(today time.Time, day time.Weekday) *time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	t := today.AddDate(0, 0, daysUntil)
	return &t
}
