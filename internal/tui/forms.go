package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/tracker"
)

// NewAddForm creates the add-task form. The recurrence question is only
// asked from the Daily tab.
func NewAddForm(fm *AddFormModel, askRecurring bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&fm.Title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("title cannot be empty")
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Description("Markdown is supported").
			Value(&fm.Description),
	}
	if askRecurring {
		fields = append(fields, huh.NewConfirm().
			Title("Repeat every day?").
			Affirmative("Daily").
			Negative("Today only").
			Value(&fm.Recurring))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

// NewDateForm asks for the day to show in the Specific Day tab.
func NewDateForm(fm *DateFormModel, tr *tracker.Tracker) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Go to date").
				Placeholder("YYYY-MM-DD, today, tomorrow, yesterday").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := cli.ParseDay(s, tr.Today(), tr.Location())
					return err
				}),
		),
	)
}
