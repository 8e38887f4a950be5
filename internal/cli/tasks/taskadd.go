package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/tracker"
	"github.com/julianstephens/daytrack/internal/utils"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"d" help:"Optional description (markdown)."`
	Daily       bool   `help:"Repeat every day; completion resets each morning." xor:"when"`
	Date        string `help:"Day for a one-time task (YYYY-MM-DD, today, tomorrow). Defaults to today." xor:"when"`
}

func (c *TaskAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	in := tracker.NewTask{
		Title:       c.Title,
		Description: c.Description,
		IsRecurring: c.Daily,
	}
	if c.Date != "" {
		day, err := cli.ParseDay(c.Date, ctx.Tracker.Today(), ctx.Tracker.Location())
		if err != nil {
			return err
		}
		in.Date = &day
	}

	task, ok := ctx.Tracker.AddTask(in)
	if !ok {
		return fmt.Errorf("title cannot be empty")
	}
	if err := ctx.Tracker.SaveTasks(); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	when := "daily"
	if !task.IsRecurring {
		when = "on " + utils.AnchorKey(task.Date)
	}
	ctx.Printf("Added task %q (%s)\n", task.Title, when)
	ctx.Printf("ID: %s\n", task.ID)
	return nil
}
