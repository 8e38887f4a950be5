package tasks

import (
	"fmt"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/errors"
	"github.com/julianstephens/daytrack/internal/tracker"
)

type TaskToggleCmd struct {
	ID string `arg:"" help:"ID of the task to toggle."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	task, ok := ctx.Tracker.ToggleCompletion(c.ID)
	if !ok {
		return errors.Notice(fmt.Errorf("%w: %s", tracker.ErrTaskNotFound, c.ID))
	}
	if err := ctx.Tracker.Save(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	if task.IsCompleted {
		ctx.Printf("Completed %q at %s\n", task.Title, task.CompletedAt.In(ctx.Tracker.Location()).Format(constants.ClockFormat))
	} else {
		ctx.Printf("Marked %q as not done\n", task.Title)
	}
	return nil
}
