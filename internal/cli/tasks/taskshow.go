package tasks

import (
	"fmt"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/tracker"
	"github.com/julianstephens/daytrack/internal/utils"
)

type TaskShowCmd struct {
	ID   string `arg:"" help:"ID of the task to show."`
	JSON bool   `help:"Print the task as JSON."`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	task, ok := ctx.Tracker.Task(c.ID)
	if !ok {
		return fmt.Errorf("%w: %s", tracker.ErrTaskNotFound, c.ID)
	}
	if c.JSON {
		return cli.PrintJSON(ctx.Stdout(), task)
	}

	ctx.Println(cli.FormatTask(task, ctx.Tracker.Location()))
	if desc := utils.RenderMarkdown(task.Description, 80); desc != "" {
		ctx.Println()
		ctx.Println(desc)
	}
	return nil
}
