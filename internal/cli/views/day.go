package views

import (
	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/constants"
)

type DayCmd struct {
	Date string `arg:"" help:"Day to show (YYYY-MM-DD, today, tomorrow, yesterday)."`
	JSON bool   `help:"Print the tasks as JSON."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	day, err := cli.ParseDay(c.Date, ctx.Tracker.Today(), ctx.Tracker.Location())
	if err != nil {
		return err
	}

	tasks := ctx.Tracker.TasksForDay(day)
	if c.JSON {
		return cli.PrintJSON(ctx.Stdout(), tasks)
	}
	cli.PrintTasks(ctx.Stdout(), day.Format(constants.DisplayDateFormat), tasks, ctx.Tracker.Location(), "No one-time tasks for this day.")
	return nil
}
