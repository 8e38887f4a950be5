package views

import (
	"fmt"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/constants"
)

type TodayCmd struct {
	JSON bool `help:"Print the daily view as JSON."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	tasks := ctx.Tracker.DailyTasks()
	if c.JSON {
		return cli.PrintJSON(ctx.Stdout(), tasks)
	}

	today := ctx.Tracker.Today()
	stats := ctx.Tracker.Stats(today)
	title := fmt.Sprintf("Today, %s (%d/%d done)", today.Format(constants.DisplayDateFormat), stats.Completed, stats.Total)
	cli.PrintTasks(ctx.Stdout(), title, tasks, ctx.Tracker.Location(), "No tasks for today. Add one with 'daytrack task add'.")
	return nil
}
