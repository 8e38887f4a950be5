package views

import (
	"github.com/julianstephens/daytrack/internal/cli"
)

type HistoryCmd struct {
	JSON bool `help:"Print grouped history as JSON."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	groups := ctx.Tracker.GroupedHistory()
	if c.JSON {
		return cli.PrintJSON(ctx.Stdout(), groups)
	}
	cli.PrintHistory(ctx.Stdout(), groups, ctx.Tracker.Location())
	return nil
}
