package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/daytrack/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && cli.IsFileStore(ctx.Store) {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			// Close first so SQLite releases the file
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized daytrack storage at: %s\n", ctx.Store.GetConfigPath())

	// Write the access marker so the first rollover has something to compare
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}
	return nil
}
