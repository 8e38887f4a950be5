package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/daytrack/internal/backup"
	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/tracker"
)

type Context struct {
	Store    storage.Provider
	Tracker  *tracker.Tracker
	Location *time.Location

	// Out receives command output. Nil means stdout.
	Out io.Writer
	// In is read for confirmations. Nil means stdin.
	In io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Printf writes formatted output to the command's writer.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// LoadTracker opens the store and loads tracker state, which also runs the
// daily rollover.
func (c *Context) LoadTracker() (tracker.LoadResult, error) {
	if c.Store == nil || c.Tracker == nil {
		return tracker.LoadResult{}, errors.New("no store configured")
	}
	if err := c.Store.Load(); err != nil {
		return tracker.LoadResult{}, err
	}
	res, err := c.Tracker.Load()
	if err != nil {
		return res, fmt.Errorf("failed to load tasks: %w", err)
	}
	if res.RolledOver {
		logger.Info("Recurring tasks reset for the new day", "count", res.ResetCount)
	}
	return res, nil
}

// PerformAutomaticBackup creates a backup of file-based stores and only logs
// failures.
func (c *Context) PerformAutomaticBackup() {
	if !IsFileStore(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
