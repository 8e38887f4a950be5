package system

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/tracker"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// ExportCmd writes tasks, history and the access marker as one document
type ExportCmd struct {
	Out    string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Format string `short:"f" help:"Output format (json or yaml). Defaults to the file extension, then json."`
}

func (c *ExportCmd) Validate() error {
	switch c.Format {
	case "", formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown export format %q, expected json or yaml", c.Format)
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}

	format := c.Format
	if format == "" {
		format = formatForPath(c.Out)
	}
	snap := ctx.Tracker.Export()
	data, err := encodeSnapshot(snap, format)
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err := ctx.Stdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("Exported %d tasks and %d history records to %s\n", len(snap.Tasks), len(snap.History), c.Out)
	return nil
}

// ImportCmd replaces the stored state with an export
type ImportCmd struct {
	File string `arg:"" help:"Export file to import (.json, .yaml or .yml)." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	snap, err := decodeSnapshot(data, formatForPath(c.File))
	if err != nil {
		return fmt.Errorf("import file is not a daytrack export: %w", err)
	}

	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if err := ctx.Tracker.Import(snap); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("Imported %d tasks and %d history records\n", len(snap.Tasks), len(snap.History))
	return nil
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	}
	return formatJSON
}

func encodeSnapshot(snap tracker.Snapshot, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if format == formatYAML {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte, format string) (tracker.Snapshot, error) {
	var snap tracker.Snapshot
	var err error
	if format == formatYAML {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	return snap, err
}
