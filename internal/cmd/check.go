package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// Check regenerates in memory and compares with the files on disk.
type Check struct {
	Target `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	results, err := c.render(logger)
	if err != nil {
		return err
	}

	var stale []string
	for _, r := range results {
		existing, err := os.ReadFile(r.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, r.Path+" (missing)")
			continue
		case err != nil:
			return fmt.Errorf("read %s: %w", r.Path, err)
		}
		if !bytes.Equal(existing, r.Source) {
			stale = append(stale, r.Path)
			continue
		}
		logger.Debug("Accessors up to date", "type", r.Type, "file", r.Path)
	}

	if len(stale) > 0 {
		return fmt.Errorf("generated files out of date, run httperrgen: %s", strings.Join(stale, ", "))
	}
	logger.Info("Generated files up to date", "count", len(results))
	return nil
}
