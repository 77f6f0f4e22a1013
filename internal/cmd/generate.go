package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Generate writes accessor files for the requested enums.
type Generate struct {
	Target `embed:""`

	Stdout bool `help:"Write generated source to stdout instead of files"`

	out io.Writer `kong:"-"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger) error {
	logger.Debug("Starting code generation", "dir", c.Dir, "types", c.Types)

	results, err := c.render(logger)
	if err != nil {
		return err
	}

	if c.Stdout {
		w := c.out
		if w == nil {
			w = os.Stdout
		}
		for _, r := range results {
			if _, err := w.Write(r.Source); err != nil {
				return fmt.Errorf("write %s: %w", r.Type, err)
			}
		}
		return nil
	}

	for _, r := range results {
		if err := os.WriteFile(r.Path, r.Source, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", r.Path, err)
		}
		logger.Info("Wrote accessors", "type", r.Type, "file", r.Path)
	}
	return nil
}
