package cmd

import (
	"errors"
	"log/slog"

	"github.com/Alia5/httperrgen/internal/codegen/generator"
	"github.com/Alia5/httperrgen/internal/codegen/manifest"
)

// Target holds the options shared by generate and check.
type Target struct {
	Types       []string `name:"type" short:"t" help:"Enum type names, comma separated" required:"" env:"HTTPERRGEN_TYPE"`
	Dir         string   `help:"Package directory to scan" default:"." type:"path" env:"HTTPERRGEN_DIR"`
	Output      string   `short:"o" help:"Output file (default: <dir>/<type>_httperr.go); requires a single type" env:"HTTPERRGEN_OUTPUT"`
	Manifest    string   `help:"Detail manifest (YAML, JSON or TOML) merged with //httperr:detail comments" type:"path" env:"HTTPERRGEN_MANIFEST"`
	ErrorMethod bool     `help:"Also generate Error() string so the enum implements error" env:"HTTPERRGEN_ERROR_METHOD"`
}

func (t *Target) render(logger *slog.Logger) ([]generator.Result, error) {
	if t.Output != "" && len(t.Types) != 1 {
		return nil, errors.New("--output requires exactly one --type")
	}

	var m *manifest.Manifest
	if t.Manifest != "" {
		var err error
		if m, err = manifest.Load(t.Manifest); err != nil {
			return nil, err
		}
		logger.Debug("Loaded manifest", "file", t.Manifest, "types", len(m.Types))
	}

	gen := generator.New(logger, generator.Options{ErrorMethod: t.ErrorMethod})
	results, err := gen.GenerateTypes(t.Dir, t.Types, m)
	if err != nil {
		return nil, err
	}
	if t.Output != "" {
		results[0].Path = t.Output
	}
	return results, nil
}
