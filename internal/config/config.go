// Package config defines the CLI structure and configuration for httperrgen.
package config

import (
	"github.com/Alia5/httperrgen/internal/cmd"

	"github.com/alecthomas/kong"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"HTTPERRGEN_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"HTTPERRGEN_LOG_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Config  string           `help:"Configuration file (JSON, YAML or TOML)" env:"HTTPERRGEN_CONFIG"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Log `embed:"" prefix:"log."`

	Generate cmd.Generate `cmd:"" default:"withargs" help:"Generate ErrorCode, HTTPStatus and Message accessors (default command)"`
	Check    cmd.Check    `cmd:"" help:"Fail when generated accessor files are missing or stale"`
}
