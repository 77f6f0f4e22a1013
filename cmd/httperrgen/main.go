package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Alia5/httperrgen/internal/config"
	"github.com/Alia5/httperrgen/internal/configpaths"
	"github.com/Alia5/httperrgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("httperrgen"),
		kong.Description(Description()),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("httperrgen %s (%s, %s)", Version, Commit, Date)},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	ctx.Bind(logger)

	err = ctx.Run()
	closeAll(closeFiles)
	ctx.FatalIfErrorf(err)
}

// closeAll runs before any exit; os.Exit skips deferred calls.
func closeAll(files []io.Closer) {
	for _, c := range files {
		_ = c.Close()
	}
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("HTTPERRGEN_CONFIG")
}
