// Package configpaths resolves where httperrgen looks for configuration
// files. Paths are returned in priority order; kong loads every one that
// exists and flags or environment variables override their values.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "httperrgen"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// ConfigCandidatePaths returns JSON, YAML and TOML candidates. An explicit
// userCfg path replaces the defaults and is sorted by its extension.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userCfg)
		case ".toml":
			tomlPaths = append(tomlPaths, userCfg)
		default:
			jsonPaths = append(jsonPaths, userCfg)
		}
		return jsonPaths, yamlPaths, tomlPaths
	}

	dirs := []struct{ dir, base string }{{".", "." + appName}}
	if d, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, struct{ dir, base string }{d, "config"})
	}

	for _, d := range dirs {
		stem := filepath.Join(d.dir, d.base)
		jsonPaths = append(jsonPaths, stem+".json")
		yamlPaths = append(yamlPaths, stem+".yaml", stem+".yml")
		tomlPaths = append(tomlPaths, stem+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}
