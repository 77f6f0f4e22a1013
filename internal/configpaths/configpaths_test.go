package configpaths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCandidatePathsUserConfig(t *testing.T) {
	type testCase struct {
		path             string
		json, yaml, toml []string
	}

	cases := []testCase{
		{path: "cfg.yaml", yaml: []string{"cfg.yaml"}},
		{path: "cfg.YML", yaml: []string{"cfg.YML"}},
		{path: "cfg.toml", toml: []string{"cfg.toml"}},
		{path: "cfg.json", json: []string{"cfg.json"}},
		{path: "cfg", json: []string{"cfg"}},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			j, y, to := ConfigCandidatePaths(tc.path)
			assert.Equal(t, tc.json, j)
			assert.Equal(t, tc.yaml, y)
			assert.Equal(t, tc.toml, to)
		})
	}
}

func TestConfigCandidatePathsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	j, y, to := ConfigCandidatePaths("")

	assert.Equal(t, ".httperrgen.json", j[0])
	assert.Equal(t, []string{".httperrgen.yaml", ".httperrgen.yml"}, y[:2])
	assert.Equal(t, ".httperrgen.toml", to[0])

	dir, err := DefaultConfigDir()
	if err == nil {
		assert.Contains(t, j, filepath.Join(dir, "config.json"))
		assert.Contains(t, to, filepath.Join(dir, "config.toml"))
	}
}
