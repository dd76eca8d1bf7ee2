package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "text" }, "log.format"},
		{"zero cell size", func(c *Config) { c.Grid.CellSize = 0 }, "grid.cell_size"},
		{"negative threshold", func(c *Config) { c.Grid.ProjectionThreshold = -1 }, "grid.projection_threshold"},
		{"zero history", func(c *Config) { c.Editor.HistoryLimit = 0 }, "editor.history_limit"},
		{"bad language", func(c *Config) { c.Editor.Language = "de" }, "editor.language"},
		{"watch without path", func(c *Config) { c.Catalog.Watch = true }, "catalog.watch"},
		{"metrics without namespace", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Namespace = ""
		}, "metrics.namespace"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
