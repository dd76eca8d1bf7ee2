// Package config defines the configuration structures for the organic
// simulator.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// GridConfig holds drawing-surface geometry.
type GridConfig struct {
	// CellSize is the display size of one grid cell in pixels.  Geometric
	// tests that the engine expresses in display units (the cis/trans
	// projection threshold) scale grid vectors by this value.
	CellSize int `mapstructure:"cell_size"`
	// ProjectionThreshold is the minimum |projection| in display units for a
	// double-bond substituent to count as lying on one side of the bond axis.
	ProjectionThreshold float64 `mapstructure:"projection_threshold"`
}

// ViewConfig holds the default view-settings record for new sessions.
type ViewConfig struct {
	ImplicitHydrogens bool `mapstructure:"implicit_hydrogens"`
	ChiralMarkers     bool `mapstructure:"chiral_markers"`
	FunctionalGroups  bool `mapstructure:"functional_groups"`
	Iodoform          bool `mapstructure:"iodoform"`
}

// EditorConfig holds editing-session parameters.
type EditorConfig struct {
	// HistoryLimit bounds the undo stack; the oldest snapshot is evicted first.
	HistoryLimit int `mapstructure:"history_limit"`
	// Language selects names and messages: "ja" or "en".
	Language string     `mapstructure:"language"`
	View     ViewConfig `mapstructure:"view"`
}

// CatalogConfig locates the reference compound catalog.
type CatalogConfig struct {
	// Path to a YAML catalog file.  Empty selects the embedded catalog.
	Path string `mapstructure:"path"`
	// Watch reloads Path when it changes on disk.
	Watch bool `mapstructure:"watch"`
}

// MetricsConfig controls the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Log     logging.LogConfig `mapstructure:"log"`
	Grid    GridConfig        `mapstructure:"grid"`
	Editor  EditorConfig      `mapstructure:"editor"`
	Catalog CatalogConfig     `mapstructure:"catalog"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Grid
	if c.Grid.CellSize < 1 {
		return fmt.Errorf("config: grid.cell_size must be ≥ 1, got %d", c.Grid.CellSize)
	}
	if c.Grid.ProjectionThreshold < 0 {
		return fmt.Errorf("config: grid.projection_threshold must be ≥ 0, got %g", c.Grid.ProjectionThreshold)
	}

	// Editor
	if c.Editor.HistoryLimit < 1 {
		return fmt.Errorf("config: editor.history_limit must be ≥ 1, got %d", c.Editor.HistoryLimit)
	}
	switch c.Editor.Language {
	case "ja", "en":
	default:
		return fmt.Errorf("config: editor.language %q is invalid; expected ja|en", c.Editor.Language)
	}

	// Catalog
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return fmt.Errorf("config: catalog.watch requires catalog.path")
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	return nil
}
