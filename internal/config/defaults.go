package config

import "github.com/spf13/viper"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultCellSize            = 60
	DefaultProjectionThreshold = 1.0

	DefaultHistoryLimit = 30
	DefaultLanguage     = "ja"

	DefaultMetricsNamespace = "organic_sim"
	DefaultMetricsSubsystem = "engine"
)

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// already set are left unchanged so explicit configuration always wins.
// View flags are booleans and default to false except where registerDefaults
// seeds them through viper.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Grid ──────────────────────────────────────────────────────────────────
	if cfg.Grid.CellSize == 0 {
		cfg.Grid.CellSize = DefaultCellSize
	}
	if cfg.Grid.ProjectionThreshold == 0 {
		cfg.Grid.ProjectionThreshold = DefaultProjectionThreshold
	}

	// ── Editor ────────────────────────────────────────────────────────────────
	if cfg.Editor.HistoryLimit == 0 {
		cfg.Editor.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Editor.Language == "" {
		cfg.Editor.Language = DefaultLanguage
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// Default returns a Config populated entirely from defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Editor.View.ImplicitHydrogens = true
	cfg.Editor.View.FunctionalGroups = true
	ApplyDefaults(cfg)
	return cfg
}

// registerDefaults seeds v with every known key so that AutomaticEnv can
// resolve ORGSIM_* overrides for keys absent from the config file.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("grid.cell_size", DefaultCellSize)
	v.SetDefault("grid.projection_threshold", DefaultProjectionThreshold)
	v.SetDefault("editor.history_limit", DefaultHistoryLimit)
	v.SetDefault("editor.language", DefaultLanguage)
	v.SetDefault("editor.view.implicit_hydrogens", true)
	v.SetDefault("editor.view.chiral_markers", false)
	v.SetDefault("editor.view.functional_groups", true)
	v.SetDefault("editor.view.iodoform", false)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.subsystem", DefaultMetricsSubsystem)
}
