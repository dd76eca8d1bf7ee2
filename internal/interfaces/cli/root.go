// Package cli implements the organic-sim command line: scene analysis,
// reference lookup and script replay on top of the editor session.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/application/editor"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/config"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/nomenclature"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/catalog"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/prometheus"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("organic-sim %s (commit: %s, built: %s)", b.Version, b.Commit, b.BuildDate)
}

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Language     string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	ConfigPath   string
	Logger       logging.Logger
	Catalog      *nomenclature.MemoryCatalog
	OutputFormat string
	Language     molecule.Language

	overrides RootOptions
	watcher   *catalog.Watcher
	metrics   prometheus.MetricsCollector
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "organic-sim",
		Short: "Organic molecule drawing and structure inference",
		Long: "organic-sim analyses atoms placed on a square grid: it infers bonds, splits\n" +
			"molecules, names them and applies addition, dehydration and oxidation.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPostRun(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ORGSIM_* environment and built-in defaults)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json, yaml)")
	pf.StringVar(&opts.Language, "lang", "", "name language (ja, en); overrides editor.language")

	cmd.AddCommand(
		NewAnalyzeCmd(),
		NewLookupCmd(),
		NewReplayCmd(),
		NewWatchCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config, logger and catalog, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	switch strings.ToLower(opts.OutputFormat) {
	case "text", "json", "yaml":
	default:
		return errors.InvalidParam("unsupported output format").WithDetail(opts.OutputFormat)
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	lang, err := molecule.ParseLanguage(cfg.Editor.Language)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid language")
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		ConfigPath:   opts.ConfigPath,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Language:     lang,
		overrides: RootOptions{
			LogLevel: strings.ToLower(opts.LogLevel),
			Language: strings.ToLower(opts.Language),
		},
	}
	if err := initCatalog(cliCtx); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

func persistentPostRun(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil
	}
	cliCtx.closeCatalogWatcher()
	_ = logging.Sync(cliCtx.Logger)
	return nil
}

func (c *CLIContext) closeCatalogWatcher() {
	if c.watcher == nil {
		return
	}
	if err := c.watcher.Close(); err != nil {
		c.Logger.Warn("catalog watcher close failed", logging.Err(err))
	}
	c.watcher = nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "configuration initialization failed")
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	if opts.Language != "" {
		cfg.Editor.Language = strings.ToLower(opts.Language)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid flag override")
	}
	return cfg, nil
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logger)
	return logger.Named("cli"), nil
}

// initCatalog opens the reference catalog and, when configured, watches it.
func initCatalog(cliCtx *CLIContext) error {
	cfg := cliCtx.Config.Catalog
	cat, err := catalog.Open(cfg.Path)
	if err != nil {
		return err
	}
	cliCtx.Catalog = cat
	cliCtx.Logger.Debug("catalog opened", logging.String("path", cfg.Path), logging.Int("entries", cat.Len()))

	if cfg.Watch {
		w, err := catalog.Watch(cfg.Path, cat, cliCtx.Logger)
		if err != nil {
			return err
		}
		cliCtx.watcher = w
	}
	return nil
}

// Reconfigure applies a reloaded configuration.  Flag overrides given on the
// command line still win.  The log level, name language and catalog source
// change in place; on error nothing is changed.
func (c *CLIContext) Reconfigure(cfg *config.Config) error {
	if c.overrides.LogLevel != "" {
		cfg.Log.Level = c.overrides.LogLevel
	}
	if c.overrides.Language != "" {
		cfg.Editor.Language = c.overrides.Language
	}
	lang, err := molecule.ParseLanguage(cfg.Editor.Language)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid language")
	}

	if cfg.Catalog.Path != c.Config.Catalog.Path {
		entries := catalog.Embedded()
		if cfg.Catalog.Path != "" {
			if entries, err = catalog.ReadFile(cfg.Catalog.Path); err != nil {
				return err
			}
		}
		if err := c.Catalog.Replace(entries); err != nil {
			return errors.Wrap(err, errors.CodeUnknown, "invalid catalog").WithDetail(cfg.Catalog.Path)
		}
		c.closeCatalogWatcher()
		if cfg.Catalog.Watch {
			w, err := catalog.Watch(cfg.Catalog.Path, c.Catalog, c.Logger)
			if err != nil {
				c.Logger.Warn("catalog watch not restarted", logging.Err(err))
			} else {
				c.watcher = w
			}
		}
	}

	logging.SetLevel(c.Logger, cfg.Log.Level)
	c.Language = lang
	c.Config = cfg
	c.Logger.Info("configuration reloaded",
		logging.String("log_level", cfg.Log.Level),
		logging.String("language", string(lang)),
		logging.String("catalog", cfg.Catalog.Path))
	return nil
}

// Metrics returns the collector, creating it on first use.  forced builds it
// even when metrics are disabled in the configuration.
func (c *CLIContext) Metrics(forced bool) (prometheus.MetricsCollector, error) {
	if c.metrics != nil {
		return c.metrics, nil
	}
	if !c.Config.Metrics.Enabled && !forced {
		return nil, nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: c.Config.Metrics.Namespace,
		Subsystem: c.Config.Metrics.Subsystem,
	}, c.Logger)
	if err != nil {
		return nil, err
	}
	c.metrics = collector
	return collector, nil
}

// NewSession builds an editor session from the loaded configuration.
func (c *CLIContext) NewSession(collector prometheus.MetricsCollector) *editor.Session {
	cfg := c.Config
	opts := []editor.Option{
		editor.WithLogger(c.Logger),
		editor.WithHistoryLimit(cfg.Editor.HistoryLimit),
		editor.WithLanguage(c.Language),
		editor.WithStereoOptions(molecule.StereoOptions{
			CellSize:  float64(cfg.Grid.CellSize),
			Threshold: cfg.Grid.ProjectionThreshold,
		}),
		editor.WithView(viewFromConfig(cfg.Editor.View)),
	}
	if collector != nil {
		opts = append(opts, editor.WithMetrics(prometheus.NewEngineMetrics(collector)))
	}
	return editor.NewSession(c.Catalog, opts...)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.  SIGINT and
// SIGTERM cancel the command context, which ends long-running commands.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Output
// ─────────────────────────────────────────────────────────────────────────────

// tableProvider is implemented by results that render as a text table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := "text"
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.OutputFormat
	}

	switch format {
	case "json":
		return printJSON(cmd.OutOrStdout(), data)
	case "yaml":
		return printYAML(cmd.OutOrStdout(), data)
	default:
		return printText(cmd.OutOrStdout(), data)
	}
}

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printYAML(w io.Writer, data interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func printText(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case tableProvider:
		fmt.Fprint(w, FormatTable(v.TableHeaders(), v.TableRows()))
	case string:
		fmt.Fprintln(w, v)
	case fmt.Stringer:
		fmt.Fprintln(w, v.String())
	default:
		fmt.Fprintf(w, "%+v\n", v)
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// tableWidth measures terminal cells.  Ambiguous-width runes such as the
// subscript digits count as one cell whatever the locale says.
var tableWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// FormatTable renders headers and rows as an aligned table.  Widths are
// measured in terminal cells, so fullwidth katakana takes two per rune.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = tableWidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if n := tableWidth.StringWidth(row[i]); n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	n := tableWidth.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
