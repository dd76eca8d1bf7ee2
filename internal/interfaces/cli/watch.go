package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/config"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/catalog"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/prometheus"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// WatchOptions holds flags of the watch command.
type WatchOptions struct {
	AnalyzeOptions
	MetricsAddr string
	Debounce    time.Duration
}

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <scene.yaml|scene.json>",
		Short: "Re-analyse a scene every time it is saved",
		Long: "watch prints a fresh report whenever the scene file is written.  When\n" +
			"--config is given the configuration file is watched as well: log level,\n" +
			"name language and catalog path take effect without a restart.",
		Example: "  organic-sim watch scene.yaml --groups\n  organic-sim watch scene.yaml -c organic-sim.yaml --metrics-addr :9464",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd, cliCtx, args[0], opts)
		},
	}

	bindAnnotationFlags(cmd, &opts.AnalyzeOptions)
	f := cmd.Flags()
	f.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address at /metrics")
	f.DurationVar(&opts.Debounce, "debounce", catalog.DefaultDebounce, "quiet period before a changed scene is re-read")
	return cmd
}

func runWatch(cmd *cobra.Command, cliCtx *CLIContext, path string, opts *WatchOptions) error {
	ctx := cmd.Context()
	logger := cliCtx.Logger

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneRead, "cannot resolve scene path").WithDetail(path)
	}

	collector, err := cliCtx.Metrics(opts.MetricsAddr != "")
	if err != nil {
		return err
	}
	s := cliCtx.NewSession(collector)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneWatch, "cannot create file watcher")
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneWatch, "cannot watch scene directory").WithDetail(abs)
	}

	if opts.MetricsAddr != "" && collector != nil {
		stop, err := serveMetrics(opts.MetricsAddr, collector, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	reloads := make(chan *config.Config)
	if cliCtx.ConfigPath != "" {
		err := config.Watch(cliCtx.ConfigPath, func(c *config.Config) {
			select {
			case reloads <- c:
			case <-ctx.Done():
			}
		}, func(err error) {
			logger.Warn("configuration reload rejected", logging.Err(err))
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigLoad, "cannot watch configuration")
		}
	}

	if err := analyseScene(cmd, logger, s, abs, &opts.AnalyzeOptions); err != nil {
		return err
	}
	logger.Info("watching scene", logging.String("path", abs))
	reanalyse := func() {
		if err := analyseScene(cmd, logger, s, abs, &opts.AnalyzeOptions); err != nil {
			logger.Warn("scene rejected", logging.String("path", abs), logging.Err(err))
			PrintError(cmd, err)
		}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped", logging.String("path", abs))
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("scene watcher error", logging.Err(err))

		case <-fire:
			fire = nil
			reanalyse()

		case cfg := <-reloads:
			if err := cliCtx.Reconfigure(cfg); err != nil {
				logger.Warn("configuration reload rejected", logging.Err(err))
				continue
			}
			s.SetLanguage(cliCtx.Language)
			s.SetView(viewFromConfig(cliCtx.Config.Editor.View))
			reanalyse()
		}
	}
}

// serveMetrics exposes collector at /metrics on addr until the returned
// function is called.
func serveMetrics(addr string, collector prometheus.MetricsCollector, logger logging.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "cannot listen for metrics").WithDetail(addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", logging.Err(err))
		}
	}()
	logger.Info("serving metrics", logging.String("addr", fmt.Sprintf("http://%s/metrics", ln.Addr())))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown failed", logging.Err(err))
		}
	}, nil
}
