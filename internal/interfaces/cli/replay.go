package cli

import (
	"github.com/spf13/cobra"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/application/editor"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
)

// ReplayOptions holds flags of the replay command.
type ReplayOptions struct {
	ContinueOnReject bool
	SavePath         string
	Metrics          bool
}

// NewReplayCmd creates the replay command.
func NewReplayCmd() *cobra.Command {
	opts := &ReplayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml|script.json>",
		Short: "Replay an editing script on an empty canvas and report the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runReplay(cmd, cliCtx, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.ContinueOnReject, "continue-on-reject", false, "log rejected reaction clicks and keep going")
	f.StringVar(&opts.SavePath, "save", "", "write the final scene to this file (.yaml or .json)")
	f.BoolVar(&opts.Metrics, "metrics", false, "print engine metrics to stderr after the report")
	return cmd
}

func runReplay(cmd *cobra.Command, cliCtx *CLIContext, path string, opts *ReplayOptions) error {
	script, err := readScript(path)
	if err != nil {
		return err
	}

	collector, err := cliCtx.Metrics(opts.Metrics)
	if err != nil {
		return err
	}
	s := cliCtx.NewSession(collector)

	if err := s.Replay(script, editor.ReplayOptions{ContinueOnReject: opts.ContinueOnReject}); err != nil {
		return err
	}
	cliCtx.Logger.Info("script replayed",
		logging.String("path", path),
		logging.Int("steps", len(script.Steps)),
		logging.Int("atoms", s.Canvas().Len()))

	if opts.SavePath != "" {
		if err := writeScene(opts.SavePath, s.Scene()); err != nil {
			return err
		}
	}

	if err := PrintResult(cmd, reportTable(s.Report())); err != nil {
		return err
	}
	if opts.Metrics && collector != nil {
		return collector.WriteText(cmd.ErrOrStderr())
	}
	return nil
}
