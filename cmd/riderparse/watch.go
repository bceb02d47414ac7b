package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/rider-parser/internal/ingest"
)

type watchOptions struct {
	configPath  string
	output      string
	rulesOnly   bool
	initialScan bool
	debounce    time.Duration
}

func newWatchCmd() *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Parse rider files as they are dropped into folders",
		Long: `Watch one or more folders recursively and print a structured rider every time
a .txt, .text or .md file is created or rewritten. Stops on interrupt.

Examples:
  # Watch a drop folder, parsing files already present first
  riderparse watch --initial-scan ./incoming`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&opts.rulesOnly, "rules-only", false, "skip the external extractor even when configured")
	cmd.Flags().BoolVar(&opts.initialScan, "initial-scan", false, "parse files already in the folders on start")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "wait this long after the last write before parsing")
	return cmd
}

func runWatch(cmd *cobra.Command, roots []string, opts *watchOptions) error {
	if opts.output != formatJSON && opts.output != formatYAML {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, logger, proc, err := setup(ctx, cmd, opts.configPath, opts.rulesOnly)
	if err != nil {
		return err
	}

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       roots,
		InitialScan: opts.initialScan,
		Debounce:    opts.debounce,
		SkipHidden:  true,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	logger.Info("watch.started", "roots", roots)

	out := newRenderer(cmd.OutOrStdout(), opts.output)
	defer func() { _ = out.close() }()

	for {
		select {
		case path, ok := <-events:
			if !ok {
				logger.Info("watch.stopped")
				return nil
			}
			doc, err := ingest.ReadDocument(path)
			if err != nil {
				logger.Warn("watch.read_failed", "path", path, "error", err)
				continue
			}
			if err := out.render(document{Name: path, Outcome: proc.Process(ctx, doc.Text)}); err != nil {
				return err
			}
		case err, ok := <-errs:
			if ok {
				logger.Warn("watch.error", "error", err)
			} else {
				errs = nil
			}
		}
	}
}
