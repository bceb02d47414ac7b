package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/rider-parser/internal/common"
	"github.com/joseph-ayodele/rider-parser/internal/core"
	"github.com/joseph-ayodele/rider-parser/internal/core/async"
	"github.com/joseph-ayodele/rider-parser/internal/ingest"
	"github.com/joseph-ayodele/rider-parser/internal/llm/providers"
)

type parseOptions struct {
	configPath string
	output     string
	rulesOnly  bool
	workers    int
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [files...|-]",
		Short: "Parse rider text files or stdin",
		Long: `Parse one or more rider text files (.txt, .text, .md) or directories of them,
or stdin when no file or "-" is given, and print one structured rider per document.

Examples:
  # Parse a file
  riderparse parse rider.txt

  # Parse from stdin as YAML
  pdftotext rider.pdf - | riderparse parse --output yaml -

  # Parse a batch with the rule engine only
  riderparse parse --rules-only --workers 8 riders/*.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&opts.rulesOnly, "rules-only", false, "skip the external extractor even when configured")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel workers for multiple files (default from config)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *parseOptions) error {
	if opts.output != formatJSON && opts.output != formatYAML {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, proc, err := setup(ctx, cmd, opts.configPath, opts.rulesOnly)
	if err != nil {
		return err
	}
	if opts.workers > 0 {
		cfg.Queue.Workers = opts.workers
	}

	out := newRenderer(cmd.OutOrStdout(), opts.output)
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		err = parseStdin(ctx, proc, cmd.InOrStdin(), out)
	} else {
		var jobs []async.Job
		if jobs, err = readJobs(args, logger); err == nil {
			err = parseBatch(ctx, proc, jobs, cfg.Queue, logger, out)
		}
	}
	if cerr := out.close(); err == nil {
		err = cerr
	}
	return err
}

// setup loads config and builds the logger and processor shared by every command.
func setup(ctx context.Context, cmd *cobra.Command, configPath string, rulesOnly bool) (*common.Config, *slog.Logger, *core.Processor, error) {
	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if rulesOnly {
		cfg.LLM.Provider = common.ProviderNone
	}

	logger := common.NewLogger(cfg.Log, cmd.ErrOrStderr())
	external, err := providers.New(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, core.NewProcessor(logger, external, cfg.Engine), nil
}

func parseStdin(ctx context.Context, proc *core.Processor, in io.Reader, out *renderer) error {
	text, err := io.ReadAll(io.LimitReader(in, ingest.MaxFileSize+1))
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(text) > ingest.MaxFileSize {
		return common.InvalidInputErrorf("stdin exceeds %d bytes", ingest.MaxFileSize)
	}
	return out.render(document{Name: "-", Outcome: proc.Process(ctx, string(text))})
}

func readJobs(paths []string, logger *slog.Logger) ([]async.Job, error) {
	docs, stats, err := ingest.Collect(paths, true)
	if err != nil {
		return nil, common.WrapError(err, "collect rider files")
	}
	logger.Debug("ingest.collect.ok", "scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	jobs := make([]async.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, async.Job{Name: d.Path, Text: d.Text})
	}
	return jobs, nil
}

// parseBatch runs jobs on the worker queue and renders results in argument order.
func parseBatch(ctx context.Context, proc *core.Processor, jobs []async.Job, qc common.QueueConfig, logger *slog.Logger, out *renderer) error {
	q := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(qc.Workers),
		async.WithQueueSize(qc.Size),
		async.WithProcessTimeout(qc.Timeout),
	)

	collected := make(chan []async.Result, 1)
	go func() {
		var rs []async.Result
		for r := range q.Results() {
			rs = append(rs, r)
		}
		collected <- rs
	}()

	var enqueueErr error
	for _, j := range jobs {
		if err := q.Enqueue(ctx, j); err != nil {
			enqueueErr = err
			break
		}
	}
	q.Shutdown(ctx)
	results := <-collected

	sort.Slice(results, func(i, k int) bool { return results[i].Index < results[k].Index })

	for _, r := range results {
		if err := out.render(document{Name: r.Job.Name, Outcome: r.Outcome}); err != nil {
			return err
		}
	}
	return enqueueErr
}
