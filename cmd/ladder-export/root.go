// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/riftstat/ladder-export/internal/apierror"
	"github.com/riftstat/ladder-export/internal/collector"
	"github.com/riftstat/ladder-export/internal/config"
	"github.com/riftstat/ladder-export/internal/credential"
	ladderrors "github.com/riftstat/ladder-export/internal/errors"
	"github.com/riftstat/ladder-export/internal/ladder"
	"github.com/riftstat/ladder-export/internal/logging"
	"github.com/riftstat/ladder-export/internal/metadata"
	"github.com/riftstat/ladder-export/internal/output"
	"github.com/riftstat/ladder-export/internal/riot"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

type options struct {
	configPath string
	apiKey     string
	apiKeyFile string
	format     string
	outputDir  string
	output     string
	metadata   bool
	summary    bool
	verbose    bool
	logFormat  string
	retries    int
}

// now is replaced in tests to pin generated file names.
var now = time.Now

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ladder-export <region> <queue> <tier> [<divisions> <get all>]",
		Short: "Export ranked ladder standings to a table file",
		Long: `ladder-export downloads the ranked ladder of one region, queue and tier
and writes every entry to a file named after the query.

Divisioned tiers (IRON to DIAMOND) need a comma-separated division list and
"True" to fetch every page or "False" for the first page only. MASTER,
GRANDMASTER and CHALLENGER take no further arguments.

The API key is read from --api-key, RIOT_API_KEY or api_key.txt.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("retries") {
				opts.retries = -1
			}
			return run(cmd.Context(), opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a configuration file")
	flags.StringVar(&opts.apiKey, "api-key", "", "API key (overrides RIOT_API_KEY and the key file)")
	flags.StringVar(&opts.apiKeyFile, "api-key-file", "", "File holding the API key (default: api_key.txt)")
	flags.StringVar(&opts.format, "format", "", "Output format: csv or ndjson (default: csv)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Directory for the generated file (default: current directory)")
	flags.StringVarP(&opts.output, "output", "o", "", `Explicit output path, or "-" for stdout`)
	flags.BoolVar(&opts.metadata, "metadata", false, "Write a <output>.meta.json file describing the run")
	flags.BoolVar(&opts.summary, "summary", false, "Print a per-division summary table after the run")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	flags.IntVar(&opts.retries, "retries", 0, "Retry throttled or network-failed requests this many times")

	return cmd
}

// parseArgs maps positional arguments onto a raw filter. It reports false
// when the argument count does not fit the tier: three arguments for a
// special tier, five for any other.
func parseArgs(args []string) (ladder.RawFilter, bool) {
	switch {
	case len(args) == 3 && ladder.IsSpecialTier(args[2]):
		return ladder.RawFilter{
			Region: args[0],
			Queue:  args[1],
			Tier:   args[2],
			GetAll: "True",
		}, true
	case len(args) == 5 && !ladder.IsSpecialTier(args[2]):
		return ladder.RawFilter{
			Region:    args[0],
			Queue:     args[1],
			Tier:      args[2],
			Divisions: ladder.SplitDivisions(args[3]),
			GetAll:    args[4],
		}, true
	}
	return ladder.RawFilter{}, false
}

// run executes one export. Usage and validation reports are printed to
// stdout and return nil.
func run(ctx context.Context, opts *options, args []string, stdout, stderr io.Writer) error {
	raw, ok := parseArgs(args)
	if !ok {
		printUsage(stdout, args)
		return nil
	}

	filter, problems := ladder.Validate(raw)
	if len(problems) > 0 {
		fmt.Fprintln(stdout, ladder.FormatProblems(problems))
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(stderr, cfg.Log.Format, level)
	if err != nil {
		return err
	}

	apiKey, err := credential.Resolve(opts.apiKey, cfg.Riot.APIKeyFile)
	if err != nil {
		return err
	}
	if apiKey == "" {
		logger.Warn("no API key found, requests will be rejected", "file", cfg.Riot.APIKeyFile)
	}

	client := riot.NewRetryClient(riot.NewRESTClient(riot.Options{
		BaseURL:           cfg.RegionBaseURL(filter.Region),
		APIKey:            apiKey,
		UserAgent:         cfg.HTTP.UserAgent + "/" + version,
		Timeout:           cfg.HTTP.Timeout,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Logger:            logger,
	}), &riot.RetryConfig{
		MaxRetries:        cfg.Retry.MaxRetries,
		InitialBackoff:    cfg.Retry.InitialBackoff,
		MaxBackoff:        cfg.Retry.MaxBackoff,
		BackoffMultiplier: cfg.Retry.BackoffMultiplier,
	}, logger)

	tracker := metadata.New()
	results, err := collector.New(client,
		collector.WithLogger(logger),
		collector.WithTracker(tracker),
	).Run(ctx, filter)
	if err != nil {
		if hint := apierror.Hint(apierror.NewInspector(), err); hint != "" {
			logger.Error("fetch failed", "hint", hint)
		}
		return err
	}

	path, err := outputPath(cfg, opts, filter)
	if err != nil {
		return err
	}
	if err := writeResults(cfg.Output.Format, path, results, stdout); err != nil {
		return fmt.Errorf("%w: %w", ladderrors.ErrOutput, err)
	}

	logger.Debug("run complete",
		"entries", len(results),
		"api_calls", tracker.APICalls(),
		"elapsed", tracker.Elapsed())

	summaryOut := stdout
	if path == stdoutPath {
		summaryOut = stderr
	} else {
		fmt.Fprintf(stdout, "%s successfully generated.\n", path)

		if cfg.Output.Metadata {
			meta := tracker.GenerateMetadata(version, filter, path)
			if err := metadata.SaveMetadata(meta, metadata.SidecarPath(path)); err != nil {
				// The artifact is already in place; a missing sidecar is not fatal.
				logger.Warn("failed to save metadata", "error", err)
			}
		}
	}

	if opts.summary {
		printSummary(summaryOut, filter, tracker)
	}
	return nil
}

// loadConfig reads configuration files and environment, then applies
// flags on top.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.apiKeyFile != "" {
		cfg.Riot.APIKeyFile = opts.apiKeyFile
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}
	if opts.metadata {
		cfg.Output.Metadata = true
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if opts.retries >= 0 {
		cfg.Retry.MaxRetries = opts.retries
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func outputPath(cfg *config.Config, opts *options, f ladder.Filter) (string, error) {
	if opts.output != "" {
		return opts.output, nil
	}

	ext, err := output.Extension(cfg.Output.Format)
	if err != nil {
		return "", err
	}
	name := output.FileName(cfg.Output.Prefix, f, now(), cfg.Output.TimestampLayout, ext)
	return filepath.Join(cfg.Output.Dir, name), nil
}

func writeResults(format, path string, results collector.ResultSet, stdout io.Writer) error {
	var (
		w   output.OutputWriter
		err error
	)
	if path == stdoutPath {
		w, err = output.New(format, stdout)
	} else {
		w, err = output.NewFileWriter(format, path)
	}
	if err != nil {
		return err
	}

	for _, entry := range results {
		if err := w.Write(entry); err != nil {
			_ = w.Discard()
			return err
		}
	}
	return w.Close()
}
