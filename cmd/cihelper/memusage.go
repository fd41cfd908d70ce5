package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/seqan/cihelper/internal/config"
	"github.com/seqan/cihelper/internal/fileutil"
	"github.com/seqan/cihelper/internal/history"
	"github.com/seqan/cihelper/internal/report"
	"github.com/seqan/cihelper/internal/usage"
)

// NewMemUsageCmd creates the memusage command.
func NewMemUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memusage <input> <output>",
		Short: "Collect peak memory usage of tests into a CSV file",
		Long: `Memusage reads the concatenated reports of "/usr/bin/time -v" and writes the
peak memory of every test as CSV, largest first.

Arguments:
  input   file with one 23-line "/usr/bin/time -v" report per test run
  output  CSV file to write, with the header "File,RAM in MiB"

Only reports whose command line contains the label marker ("unit" by default)
are collected; the label starts at the marker.

Examples:
  # Write the CSV file
  cihelper memusage time.txt memusage.csv

  # Also print a Markdown table for the job summary
  cihelper memusage --markdown time.txt memusage.csv >> "$GITHUB_STEP_SUMMARY"

  # Compare against the previous run stored in a history file
  cihelper memusage --markdown --history memusage.db time.txt memusage.csv`,
		Args: cobra.ExactArgs(2),
		RunE: runMemUsageCmd,
	}

	cmd.Flags().BoolP("markdown", "m", false,
		"Print a Markdown summary table to stdout")
	cmd.Flags().String("history", "",
		"SQLite file storing runs; the summary shows the change against the previous run")
	cmd.Flags().Int("block-size", usage.DefaultBlockSize,
		"Number of lines of one resource usage report")
	cmd.Flags().Int("memory-line", usage.DefaultMemoryLine,
		"Line offset of the maximum resident set size within a report")

	return cmd
}

// runMemUsageCmd executes the memusage command.
func runMemUsageCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := intFlagIfChanged(cmd, "block-size", &cfg.Usage.BlockSize); err != nil {
		return err
	}
	if err := intFlagIfChanged(cmd, "memory-line", &cfg.Usage.MemoryLine); err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	inputPath, outputPath := args[0], args[1]

	records, err := parseUsageFile(inputPath, cfg)
	if err != nil {
		return err
	}
	usage.Sort(records)
	logger.Debug("parsed resource usage", "input", inputPath, "records", len(records))

	var buf bytes.Buffer
	if _, err := report.NewCSVUsageWriter(&buf).WriteUsage(records); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	if err := fileutil.LockAndWrite(outputPath, buf.Bytes()); err != nil {
		return err
	}
	logger.Debug("wrote usage report", "output", outputPath)

	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	historyPath, err := cmd.Flags().GetString("history")
	if err != nil {
		return err
	}

	var previous map[string]int
	if historyPath != "" {
		previous, err = recordHistory(cmd.Context(), historyPath, inputPath, records, logger)
		if err != nil {
			return err
		}
	}

	if !markdown {
		return nil
	}

	var opts []report.UsageWriterOption
	if previous != nil {
		opts = append(opts, report.WithPrevious(previous))
	}
	if _, err := report.NewMarkdownUsageWriter(cmd.OutOrStdout(), opts...).WriteUsage(records); err != nil {
		return fmt.Errorf("failed to write usage summary: %w", err)
	}
	return nil
}

// parseUsageFile parses the resource usage reports in path.
func parseUsageFile(path string, cfg *config.Config) ([]usage.Record, error) {
	f, err := os.Open(path) //nolint:gosec // Reading user-provided CI artifacts is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	parser := usage.NewParser(
		usage.WithBlockSize(cfg.Usage.BlockSize),
		usage.WithMemoryLine(cfg.Usage.MemoryLine),
		usage.WithLabelMarker(cfg.Usage.LabelMarker),
	)
	records, err := parser.Parse(fileutil.NewTextReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// recordHistory stores records as a new run and returns the memory per label
// of the run before it, or nil if there was none.
func recordHistory(ctx context.Context, dbPath, source string, records []usage.Record, logger *slog.Logger) (map[string]int, error) {
	db, err := history.Open(dbPath, history.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer db.Close()

	var previous map[string]int
	last, err := db.LatestRun(ctx)
	switch {
	case err == nil:
		previous = last.ByLabel()
		logger.Debug("comparing with previous run", "id", last.ID, "created_at", last.CreatedAt)
	case errors.Is(err, history.ErrNoRuns):
		logger.Debug("no previous run in history", "path", dbPath)
	default:
		return nil, fmt.Errorf("failed to read previous run: %w", err)
	}

	run, err := db.SaveRun(ctx, source, records)
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	logger.Debug("saved run to history", "id", run.ID, "path", dbPath)

	return previous, nil
}
