package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seqan/cihelper/internal/buildlog"
	"github.com/seqan/cihelper/internal/config"
	"github.com/seqan/cihelper/internal/fileutil"
	"github.com/seqan/cihelper/internal/report"
)

// NewErrorsCmd creates the errors command.
func NewErrorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors <log-file>",
		Short: "Turn a build log into a collapsible per-error report",
		Long: `Errors scans a build log for progress markers such as "[ 42%]" and reports
every span between two markers that contains "error:".

Each failure becomes a collapsible <details> block titled with its number and the
first error message, followed by the first lines of the span as a code block.
The report is cut to a length that fits into a pull request comment.

Examples:
  # Print the report
  cihelper errors build.log

  # Write the report to a file
  cihelper errors -o errors.md build.log

  # Show more of each failure
  cihelper errors --body-lines 60 build.log`,
		Args: cobra.ExactArgs(1),
		RunE: runErrorsCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Int("summary-length", buildlog.DefaultSummaryLength,
		"Maximum number of characters of an error summary")
	cmd.Flags().Int("body-lines", buildlog.DefaultBodyLines,
		"Number of log lines shown inside each error block")
	cmd.Flags().Int("max-length", buildlog.DefaultReportLength,
		"Maximum number of characters of the whole report")

	return cmd
}

// runErrorsCmd executes the errors command.
func runErrorsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyErrorsFlags(cmd, cfg); err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	doc, err := fileutil.ReadText(args[0])
	if err != nil {
		return err
	}

	tokenizer := buildlog.NewTokenizer(
		buildlog.WithSummaryLength(cfg.Errors.SummaryLength),
		buildlog.WithBodyLines(cfg.Errors.BodyLines),
	)
	entries := tokenizer.Tokenize(doc)
	logger.Debug("tokenized build log", "input", args[0], "errors", len(entries))

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return outputErrorReport(cmd.OutOrStdout(), outputPath, cfg, entries)
}

// applyErrorsFlags overrides the configured limits with flags the user set.
func applyErrorsFlags(cmd *cobra.Command, cfg *config.Config) error {
	if err := intFlagIfChanged(cmd, "summary-length", &cfg.Errors.SummaryLength); err != nil {
		return err
	}
	if err := intFlagIfChanged(cmd, "body-lines", &cfg.Errors.BodyLines); err != nil {
		return err
	}
	return intFlagIfChanged(cmd, "max-length", &cfg.Errors.MaxLength)
}

// outputErrorReport writes the report to outputPath, or to stdout if it is empty.
func outputErrorReport(stdout io.Writer, outputPath string, cfg *config.Config, entries []buildlog.Entry) error {
	output := stdout
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := report.NewMarkdownErrorWriter(output, report.WithMaxLength(cfg.Errors.MaxLength))
	if _, err := writer.WriteErrors(entries); err != nil {
		return fmt.Errorf("failed to write error report: %w", err)
	}
	return nil
}
