package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seqan/cihelper/internal/docgate"
)

// NewDocGateCmd creates the docgate command.
func NewDocGateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docgate -e <executable> -i <argument>",
		Short: "Fail a documentation build on unexpected warnings",
		Long: `Docgate runs a documentation generator with a single argument, reads its
combined standard output and standard error line by line and echoes every line
containing "warning:".

Warnings about the CLANG_OPTIONS and CLANG_ASSISTED_PARSING settings are ignored,
more markers can be excluded with --exclude or in the configuration file.
The command exits with status 1 if any warning remains, regardless of the
generator's own exit status.

Examples:
  # Run doxygen on a Doxyfile
  cihelper docgate -e doxygen -i Doxyfile

  # Additionally tolerate warnings mentioning a setting
  cihelper docgate -e doxygen -i Doxyfile --exclude HTML_EXTRA_STYLESHEET`,
		Args: cobra.NoArgs,
		RunE: runDocGateCmd,
	}

	cmd.Flags().StringP("executable", "e", "",
		"Documentation generator to run")
	cmd.Flags().StringP("input", "i", "",
		"Single argument passed to the generator, usually its configuration file")
	cmd.Flags().StringSlice("exclude", nil,
		"Additional markers of tolerated warnings (repeatable)")

	return cmd
}

// runDocGateCmd executes the docgate command.
func runDocGateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return err
	}
	cfg.AddExcludedMarkers(exclude...)

	if err := validateConfig(cfg); err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	executable, err := cmd.Flags().GetString("executable")
	if err != nil {
		return err
	}
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}

	gate := docgate.New(
		docgate.WithFilter(docgate.NewFilter(cfg.DocGate.WarningMarker, cfg.DocGate.Exclude...)),
		docgate.WithOutput(cmd.OutOrStdout()),
		docgate.WithLogger(logger),
	)

	count, err := gate.Run(cmd.Context(), executable, input)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	summary := color.New(color.FgRed, color.Bold)
	summary.Fprintf(cmd.OutOrStdout(), "Found %d documentation warning(s).\n", count) //nolint:errcheck // Output errors surface through the exit status
	return &exitError{code: exitFailure}
}
