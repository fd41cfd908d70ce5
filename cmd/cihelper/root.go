package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cihelper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cihelper",
		Short: "Helpers for continuous integration of C++ library builds",
		Long: `cihelper bundles the small tools a C++ library CI pipeline runs after its
build and test steps:

  errors    turn a build log into collapsible per-error report blocks
  memusage  collect peak memory usage of tests into a sorted CSV file
  docgate   fail a documentation build on unexpected warnings

Settings are read from .cihelper.yaml in the current directory, the XDG config
directory or the home directory. Use 'cihelper init' to create one.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .cihelper.yaml in current, XDG config or home directory)")

	// Add subcommands
	cmd.AddCommand(NewErrorsCmd())
	cmd.AddCommand(NewMemUsageCmd())
	cmd.AddCommand(NewDocGateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with the command's exit code.
// SIGINT and SIGTERM cancel the command context, which terminates child processes.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	os.Exit(handleError(err, os.Stderr))
}
