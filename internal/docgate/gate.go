package docgate

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/seqan/cihelper/internal/fileutil"
)

// ErrNoExecutable is returned when Run is called without an executable.
var ErrNoExecutable = errors.New("no executable specified")

// Gate counts qualifying warnings in the output of a child process.
type Gate struct {
	filter *Filter
	output io.Writer
	logger *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithFilter replaces the default warning filter.
func WithFilter(f *Filter) Option {
	return func(g *Gate) {
		g.filter = f
	}
}

// WithOutput sets where qualifying lines are echoed.
func WithOutput(w io.Writer) Option {
	return func(g *Gate) {
		g.output = w
	}
}

// WithLogger sets the logger for diagnostic messages.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// New creates a Gate with the default filter that discards echoed lines.
func New(opts ...Option) *Gate {
	g := &Gate{
		filter: NewFilter(DefaultWarningMarker, DefaultExcludedMarkers()...),
		output: io.Discard,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Scan reads r line by line, echoes every qualifying line and returns how
// many there were. Lines are decoded before matching and echoed as read.
func (g *Gate) Scan(r io.Reader) (int, error) {
	br := bufio.NewReader(r)

	count := 0
	for {
		raw, err := br.ReadBytes('\n')
		if len(raw) > 0 {
			raw = bytes.TrimRight(raw, "\r\n")
			if g.filter.Qualifies(fileutil.DecodeLine(raw)) {
				count++
				if _, werr := fmt.Fprintf(g.output, "%s\n", raw); werr != nil {
					return count, fmt.Errorf("failed to echo warning: %w", werr)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read output: %w", err)
		}
	}
}

// Run starts executable with the single argument arg, merges its standard
// error into its standard output and scans the combined stream.
// The child's exit status does not affect the count; only a failure to start
// or read from the child is an error.
func (g *Gate) Run(ctx context.Context, executable, arg string) (int, error) {
	if executable == "" {
		return 0, ErrNoExecutable
	}

	cmd := exec.CommandContext(ctx, executable, arg) //nolint:gosec // Running the configured generator is the purpose
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	g.logger.Debug("starting documentation generator", "executable", executable, "arg", arg)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", executable, err)
	}

	count, scanErr := g.Scan(stdout)
	if scanErr != nil {
		// Drain so the child does not block on a full pipe before Wait.
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	if scanErr != nil {
		return count, scanErr
	}
	if err := ctx.Err(); err != nil {
		return count, err
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		g.logger.Debug("documentation generator finished", "warnings", count)
	case errors.As(waitErr, &exitErr):
		g.logger.Debug("documentation generator exited with non-zero status",
			"status", exitErr.ExitCode(), "warnings", count)
	default:
		return count, fmt.Errorf("failed to wait for %s: %w", executable, waitErr)
	}

	return count, nil
}
