package report

import (
	"io"

	"github.com/seqan/cihelper/internal/buildlog"
	"github.com/seqan/cihelper/internal/usage"
)

// ErrorWriter renders build log entries.
type ErrorWriter interface {
	// WriteErrors outputs the entries in order and returns the number of
	// bytes written.
	WriteErrors(entries []buildlog.Entry) (int, error)
}

// UsageWriter renders resource usage records.
type UsageWriter interface {
	// WriteUsage outputs the records in the given order and returns the
	// number of bytes written.
	WriteUsage(records []usage.Record) (int, error)
}

var (
	_ ErrorWriter = (*MarkdownErrorWriter)(nil)
	_ UsageWriter = (*CSVUsageWriter)(nil)
	_ UsageWriter = (*MarkdownUsageWriter)(nil)
)

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
