package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"

	"github.com/seqan/cihelper/internal/usage"
)

// MarkdownUsageWriter outputs a peak memory summary table in Markdown.
// With a previous run it adds a column with the change per test.
type MarkdownUsageWriter struct {
	baseWriter

	// previous maps labels of the previous run to their memory in MiB.
	previous map[string]int
}

// UsageWriterOption configures a MarkdownUsageWriter.
type UsageWriterOption func(*MarkdownUsageWriter)

// WithPrevious compares the records against a previous run.
func WithPrevious(previous map[string]int) UsageWriterOption {
	return func(w *MarkdownUsageWriter) {
		w.previous = previous
	}
}

// NewMarkdownUsageWriter creates a MarkdownUsageWriter that outputs to the given writer.
func NewMarkdownUsageWriter(output io.Writer, opts ...UsageWriterOption) *MarkdownUsageWriter {
	w := &MarkdownUsageWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteUsage outputs the summary.
func (w *MarkdownUsageWriter) WriteUsage(records []usage.Record) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2("Peak memory usage")
	md.PlainText("")

	if len(records) == 0 {
		md.PlainText("No resource usage records found.")
		return len(md.String()), md.Build()
	}

	header := []string{"File", "RAM"}
	if w.previous != nil {
		header = append(header, "Change")
	}

	rows := make([][]string, len(records))
	total := 0
	grown := 0
	for i, r := range records {
		total += r.MiB
		row := []string{"`" + r.Label + "`", humanize.IBytes(mebibytes(r.MiB))}
		if w.previous != nil {
			change, increased := w.change(r)
			if increased {
				grown++
			}
			row = append(row, change)
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("%d tests, %s in total.", len(records), humanize.IBytes(mebibytes(total)))

	if grown > 0 {
		md.PlainText("")
		md.Warningf("%d test(s) use more memory than in the previous run.", grown)
	}

	return len(md.String()), md.Build()
}

// change formats the difference of r to the previous run and reports
// whether memory grew.
func (w *MarkdownUsageWriter) change(r usage.Record) (string, bool) {
	before, ok := w.previous[r.Label]
	if !ok {
		return "new", false
	}

	diff := r.MiB - before
	switch {
	case diff > 0:
		return fmt.Sprintf("+%d MiB", diff), true
	case diff < 0:
		return fmt.Sprintf("%d MiB", diff), false
	default:
		return "±0", false
	}
}

// mebibytes converts MiB to bytes for humanize.
func mebibytes(mib int) uint64 {
	if mib < 0 {
		return 0
	}
	return uint64(mib) << 20
}
