package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/seqan/cihelper/internal/buildlog"
)

// MarkdownErrorWriter outputs build errors as collapsible Markdown blocks,
// one per entry, headed "Error N: summary" with the log excerpt in a code
// block. The rendered report is cut hard at the configured length, which may
// split the last block.
type MarkdownErrorWriter struct {
	baseWriter

	// maxLength is the maximum report length in characters.
	maxLength int
}

// ErrorWriterOption configures a MarkdownErrorWriter.
type ErrorWriterOption func(*MarkdownErrorWriter)

// WithMaxLength sets the maximum report length in characters.
func WithMaxLength(n int) ErrorWriterOption {
	return func(w *MarkdownErrorWriter) {
		w.maxLength = n
	}
}

// NewMarkdownErrorWriter creates a MarkdownErrorWriter that outputs to the given writer.
func NewMarkdownErrorWriter(output io.Writer, opts ...ErrorWriterOption) *MarkdownErrorWriter {
	w := &MarkdownErrorWriter{
		baseWriter: newBaseWriter(output),
		maxLength:  buildlog.DefaultReportLength,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteErrors outputs the report followed by a newline.
// Nothing is written when there are no entries.
func (w *MarkdownErrorWriter) WriteErrors(entries []buildlog.Entry) (int, error) {
	report := w.Render(entries)
	if report == "" {
		return 0, nil
	}
	return io.WriteString(w.output, report+"\n")
}

// Render returns the truncated report without writing it.
func (w *MarkdownErrorWriter) Render(entries []buildlog.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	md := markdown.NewMarkdown(io.Discard)
	for i, e := range entries {
		if i > 0 {
			// A blank line ends the previous HTML block.
			md.PlainText("")
		}
		md.Details(e.Title(), "\n"+fenced(e.Body)+"\n")
	}

	return buildlog.TruncateRunes(md.String(), w.maxLength)
}

// fenced wraps body in a code fence longer than any backtick run inside it.
func fenced(body string) string {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	return fence + "\n" + body + "\n" + fence
}
