package buildlog

import (
	"strings"
	"unicode"
)

// Default limits of a rendered error report.
const (
	// DefaultSummaryLength is the maximum number of characters of a summary.
	DefaultSummaryLength = 110

	// DefaultBodyLines is the number of segment lines kept in an entry body.
	DefaultBodyLines = 30

	// DefaultReportLength caps the rendered report so that it fits into a
	// single GitHub comment.
	DefaultReportLength = 65300
)

// summaryTerminators end a summary: line breaks, the start of a note
// ("; did you mean") and the start of template arguments or locations.
const summaryTerminators = "\r\n;("

// markupEscaper escapes characters that would be interpreted as HTML.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Summarize extracts the diagnostic summary of a segment: the text from the
// first ErrorToken up to the next line break, ';' or '(' with trailing
// whitespace removed, cut to at most maxLen characters. The result is not escaped.
//
// Segments produced by Split always contain ErrorToken; for any other text the
// summary is empty.
func Summarize(text string, maxLen int) string {
	start := strings.Index(text, ErrorToken)
	if start < 0 {
		return ""
	}

	summary := text[start:]
	if end := strings.IndexAny(summary, summaryTerminators); end >= 0 {
		summary = summary[:end]
	}
	summary = strings.TrimRightFunc(summary, unicode.IsSpace)

	return TruncateRunes(summary, maxLen)
}

// Escape replaces &, <, >, " and ' with HTML character references.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// Head returns the first n lines of text with trailing whitespace removed
// from the end of the result.
func Head(text string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
}

// TruncateRunes cuts s to at most n characters without splitting a
// multi-byte character.
func TruncateRunes(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
