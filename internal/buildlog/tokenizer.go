package buildlog

import "strconv"

// Entry is one failure of the build log, ready to be rendered.
type Entry struct {
	// Number is the 1-based position of the failure in the log.
	Number int

	// Summary is the truncated and HTML-escaped diagnostic summary.
	Summary string

	// Body holds the first lines of the failure segment, unescaped.
	Body string
}

// Title returns the visible header of the entry.
func (e Entry) Title() string {
	return "Error " + strconv.Itoa(e.Number) + ": " + e.Summary
}

// Tokenizer turns a build log into report entries.
type Tokenizer struct {
	summaryLength int
	bodyLines     int
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithSummaryLength sets the maximum summary length in characters.
func WithSummaryLength(n int) Option {
	return func(t *Tokenizer) {
		t.summaryLength = n
	}
}

// WithBodyLines sets how many segment lines are kept per entry.
func WithBodyLines(n int) Option {
	return func(t *Tokenizer) {
		t.bodyLines = n
	}
}

// NewTokenizer creates a Tokenizer with the default limits.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		summaryLength: DefaultSummaryLength,
		bodyLines:     DefaultBodyLines,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns one entry per failure segment of doc, numbered in
// document order.
func (t *Tokenizer) Tokenize(doc string) []Entry {
	segments := Split(doc)

	entries := make([]Entry, 0, len(segments))
	for i, seg := range segments {
		entries = append(entries, Entry{
			Number:  i + 1,
			Summary: Escape(Summarize(seg.Text, t.summaryLength)),
			Body:    Head(seg.Text, t.bodyLines),
		})
	}
	return entries
}
