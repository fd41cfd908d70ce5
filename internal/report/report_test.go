package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/seqan/cihelper/internal/buildlog"
	"github.com/seqan/cihelper/internal/usage"
)

const scenarioLog = "[ 10%] building foo\n[ 20%] error: cannot find symbol 'x'; at line 5\nmore context\n[ 30%] done\n"

// countBlocks parses rendered Markdown and counts <details> HTML blocks and
// fenced code blocks.
func countBlocks(t *testing.T, source string) (details, fences int) {
	t.Helper()

	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHTMLBlock:
			lines := n.Lines()
			if lines.Len() == 0 {
				break
			}
			first := lines.At(0)
			if bytes.HasPrefix(first.Value(src), []byte("<details>")) {
				details++
			}
		case ast.KindFencedCodeBlock:
			fences++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("failed to walk markdown: %v", err)
	}
	return details, fences
}

func TestMarkdownErrorWriter(t *testing.T) {
	t.Parallel()

	t.Run("scenario log renders one block", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		entries := buildlog.NewTokenizer().Tokenize(scenarioLog)
		if _, err := NewMarkdownErrorWriter(&buf).WriteErrors(entries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "<summary>Error 1: error: cannot find symbol &#x27;x&#x27;</summary>") {
			t.Errorf("expected escaped summary header, got %q", output)
		}
		if !strings.Contains(output, "```\n[ 20%] error: cannot find symbol 'x'; at line 5\nmore context\n```") {
			t.Errorf("expected raw body in code block, got %q", output)
		}
		if strings.Contains(output, "Error 2") {
			t.Error("expected exactly one block")
		}
		if strings.Contains(output, "[ 30%]") || strings.Contains(output, "[ 10%]") {
			t.Error("expected neighbouring segments to be excluded")
		}

		details, fences := countBlocks(t, output)
		if details != 1 || fences != 1 {
			t.Errorf("expected 1 details block and 1 code block, got %d and %d", details, fences)
		}
	})

	t.Run("empty entries write nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownErrorWriter(&buf).WriteErrors(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 || buf.Len() != 0 {
			t.Errorf("expected empty output, got %q", buf.String())
		}
	})

	t.Run("blocks follow document order", func(t *testing.T) {
		t.Parallel()

		var log strings.Builder
		for i := 1; i <= 5; i++ {
			fmt.Fprintf(&log, "[%3d%%] Building unit %d\nunit%d.cpp:1:1: error: failure %d\n", i*10, i, i, i)
			// Later segments are longer than earlier ones.
			log.WriteString(strings.Repeat("  context\n", i*7))
		}

		var buf bytes.Buffer
		entries := buildlog.NewTokenizer().Tokenize(log.String())
		if _, err := NewMarkdownErrorWriter(&buf).WriteErrors(entries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		last := -1
		for i := 1; i <= 5; i++ {
			idx := strings.Index(output, fmt.Sprintf("Error %d: error: failure %d", i, i))
			if idx < 0 {
				t.Fatalf("missing block %d", i)
			}
			if idx < last {
				t.Errorf("block %d rendered out of order", i)
			}
			last = idx
		}

		details, fences := countBlocks(t, output)
		if details != 5 || fences != 5 {
			t.Errorf("expected 5 details and 5 code blocks, got %d and %d", details, fences)
		}
	})

	t.Run("body is limited to the first lines", func(t *testing.T) {
		t.Parallel()

		log := "[ 1%] a\nerror: x\n" + strings.Repeat("noise\n", 100)
		entries := buildlog.NewTokenizer().Tokenize(log)
		output := NewMarkdownErrorWriter(&bytes.Buffer{}).Render(entries)

		if got := strings.Count(output, "noise"); got != 28 {
			t.Errorf("expected 28 noise lines (30 minus marker and error line), got %d", got)
		}
	})

	t.Run("body with code fences gets a longer fence", func(t *testing.T) {
		t.Parallel()

		entries := []buildlog.Entry{{Number: 1, Summary: "error: x", Body: "```\nquoted\n```"}}
		output := NewMarkdownErrorWriter(&bytes.Buffer{}).Render(entries)

		if !strings.Contains(output, "````\n```\nquoted\n```\n````") {
			t.Errorf("expected four-backtick fence, got %q", output)
		}
		_, fences := countBlocks(t, output)
		if fences != 1 {
			t.Errorf("expected a single code block, got %d", fences)
		}
	})

	t.Run("long reports are cut to the exact length", func(t *testing.T) {
		t.Parallel()

		var log strings.Builder
		for i := 0; i < 2000; i++ {
			fmt.Fprintf(&log, "[ %d%%] Building\nfile.cpp:%d: error: something went wrong (%d)\n", i%100, i, i)
		}

		var buf bytes.Buffer
		entries := buildlog.NewTokenizer().Tokenize(log.String())
		if _, err := NewMarkdownErrorWriter(&buf).WriteErrors(entries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.HasSuffix(output, "\n") {
			t.Fatal("expected trailing newline")
		}
		if got := utf8.RuneCountInString(output); got != buildlog.DefaultReportLength+1 {
			t.Errorf("expected %d characters plus newline, got %d", buildlog.DefaultReportLength, got)
		}
	})

	t.Run("cut counts characters, not bytes", func(t *testing.T) {
		t.Parallel()

		entries := []buildlog.Entry{{Number: 1, Summary: "error: ä", Body: strings.Repeat("ü", 100)}}
		output := NewMarkdownErrorWriter(&bytes.Buffer{}, WithMaxLength(60)).Render(entries)

		if got := utf8.RuneCountInString(output); got != 60 {
			t.Errorf("expected 60 characters, got %d", got)
		}
		if !utf8.ValidString(output) {
			t.Error("expected valid UTF-8 after cut")
		}
	})

	t.Run("short reports are not padded", func(t *testing.T) {
		t.Parallel()

		entries := buildlog.NewTokenizer().Tokenize(scenarioLog)
		output := NewMarkdownErrorWriter(&bytes.Buffer{}, WithMaxLength(1_000_000)).Render(entries)
		if utf8.RuneCountInString(output) >= 1_000_000 {
			t.Error("expected report shorter than the limit")
		}
	})
}

func TestCSVUsageWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows", func(t *testing.T) {
		t.Parallel()

		records := []usage.Record{
			{Label: "unit/io/sam_file_test", MiB: 12},
			{Label: "unit/alphabet/dna4_test", MiB: 2},
		}

		var buf bytes.Buffer
		if _, err := NewCSVUsageWriter(&buf).WriteUsage(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "File,RAM in MiB\nunit/io/sam_file_test,12\nunit/alphabet/dna4_test,2\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("header only without records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVUsageWriter(&buf).WriteUsage(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "File,RAM in MiB\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("labels with commas are quoted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVUsageWriter(&buf).WriteUsage([]usage.Record{{Label: "unit/a,b_test", MiB: 1}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(rows) != 2 || rows[1][0] != "unit/a,b_test" {
			t.Errorf("unexpected rows %v", rows)
		}
	})
}

func TestMarkdownUsageWriter(t *testing.T) {
	t.Parallel()

	records := []usage.Record{
		{Label: "unit/io/sam_file_test", MiB: 12},
		{Label: "unit/alphabet/dna4_test", MiB: 2},
		{Label: "unit/search/fm_index_test", MiB: 1},
	}

	t.Run("renders table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownUsageWriter(&buf).WriteUsage(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Peak memory usage") {
			t.Error("expected heading")
		}
		if !strings.Contains(output, "`unit/io/sam_file_test`") {
			t.Error("expected label in table")
		}
		if !strings.Contains(output, "12 MiB") {
			t.Errorf("expected human readable size, got %q", output)
		}
		if strings.Contains(output, "Change") {
			t.Error("expected no change column without previous run")
		}
		if !strings.Contains(output, "3 tests") {
			t.Error("expected test count")
		}
	})

	t.Run("compares with previous run", func(t *testing.T) {
		t.Parallel()

		previous := map[string]int{
			"unit/io/sam_file_test":   10,
			"unit/alphabet/dna4_test": 2,
		}

		var buf bytes.Buffer
		if _, err := NewMarkdownUsageWriter(&buf, WithPrevious(previous)).WriteUsage(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Change", "+2 MiB", "±0", "new", "1 test(s) use more memory"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output %q", want, output)
			}
		}
	})

	t.Run("no records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownUsageWriter(&buf).WriteUsage(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No resource usage records found.") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}
