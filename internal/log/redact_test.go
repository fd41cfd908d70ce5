package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		masked bool
	}{
		{"github token", "https://x-access-token:ghp_" + strings.Repeat("a", 36) + "@github.com/seqan/seqan3", true},
		{"github fine-grained token", "github_pat_" + strings.Repeat("B", 30), true},
		{"gitlab token", "glpat-" + strings.Repeat("c", 20), true},
		{"bearer header", "Authorization: Bearer abc.def.ghi", true},
		{"doxyfile argument", "Doxyfile", false},
		{"test label", "unit/alphabet/dna4_test", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Redact(tt.in)
			if masked := strings.Contains(got, MaskValue); masked != tt.masked {
				t.Errorf("Redact(%q) = %q, masked=%v, want masked=%v", tt.in, got, masked, tt.masked)
			}
			if !tt.masked && got != tt.in {
				t.Errorf("expected %q unchanged, got %q", tt.in, got)
			}
		})
	}
}

func TestRedactingHandler(t *testing.T) {
	t.Parallel()

	t.Run("masks sensitive keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Info("upload", "codecov_token", "0123456789", "GITHUB_TOKEN", "x")

		output := buf.String()
		if strings.Contains(output, "0123456789") {
			t.Errorf("expected token to be masked, got %q", output)
		}
		if strings.Count(output, MaskValue) != 2 {
			t.Errorf("expected two masked values, got %q", output)
		}
	})

	t.Run("masks tokens inside values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		secret := "ghs_" + strings.Repeat("z", 36)
		logger.Debug("starting documentation generator", "arg", "--token="+secret)

		if strings.Contains(buf.String(), secret) {
			t.Errorf("expected token to be masked, got %q", buf.String())
		}
	})

	t.Run("masks inside groups and WithAttrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true).With("password", "hunter2").WithGroup("child")
		logger.Info("run", slog.Group("env", slog.String("auth_header", "abc")))

		output := buf.String()
		if strings.Contains(output, "hunter2") || strings.Contains(output, "=abc") {
			t.Errorf("expected values to be masked, got %q", output)
		}
	})

	t.Run("keeps harmless attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewLogger(&buf, true).Info("parsed", "records", 3, "input", "time.txt")

		output := buf.String()
		if !strings.Contains(output, "records=3") || !strings.Contains(output, "input=time.txt") {
			t.Errorf("unexpected output %q", output)
		}
	})
}

func TestNewLoggerLevel(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer
	NewLogger(&quiet, false).Debug("hidden")
	NewLogger(&verbose, true).Debug("shown")

	if quiet.Len() != 0 {
		t.Errorf("expected debug to be suppressed by default, got %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "shown") {
		t.Errorf("expected debug output in verbose mode, got %q", verbose.String())
	}
}
