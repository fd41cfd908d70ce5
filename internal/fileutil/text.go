package fileutil

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newDecoder returns a decoder that strips a UTF-8 byte order mark, switches
// to UTF-16 when a UTF-16 byte order mark is present and otherwise decodes
// UTF-8, replacing invalid bytes with U+FFFD.
func newDecoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

// DecodeText converts raw tool output to a valid UTF-8 string.
func DecodeText(b []byte) string {
	out, _, err := transform.Bytes(newDecoder(), b)
	if err != nil {
		// Fall back to the raw bytes.
		return string(b)
	}
	return string(out)
}

// DecodeLine converts one line of tool output to a valid UTF-8 string.
// Unlike DecodeText it never looks for a byte order mark, which is only
// meaningful at the start of a stream.
func DecodeLine(b []byte) string {
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// NewTextReader wraps r so that reads return decoded UTF-8 text.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, newDecoder())
}

// ReadText reads the whole file at path as decoded text.
func ReadText(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Reading user-provided CI artifacts is intentional
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(NewTextReader(f))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
