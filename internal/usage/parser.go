package usage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// DefaultBlockSize is the number of lines `/usr/bin/time -v` prints per command.
	DefaultBlockSize = 23

	// DefaultMemoryLine is the offset of "Maximum resident set size (kbytes)" in a block.
	DefaultMemoryLine = 9

	// DefaultLabelMarker starts the label on the first line of a block.
	DefaultLabelMarker = "unit"
)

// Parser reads concatenated resource usage reports.
type Parser struct {
	blockSize  int
	memoryLine int
	marker     string
}

// Option configures a Parser.
type Option func(*Parser)

// WithBlockSize sets the number of lines per report.
func WithBlockSize(n int) Option {
	return func(p *Parser) {
		p.blockSize = n
	}
}

// WithMemoryLine sets the offset of the memory line within a report.
func WithMemoryLine(n int) Option {
	return func(p *Parser) {
		p.memoryLine = n
	}
}

// WithLabelMarker sets the marker that makes a block reportable.
func WithLabelMarker(marker string) Option {
	return func(p *Parser) {
		p.marker = marker
	}
}

// NewParser creates a Parser for the default `/usr/bin/time -v` layout.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		blockSize:  DefaultBlockSize,
		memoryLine: DefaultMemoryLine,
		marker:     DefaultLabelMarker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns one record per block whose first line contains the label
// marker, in input order. Blocks without the marker are skipped.
func (p *Parser) Parse(r io.Reader) ([]Record, error) {
	if p.blockSize <= 0 || p.memoryLine <= 0 || p.memoryLine >= p.blockSize {
		return nil, fmt.Errorf("invalid block layout: size %d, memory line %d", p.blockSize, p.memoryLine)
	}

	br := bufio.NewReader(r)

	var (
		records    []Record
		label      string
		reportable bool
		lineNo     int
	)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read line %d: %w", lineNo+1, err)
		}
		if line == "" && err != nil {
			break
		}

		switch offset := lineNo % p.blockSize; {
		case offset == 0:
			label, reportable = p.parseLabel(line)
		case offset == p.memoryLine && reportable:
			kib, perr := lastInt(line)
			if perr != nil {
				return nil, &ParseError{Line: lineNo + 1, Label: label, Err: perr}
			}
			records = append(records, Record{Label: label, MiB: kib / 1024})
			reportable = false
		}
		lineNo++

		if err != nil {
			break
		}
	}

	if reportable {
		return nil, &ParseError{
			Line:  lineNo,
			Label: label,
			Err:   fmt.Errorf("%w: input ends before memory line", ErrMalformedBlock),
		}
	}

	return records, nil
}

// parseLabel returns the label of a block's first line. The label runs from
// the marker to the end of the line without its last two characters, the
// closing quote of the command and the line terminator.
func (p *Parser) parseLabel(line string) (string, bool) {
	idx := strings.Index(line, p.marker)
	if idx < 0 {
		return "", false
	}

	rest := line[idx:]
	if strings.HasSuffix(rest, "\r\n") {
		rest = strings.TrimSuffix(rest, "\r\n") + "\n"
	}
	if len(rest) < 2 {
		return "", true
	}
	return rest[:len(rest)-2], true
}

// lastInt parses the last whitespace-separated token of line as an integer.
func lastInt(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty memory line", ErrMalformedBlock)
	}

	last := fields[len(fields)-1]
	n, err := strconv.Atoi(last)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedBlock, last)
	}
	return n, nil
}
