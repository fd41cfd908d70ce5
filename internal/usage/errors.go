package usage

import (
	"errors"
	"fmt"
)

// ErrMalformedBlock is returned when a reportable block has no parseable
// memory line.
var ErrMalformedBlock = errors.New("malformed resource usage block")

// ParseError describes where parsing a report failed.
type ParseError struct {
	// Line is the 1-based line number in the input.
	Line int

	// Label is the label of the block being parsed.
	Label string

	// Err is the underlying error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Label, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
