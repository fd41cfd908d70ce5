package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so that callers can use
// errors.Is() while still getting a readable message.
var (
	// ErrInvalidSummaryLength is returned when the error summary limit is not positive.
	ErrInvalidSummaryLength = errors.New("invalid summary length: must be positive")

	// ErrInvalidBodyLines is returned when the number of body lines per error block is not positive.
	ErrInvalidBodyLines = errors.New("invalid body lines: must be positive")

	// ErrInvalidReportLength is returned when the report size cap is not positive.
	ErrInvalidReportLength = errors.New("invalid report length: must be positive")

	// ErrInvalidBlockSize is returned when the resource usage block size is not positive.
	ErrInvalidBlockSize = errors.New("invalid block size: must be positive")

	// ErrInvalidMemoryLine is returned when the memory line offset does not fall
	// strictly between the label line and the end of the block.
	ErrInvalidMemoryLine = errors.New("invalid memory line: must be between 1 and block size - 1")

	// ErrEmptyLabelMarker is returned when no label marker is configured.
	ErrEmptyLabelMarker = errors.New("invalid label marker: must not be empty")

	// ErrEmptyWarningMarker is returned when no warning marker is configured.
	ErrEmptyWarningMarker = errors.New("invalid warning marker: must not be empty")
)
