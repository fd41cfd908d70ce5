package main

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes of the cihelper binary.
const (
	// exitSuccess means the command completed and found nothing to report as failure.
	exitSuccess = 0
	// exitFailure means an error occurred or the documentation gate found warnings.
	exitFailure = 1
)

// exitError carries an exit code out of a command.
// A nil err means the command already printed everything the user needs.
type exitError struct {
	code int
	err  error
}

// Error implements the error interface.
func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

// Unwrap returns the underlying error.
func (e *exitError) Unwrap() error {
	return e.err
}

// handleError prints err to w unless it is silent and returns the exit code
// the process should terminate with.
func handleError(err error, w io.Writer) int {
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(w, ee.err)
		}
		return ee.code
	}

	fmt.Fprintln(w, err)
	return exitFailure
}
