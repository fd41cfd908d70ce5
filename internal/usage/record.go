package usage

import (
	"cmp"
	"slices"
	"strings"
)

// Record is the peak memory consumption of one test binary.
type Record struct {
	// Label identifies the binary, e.g. "unit/alphabet/dna4_test".
	Label string

	// MiB is the maximum resident set size in mebibytes, rounded down.
	MiB int
}

// Sort orders records by descending memory, then by descending label.
func Sort(records []Record) {
	slices.SortFunc(records, func(a, b Record) int {
		if c := cmp.Compare(b.MiB, a.MiB); c != 0 {
			return c
		}
		return strings.Compare(b.Label, a.Label)
	})
}
