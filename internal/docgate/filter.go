package docgate

import (
	"slices"
	"strings"
)

// DefaultWarningMarker is the substring that makes a line a warning.
const DefaultWarningMarker = "warning:"

// DefaultExcludedMarkers returns the markers of tolerated warnings.
func DefaultExcludedMarkers() []string {
	return []string{"CLANG_OPTIONS", "CLANG_ASSISTED_PARSING"}
}

// Filter decides which output lines are qualifying warnings.
type Filter struct {
	marker   string
	excluded []string
}

// NewFilter creates a Filter for lines containing marker and none of excluded.
func NewFilter(marker string, excluded ...string) *Filter {
	return &Filter{
		marker:   marker,
		excluded: slices.Clone(excluded),
	}
}

// Qualifies reports whether line is a warning that counts.
func (f *Filter) Qualifies(line string) bool {
	if !strings.Contains(line, f.marker) {
		return false
	}
	for _, ex := range f.excluded {
		if strings.Contains(line, ex) {
			return false
		}
	}
	return true
}
