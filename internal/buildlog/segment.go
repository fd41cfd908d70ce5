package buildlog

import (
	"regexp"
	"strings"
)

// ErrorToken marks a compiler error inside a segment.
const ErrorToken = "error:"

// progressMarker matches "[ N%]" progress markers, including "[100%]".
var progressMarker = regexp.MustCompile(`\[\s*\d+%\]`)

// Segment is the part of a build log that belongs to one failing
// compilation unit.
type Segment struct {
	// Start is the byte offset of the segment's progress marker.
	Start int

	// End is the byte offset of the next progress marker, or the document length.
	End int

	// Text is the raw log text between Start and End.
	Text string
}

// Split returns the failure segments of doc in document order.
// Spans between progress markers that do not contain ErrorToken are dropped,
// as is any text before the first marker. A log without failures yields nil.
func Split(doc string) []Segment {
	markers := progressMarker.FindAllStringIndex(doc, -1)

	var segments []Segment
	for i, m := range markers {
		end := len(doc)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}

		text := doc[m[0]:end]
		if !strings.Contains(text, ErrorToken) {
			continue
		}

		segments = append(segments, Segment{
			Start: m[0],
			End:   end,
			Text:  text,
		})
	}

	return segments
}
