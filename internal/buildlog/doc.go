// Package buildlog splits compiler build logs into failure segments and
// extracts a short diagnostic summary from each of them.
//
// A build log interleaves progress markers such as "[ 42%] Building CXX object"
// with the compiler's multi-line diagnostics. Every span that starts at a
// progress marker and contains "error:" before the next marker is a failure
// segment:
//
//	[ 10%] Building CXX object test/unit/alphabet/dna4_test.cpp.o   <- skipped
//	[ 20%] Building CXX object test/unit/io/sam_test.cpp.o          <- segment
//	sam_test.cpp:12:5: error: no member named 'foo'; did you mean ...
//	[ 30%] Linking ...                                              <- skipped
//
// Segments are reported in document order and never reordered.
package buildlog
