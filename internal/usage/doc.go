// Package usage extracts peak memory consumption from the output of
// `/usr/bin/time -v`.
//
// The CI runs every unit test under `/usr/bin/time -v` and concatenates the
// reports into one file. Each report has a fixed number of lines; the first
// one names the command and the tenth one holds the maximum resident set size:
//
//	Command being timed: "./unit/alphabet/dna4_test"
//	User time (seconds): 0.01
//	...
//	Maximum resident set size (kbytes): 4096
//	...
//
// The layout is positional. DefaultBlockSize and DefaultMemoryLine must match
// the tool that produced the input.
package usage
