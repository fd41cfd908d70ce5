// Package main provides the entry point for the cihelper CLI.
//
// cihelper bundles three small CI helpers of a C++ library project:
// a build log error tokenizer, a peak memory usage reporter and a
// documentation warning gate.
//
// Usage:
//
//	cihelper errors build.log
//	cihelper memusage time.txt memusage.csv
//	cihelper docgate -e doxygen -i Doxyfile
//
// See --help for all available options.
package main

// main is the entry point for cihelper.
func main() {
	Execute()
}
