// Package docgate runs a documentation generator and fails when it reports
// warnings.
//
// The generator (usually doxygen) is started with its standard error merged
// into its standard output. The combined stream is read line by line while the
// generator runs, so memory use does not grow with the amount of output. Every
// line that contains the warning marker and none of the excluded markers is
// echoed and counted:
//
//	gate := docgate.New(docgate.WithOutput(os.Stdout))
//	count, err := gate.Run(ctx, "doxygen", "Doxyfile")
//
// Warnings about CLANG_OPTIONS and CLANG_ASSISTED_PARSING are excluded by
// default: they only say that the doxygen build lacks libclang support.
package docgate
