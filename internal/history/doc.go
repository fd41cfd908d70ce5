// Package history provides SQLite-based storage of resource usage runs.
//
// Every `cihelper memusage --history <file>` invocation stores its records as
// one run. The previous run is used to show how the peak memory of each test
// binary changed. The database is a single file chosen by the caller, typically
// restored from and saved to the CI cache.
//
// The driver is modernc.org/sqlite, which needs no cgo.
package history
