// Package fileutil provides the file handling shared by the cihelper
// subcommands: decoding text artifacts produced by CI tools and writing
// reports atomically under a lock.
package fileutil
