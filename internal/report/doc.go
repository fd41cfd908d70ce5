// Package report renders the results of the cihelper subcommands.
//
// This package contains writers for different output formats:
//   - MarkdownErrorWriter: collapsible build error blocks for a pull request comment
//   - CSVUsageWriter: the peak memory table consumed by later CI steps
//   - MarkdownUsageWriter: a peak memory summary for the job log or step summary
//
// Report writing is kept apart from parsing (packages buildlog and usage), so
// that output formats can be added without touching the parsers.
package report
