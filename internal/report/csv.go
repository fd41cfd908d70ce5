package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/seqan/cihelper/internal/usage"
)

// UsageCSVHeader is the header row of the usage table.
var UsageCSVHeader = []string{"File", "RAM in MiB"}

// CSVUsageWriter outputs usage records as comma-separated values with a
// header row and no index column.
type CSVUsageWriter struct {
	baseWriter
}

// NewCSVUsageWriter creates a CSVUsageWriter that outputs to the given writer.
func NewCSVUsageWriter(output io.Writer) *CSVUsageWriter {
	return &CSVUsageWriter{baseWriter: newBaseWriter(output)}
}

// WriteUsage outputs the header and one row per record.
func (w *CSVUsageWriter) WriteUsage(records []usage.Record) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(UsageCSVHeader); err != nil {
		return 0, err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Label, strconv.Itoa(r.MiB)}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
