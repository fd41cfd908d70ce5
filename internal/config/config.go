package config

import (
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"

	"github.com/seqan/cihelper/internal/buildlog"
	"github.com/seqan/cihelper/internal/docgate"
	"github.com/seqan/cihelper/internal/usage"
)

// AppName is the application name used for XDG directory paths.
const AppName = "cihelper"

// Config holds all configuration options for cihelper.
// It is built from defaults, then the optional configuration file, then
// command line flags, and passed down explicitly to each subcommand.
type Config struct {
	// Verbose enables debug logging on stderr.
	Verbose bool `yaml:"-"`

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string `yaml:"-"`

	// Errors configures the build log tokenizer.
	Errors ErrorsConfig `yaml:"errors"`

	// Usage configures the resource usage reporter.
	Usage UsageConfig `yaml:"memusage"`

	// DocGate configures the documentation warning gate.
	DocGate DocGateConfig `yaml:"docgate"`
}

// ErrorsConfig holds the limits of the build error report.
type ErrorsConfig struct {
	// SummaryLength is the maximum number of characters of an error summary.
	SummaryLength int `yaml:"summary_length"`

	// BodyLines is the number of log lines shown inside each error block.
	BodyLines int `yaml:"body_lines"`

	// MaxLength caps the whole report. GitHub rejects comments above 65536
	// characters, the default leaves room for a surrounding message.
	MaxLength int `yaml:"max_length"`
}

// UsageConfig describes the layout of `/usr/bin/time -v` reports.
type UsageConfig struct {
	// BlockSize is the number of lines of one report.
	BlockSize int `yaml:"block_size"`

	// MemoryLine is the offset of the "Maximum resident set size" line in a report.
	MemoryLine int `yaml:"memory_line"`

	// LabelMarker marks the start of the label on the first line of a report.
	LabelMarker string `yaml:"label_marker"`
}

// DocGateConfig holds the warning filter of the documentation gate.
type DocGateConfig struct {
	// WarningMarker is the substring that makes a line a warning.
	WarningMarker string `yaml:"warning_marker"`

	// Exclude lists markers of warnings that are tolerated.
	// A list in the configuration file replaces the defaults.
	Exclude []string `yaml:"exclude"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Errors: ErrorsConfig{
			SummaryLength: buildlog.DefaultSummaryLength,
			BodyLines:     buildlog.DefaultBodyLines,
			MaxLength:     buildlog.DefaultReportLength,
		},
		Usage: UsageConfig{
			BlockSize:   usage.DefaultBlockSize,
			MemoryLine:  usage.DefaultMemoryLine,
			LabelMarker: usage.DefaultLabelMarker,
		},
		DocGate: DocGateConfig{
			WarningMarker: docgate.DefaultWarningMarker,
			Exclude:       docgate.DefaultExcludedMarkers(),
		},
	}
}

// XDGConfigDir returns the XDG config directory for cihelper.
// On Linux: ~/.config/cihelper
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Errors.SummaryLength <= 0 {
		return ErrInvalidSummaryLength
	}
	if c.Errors.BodyLines <= 0 {
		return ErrInvalidBodyLines
	}
	if c.Errors.MaxLength <= 0 {
		return ErrInvalidReportLength
	}

	if c.Usage.BlockSize <= 0 {
		return ErrInvalidBlockSize
	}
	// Offset 0 is the label line.
	if c.Usage.MemoryLine <= 0 || c.Usage.MemoryLine >= c.Usage.BlockSize {
		return ErrInvalidMemoryLine
	}
	if c.Usage.LabelMarker == "" {
		return ErrEmptyLabelMarker
	}

	if c.DocGate.WarningMarker == "" {
		return ErrEmptyWarningMarker
	}

	return nil
}

// AddExcludedMarkers appends markers to the gate's exclusion list, skipping
// empty and duplicate entries.
func (c *Config) AddExcludedMarkers(markers ...string) {
	for _, m := range markers {
		if m == "" || slices.Contains(c.DocGate.Exclude, m) {
			continue
		}
		c.DocGate.Exclude = append(c.DocGate.Exclude, m)
	}
}
