// Package config provides configuration structures and utilities for cihelper.
// It holds the limits and markers used by the build log tokenizer, the resource
// usage reporter and the documentation warning gate, and loads optional
// overrides from a YAML file.
package config
