// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formatters renders analysis reports. Concrete formatters
// register themselves with the default registry from their init, so the
// CLI selects them by name after blank-importing the format packages.
package formatters

import (
	"sort"

	"stylescan/internal/entities"
	"stylescan/internal/findings"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Severities map[string]bool // Which severity buckets to display
	Verbose    bool            // Whether to display decision trails
	NoColor    bool            // Whether to disable colored output
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the findings according to the formatter's output
	// format. Resolved entities accompany the findings; formatters that
	// have no place for them ignore the slice.
	Format(results []findings.Finding, suppressed []findings.SuppressedFinding, ents []entities.DetectedEntity, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// FilterBySeverity drops findings whose severity bucket the options
// exclude. A nil severity map keeps everything.
func FilterBySeverity(results []findings.Finding, options FormatterOptions) []findings.Finding {
	if options.Severities == nil {
		return results
	}
	var out []findings.Finding
	for _, f := range results {
		if options.Severities[f.SeverityName()] {
			out = append(out, f)
		}
	}
	return out
}
