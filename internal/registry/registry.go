// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package registry provides the curated name registry used by the
// registry-based entity detector: known organizations, products and
// terms with a priority attribute that maps to detection confidence.
package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"stylescan/internal/observability"
	"stylescan/internal/resilience"
)

// Record is one registry entry. Priority is high, medium or low.
type Record struct {
	Name      string   `yaml:"name"`
	Label     string   `yaml:"label"`
	Priority  string   `yaml:"priority"`
	Aliases   []string `yaml:"aliases,omitempty"`
	Preferred string   `yaml:"preferred,omitempty"`
}

// Confidence maps the record's priority to a detection confidence.
func (r *Record) Confidence() float64 {
	switch r.Priority {
	case "high":
		return 0.98
	case "medium":
		return 0.95
	default:
		return 0.85
	}
}

// Detection is one registry match in a text, in reading order.
type Detection struct {
	Text   string
	Start  int
	End    int
	Record *Record
}

// Registry is an immutable lookup over records and their aliases.
type Registry struct {
	records map[string]*Record // normalized name/alias -> record
	keys    []string           // surface keys, longest first, for DetectAll
}

type registryFile struct {
	Version string   `yaml:"version"`
	Records []Record `yaml:"records"`
}

// Load reads a registry YAML file. A missing or unparsable file yields an
// empty registry and a logged warning, never an error that would stop
// analysis.
func Load(path string, observer *observability.StandardObserver) *Registry {
	var data []byte
	err := resilience.RetryWithBackoff(context.Background(), resilience.TableLoadRetryConfig(), func(ctx context.Context) error {
		var readErr error
		data, readErr = os.ReadFile(filepath.Clean(path))
		return readErr
	})
	if err != nil {
		observer.LogWarning("registry", "load", fmt.Errorf("registry %q unavailable, using empty registry: %w", path, err))
		return New(nil)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		observer.LogWarning("registry", "parse", fmt.Errorf("registry %q unparsable, using empty registry: %w", path, err))
		return New(nil)
	}

	return New(file.Records)
}

// New builds a registry from records. Aliases resolve to the same record
// as the primary name.
func New(records []Record) *Registry {
	r := &Registry{records: make(map[string]*Record)}
	for i := range records {
		rec := &records[i]
		if rec.Name == "" {
			continue
		}
		r.add(rec.Name, rec)
		for _, alias := range rec.Aliases {
			r.add(alias, rec)
		}
	}
	// Longest key first so "Acme Cloud Storage" wins over "Acme" when
	// both cover the same region.
	sort.SliceStable(r.keys, func(i, j int) bool {
		return len(r.keys[i]) > len(r.keys[j])
	})
	return r
}

func (r *Registry) add(surface string, rec *Record) {
	key := normalize(surface)
	if _, exists := r.records[key]; exists {
		return
	}
	r.records[key] = rec
	r.keys = append(r.keys, surface)
}

// IsKnown reports whether a name or alias is registered.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.records[normalize(name)]
	return ok
}

// Get returns the record for a name or alias, or nil.
func (r *Registry) Get(name string) *Record {
	return r.records[normalize(name)]
}

// Len returns the number of distinct lookup keys.
func (r *Registry) Len() int {
	return len(r.records)
}

// DetectAll finds every registry match in a text, ordered by start
// offset. Overlapping matches of different keys are all reported; the
// entity ensemble resolves overlaps by confidence downstream.
func (r *Registry) DetectAll(text string) []Detection {
	var out []Detection
	lower := strings.ToLower(text)
	for _, key := range r.keys {
		needle := strings.ToLower(key)
		for from := 0; ; {
			idx := strings.Index(lower[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)
			from = end
			if !wordBounded(text, start, end) {
				continue
			}
			out = append(out, Detection{
				Text:   text[start:end],
				Start:  start,
				End:    end,
				Record: r.records[normalize(key)],
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End > out[j].End
	})
	return out
}

// wordBounded reports whether [start, end) falls on word boundaries.
func wordBounded(text string, start, end int) bool {
	if start > 0 && isWordChar(rune(text[start-1])) {
		return false
	}
	if end < len(text) && isWordChar(rune(text[end])) {
		return false
	}
	return true
}

func isWordChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
