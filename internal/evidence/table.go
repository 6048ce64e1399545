// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package evidence loads and serves the evidence tables driving every
// detective: phrase → base evidence, category, alternatives, and
// per-context adjustments. Tables are immutable after load and replaced
// wholesale on reload so readers never observe a partial update.
package evidence

import (
	"fmt"
	"strings"
)

// Entry is one evidence table record. BaseEvidence is the starting score
// for the phrase before any contextual clue is applied.
type Entry struct {
	BaseEvidence       float64            `yaml:"base_evidence"`
	Category           string             `yaml:"category"`
	Alternatives       []string           `yaml:"alternatives,omitempty"`
	ContextAdjustments map[string]float64 `yaml:"context_adjustments,omitempty"`
}

// Table is an immutable phrase-keyed evidence table. Lookups normalize
// the phrase the same way load did, so callers pass surface text as-is.
type Table struct {
	name    string
	entries map[string]Entry
}

// NewTable builds a table from already-validated entries. Keys are
// normalized on the way in.
func NewTable(name string, entries map[string]Entry) *Table {
	normalized := make(map[string]Entry, len(entries))
	for k, e := range entries {
		normalized[NormalizeKey(k)] = e
	}
	return &Table{name: name, entries: normalized}
}

// EmptyTable returns a table with no entries, the fallback when a table
// file is missing or unparsable.
func EmptyTable(name string) *Table {
	return &Table{name: name, entries: map[string]Entry{}}
}

// Name returns the logical table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup finds the entry for a phrase, normalizing first.
func (t *Table) Lookup(phrase string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[NormalizeKey(phrase)]
	return e, ok
}

// Contains reports whether the table has an entry for the phrase.
func (t *Table) Contains(phrase string) bool {
	_, ok := t.Lookup(phrase)
	return ok
}

// NormalizeKey lowercases a phrase and collapses interior whitespace so
// "Et  Al." and "et al." hit the same entry.
func NormalizeKey(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// tableFile is the on-disk YAML shape of one table.
type tableFile struct {
	Version string           `yaml:"version"`
	Entries map[string]Entry `yaml:"entries"`
}

// validateEntry rejects records that would corrupt scoring. The caller
// skips invalid entries with a warning rather than failing the load.
func validateEntry(key string, e Entry) error {
	if key == "" {
		return fmt.Errorf("empty phrase key")
	}
	if e.BaseEvidence < 0 || e.BaseEvidence > 1 {
		return fmt.Errorf("base_evidence %.2f for %q outside [0,1]", e.BaseEvidence, key)
	}
	return nil
}
