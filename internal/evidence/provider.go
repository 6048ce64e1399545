// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"stylescan/internal/observability"
	"stylescan/internal/resilience"
)

// Provider serves shared evidence tables by logical name. One Provider is
// constructed at process startup and passed by handle to every consumer,
// keeping the "one shared table per name" semantics without package-level
// mutable state. Reads are lock-cheap and concurrent; a reload swaps the
// whole *Table pointer so readers never see a partially-updated table.
type Provider struct {
	dir      string
	observer *observability.StandardObserver

	mu     sync.RWMutex
	tables map[string]*Table
}

// NewProvider creates a provider rooted at a directory of <name>.yaml
// table files.
func NewProvider(dir string, observer *observability.StandardObserver) *Provider {
	return &Provider{
		dir:      dir,
		observer: observer,
		tables:   make(map[string]*Table),
	}
}

// Load returns the table for a logical name, loading and caching it on
// first use. A missing or unparsable table yields an empty table and a
// logged warning; scoring proceeds with reduced recall rather than
// failing.
func (p *Provider) Load(name string) *Table {
	p.mu.RLock()
	table, ok := p.tables[name]
	p.mu.RUnlock()
	if ok {
		return table
	}

	table = p.readTable(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	// Another caller may have raced the load; keep the first result so
	// every consumer shares one instance.
	if existing, ok := p.tables[name]; ok {
		return existing
	}
	p.tables[name] = table
	return table
}

// Preload installs an in-memory table under its logical name, ahead of
// any disk load. Embedders use this to supply built-in tables without a
// tables directory.
func (p *Provider) Preload(table *Table) {
	p.mu.Lock()
	p.tables[table.Name()] = table
	p.mu.Unlock()
}

// Reload re-reads a table from disk and atomically replaces the cached
// instance. Callers holding the old *Table keep a consistent snapshot.
func (p *Provider) Reload(name string) {
	table := p.readTable(name)
	p.mu.Lock()
	p.tables[name] = table
	p.mu.Unlock()
}

// Names returns the logical names currently cached.
func (p *Provider) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.tables))
	for name := range p.tables {
		names = append(names, name)
	}
	return names
}

// readTable loads one table file, falling back to an empty table on any
// failure. Individual invalid entries are skipped, not fatal.
func (p *Provider) readTable(name string) *Table {
	path := filepath.Join(p.dir, name+".yaml")

	var data []byte
	err := resilience.RetryWithBackoff(context.Background(), resilience.TableLoadRetryConfig(), func(ctx context.Context) error {
		var readErr error
		data, readErr = os.ReadFile(filepath.Clean(path))
		return readErr
	})
	if err != nil {
		p.observer.LogWarning("evidence_provider", "load_table",
			fmt.Errorf("table %q unavailable, using empty table: %w", name, err))
		return EmptyTable(name)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		p.observer.LogWarning("evidence_provider", "parse_table",
			fmt.Errorf("table %q unparsable, using empty table: %w", name, err))
		return EmptyTable(name)
	}

	entries := make(map[string]Entry, len(file.Entries))
	for key, entry := range file.Entries {
		if err := validateEntry(key, entry); err != nil {
			p.observer.LogWarning("evidence_provider", "validate_entry",
				fmt.Errorf("table %q: skipping entry: %w", name, err))
			continue
		}
		entries[key] = entry
	}

	return NewTable(name, entries)
}
