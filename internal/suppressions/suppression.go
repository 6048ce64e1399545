// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package suppressions filters findings through user-maintained
// suppression rules, applied after validation so the audit trail still
// shows what was suppressed and why.
package suppressions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"stylescan/internal/findings"
	"stylescan/internal/observability"
)

// Rule is one suppression rule. Empty fields match everything, so a rule
// with only RuleKind set suppresses that rule family wholesale.
type Rule struct {
	ID          string     `yaml:"id"`
	RuleKind    string     `yaml:"rule,omitempty"`
	TextPattern string     `yaml:"text_pattern,omitempty"`
	BlockType   string     `yaml:"block_type,omitempty"`
	Reason      string     `yaml:"reason"`
	Enabled     bool       `yaml:"enabled"`
	CreatedAt   time.Time  `yaml:"created_at,omitempty"`
	ExpiresAt   *time.Time `yaml:"expires_at,omitempty"`

	compiled *regexp.Regexp
}

// Config is the suppression configuration file shape.
type Config struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Manager applies suppression rules to findings.
type Manager struct {
	configPath string
	rules      []Rule
	enabled    bool
	now        func() time.Time
}

// NewManager loads a suppression file. A missing or unparsable file
// yields a manager with no rules; a rule whose pattern fails to compile
// is skipped with a logged warning.
func NewManager(configPath string, observer *observability.StandardObserver) *Manager {
	m := &Manager{configPath: configPath, enabled: true, now: time.Now}
	if configPath == "" {
		return m
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		observer.LogWarning("suppressions", "load",
			fmt.Errorf("suppression file %q unavailable: %w", configPath, err))
		return m
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		observer.LogWarning("suppressions", "parse",
			fmt.Errorf("suppression file %q unparsable: %w", configPath, err))
		return m
	}

	for _, rule := range cfg.Rules {
		if rule.TextPattern != "" {
			re, err := regexp.Compile(rule.TextPattern)
			if err != nil {
				observer.LogWarning("suppressions", "compile",
					fmt.Errorf("rule %s: skipping bad pattern: %w", rule.ID, err))
				continue
			}
			rule.compiled = re
		}
		m.rules = append(m.rules, rule)
	}
	return m
}

// NewManagerFromRules builds a manager directly, for tests and embedding.
func NewManagerFromRules(rules []Rule) *Manager {
	m := &Manager{enabled: true, now: time.Now}
	for _, rule := range rules {
		if rule.TextPattern != "" {
			re, err := regexp.Compile(rule.TextPattern)
			if err != nil {
				continue
			}
			rule.compiled = re
		}
		m.rules = append(m.rules, rule)
	}
	return m
}

// SetEnabled toggles suppression application.
func (m *Manager) SetEnabled(enabled bool) { m.enabled = enabled }

// RuleCount returns the number of loaded rules.
func (m *Manager) RuleCount() int { return len(m.rules) }

// IsSuppressed checks a finding against all enabled, unexpired rules and
// returns the first matching rule.
func (m *Manager) IsSuppressed(f findings.Finding, blockType string) (bool, *Rule) {
	if !m.enabled {
		return false, nil
	}
	for i := range m.rules {
		rule := &m.rules[i]
		if !rule.Enabled {
			continue
		}
		if rule.ExpiresAt != nil && m.now().After(*rule.ExpiresAt) {
			continue
		}
		if rule.matches(f, blockType) {
			return true, rule
		}
	}
	return false, nil
}

// Apply partitions findings into kept and suppressed.
func (m *Manager) Apply(all []findings.Finding, blockType string) ([]findings.Finding, []findings.SuppressedFinding) {
	var kept []findings.Finding
	var suppressed []findings.SuppressedFinding
	for _, f := range all {
		if ok, rule := m.IsSuppressed(f, blockType); ok {
			suppressed = append(suppressed, findings.SuppressedFinding{
				Finding:      f,
				SuppressedBy: rule.ID,
				RuleReason:   rule.Reason,
				ExpiresAt:    rule.ExpiresAt,
			})
			continue
		}
		kept = append(kept, f)
	}
	return kept, suppressed
}

func (r *Rule) matches(f findings.Finding, blockType string) bool {
	if r.RuleKind != "" && r.RuleKind != f.RuleKind {
		return false
	}
	if r.BlockType != "" && r.BlockType != blockType {
		return false
	}
	if r.compiled != nil && !r.compiled.MatchString(f.Text) {
		return false
	}
	// A rule with no criteria at all matches nothing rather than
	// suppressing the whole report.
	return r.RuleKind != "" || r.BlockType != "" || r.compiled != nil
}
