// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package suppressions

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylescan/internal/findings"
	"stylescan/internal/observability"
)

func suppObserver() *observability.StandardObserver {
	return observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
}

func latinFinding(text string) findings.Finding {
	return findings.Finding{Text: text, RuleKind: "latin_abbreviation"}
}

func TestIsSuppressed_RuleKindMatch(t *testing.T) {
	m := NewManagerFromRules([]Rule{
		{ID: "S1", RuleKind: "latin_abbreviation", Reason: "allowed", Enabled: true},
	})

	ok, rule := m.IsSuppressed(latinFinding("e.g."), "paragraph")
	require.True(t, ok)
	assert.Equal(t, "S1", rule.ID)

	ok, _ = m.IsSuppressed(findings.Finding{RuleKind: "undefined_acronym"}, "paragraph")
	assert.False(t, ok)
}

func TestIsSuppressed_TextPatternAndBlockType(t *testing.T) {
	m := NewManagerFromRules([]Rule{
		{ID: "S1", TextPattern: `^et al\.$`, Enabled: true},
		{ID: "S2", BlockType: "heading", Enabled: true},
	})

	ok, rule := m.IsSuppressed(latinFinding("et al."), "paragraph")
	require.True(t, ok)
	assert.Equal(t, "S1", rule.ID)

	ok, _ = m.IsSuppressed(latinFinding("e.g."), "paragraph")
	assert.False(t, ok)

	ok, rule = m.IsSuppressed(latinFinding("e.g."), "heading")
	require.True(t, ok)
	assert.Equal(t, "S2", rule.ID)
}

func TestIsSuppressed_DisabledAndExpiredRulesSkipped(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	m := NewManagerFromRules([]Rule{
		{ID: "off", RuleKind: "latin_abbreviation", Enabled: false},
		{ID: "expired", RuleKind: "latin_abbreviation", Enabled: true, ExpiresAt: &past},
	})

	ok, _ := m.IsSuppressed(latinFinding("e.g."), "paragraph")
	assert.False(t, ok)
}

func TestIsSuppressed_EmptyCriteriaMatchesNothing(t *testing.T) {
	m := NewManagerFromRules([]Rule{{ID: "S1", Reason: "oops", Enabled: true}})
	ok, _ := m.IsSuppressed(latinFinding("e.g."), "paragraph")
	assert.False(t, ok, "a criteria-free rule must not suppress the whole report")
}

func TestApply_Partitions(t *testing.T) {
	m := NewManagerFromRules([]Rule{
		{ID: "S1", RuleKind: "latin_abbreviation", Reason: "allowed", Enabled: true},
	})
	all := []findings.Finding{
		latinFinding("e.g."),
		{Text: "QZX", RuleKind: "undefined_acronym"},
	}

	kept, suppressed := m.Apply(all, "paragraph")
	require.Len(t, kept, 1)
	assert.Equal(t, "QZX", kept[0].Text)
	require.Len(t, suppressed, 1)
	assert.Equal(t, "S1", suppressed[0].SuppressedBy)
	assert.Equal(t, "allowed", suppressed[0].RuleReason)
}

func TestSetEnabled_DisablesAllSuppression(t *testing.T) {
	m := NewManagerFromRules([]Rule{
		{ID: "S1", RuleKind: "latin_abbreviation", Enabled: true},
	})
	m.SetEnabled(false)
	ok, _ := m.IsSuppressed(latinFinding("e.g."), "paragraph")
	assert.False(t, ok)
}

func TestNewManager_MissingFileHasNoRules(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.yaml"), suppObserver())
	assert.Equal(t, 0, m.RuleCount())
}

func TestNewManager_BadPatternRuleSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")
	content := `
version: "1.0"
rules:
  - id: good
    rule: latin_abbreviation
    reason: allowed
    enabled: true
  - id: bad
    text_pattern: "([unclosed"
    reason: typo
    enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m := NewManager(path, suppObserver())
	assert.Equal(t, 1, m.RuleCount())
	ok, rule := m.IsSuppressed(latinFinding("e.g."), "paragraph")
	require.True(t, ok)
	assert.Equal(t, "good", rule.ID)
}
