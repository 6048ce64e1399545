// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detectives

import (
	"strings"

	"stylescan/internal/annotation"
	"stylescan/internal/evidence"
	"stylescan/internal/styles"
)

// LatinAbbreviationTable is the logical evidence table name consumed by
// the Latin abbreviation detective.
const LatinAbbreviationTable = "latin_abbreviations"

// Clue deltas for Latin abbreviations. Inside parentheses the Latin form
// is conventional; in running prose it reads as jargon.
const (
	latinOutsideParensDelta = 0.2
	latinInsideParensDelta  = -0.3
)

// LatinAbbreviationDetective flags Latin abbreviations (e.g., i.e., etc.,
// et al.) in running prose. The evidence table supplies base scores,
// replacements and per-context adjustments.
type LatinAbbreviationDetective struct {
	tables *evidence.Provider
}

// NewLatinAbbreviationDetective creates the detective bound to a shared
// table provider.
func NewLatinAbbreviationDetective(tables *evidence.Provider) *LatinAbbreviationDetective {
	return &LatinAbbreviationDetective{tables: tables}
}

func (d *LatinAbbreviationDetective) Name() string { return "latin_abbreviation" }

// Detect scans tokens against the table. Two-token abbreviations
// ("et al.") are matched by joining adjacent tokens.
func (d *LatinAbbreviationDetective) Detect(doc *annotation.Document, desc styles.ContextDescriptor) []Candidate {
	if doc.IsEmpty() || !desc.InProse() {
		return nil
	}
	table := d.tables.Load(LatinAbbreviationTable)

	var out []Candidate
	for i := 0; i < len(doc.Tokens); i++ {
		tok := doc.Tokens[i]

		surface, end, entry, ok := lookupDotted(table, doc, tok.Text, tok.End)
		if !ok && i+1 < len(doc.Tokens) && doc.Tokens[i+1].Sentence == tok.Sentence {
			next := doc.Tokens[i+1]
			joined := doc.Text[tok.Start:next.End]
			surface, end, entry, ok = lookupDotted(table, doc, joined, next.End)
			if ok {
				i++
			}
		}
		if !ok {
			continue
		}

		inParens := doc.InParentheses(tok.Start)
		b := NewEvidence(entry.BaseEvidence)
		b.ApplyIf(!inParens, "outside_parentheses", latinOutsideParensDelta)
		b.ApplyIf(inParens, "inside_parentheses", latinInsideParensDelta)
		b.ApplyContext(entry, desc)

		if b.Score() <= 0 {
			continue
		}
		out = append(out, Candidate{
			Start:        tok.Start,
			End:          end,
			Surface:      surface,
			RuleKind:     KindLatinAbbreviation,
			Evidence:     b.Score(),
			Clues:        b.Clues(),
			Category:     entry.Category,
			Alternatives: entry.Alternatives,
		})
	}
	return out
}

// lookupDotted looks a surface form up in the table, retrying with the
// terminal dot that tokenizers strip from single-dot abbreviations
// ("etc." arrives as "etc" with the dot left in the raw text).
func lookupDotted(table *evidence.Table, doc *annotation.Document, surface string, end int) (string, int, evidence.Entry, bool) {
	if entry, ok := table.Lookup(surface); ok {
		return surface, end, entry, true
	}
	if !strings.HasSuffix(surface, ".") && end < len(doc.Text) && doc.Text[end] == '.' {
		if entry, ok := table.Lookup(surface + "."); ok {
			return surface + ".", end + 1, entry, true
		}
	}
	return surface, end, evidence.Entry{}, false
}

// DefaultLatinEntries returns the built-in table content, used to seed a
// tables directory when none exists yet.
func DefaultLatinEntries() map[string]evidence.Entry {
	general := map[string]float64{"content:" + styles.ContentGeneral: 0.2, "block:" + styles.BlockHeading: -0.3, "audience:" + styles.AudienceExpert: -0.1}
	entry := func(alts ...string) evidence.Entry {
		return evidence.Entry{
			BaseEvidence:       0.7,
			Category:           "latin",
			Alternatives:       alts,
			ContextAdjustments: general,
		}
	}
	return map[string]evidence.Entry{
		"e.g.":   entry("for example"),
		"i.e.":   entry("that is"),
		"etc.":   entry("and so on"),
		"et al.": entry("and others"),
		"viz.":   entry("namely"),
		"cf.":    entry("compare"),
	}
}

// normalizeAcronym strips a plural suffix and uppercases, the shared key
// shape of the acronym detectives and the document-state sets.
func normalizeAcronym(s string) string {
	s = strings.TrimSuffix(s, "s")
	return strings.ToUpper(s)
}
