// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detectives

import (
	"stylescan/internal/annotation"
	"stylescan/internal/evidence"
	"stylescan/internal/styles"
)

// VerbableAbbreviationTable lists abbreviations that get pressed into
// service as verbs ("ssh into the box", "sudo the command").
const VerbableAbbreviationTable = "verbable_abbreviations"

// AbbreviationVerbDetective flags abbreviations used as verbs. The hard
// gate needs a part-of-speech tag, so this detective only fires on fully
// annotated input; naive annotation leaves POS empty and the gate fails
// closed.
type AbbreviationVerbDetective struct {
	tables *evidence.Provider
}

// NewAbbreviationVerbDetective creates the detective bound to a shared
// table provider.
func NewAbbreviationVerbDetective(tables *evidence.Provider) *AbbreviationVerbDetective {
	return &AbbreviationVerbDetective{tables: tables}
}

func (d *AbbreviationVerbDetective) Name() string { return "abbreviation_verb" }

func (d *AbbreviationVerbDetective) Detect(doc *annotation.Document, desc styles.ContextDescriptor) []Candidate {
	if doc.IsEmpty() || !desc.InProse() {
		return nil
	}
	table := d.tables.Load(VerbableAbbreviationTable)

	var out []Candidate
	for _, tok := range doc.Tokens {
		if tok.POS != "VERB" {
			continue
		}
		entry, ok := table.Lookup(tok.Lemma)
		if !ok {
			entry, ok = table.Lookup(tok.Text)
		}
		if !ok {
			continue
		}

		b := NewEvidence(entry.BaseEvidence)
		// A root-verb use is the strongest signal; an auxiliary parse
		// suggests the tagger was unsure.
		b.ApplyIf(tok.Dep == "ROOT", "root_verb", 0.1)
		b.ApplyContext(entry, desc)

		if b.Score() <= 0 {
			continue
		}
		out = append(out, Candidate{
			Start:        tok.Start,
			End:          tok.End,
			Surface:      tok.Text,
			RuleKind:     KindAbbreviationVerb,
			Evidence:     b.Score(),
			Clues:        b.Clues(),
			Category:     entry.Category,
			Alternatives: entry.Alternatives,
		})
	}
	return out
}

// DefaultVerbableEntries returns seed content for the verbable
// abbreviation table.
func DefaultVerbableEntries() map[string]evidence.Entry {
	adjustments := map[string]float64{
		"content:" + styles.ContentTechnical: -0.2,
		"audience:" + styles.AudienceExpert:  -0.1,
	}
	entry := func(alt string) evidence.Entry {
		return evidence.Entry{
			BaseEvidence:       0.9,
			Category:           "abbreviation",
			Alternatives:       []string{alt},
			ContextAdjustments: adjustments,
		}
	}
	return map[string]evidence.Entry{
		"ssh":  entry("connect over SSH"),
		"ftp":  entry("transfer over FTP"),
		"scp":  entry("copy with scp"),
		"grep": entry("search"),
		"sudo": entry("run with elevated privileges"),
		"ping": entry("send a ping to"),
	}
}
