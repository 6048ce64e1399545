// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detectives

import (
	"regexp"

	"stylescan/internal/annotation"
	"stylescan/internal/docstate"
	"stylescan/internal/evidence"
	"stylescan/internal/styles"
)

// CommonAcronymTable is the logical table of acronyms so widely known
// that flagging them as undefined would be a false positive (API, HTTP).
const CommonAcronymTable = "common_acronyms"

// DefinedAcronymSet is the document-state set where definition tracking
// records acronyms already expanded in the current document.
const DefinedAcronymSet = "defined_acronyms"

// Clue deltas for the undefined-acronym detective. The common-acronym
// mitigator exactly cancels the base so well-known acronyms score zero.
const (
	acronymBaseEvidence      = 0.8
	commonAcronymDelta       = -0.8
	definedEarlierDelta      = -0.9
	acronymInsideParensDelta = -0.3
	expertAudienceDelta      = -0.2
	generalContentDelta      = 0.1
)

var acronymPattern = regexp.MustCompile(`^[A-Z]{2,6}s?$`)

// AcronymDetective flags acronyms used without a prior expanded-form
// definition. It reads the defined-acronym set the DefinitionDetective
// maintains, so ordering matters: definitions are recorded before this
// detective runs (the analyzer runs side-effect detectives first).
type AcronymDetective struct {
	tables *evidence.Provider
	state  *docstate.Store
}

// NewAcronymDetective creates the detective bound to shared tables and
// the rule's document-scoped state.
func NewAcronymDetective(tables *evidence.Provider, state *docstate.Store) *AcronymDetective {
	return &AcronymDetective{tables: tables, state: state}
}

func (d *AcronymDetective) Name() string { return "undefined_acronym" }

func (d *AcronymDetective) Detect(doc *annotation.Document, desc styles.ContextDescriptor) []Candidate {
	if doc.IsEmpty() || !desc.InProse() {
		return nil
	}
	common := d.tables.Load(CommonAcronymTable)

	var out []Candidate
	for _, tok := range doc.Tokens {
		if !acronymPattern.MatchString(tok.Text) {
			continue
		}
		acr := normalizeAcronym(tok.Text)

		// Fixed clue order: semantic class, definitional context,
		// structural placement, audience, content. Reordering changes
		// scores and is covered by tests.
		b := NewEvidence(acronymBaseEvidence)
		b.ApplyIf(common.Contains(acr), "common_acronym", commonAcronymDelta)
		b.ApplyIf(d.state.Has(DefinedAcronymSet, acr), "defined_earlier", definedEarlierDelta)

		// A decisive mitigator settles it: a well-known or
		// already-defined acronym stays at zero, so the later context
		// clues must not run and lift it back over the report
		// threshold.
		if b.Score() <= 0 {
			continue
		}
		b.ApplyIf(doc.InParentheses(tok.Start), "inside_parentheses", acronymInsideParensDelta)
		b.ApplyIf(desc.Audience == styles.AudienceExpert, "expert_audience", expertAudienceDelta)
		b.ApplyIf(desc.ContentType == styles.ContentGeneral, "general_content", generalContentDelta)

		if b.Score() <= 0 {
			continue
		}
		out = append(out, Candidate{
			Start:    tok.Start,
			End:      tok.End,
			Surface:  tok.Text,
			RuleKind: KindUndefinedAcronym,
			Evidence: b.Score(),
			Clues:    b.Clues(),
			Category: "acronym",
			Alternatives: []string{
				"define the acronym at first use",
			},
		})
	}
	return out
}

// DefaultCommonAcronyms returns seed content for the common-acronym
// table. Base evidence is zero: membership is the signal, not the score.
func DefaultCommonAcronyms() map[string]evidence.Entry {
	names := []string{
		"API", "CPU", "GPU", "HTML", "HTTP", "HTTPS", "ID", "IP",
		"JSON", "PDF", "RAM", "REST", "SDK", "SQL", "SSH", "TCP",
		"UI", "URL", "USB", "UTC", "XML", "YAML",
	}
	entries := make(map[string]evidence.Entry, len(names))
	for _, n := range names {
		entries[n] = evidence.Entry{Category: "common"}
	}
	return entries
}
