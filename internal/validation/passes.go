// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"strings"

	"stylescan/internal/detectives"
	"stylescan/internal/styles"
)

// DomainVocabularyTable maps terms to the domain they are conventional
// in; the domain pass consults it through Entry.Category.
const DomainVocabularyTable = "domain_vocabulary"

// MorphologicalPass checks the candidate's tokens against the
// grammatical role the rule assumes. Without POS tags it abstains.
type MorphologicalPass struct{}

func (p MorphologicalPass) Name() string { return "morphological" }

func (p MorphologicalPass) Validate(c detectives.Candidate, pctx *PassContext) Decision {
	toks := pctx.Doc.TokensInSpan(c.Start, c.End)
	if len(toks) == 0 || toks[0].POS == "" {
		return Deferred()
	}

	switch c.RuleKind {
	case detectives.KindAbbreviationVerb:
		// The rule requires a verb reading; a nominal tag contradicts
		// the detective's gate and vetoes the finding.
		if toks[0].POS != "VERB" && toks[0].POS != "AUX" {
			return Decision{Verdict: Reject, Confidence: 0.8,
				Evidence: []detectives.Clue{{Name: "pos:" + toks[0].POS, Delta: -0.8}}}
		}
		return Decision{Verdict: Accept, Confidence: c.Evidence,
			Evidence: []detectives.Clue{{Name: "pos:VERB", Delta: c.Evidence}}}
	case detectives.KindUndefinedAcronym:
		// Acronyms parsed as proper nouns are the expected shape; a verb
		// or adposition tag means the matcher latched onto noise.
		if toks[0].POS == "VERB" || toks[0].POS == "ADP" {
			return Decision{Verdict: Reject, Confidence: 0.7,
				Evidence: []detectives.Clue{{Name: "pos:" + toks[0].POS, Delta: -0.7}}}
		}
		return Deferred()
	default:
		return Deferred()
	}
}

// ContextualPass votes on structural placement and nearby definitional
// language.
type ContextualPass struct{}

func (p ContextualPass) Name() string { return "contextual" }

// definitionalMarkers suppress acronym findings when the surrounding
// text is already explaining the term.
var definitionalMarkers = []string{
	"stands for", "short for", "abbreviation of", "abbreviation for",
	"defined as", "refers to",
}

func (p ContextualPass) Validate(c detectives.Candidate, pctx *PassContext) Decision {
	if !pctx.Descriptor.InProse() {
		return Decision{Verdict: Reject, Confidence: 0.9,
			Evidence: []detectives.Clue{{Name: "block:" + pctx.Descriptor.BlockType, Delta: -0.9}}}
	}
	if pctx.Descriptor.BlockType == styles.BlockAdmonition {
		return Decision{Verdict: Reject, Confidence: 0.6,
			Evidence: []detectives.Clue{{Name: "block:admonition", Delta: -0.6}}}
	}

	before, after := pctx.Doc.Window(c.Start, c.End, 60)
	neighborhood := strings.ToLower(before + " " + after)
	for _, marker := range definitionalMarkers {
		if strings.Contains(neighborhood, marker) {
			return Decision{Verdict: Reject, Confidence: 0.7,
				Evidence: []detectives.Clue{{Name: "definitional:" + marker, Delta: -0.7}}}
		}
	}

	return Deferred()
}

// DomainPass suppresses terms that are conventional vocabulary in the
// document's declared domain.
type DomainPass struct{}

func (p DomainPass) Name() string { return "domain" }

func (p DomainPass) Validate(c detectives.Candidate, pctx *PassContext) Decision {
	if pctx.Descriptor.Domain == "" {
		return Deferred()
	}
	vocab := pctx.Tables.Load(DomainVocabularyTable)
	entry, ok := vocab.Lookup(c.Surface)
	if !ok || entry.Category != pctx.Descriptor.Domain {
		return Deferred()
	}
	return Decision{Verdict: Reject, Confidence: 0.8,
		Evidence: []detectives.Clue{{Name: "domain_vocabulary:" + entry.Category, Delta: -0.8}}}
}

// CrossRulePass rejects candidates whose span another rule already
// flagged, so overlapping rules produce one finding per region.
type CrossRulePass struct{}

func (p CrossRulePass) Name() string { return "cross_rule" }

func (p CrossRulePass) Validate(c detectives.Candidate, pctx *PassContext) Decision {
	for _, span := range pctx.FlaggedSpans {
		if span.RuleKind == c.RuleKind {
			continue
		}
		if c.Start < span.End && span.Start < c.End {
			return Decision{Verdict: Reject, Confidence: 0.95,
				Evidence: []detectives.Clue{{Name: "overlap:" + span.RuleKind, Delta: -0.95}}}
		}
	}
	return Deferred()
}
