// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detectives implements candidate detection: each detective turns
// a raw pattern match into a bounded evidence score by starting from a
// base score and applying an ordered sequence of mitigating and
// aggravating clues. Scores are pure functions of (span, annotation,
// descriptor); the only side channel is the document-scoped state store
// used by definition tracking.
package detectives

import (
	"stylescan/internal/annotation"
	"stylescan/internal/styles"
)

// Rule kinds emitted by the built-in detectives.
const (
	KindLatinAbbreviation = "latin_abbreviation"
	KindUndefinedAcronym  = "undefined_acronym"
	KindAbbreviationVerb  = "abbreviation_verb"
)

// Clue is one named contribution to an evidence score. Delta is signed;
// the base score is recorded as the first clue.
type Clue struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// Candidate is a possible violation proposed by a detective, before
// validation. Offsets are half-open into the document text.
type Candidate struct {
	Start        int
	End          int
	Surface      string
	RuleKind     string
	Evidence     float64
	Clues        []Clue
	Category     string
	Alternatives []string
}

// Detective finds candidates in one annotated document. Implementations
// must be deterministic: the same document and descriptor always yield
// the same candidates with the same clue sequences. A detective that
// only records state (definition tracking) returns no candidates.
type Detective interface {
	Name() string
	Detect(doc *annotation.Document, desc styles.ContextDescriptor) []Candidate
}

// ReportThreshold is the default minimum evidence for a candidate to
// become a finding when the validation pipeline abstains.
const ReportThreshold = 0.1
