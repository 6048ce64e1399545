// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package findings defines the reportable output of the checker: spans
// that survived detection and validation, with their evidence score,
// severity bucket and full decision trail.
package findings

import (
	"fmt"
	"time"

	"stylescan/internal/detectives"
	"stylescan/internal/styles"
	"stylescan/internal/validation"
)

// PassVote summarizes one validation pass's decision for the trail.
type PassVote struct {
	Pass       string  `json:"pass"`
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
}

// Trail is the full decision history of a finding: the detective's clue
// contributions and every pass's vote.
type Trail struct {
	Clues           []detectives.Clue `json:"clues"`
	Votes           []PassVote        `json:"votes,omitempty"`
	TerminatedEarly bool              `json:"terminated_early,omitempty"`
}

// Finding is one confirmed style violation.
type Finding struct {
	Document    string                `json:"document,omitempty"`
	Start       int                   `json:"start"`
	End         int                   `json:"end"`
	Line        int                   `json:"line,omitempty"`
	Text        string                `json:"text"`
	RuleKind    string                `json:"rule"`
	Message     string                `json:"message"`
	Suggestions []string              `json:"suggestions,omitempty"`
	Severity    styles.EvidenceBucket `json:"-"`
	Evidence    float64               `json:"evidence"`
	Trail       Trail                 `json:"trail"`
}

// SeverityName is the bucket name used in serialized output.
func (f Finding) SeverityName() string { return f.Severity.String() }

// SuppressedFinding is a finding a suppression rule removed from the
// report, kept for audit output.
type SuppressedFinding struct {
	Finding      Finding    `json:"finding"`
	SuppressedBy string     `json:"suppressed_by"`
	RuleReason   string     `json:"rule_reason"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// New builds a finding from a validated candidate. Severity is
// classified here, exactly once; downstream code keys on the bucket.
func New(c detectives.Candidate, score float64, result validation.PipelineResult, document string) Finding {
	f := Finding{
		Document:    document,
		Start:       c.Start,
		End:         c.End,
		Text:        c.Surface,
		RuleKind:    c.RuleKind,
		Message:     message(c),
		Suggestions: c.Alternatives,
		Severity:    styles.ClassifyEvidence(score),
		Evidence:    score,
		Trail: Trail{
			Clues:           c.Clues,
			TerminatedEarly: result.TerminatedEarly,
		},
	}
	for name, decision := range result.PerPass {
		f.Trail.Votes = append(f.Trail.Votes, PassVote{
			Pass:       name,
			Verdict:    decision.Verdict.String(),
			Confidence: decision.Confidence,
		})
	}
	sortVotes(f.Trail.Votes)
	return f
}

func sortVotes(votes []PassVote) {
	for i := 1; i < len(votes); i++ {
		for j := i; j > 0 && votes[j].Pass < votes[j-1].Pass; j-- {
			votes[j], votes[j-1] = votes[j-1], votes[j]
		}
	}
}

// message renders the per-rule finding message.
func message(c detectives.Candidate) string {
	switch c.RuleKind {
	case detectives.KindLatinAbbreviation:
		return fmt.Sprintf("avoid the Latin abbreviation %q in running prose", c.Surface)
	case detectives.KindUndefinedAcronym:
		return fmt.Sprintf("acronym %q is used before it is defined", c.Surface)
	case detectives.KindAbbreviationVerb:
		return fmt.Sprintf("abbreviation %q is used as a verb", c.Surface)
	default:
		return fmt.Sprintf("style issue at %q", c.Surface)
	}
}

// LineOf computes the 1-based line number of an offset in the text.
func LineOf(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	line := 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
		}
	}
	return line
}
