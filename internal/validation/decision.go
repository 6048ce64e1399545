// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validation re-scores candidates through independent validation
// passes and combines their votes into one consensus decision. Passes are
// pure functions of the candidate plus shared read-only context, so they
// can run in any order or in parallel without changing the outcome.
package validation

import (
	"stylescan/internal/annotation"
	"stylescan/internal/detectives"
	"stylescan/internal/docstate"
	"stylescan/internal/evidence"
	"stylescan/internal/styles"
)

// Verdict is a single pass's vote, or the pipeline's final decision.
type Verdict int

const (
	// Defer abstains: the pass has insufficient signal either way.
	Defer Verdict = iota
	// Accept flags the candidate as a genuine violation.
	Accept
	// Reject suppresses the candidate.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "defer"
	}
}

// Decision is one pass's output: a verdict, the pass's own confidence in
// it, and the evidence trail that produced it.
type Decision struct {
	Verdict    Verdict
	Confidence float64
	Evidence   []detectives.Clue
}

// Deferred is the zero-signal decision, also substituted for a failed
// pass.
func Deferred() Decision {
	return Decision{Verdict: Defer}
}

// Deferred reports whether the decision abstained.
func (d Decision) Deferred() bool {
	return d.Verdict == Defer
}

// PipelineResult is the consensus outcome for one candidate.
type PipelineResult struct {
	Final               Verdict
	AggregateConfidence float64
	PerPass             map[string]Decision
	TerminatedEarly     bool
}

// FlaggedSpan records text another rule already flagged, consumed by the
// cross-rule pass to suppress duplicates.
type FlaggedSpan struct {
	Start    int
	End      int
	RuleKind string
}

// PassContext is the shared read-only context for one candidate's
// evaluation. The state store is the only mutable member and is
// internally locked.
type PassContext struct {
	Doc          *annotation.Document
	Descriptor   styles.ContextDescriptor
	State        *docstate.Store
	Tables       *evidence.Provider
	FlaggedSpans []FlaggedSpan
}

// Pass is one validation strategy. Implementations must be deterministic
// and must not depend on the order other passes ran in.
type Pass interface {
	Name() string
	Validate(c detectives.Candidate, pctx *PassContext) Decision
}
