// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires detection, entity resolution, validation and
// suppression into the analyze call shared by the CLI and embedders.
package core

import (
	"sort"

	"stylescan/internal/annotation"
	"stylescan/internal/detectives"
	"stylescan/internal/docstate"
	"stylescan/internal/entities"
	"stylescan/internal/evidence"
	"stylescan/internal/findings"
	"stylescan/internal/observability"
	"stylescan/internal/styles"
	"stylescan/internal/suppressions"
	"stylescan/internal/validation"
)

// Analyzer analyzes one stream of document blocks. It owns a
// document-scoped state store, so one Analyzer must not serve two
// different documents concurrently; give each concurrent document its
// own instance (see docstate.Store).
type Analyzer struct {
	detectives  []detectives.Detective
	ensemble    *entities.Resolver
	pipeline    *validation.Pipeline
	tables      *evidence.Provider
	state       *docstate.Store
	suppression *suppressions.Manager
	observer    *observability.StandardObserver
	minEvidence float64

	explicitSession bool
}

// Report is the outcome of one analyze call.
type Report struct {
	Findings   []findings.Finding
	Suppressed []findings.SuppressedFinding
	Entities   []entities.DetectedEntity
}

// Analyze runs the full pipeline over one annotated block. A nil or
// empty annotation yields an empty report: absence of the annotator
// reduces recall, it never fails the call.
func (a *Analyzer) Analyze(doc *annotation.Document, desc styles.ContextDescriptor, document string) *Report {
	report := &Report{}
	if doc.IsEmpty() {
		a.observer.LogWarning("analyzer", "analyze", errNoAnnotation)
		return report
	}

	finish := a.observer.StartTiming("analyzer", "analyze", document)

	// Fingerprinting is the fallback document-boundary signal; an
	// explicit session set via NewSession wins over it.
	if !a.explicitSession {
		a.state.Touch(doc.Text)
	}

	// Detectives run in registration order; side-effect detectives
	// (definition tracking) are registered first so their state is
	// visible to the scoring detectives in the same block.
	var candidates []detectives.Candidate
	for _, det := range a.detectives {
		candidates = append(candidates, a.runDetective(det, doc, desc)...)
	}

	report.Entities = a.ensemble.Resolve(doc, nil)

	pctx := &validation.PassContext{
		Doc:        doc,
		Descriptor: desc,
		State:      a.state,
		Tables:     a.tables,
	}

	for _, cand := range candidates {
		result := a.pipeline.Evaluate(cand, pctx)

		score, flagged := a.resolve(cand, result)
		if !flagged {
			continue
		}

		f := findings.New(cand, score, result, document)
		f.Line = findings.LineOf(doc.Text, cand.Start)
		report.Findings = append(report.Findings, f)
		pctx.FlaggedSpans = append(pctx.FlaggedSpans, validation.FlaggedSpan{
			Start: cand.Start, End: cand.End, RuleKind: cand.RuleKind,
		})
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		return report.Findings[i].Start < report.Findings[j].Start
	})

	if a.suppression != nil {
		report.Findings, report.Suppressed = a.suppression.Apply(report.Findings, desc.BlockType)
	}

	finish(true, map[string]interface{}{
		"candidates": len(candidates),
		"findings":   len(report.Findings),
		"suppressed": len(report.Suppressed),
		"entities":   len(report.Entities),
	})
	return report
}

// resolve folds the pipeline verdict and the detective evidence into the
// final flag decision. An ACCEPT uses the pipeline's aggregate where it
// strengthens the evidence; a DEFER falls back to the detective score
// against the report threshold; a REJECT suppresses.
func (a *Analyzer) resolve(cand detectives.Candidate, result validation.PipelineResult) (float64, bool) {
	switch result.Final {
	case validation.Reject:
		return 0, false
	case validation.Accept:
		score := cand.Evidence
		if result.AggregateConfidence > score {
			score = result.AggregateConfidence
		}
		return score, true
	default:
		return cand.Evidence, cand.Evidence >= a.minEvidence
	}
}

// runDetective isolates one detective; a panic is logged and the
// siblings keep running.
func (a *Analyzer) runDetective(det detectives.Detective, doc *annotation.Document, desc styles.ContextDescriptor) (out []detectives.Candidate) {
	defer func() {
		if rec := recover(); rec != nil {
			a.observer.LogWarning("analyzer", "detect", errDetectorPanic(det.Name(), rec))
			out = nil
		}
	}()
	return det.Detect(doc, desc)
}

// NewSession binds the analyzer's document state to an explicit session
// ID, the collision-free alternative to text fingerprinting.
func (a *Analyzer) NewSession(id string) {
	a.explicitSession = true
	a.state.TouchSession(id)
}
