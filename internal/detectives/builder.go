// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detectives

import (
	"stylescan/internal/evidence"
	"stylescan/internal/styles"
)

// EvidenceBuilder accumulates an evidence score from a base plus ordered
// clues. The running score is clamped to [0,1] after every step, not only
// at the end, so the same absolute deltas always produce the same output
// for the same clue sequence regardless of intermediate overflow.
type EvidenceBuilder struct {
	score float64
	clues []Clue
}

// NewEvidence starts a builder from a base score.
func NewEvidence(base float64) *EvidenceBuilder {
	b := &EvidenceBuilder{}
	b.score = styles.Clamp01(base)
	b.clues = append(b.clues, Clue{Name: "base", Delta: b.score})
	return b
}

// Apply adds a signed clue delta and clamps.
func (b *EvidenceBuilder) Apply(name string, delta float64) *EvidenceBuilder {
	b.score = styles.Clamp01(b.score + delta)
	b.clues = append(b.clues, Clue{Name: name, Delta: delta})
	return b
}

// ApplyIf adds the clue only when the condition holds. The skipped clue
// leaves no trace in the trail.
func (b *EvidenceBuilder) ApplyIf(cond bool, name string, delta float64) *EvidenceBuilder {
	if cond {
		b.Apply(name, delta)
	}
	return b
}

// ApplyContext applies an evidence table entry's context adjustments for
// the descriptor, in the descriptor's fixed key order (content, audience,
// domain, block). Keys the entry does not adjust on are skipped.
func (b *EvidenceBuilder) ApplyContext(entry evidence.Entry, desc styles.ContextDescriptor) *EvidenceBuilder {
	for _, key := range desc.AdjustmentKeys() {
		if delta, ok := entry.ContextAdjustments[key]; ok {
			b.Apply(key, delta)
		}
	}
	return b
}

// Score returns the clamped running score.
func (b *EvidenceBuilder) Score() float64 {
	return b.score
}

// Clues returns the ordered contribution trail, base first.
func (b *EvidenceBuilder) Clues() []Clue {
	return b.clues
}
