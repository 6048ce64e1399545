// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detectives

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stylescan/internal/evidence"
	"stylescan/internal/styles"
)

func TestEvidenceBuilder_ClampsAfterEveryStep(t *testing.T) {
	// 0.7 + 0.5 saturates at 1.0; the following -0.3 applies to the
	// clamped value. Clamping only at the end would yield 0.9.
	b := NewEvidence(0.7).Apply("boost", 0.5).Apply("mitigate", -0.3)
	assert.InDelta(t, 0.7, b.Score(), 1e-9)
}

func TestEvidenceBuilder_ClampsAtZero(t *testing.T) {
	b := NewEvidence(0.3).Apply("strong_mitigator", -0.9).Apply("boost", 0.2)
	assert.InDelta(t, 0.2, b.Score(), 1e-9)
}

func TestEvidenceBuilder_BaseIsFirstClue(t *testing.T) {
	b := NewEvidence(0.8).Apply("a", 0.1)
	clues := b.Clues()
	assert.Equal(t, "base", clues[0].Name)
	assert.Equal(t, 0.8, clues[0].Delta)
	assert.Equal(t, "a", clues[1].Name)
}

func TestEvidenceBuilder_ApplyIfLeavesNoTrace(t *testing.T) {
	b := NewEvidence(0.5).
		ApplyIf(false, "skipped", 0.4).
		ApplyIf(true, "taken", 0.1)
	clues := b.Clues()
	assert.Len(t, clues, 2)
	assert.Equal(t, "taken", clues[1].Name)
	assert.InDelta(t, 0.6, b.Score(), 1e-9)
}

func TestEvidenceBuilder_ContextAdjustmentsFollowDescriptorOrder(t *testing.T) {
	entry := evidence.Entry{
		BaseEvidence: 0.5,
		ContextAdjustments: map[string]float64{
			"block:heading":   -0.3,
			"content:general": 0.2,
		},
	}
	desc := styles.ContextDescriptor{
		ContentType: styles.ContentGeneral,
		Audience:    styles.AudienceGeneral,
		BlockType:   styles.BlockHeading,
	}
	b := NewEvidence(entry.BaseEvidence).ApplyContext(entry, desc)

	clues := b.Clues()
	// Fixed order: content before block, regardless of map iteration.
	assert.Equal(t, []string{"base", "content:general", "block:heading"}, clueNames(clues))
	assert.InDelta(t, 0.4, b.Score(), 1e-9)
}

func TestEvidenceBuilder_UnmatchedAdjustmentKeysSkipped(t *testing.T) {
	entry := evidence.Entry{ContextAdjustments: map[string]float64{"audience:expert": -0.2}}
	desc := styles.ContextDescriptor{Audience: styles.AudienceGeneral}
	b := NewEvidence(0.6).ApplyContext(entry, desc)
	assert.InDelta(t, 0.6, b.Score(), 1e-9)
	assert.Len(t, b.Clues(), 1)
}

func clueNames(clues []Clue) []string {
	names := make([]string, len(clues))
	for i, c := range clues {
		names[i] = c.Name
	}
	return names
}
