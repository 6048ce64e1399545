// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package entities merges several independent entity detectors into one
// non-overlapping entity set: pool everything, let the highest-confidence
// explanation win per region of text, filter by a global threshold.
package entities

// DetectedEntity is one entity span with the confidence and source of
// the detector that produced it. Entities from different sources for the
// same text are distinct until the ensemble resolves them.
type DetectedEntity struct {
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Overlaps reports half-open interval overlap with another entity.
func (e DetectedEntity) Overlaps(other DetectedEntity) bool {
	return e.Start < other.End && other.Start < e.End
}
