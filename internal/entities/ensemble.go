// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package entities

import (
	"fmt"
	"sort"

	"stylescan/internal/annotation"
	"stylescan/internal/observability"
)

// DefaultConfidenceThreshold filters the accepted entity set.
const DefaultConfidenceThreshold = 0.6

// Resolver runs every configured detector and merges their output into
// one pairwise non-overlapping entity set.
type Resolver struct {
	detectors []Detector
	threshold float64
	observer  *observability.StandardObserver
}

// NewResolver creates an ensemble resolver. A zero threshold selects the
// default.
func NewResolver(detectors []Detector, threshold float64, observer *observability.StandardObserver) *Resolver {
	if threshold == 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Resolver{detectors: detectors, threshold: threshold, observer: observer}
}

// Resolve merges detector output. The algorithm guarantees a
// deterministic, pairwise non-overlapping result:
//
//  1. every detector runs; a detector failure is logged and skipped,
//  2. the pooled entities sort by confidence descending, ties keeping
//     encounter order (detector order, then detector output order),
//  3. greedy acceptance rejects any span overlapping an accepted one,
//     so the highest-confidence explanation wins per region,
//  4. the accepted set is threshold-filtered and re-sorted by start
//     offset for reading order.
func (r *Resolver) Resolve(doc *annotation.Document, labels map[string]bool) []DetectedEntity {
	var pool []DetectedEntity
	for _, det := range r.detectors {
		found, err := r.runDetector(det, doc, labels)
		if err != nil {
			r.observer.LogWarning("entity_ensemble", "detect",
				fmt.Errorf("detector %s failed: %w", det.Name(), err))
			continue
		}
		pool = append(pool, found...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Confidence > pool[j].Confidence
	})

	var accepted []DetectedEntity
	for _, cand := range pool {
		if cand.Confidence < r.threshold {
			continue
		}
		conflict := false
		for _, a := range accepted {
			if cand.Overlaps(a) {
				conflict = true
				break
			}
		}
		if !conflict {
			accepted = append(accepted, cand)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

// runDetector isolates one detector invocation; a panic inside a
// detector is converted to an error so siblings keep running.
func (r *Resolver) runDetector(det Detector, doc *annotation.Document, labels map[string]bool) (found []DetectedEntity, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			found = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return det.Detect(doc, labels)
}
