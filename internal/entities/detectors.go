// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package entities

import (
	"fmt"
	"regexp"
	"sort"

	"stylescan/internal/annotation"
	"stylescan/internal/observability"
	"stylescan/internal/registry"
)

// Detector is one independent entity detection strategy. labels filters
// the output to specific entity labels; nil or empty means all labels.
type Detector interface {
	Name() string
	Detect(doc *annotation.Document, labels map[string]bool) ([]DetectedEntity, error)
}

// Detector confidences. The annotator's statistical spans rank below
// exact structural and registry matches.
const (
	annotationConfidence = 0.85
	patternConfidence    = 0.9
)

// AnnotationDetector surfaces the entity spans the external annotator
// supplied with the document.
type AnnotationDetector struct{}

func NewAnnotationDetector() *AnnotationDetector { return &AnnotationDetector{} }

func (d *AnnotationDetector) Name() string { return "annotation" }

func (d *AnnotationDetector) Detect(doc *annotation.Document, labels map[string]bool) ([]DetectedEntity, error) {
	var out []DetectedEntity
	for _, span := range doc.Entities {
		if !wantLabel(labels, span.Label) {
			continue
		}
		out = append(out, DetectedEntity{
			Text:       span.Text,
			Start:      span.Start,
			End:        span.End,
			Label:      span.Label,
			Confidence: annotationConfidence,
			Source:     d.Name(),
		})
	}
	return out, nil
}

// defaultPatterns are the structural entity shapes the pattern detector
// ships with. Each compiles to an exact match at fixed confidence.
var defaultPatterns = map[string]string{
	"ORG":     `\b[A-Z][A-Za-z&]+(?:\s+[A-Z][A-Za-z&]+)*\s+(?:Corp\.|Corporation|Inc\.|Incorporated|Ltd\.|LLC|GmbH|AG)`,
	"PRODUCT": `\b[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*\s+v?\d+(?:\.\d+)+\b`,
}

// PatternDetector matches configured structural patterns ("Name Corp.")
// at a fixed high confidence. Malformed patterns are skipped with a
// logged warning at construction, never at detection time.
type PatternDetector struct {
	patterns map[string]*regexp.Regexp
}

// NewPatternDetector compiles a label→pattern map. Pass nil to use the
// built-in patterns.
func NewPatternDetector(patterns map[string]string, observer *observability.StandardObserver) *PatternDetector {
	if patterns == nil {
		patterns = defaultPatterns
	}
	compiled := make(map[string]*regexp.Regexp, len(patterns))
	for label, src := range patterns {
		re, err := regexp.Compile(src)
		if err != nil {
			observer.LogWarning("pattern_detector", "compile",
				fmt.Errorf("skipping pattern for label %s: %w", label, err))
			continue
		}
		compiled[label] = re
	}
	return &PatternDetector{patterns: compiled}
}

func (d *PatternDetector) Name() string { return "pattern" }

func (d *PatternDetector) Detect(doc *annotation.Document, labels map[string]bool) ([]DetectedEntity, error) {
	// Fixed label order keeps encounter order stable across runs.
	ordered := make([]string, 0, len(d.patterns))
	for label := range d.patterns {
		ordered = append(ordered, label)
	}
	sort.Strings(ordered)

	var out []DetectedEntity
	for _, label := range ordered {
		re := d.patterns[label]
		if !wantLabel(labels, label) {
			continue
		}
		for _, loc := range re.FindAllStringIndex(doc.Text, -1) {
			out = append(out, DetectedEntity{
				Text:       doc.Text[loc[0]:loc[1]],
				Start:      loc[0],
				End:        loc[1],
				Label:      label,
				Confidence: patternConfidence,
				Source:     d.Name(),
			})
		}
	}
	return out, nil
}

// RegistryDetector matches against the curated name registry; confidence
// comes from each record's priority attribute.
type RegistryDetector struct {
	registry *registry.Registry
}

func NewRegistryDetector(reg *registry.Registry) *RegistryDetector {
	return &RegistryDetector{registry: reg}
}

func (d *RegistryDetector) Name() string { return "registry" }

func (d *RegistryDetector) Detect(doc *annotation.Document, labels map[string]bool) ([]DetectedEntity, error) {
	var out []DetectedEntity
	for _, det := range d.registry.DetectAll(doc.Text) {
		if !wantLabel(labels, det.Record.Label) {
			continue
		}
		out = append(out, DetectedEntity{
			Text:       det.Text,
			Start:      det.Start,
			End:        det.End,
			Label:      det.Record.Label,
			Confidence: det.Record.Confidence(),
			Source:     d.Name(),
		})
	}
	return out, nil
}

func wantLabel(labels map[string]bool, label string) bool {
	if len(labels) == 0 {
		return true
	}
	return labels[label]
}
