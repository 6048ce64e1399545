// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package entities

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylescan/internal/annotation"
	"stylescan/internal/observability"
	"stylescan/internal/registry"
)

type stubDetector struct {
	name string
	out  []DetectedEntity
	err  error
	boom bool
}

func (s *stubDetector) Name() string { return s.name }

func (s *stubDetector) Detect(doc *annotation.Document, labels map[string]bool) ([]DetectedEntity, error) {
	if s.boom {
		panic("detector bug")
	}
	return s.out, s.err
}

func quietObserver() *observability.StandardObserver {
	return observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
}

func TestResolve_HighestConfidenceWinsOverlaps(t *testing.T) {
	// Three detectors claim the same region at 0.98, 0.9 and 0.85.
	doc := &annotation.Document{Text: "Acme Cloud Storage v2 launch"}
	detectors := []Detector{
		&stubDetector{name: "a", out: []DetectedEntity{
			{Text: "Acme Cloud Storage", Start: 0, End: 18, Label: "PRODUCT", Confidence: 0.85, Source: "a"},
		}},
		&stubDetector{name: "b", out: []DetectedEntity{
			{Text: "Acme Cloud Storage v2", Start: 0, End: 21, Label: "PRODUCT", Confidence: 0.9, Source: "b"},
		}},
		&stubDetector{name: "c", out: []DetectedEntity{
			{Text: "Acme", Start: 0, End: 4, Label: "ORG", Confidence: 0.98, Source: "c"},
		}},
	}

	got := NewResolver(detectors, 0, quietObserver()).Resolve(doc, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Text)
	assert.Equal(t, 0.98, got[0].Confidence)
}

func TestResolve_NonOverlappingAllKept(t *testing.T) {
	doc := &annotation.Document{Text: "Acme hired Widgets Inc. last year"}
	detectors := []Detector{
		&stubDetector{name: "a", out: []DetectedEntity{
			{Text: "Acme", Start: 0, End: 4, Confidence: 0.95, Source: "a"},
			{Text: "Widgets Inc.", Start: 11, End: 23, Confidence: 0.9, Source: "a"},
		}},
	}

	got := NewResolver(detectors, 0, quietObserver()).Resolve(doc, nil)
	require.Len(t, got, 2)
	// Reading order, regardless of confidence order.
	assert.Equal(t, "Acme", got[0].Text)
	assert.Equal(t, "Widgets Inc.", got[1].Text)
}

func TestResolve_ThresholdFiltersWeakEntities(t *testing.T) {
	doc := &annotation.Document{Text: "maybe a thing"}
	detectors := []Detector{
		&stubDetector{name: "a", out: []DetectedEntity{
			{Text: "thing", Start: 8, End: 13, Confidence: 0.4, Source: "a"},
		}},
	}
	got := NewResolver(detectors, 0, quietObserver()).Resolve(doc, nil)
	assert.Empty(t, got)
}

func TestResolve_DetectorErrorIsolated(t *testing.T) {
	doc := &annotation.Document{Text: "Acme ships"}
	detectors := []Detector{
		&stubDetector{name: "broken", err: errors.New("backend down")},
		&stubDetector{name: "ok", out: []DetectedEntity{
			{Text: "Acme", Start: 0, End: 4, Confidence: 0.95, Source: "ok"},
		}},
	}
	got := NewResolver(detectors, 0, quietObserver()).Resolve(doc, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Source)
}

func TestResolve_DetectorPanicIsolated(t *testing.T) {
	doc := &annotation.Document{Text: "Acme ships"}
	detectors := []Detector{
		&stubDetector{name: "crasher", boom: true},
		&stubDetector{name: "ok", out: []DetectedEntity{
			{Text: "Acme", Start: 0, End: 4, Confidence: 0.95, Source: "ok"},
		}},
	}
	got := NewResolver(detectors, 0, quietObserver()).Resolve(doc, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Source)
}

func TestResolve_EqualConfidenceTiesKeepDetectorOrder(t *testing.T) {
	doc := &annotation.Document{Text: "spanspan"}
	detectors := []Detector{
		&stubDetector{name: "first", out: []DetectedEntity{
			{Text: "span", Start: 0, End: 4, Confidence: 0.9, Source: "first"},
		}},
		&stubDetector{name: "second", out: []DetectedEntity{
			{Text: "span", Start: 0, End: 4, Confidence: 0.9, Source: "second"},
		}},
	}
	for run := 0; run < 5; run++ {
		got := NewResolver(detectors, 0, quietObserver()).Resolve(doc, nil)
		require.Len(t, got, 1)
		assert.Equal(t, "first", got[0].Source, "equal-confidence ties must keep encounter order")
	}
}

func TestOverlaps_HalfOpenIntervals(t *testing.T) {
	a := DetectedEntity{Start: 0, End: 4}
	b := DetectedEntity{Start: 4, End: 8}
	assert.False(t, a.Overlaps(b), "touching half-open intervals do not overlap")
	c := DetectedEntity{Start: 3, End: 5}
	assert.True(t, a.Overlaps(c))
}

func TestAnnotationDetector_LabelFilter(t *testing.T) {
	doc := &annotation.Document{
		Text: "Acme in Berlin",
		Entities: []annotation.EntitySpan{
			{Text: "Acme", Start: 0, End: 4, Label: "ORG"},
			{Text: "Berlin", Start: 8, End: 14, Label: "GPE"},
		},
	}
	got, err := NewAnnotationDetector().Detect(doc, map[string]bool{"ORG": true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ORG", got[0].Label)
	assert.Equal(t, 0.85, got[0].Confidence)
}

func TestPatternDetector_StructuralShapes(t *testing.T) {
	d := NewPatternDetector(nil, quietObserver())
	doc := &annotation.Document{Text: "Widgets Inc. released Widget Maker 2.1 today."}

	got, err := d.Detect(doc, nil)
	require.NoError(t, err)
	var texts []string
	for _, e := range got {
		texts = append(texts, e.Text)
		assert.Equal(t, 0.9, e.Confidence)
	}
	assert.Contains(t, texts, "Widgets Inc.")
	assert.Contains(t, texts, "Widget Maker 2.1")
}

func TestPatternDetector_BadPatternSkippedAtConstruction(t *testing.T) {
	d := NewPatternDetector(map[string]string{"BAD": "([unclosed"}, quietObserver())
	got, err := d.Detect(&annotation.Document{Text: "anything"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistryDetector_ConfidenceFromPriority(t *testing.T) {
	reg := registry.New([]registry.Record{
		{Name: "Acme", Label: "ORG", Priority: "high"},
	})
	d := NewRegistryDetector(reg)
	got, err := d.Detect(&annotation.Document{Text: "Acme ships widgets."}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.98, got[0].Confidence)
	assert.Equal(t, "registry", got[0].Source)
}
