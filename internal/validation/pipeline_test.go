// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylescan/internal/annotation"
	"stylescan/internal/detectives"
	"stylescan/internal/observability"
)

type stubPass struct {
	name     string
	decision Decision
	boom     bool
	calls    *int
}

func (s stubPass) Name() string { return s.name }

func (s stubPass) Validate(c detectives.Candidate, pctx *PassContext) Decision {
	if s.calls != nil {
		*s.calls++
	}
	if s.boom {
		panic("pass bug")
	}
	return s.decision
}

func accept(conf float64) Decision { return Decision{Verdict: Accept, Confidence: conf} }
func reject(conf float64) Decision { return Decision{Verdict: Reject, Confidence: conf} }

func pipelineObserver() *observability.StandardObserver {
	return observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
}

func evalContext() *PassContext {
	return &PassContext{Doc: &annotation.Document{Text: "x"}}
}

func TestEvaluate_WeightedMajorityRejectWins(t *testing.T) {
	// Accept mass 1.2 against reject mass 1.8 over total weight 4. The
	// running signed score never reaches the 0.5 decisive margin, so all
	// four passes run.
	passes := []WeightedPass{
		{Pass: stubPass{name: "p1", decision: accept(0.6)}, Weight: 1},
		{Pass: stubPass{name: "p2", decision: accept(0.6)}, Weight: 1},
		{Pass: stubPass{name: "p3", decision: reject(0.9)}, Weight: 1},
		{Pass: stubPass{name: "p4", decision: reject(0.9)}, Weight: 1},
	}
	p := NewPipeline(passes, DefaultConfig(), pipelineObserver())

	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Reject, result.Final)
	assert.False(t, result.TerminatedEarly)
	// clamp01((1.2 - 1.8) / 4) = 0.
	assert.Equal(t, 0.0, result.AggregateConfidence)
	assert.Len(t, result.PerPass, 4)
}

func TestEvaluate_WeightedMajorityAccept(t *testing.T) {
	passes := []WeightedPass{
		{Pass: stubPass{name: "p1", decision: accept(0.8)}, Weight: 1},
		{Pass: stubPass{name: "p2", decision: reject(0.3)}, Weight: 1},
	}
	cfg := DefaultConfig()
	cfg.EarlyTermination = false
	p := NewPipeline(passes, cfg, pipelineObserver())

	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Accept, result.Final)
	assert.InDelta(t, 0.25, result.AggregateConfidence, 1e-9)
}

func TestEvaluate_EarlyTerminationOnDecisiveLead(t *testing.T) {
	tail := 0
	passes := []WeightedPass{
		{Pass: stubPass{name: "veto", decision: reject(0.95)}, Weight: 2},
		{Pass: stubPass{name: "never", decision: accept(1.0), calls: &tail}, Weight: 1},
	}
	p := NewPipeline(passes, DefaultConfig(), pipelineObserver())

	// signed = -1.9/3 after the first pass, past the 0.5 margin.
	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Reject, result.Final)
	assert.True(t, result.TerminatedEarly)
	assert.Equal(t, 0, tail, "passes after a decisive lead must not run")
}

func TestEvaluate_UnanimousAnyRejectVetoes(t *testing.T) {
	passes := []WeightedPass{
		{Pass: stubPass{name: "p1", decision: accept(1.0)}, Weight: 3},
		{Pass: stubPass{name: "p2", decision: reject(0.1)}, Weight: 1},
	}
	cfg := Config{Consensus: UnanimousRequired}
	p := NewPipeline(passes, cfg, pipelineObserver())

	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Reject, result.Final)
}

func TestEvaluate_AllDeferIsDefer(t *testing.T) {
	passes := []WeightedPass{
		{Pass: stubPass{name: "p1", decision: Deferred()}, Weight: 1},
		{Pass: stubPass{name: "p2", decision: Deferred()}, Weight: 1},
	}
	p := NewPipeline(passes, DefaultConfig(), pipelineObserver())

	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Defer, result.Final)
	assert.Equal(t, 0.0, result.AggregateConfidence)
}

func TestEvaluate_PanickingPassBecomesDefer(t *testing.T) {
	passes := []WeightedPass{
		{Pass: stubPass{name: "crasher", boom: true}, Weight: 1},
		{Pass: stubPass{name: "ok", decision: accept(0.9)}, Weight: 1},
	}
	cfg := DefaultConfig()
	cfg.EarlyTermination = false
	p := NewPipeline(passes, cfg, pipelineObserver())

	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Accept, result.Final)
	assert.True(t, result.PerPass["crasher"].Deferred())
}

func TestEvaluate_ZeroWeightPassCarriedButIgnored(t *testing.T) {
	passes := []WeightedPass{
		{Pass: stubPass{name: "disabled", decision: reject(1.0)}, Weight: 0},
		{Pass: stubPass{name: "active", decision: accept(0.5)}, Weight: 1},
	}
	p := NewPipeline(passes, DefaultConfig(), pipelineObserver())

	result := p.Evaluate(detectives.Candidate{}, evalContext())
	assert.Equal(t, Accept, result.Final)
	// The disabled pass still reports its decision for the trail.
	assert.Equal(t, Reject, result.PerPass["disabled"].Verdict)
}

func TestEvaluate_Deterministic(t *testing.T) {
	passes := []WeightedPass{
		{Pass: stubPass{name: "p1", decision: accept(0.7)}, Weight: 1},
		{Pass: stubPass{name: "p2", decision: reject(0.4)}, Weight: 2},
	}
	p := NewPipeline(passes, DefaultConfig(), pipelineObserver())
	c := detectives.Candidate{Start: 3, End: 8, Surface: "QZX"}

	first := p.Evaluate(c, evalContext())
	for i := 0; i < 10; i++ {
		again := p.Evaluate(c, evalContext())
		require.Equal(t, first.Final, again.Final)
		require.Equal(t, first.AggregateConfidence, again.AggregateConfidence)
		require.Equal(t, first.TerminatedEarly, again.TerminatedEarly)
	}
}
