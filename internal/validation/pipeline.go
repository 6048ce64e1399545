// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"fmt"

	"stylescan/internal/detectives"
	"stylescan/internal/observability"
	"stylescan/internal/styles"
)

// Consensus selects how pass votes combine into a final decision.
type Consensus int

const (
	// WeightedMajority accepts when weighted ACCEPT mass exceeds
	// weighted REJECT mass by the configured margin, and vice versa.
	WeightedMajority Consensus = iota
	// UnanimousRequired suppresses the finding on any REJECT vote.
	UnanimousRequired
)

// WeightedPass pairs a pass with its validator weight.
type WeightedPass struct {
	Pass   Pass
	Weight float64
}

// Config tunes consensus and termination.
type Config struct {
	Consensus Consensus
	// Margin is the weighted-mass lead one side needs under
	// WeightedMajority. Zero means any lead decides.
	Margin float64
	// EarlyTermination stops evaluation once the running signed score
	// crosses ±DecisiveMargin of the total configured weight.
	EarlyTermination bool
	DecisiveMargin   float64
}

// DefaultConfig returns weighted-majority consensus with early
// termination at a decisive half-weight lead.
func DefaultConfig() Config {
	return Config{
		Consensus:        WeightedMajority,
		Margin:           0,
		EarlyTermination: true,
		DecisiveMargin:   0.5,
	}
}

// Pipeline orchestrates a weighted set of validation passes over one
// candidate. Evaluation is deterministic: the same candidate, context
// and pass set always produce the same result.
type Pipeline struct {
	passes   []WeightedPass
	cfg      Config
	observer *observability.StandardObserver
}

// NewPipeline creates a pipeline. Passes with non-positive weight are
// carried but contribute nothing, matching a disabled validator.
func NewPipeline(passes []WeightedPass, cfg Config, observer *observability.StandardObserver) *Pipeline {
	return &Pipeline{passes: passes, cfg: cfg, observer: observer}
}

// Evaluate runs the passes and folds their decisions into a consensus.
//
// The aggregate confidence is the signed weighted mass difference
// normalized by total weight and clamped to [0,1]:
//
//	clamp01((Σ accept w·conf − Σ reject w·conf) / Σ w)
//
// A pass that panics is logged and treated as a DEFER with zero weight;
// the pipeline never aborts.
func (p *Pipeline) Evaluate(c detectives.Candidate, pctx *PassContext) PipelineResult {
	result := PipelineResult{
		PerPass: make(map[string]Decision, len(p.passes)),
	}

	totalWeight := 0.0
	for _, wp := range p.passes {
		if wp.Weight > 0 {
			totalWeight += wp.Weight
		}
	}

	var acceptMass, rejectMass float64
	rejects := 0
	accepts := 0

	for _, wp := range p.passes {
		decision := p.runPass(wp.Pass, c, pctx)
		result.PerPass[wp.Pass.Name()] = decision

		weight := wp.Weight
		if weight <= 0 {
			continue
		}
		switch decision.Verdict {
		case Accept:
			accepts++
			acceptMass += weight * decision.Confidence
		case Reject:
			rejects++
			rejectMass += weight * decision.Confidence
		}

		if p.cfg.EarlyTermination && totalWeight > 0 {
			signed := (acceptMass - rejectMass) / totalWeight
			if signed >= p.cfg.DecisiveMargin || signed <= -p.cfg.DecisiveMargin {
				result.TerminatedEarly = true
				break
			}
		}
	}

	if totalWeight > 0 {
		result.AggregateConfidence = styles.Clamp01((acceptMass - rejectMass) / totalWeight)
	}
	result.Final = p.decide(acceptMass, rejectMass, accepts, rejects)
	return result
}

func (p *Pipeline) decide(acceptMass, rejectMass float64, accepts, rejects int) Verdict {
	switch p.cfg.Consensus {
	case UnanimousRequired:
		if rejects > 0 {
			return Reject
		}
		if accepts > 0 {
			return Accept
		}
		return Defer
	default: // WeightedMajority
		if accepts == 0 && rejects == 0 {
			return Defer
		}
		if acceptMass > rejectMass+p.cfg.Margin {
			return Accept
		}
		if rejectMass > acceptMass+p.cfg.Margin {
			return Reject
		}
		return Defer
	}
}

// runPass isolates one pass invocation; a panic becomes a logged DEFER.
func (p *Pipeline) runPass(pass Pass, c detectives.Candidate, pctx *PassContext) (decision Decision) {
	defer func() {
		if rec := recover(); rec != nil {
			p.observer.LogWarning("validation_pipeline", "pass",
				fmt.Errorf("pass %s panicked: %v", pass.Name(), rec))
			decision = Deferred()
		}
	}()
	return pass.Validate(c, pctx)
}
