// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"stylescan/internal/config"
	"stylescan/internal/detectives"
	"stylescan/internal/docstate"
	"stylescan/internal/entities"
	"stylescan/internal/evidence"
	"stylescan/internal/observability"
	"stylescan/internal/registry"
	"stylescan/internal/suppressions"
	"stylescan/internal/validation"
)

// Deps are the shared collaborators an analyzer is built around. The
// provider and registry are shared across analyzers; the state store is
// created per analyzer.
type Deps struct {
	Tables      *evidence.Provider
	Registry    *registry.Registry
	Suppression *suppressions.Manager
	Observer    *observability.StandardObserver
}

// NewAnalyzer builds one analyzer from configuration. Each call creates
// a fresh document-scoped state store, so callers running documents
// concurrently build one analyzer per worker.
func NewAnalyzer(cfg *config.Config, deps Deps) *Analyzer {
	state := docstate.NewStore()

	dets := []detectives.Detective{
		// Side-effect first: definitions recorded before scoring.
		detectives.NewDefinitionDetective(state),
		detectives.NewLatinAbbreviationDetective(deps.Tables),
		detectives.NewAcronymDetective(deps.Tables, state),
		detectives.NewAbbreviationVerbDetective(deps.Tables),
	}

	resolver := entities.NewResolver(
		[]entities.Detector{
			entities.NewAnnotationDetector(),
			entities.NewPatternDetector(nil, deps.Observer),
			entities.NewRegistryDetector(deps.Registry),
		},
		cfg.Entities.ConfidenceThreshold,
		deps.Observer,
	)

	pipeline := validation.NewPipeline(
		BuildPassSet(cfg.Pipeline.Passes),
		pipelineConfig(cfg.Pipeline),
		deps.Observer,
	)

	return &Analyzer{
		detectives:  dets,
		ensemble:    resolver,
		pipeline:    pipeline,
		tables:      deps.Tables,
		state:       state,
		suppression: deps.Suppression,
		observer:    deps.Observer,
		minEvidence: cfg.Defaults.MinEvidence,
	}
}

// BuildPassSet constructs the enabled validation passes in configured
// order. Unknown names were already rejected by config validation.
func BuildPassSet(passes []config.PassConfig) []validation.WeightedPass {
	var out []validation.WeightedPass
	for _, pc := range passes {
		if !pc.Enabled {
			continue
		}
		var pass validation.Pass
		switch pc.Name {
		case "morphological":
			pass = validation.MorphologicalPass{}
		case "contextual":
			pass = validation.ContextualPass{}
		case "domain":
			pass = validation.DomainPass{}
		case "cross_rule":
			pass = validation.CrossRulePass{}
		default:
			continue
		}
		out = append(out, validation.WeightedPass{Pass: pass, Weight: pc.Weight})
	}
	return out
}

func pipelineConfig(pc config.PipelineConfig) validation.Config {
	consensus := validation.WeightedMajority
	if pc.Consensus == "unanimous" {
		consensus = validation.UnanimousRequired
	}
	return validation.Config{
		Consensus:        consensus,
		Margin:           pc.Margin,
		EarlyTermination: pc.EarlyTermination,
		DecisiveMargin:   pc.DecisiveMargin,
	}
}

// ParseSeverities converts a comma-separated severity string into a map.
// "all" or empty string enables every severity.
func ParseSeverities(severities string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if severities == "all" || severities == "" {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, level := range strings.Split(severities, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}
