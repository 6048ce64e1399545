// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"stylescan/internal/entities"
	"stylescan/internal/findings"
	"stylescan/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// response is the serialized report shape.
type response struct {
	Findings   []finding                    `json:"findings"`
	Suppressed []findings.SuppressedFinding `json:"suppressed,omitempty"`
	Entities   []entities.DetectedEntity    `json:"entities,omitempty"`
	Summary    summary                      `json:"summary"`
}

// finding wraps findings.Finding to expose the severity bucket by name.
type finding struct {
	findings.Finding
	Severity string `json:"severity"`
}

type summary struct {
	Total      int            `json:"total"`
	Suppressed int            `json:"suppressed"`
	BySeverity map[string]int `json:"by_severity"`
}

func (f *Formatter) Format(results []findings.Finding, suppressed []findings.SuppressedFinding, ents []entities.DetectedEntity, options formatters.FormatterOptions) (string, error) {
	filtered := formatters.FilterBySeverity(results, options)

	resp := response{
		Findings:   make([]finding, 0, len(filtered)),
		Suppressed: suppressed,
		Entities:   ents,
		Summary: summary{
			Total:      len(filtered),
			Suppressed: len(suppressed),
			BySeverity: map[string]int{},
		},
	}
	for _, r := range filtered {
		resp.Findings = append(resp.Findings, finding{Finding: r, Severity: r.SeverityName()})
		resp.Summary.BySeverity[r.SeverityName()]++
	}

	if !options.Verbose {
		for i := range resp.Findings {
			resp.Findings[i].Trail = findings.Trail{}
		}
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
