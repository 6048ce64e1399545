// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"stylescan/internal/entities"
	"stylescan/internal/findings"
	"stylescan/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheets and scripts"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(results []findings.Finding, suppressed []findings.SuppressedFinding, _ []entities.DetectedEntity, options formatters.FormatterOptions) (string, error) {
	filtered := formatters.FilterBySeverity(results, options)

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"document", "line", "start", "end", "rule", "severity", "evidence", "text", "message", "suggestions"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range filtered {
		record := []string{
			r.Document,
			strconv.Itoa(r.Line),
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			r.RuleKind,
			r.SeverityName(),
			strconv.FormatFloat(r.Evidence, 'f', 2, 64),
			r.Text,
			r.Message,
			strings.Join(r.Suggestions, "; "),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
