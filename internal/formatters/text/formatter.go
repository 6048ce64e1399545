// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"stylescan/internal/entities"
	"stylescan/internal/findings"
	"stylescan/internal/formatters"
)

// Formatter implements text-based output formatting
type Formatter struct {
	severityColors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		severityColors: map[string]*color.Color{
			"high":   color.New(color.FgRed, color.Bold),
			"medium": color.New(color.FgYellow),
			"low":    color.New(color.FgCyan),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(results []findings.Finding, suppressed []findings.SuppressedFinding, ents []entities.DetectedEntity, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	filtered := formatters.FilterBySeverity(results, options)
	if len(filtered) == 0 && len(suppressed) == 0 {
		return "No style issues found.", nil
	}

	var sb strings.Builder
	for _, r := range filtered {
		f.writeFinding(&sb, r, options)
	}

	if options.Verbose && len(ents) > 0 {
		fmt.Fprintf(&sb, "\n%d entit(ies) detected:\n", len(ents))
		for _, e := range ents {
			fmt.Fprintf(&sb, "  %q [%s] %.2f via %s\n", e.Text, e.Label, e.Confidence, e.Source)
		}
	}

	if len(suppressed) > 0 {
		fmt.Fprintf(&sb, "\n%d finding(s) suppressed:\n", len(suppressed))
		for _, s := range suppressed {
			fmt.Fprintf(&sb, "  %s %q suppressed by %s (%s)\n",
				s.Finding.RuleKind, s.Finding.Text, s.SuppressedBy, s.RuleReason)
		}
	}

	counts := map[string]int{}
	for _, r := range filtered {
		counts[r.SeverityName()]++
	}
	fmt.Fprintf(&sb, "\n%d finding(s): %d high, %d medium, %d low\n",
		len(filtered), counts["high"], counts["medium"], counts["low"])

	return sb.String(), nil
}

func (f *Formatter) writeFinding(sb *strings.Builder, r findings.Finding, options formatters.FormatterOptions) {
	severity := r.SeverityName()
	label := severity
	if c, ok := f.severityColors[severity]; ok {
		label = c.Sprint(strings.ToUpper(severity))
	}

	location := fmt.Sprintf("%d-%d", r.Start, r.End)
	if r.Document != "" {
		location = fmt.Sprintf("%s:%d", r.Document, r.Line)
	}

	fmt.Fprintf(sb, "[%s] %s: %s (evidence %.2f)\n", label, location, r.Message, r.Evidence)
	if len(r.Suggestions) > 0 {
		fmt.Fprintf(sb, "  suggestion: %s\n", strings.Join(r.Suggestions, "; "))
	}

	if options.Verbose {
		for _, clue := range r.Trail.Clues {
			fmt.Fprintf(sb, "    clue %-24s %+.2f\n", clue.Name, clue.Delta)
		}
		for _, vote := range r.Trail.Votes {
			fmt.Fprintf(sb, "    pass %-24s %s (%.2f)\n", vote.Pass, vote.Verdict, vote.Confidence)
		}
		if r.Trail.TerminatedEarly {
			fmt.Fprintln(sb, "    pipeline terminated early")
		}
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
