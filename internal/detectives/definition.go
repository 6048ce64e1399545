// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detectives

import (
	"regexp"
	"strings"
	"unicode"

	"stylescan/internal/annotation"
	"stylescan/internal/docstate"
	"stylescan/internal/styles"
)

// expansionPattern matches "Expanded Form (EF)" definitional mentions:
// a capitalized multi-word phrase immediately followed by a short
// parenthesized acronym.
var expansionPattern = regexp.MustCompile(`\b([A-Z][A-Za-z]*(?:[ -][A-Za-z]+){1,6})\s+\(([A-Z]{2,6})\)`)

// DefinitionDetective records expanded-form acronym definitions in the
// document-scoped state instead of emitting candidates. It must run
// before the acronym detective so same-block definitions count.
type DefinitionDetective struct {
	state *docstate.Store
}

// NewDefinitionDetective creates the side-effect detective bound to the
// rule's document-scoped state.
func NewDefinitionDetective(state *docstate.Store) *DefinitionDetective {
	return &DefinitionDetective{state: state}
}

func (d *DefinitionDetective) Name() string { return "definition" }

// Detect finds definitional mentions and records their acronyms. The
// returned candidate list is always nil.
func (d *DefinitionDetective) Detect(doc *annotation.Document, desc styles.ContextDescriptor) []Candidate {
	if doc.IsEmpty() {
		return nil
	}
	for _, m := range expansionPattern.FindAllStringSubmatch(doc.Text, -1) {
		phrase, acr := m[1], m[2]
		if initialsMatch(phrase, acr) {
			d.state.Add(DefinedAcronymSet, normalizeAcronym(acr))
		}
	}
	return nil
}

// initialsMatch checks that the acronym's letters line up with the
// initials of the phrase's significant words. Connective words (of, and,
// for, the) may be skipped by the acronym.
func initialsMatch(phrase, acronym string) bool {
	acr := strings.ToUpper(strings.TrimSuffix(acronym, "s"))
	words := strings.FieldsFunc(phrase, func(r rune) bool {
		return r == ' ' || r == '-'
	})

	i := 0
	for _, w := range words {
		if i >= len(acr) {
			break
		}
		initial := unicode.ToUpper(rune(w[0]))
		if initial == rune(acr[i]) {
			i++
			continue
		}
		if isConnective(w) {
			continue
		}
		return false
	}
	return i == len(acr)
}

func isConnective(w string) bool {
	switch strings.ToLower(w) {
	case "of", "and", "for", "the", "in", "on", "to", "a", "an":
		return true
	}
	return false
}
