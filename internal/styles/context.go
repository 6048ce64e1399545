// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package styles carries the small shared vocabulary of the checker: the
// context descriptor passed into every scoring call and the evidence
// bucket classification used for severity.
package styles

// Well-known descriptor values. Descriptors are free-form strings so new
// content types can be introduced by configuration alone; these constants
// cover the values the built-in evidence tables adjust on.
const (
	ContentGeneral   = "general"
	ContentTechnical = "technical"
	ContentLegal     = "legal"

	AudienceGeneral = "general"
	AudienceExpert  = "expert"

	BlockParagraph  = "paragraph"
	BlockHeading    = "heading"
	BlockList       = "list"
	BlockCode       = "code"
	BlockAdmonition = "admonition"
	BlockTable      = "table"
)

// ContextDescriptor describes the document being analyzed. It is a value
// type: copied per call, never mutated by the core. All fields are
// optional and default to "".
type ContextDescriptor struct {
	ContentType string
	Audience    string
	Domain      string
	BlockType   string
}

// AdjustmentKeys returns the evidence-table context-adjustment keys this
// descriptor activates, in the fixed order they are applied. The order is
// part of the scoring contract: content, audience, domain, block.
func (d ContextDescriptor) AdjustmentKeys() []string {
	keys := make([]string, 0, 4)
	if d.ContentType != "" {
		keys = append(keys, "content:"+d.ContentType)
	}
	if d.Audience != "" {
		keys = append(keys, "audience:"+d.Audience)
	}
	if d.Domain != "" {
		keys = append(keys, "domain:"+d.Domain)
	}
	if d.BlockType != "" {
		keys = append(keys, "block:"+d.BlockType)
	}
	return keys
}

// InProse reports whether the block type is running prose rather than a
// structural block where style rules are usually suspended.
func (d ContextDescriptor) InProse() bool {
	switch d.BlockType {
	case BlockCode, BlockTable:
		return false
	}
	return true
}
