// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package annotation defines the annotated-text model consumed by every
// detective and validation pass. Annotations are produced by an external
// linguistic annotator; this package only carries them, it never parses
// raw prose itself.
package annotation

// Token is a single annotated token with character offsets into the
// document text. POS and Dep use the annotator's tag set (NOUN, VERB,
// nsubj, dobj, ...); empty strings mean the annotator supplied no tag.
type Token struct {
	Text        string `json:"text"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	POS         string `json:"pos,omitempty"`
	Dep         string `json:"dep,omitempty"`
	Lemma       string `json:"lemma,omitempty"`
	EntityLabel string `json:"entity_label,omitempty"`
	Sentence    int    `json:"sentence"`
}

// Sentence is a sentence span in reading order.
type Sentence struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// EntitySpan is a named-entity span supplied by the annotator.
type EntitySpan struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Document is one annotated block of text. Offsets in Tokens, Sentences
// and Entities index into Text.
type Document struct {
	Text      string       `json:"text"`
	Tokens    []Token      `json:"tokens"`
	Sentences []Sentence   `json:"sentences,omitempty"`
	Entities  []EntitySpan `json:"entities,omitempty"`
}

// IsEmpty reports whether the document carries no usable annotation.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Tokens) == 0
}

// TokenAt returns the index of the token covering the given character
// offset, or -1 if no token covers it.
func (d *Document) TokenAt(offset int) int {
	for i, t := range d.Tokens {
		if t.Start <= offset && offset < t.End {
			return i
		}
	}
	return -1
}

// TokensInSpan returns all tokens overlapping the half-open interval
// [start, end).
func (d *Document) TokensInSpan(start, end int) []Token {
	var out []Token
	for _, t := range d.Tokens {
		if t.Start < end && start < t.End {
			out = append(out, t)
		}
	}
	return out
}

// SentenceOf returns the sentence span containing the token, or a zero
// Sentence and false when sentence boundaries are unavailable.
func (d *Document) SentenceOf(tok Token) (Sentence, bool) {
	for _, s := range d.Sentences {
		if s.Index == tok.Sentence {
			return s, true
		}
	}
	return Sentence{}, false
}

// Window returns up to chars characters of raw text before and after the
// half-open span [start, end). Offsets outside the text, as can happen
// with hand-built annotation input, are clamped rather than trusted.
func (d *Document) Window(start, end, chars int) (before, after string) {
	if start < 0 {
		start = 0
	}
	if start > len(d.Text) {
		start = len(d.Text)
	}
	if end < start {
		end = start
	}
	if end > len(d.Text) {
		end = len(d.Text)
	}
	b := start - chars
	if b < 0 {
		b = 0
	}
	a := end + chars
	if a > len(d.Text) {
		a = len(d.Text)
	}
	return d.Text[b:start], d.Text[end:a]
}

// InParentheses reports whether the character offset sits inside an open
// parenthesis pair, scanning the current sentence-sized neighborhood only.
func (d *Document) InParentheses(offset int) bool {
	depth := 0
	limit := offset - 400
	if limit < 0 {
		limit = 0
	}
	for i := offset - 1; i >= limit; i-- {
		switch d.Text[i] {
		case ')':
			depth--
		case '(':
			depth++
			if depth > 0 {
				return true
			}
		}
	}
	return false
}
