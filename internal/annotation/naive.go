// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"strings"
	"unicode"
)

// NaiveAnnotate produces a best-effort annotation for plain text when no
// external annotator output is available. It tokenizes on whitespace,
// keeps trailing periods that look like abbreviation dots (e.g., etc.),
// splits sentences on terminal punctuation and blank lines, and leaves
// POS and dependency tags empty. It exists so the CLI can demo the
// pipeline on raw text; real deployments feed annotator JSON instead.
func NaiveAnnotate(text string) *Document {
	doc := &Document{Text: text}

	sentence := 0
	sentStart := 0
	i := 0
	for i < len(text) {
		// Skip inter-token whitespace, tracking blank-line sentence breaks.
		ws := i
		for i < len(text) && unicode.IsSpace(rune(text[i])) {
			i++
		}
		if strings.Count(text[ws:i], "\n") >= 2 && len(doc.Tokens) > 0 {
			doc.Sentences = append(doc.Sentences, Sentence{Index: sentence, Start: sentStart, End: ws})
			sentence++
			sentStart = i
		}
		if i >= len(text) {
			break
		}

		start := i
		for i < len(text) && !unicode.IsSpace(rune(text[i])) {
			i++
		}
		word := text[start:i]

		// Strip leading punctuation.
		for len(word) > 0 && isLeadingPunct(word[0]) {
			start++
			word = word[1:]
		}
		// Strip trailing punctuation, but keep a final dot when the token
		// looks dotted throughout ("e.g.", "i.e.", "etc.").
		for len(word) > 0 && isTrailingPunct(word[len(word)-1]) {
			if word[len(word)-1] == '.' && looksAbbreviated(word) {
				break
			}
			word = word[:len(word)-1]
		}
		if word == "" {
			continue
		}

		doc.Tokens = append(doc.Tokens, Token{
			Text:     word,
			Start:    start,
			End:      start + len(word),
			Lemma:    strings.ToLower(word),
			Sentence: sentence,
		})

		if endsSentence(text, start+len(word)) {
			doc.Sentences = append(doc.Sentences, Sentence{Index: sentence, Start: sentStart, End: start + len(word) + 1})
			sentence++
			sentStart = start + len(word) + 1
		}
	}
	if sentStart < len(text) && len(doc.Tokens) > 0 {
		doc.Sentences = append(doc.Sentences, Sentence{Index: sentence, Start: sentStart, End: len(text)})
	}

	return doc
}

func isLeadingPunct(c byte) bool {
	switch c {
	case '(', '[', '{', '"', '\'', '*', '`', '_':
		return true
	}
	return false
}

func isTrailingPunct(c byte) bool {
	switch c {
	case ')', ']', '}', '"', '\'', ',', ';', ':', '!', '?', '.', '*', '`', '_':
		return true
	}
	return false
}

// looksAbbreviated reports whether a token contains an interior dot, the
// shape of dotted abbreviations like "e.g." or "U.S.".
func looksAbbreviated(word string) bool {
	interior := strings.TrimSuffix(word, ".")
	return strings.Contains(interior, ".")
}

// endsSentence reports whether the character right after a token ends a
// sentence. Abbreviation dots are already part of the token, so a bare
// '.' here is a genuine terminator.
func endsSentence(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	switch text[pos] {
	case '.', '!', '?':
		return true
	}
	return false
}
