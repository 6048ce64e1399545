// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package docstate holds small per-rule bookkeeping scoped to one logical
// document being streamed block by block (the "already defined" sets of
// the acronym rules). The preferred scoping signal is an explicit session
// ID from the caller; when none is available, a fingerprint of the text
// prefix decides whether two blocks belong to the same document.
package docstate

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// fingerprintPrefix bounds how much text feeds the fingerprint. Blocks of
// one document share their opening characters (title, front matter), so a
// short prefix is a usable same-document signal.
const fingerprintPrefix = 200

// Store is the mutable per-rule state. The zero-value contract: one Store
// serves one rule instance, and that instance must not analyze two
// different documents concurrently. The internal mutex makes individual
// operations safe, but interleaved Touch calls from different documents
// will thrash the state; give each concurrent document its own analyzer.
type Store struct {
	mu          sync.Mutex
	fingerprint string
	sets        map[string]map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sets: make(map[string]map[string]struct{})}
}

// Fingerprint hashes the bounded prefix of a document's text.
func Fingerprint(text string) string {
	if len(text) > fingerprintPrefix {
		text = text[:fingerprintPrefix]
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Touch binds the store to the document identified by the text's
// fingerprint, clearing all bookkeeping when the fingerprint changed.
// It returns true when a reset happened.
func (s *Store) Touch(text string) bool {
	return s.TouchSession(Fingerprint(text))
}

// TouchSession binds the store to an explicit document session. Callers
// that know their document boundaries should prefer this over Touch: it
// has no collision risk.
func (s *Store) TouchSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.fingerprint {
		return false
	}
	s.fingerprint = id
	s.sets = make(map[string]map[string]struct{})
	return true
}

// Add records a key in a named set.
func (s *Store) Add(set, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.sets[set]
	if !ok {
		members = make(map[string]struct{})
		s.sets[set] = members
	}
	members[key] = struct{}{}
}

// Has reports whether a key is present in a named set.
func (s *Store) Has(set, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sets[set][key]
	return ok
}

// Len returns the size of a named set.
func (s *Store) Len(set string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets[set])
}

// Reset clears all bookkeeping and the bound fingerprint.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprint = ""
	s.sets = make(map[string]map[string]struct{})
}
