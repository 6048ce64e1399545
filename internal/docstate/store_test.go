// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package docstate

import (
	"strings"
	"testing"
)

func TestTouch_SameDocumentKeepsState(t *testing.T) {
	s := NewStore()
	doc := "# Style Guide\n\nThe Application Programming Interface (API) is public."

	s.Touch(doc)
	s.Add("defined", "API")

	// A later block of the same document shares the opening prefix.
	if reset := s.Touch(doc); reset {
		t.Fatal("Touch with an unchanged fingerprint must not reset")
	}
	if !s.Has("defined", "API") {
		t.Error("state lost across blocks of the same document")
	}
}

func TestTouch_NewDocumentResetsState(t *testing.T) {
	s := NewStore()
	s.Touch("first document text")
	s.Add("defined", "API")

	if reset := s.Touch("a completely different document"); !reset {
		t.Fatal("Touch with a new fingerprint must reset")
	}
	if s.Has("defined", "API") {
		t.Error("state survived a document switch")
	}
	if s.Len("defined") != 0 {
		t.Errorf("Len = %d after reset, want 0", s.Len("defined"))
	}
}

func TestTouchSession_ExplicitIDsWinOverContent(t *testing.T) {
	s := NewStore()
	s.TouchSession("session-1")
	s.Add("defined", "SDK")

	// Same session: no reset even though callers never hash content.
	if s.TouchSession("session-1") {
		t.Fatal("unchanged session ID must not reset")
	}
	if !s.Has("defined", "SDK") {
		t.Error("state lost within one session")
	}

	if !s.TouchSession("session-2") {
		t.Fatal("new session ID must reset")
	}
	if s.Has("defined", "SDK") {
		t.Error("state leaked across sessions")
	}
}

func TestFingerprint_BoundedPrefix(t *testing.T) {
	prefix := strings.Repeat("a", fingerprintPrefix)
	a := Fingerprint(prefix + "tail one")
	b := Fingerprint(prefix + "entirely different tail")
	if a != b {
		t.Error("text beyond the prefix must not change the fingerprint")
	}
	if Fingerprint("short") == Fingerprint("other") {
		t.Error("distinct short texts must fingerprint differently")
	}
}

func TestReset_ClearsBinding(t *testing.T) {
	s := NewStore()
	s.Touch("doc")
	s.Add("set", "k")
	s.Reset()

	if s.Has("set", "k") {
		t.Error("Reset left set members behind")
	}
	// After Reset, the next Touch binds fresh and reports a reset.
	if !s.Touch("doc") {
		t.Error("Touch after Reset should rebind")
	}
}

func TestAdd_IndependentSets(t *testing.T) {
	s := NewStore()
	s.Add("a", "x")
	s.Add("b", "y")
	if s.Has("a", "y") || s.Has("b", "x") {
		t.Error("sets must be independent namespaces")
	}
	if s.Len("a") != 1 || s.Len("b") != 1 {
		t.Error("unexpected set sizes")
	}
}
