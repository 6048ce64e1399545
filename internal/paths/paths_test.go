// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylescan/internal/observability"
)

func pathsObserver() *observability.StandardObserver {
	return observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
}

func TestIsProseFile(t *testing.T) {
	for _, p := range []string{"a.md", "b.TXT", "c.adoc", "d.json"} {
		assert.True(t, IsProseFile(p), p)
	}
	for _, p := range []string{"a.go", "b.png", "Makefile"} {
		assert.False(t, IsProseFile(p), p)
	}
}

func TestCollect_FilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a.md", "b.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.md"), []byte("x"), 0o644))

	flat := Collect([]string{dir}, false, pathsObserver())
	require.Len(t, flat, 1)
	assert.Equal(t, filepath.Join(dir, "a.md"), flat[0])

	recursive := Collect([]string{dir}, true, pathsObserver())
	assert.Len(t, recursive, 2)

	// Explicit file arguments bypass the extension filter.
	direct := Collect([]string{filepath.Join(dir, "b.go")}, false, pathsObserver())
	assert.Len(t, direct, 1)
}

func TestCollect_InaccessibleArgumentSkipped(t *testing.T) {
	got := Collect([]string{filepath.Join(t.TempDir(), "absent.md")}, false, pathsObserver())
	assert.Empty(t, got)
}

func TestLoadDocument_PlainTextGetsNaiveAnnotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("Plain words here."), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Plain words here.", doc.Text)
	assert.NotEmpty(t, doc.Tokens)
}

func TestLoadDocument_JSONCarriesAnnotatorOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	content := `{"text":"ssh in","tokens":[{"text":"ssh","start":0,"end":3,"pos":"VERB","sentence":0}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Tokens, 1)
	assert.Equal(t, "VERB", doc.Tokens[0].POS)
}

func TestLoadDocument_BadJSONErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadDocument(path)
	assert.Error(t, err)
}
