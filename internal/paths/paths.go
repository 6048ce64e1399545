// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package paths resolves CLI arguments into the list of analyzable
// documents and loads them, deciding per file whether it carries
// annotator JSON or plain prose.
package paths

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stylescan/internal/annotation"
	"stylescan/internal/observability"
)

// proseExtensions are the file types treated as analyzable input. JSON
// files are expected to carry external annotator output.
var proseExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".adoc": true,
	".json": true,
}

// IsProseFile reports whether a path looks like analyzable input.
func IsProseFile(path string) bool {
	return proseExtensions[strings.ToLower(filepath.Ext(path))]
}

// Collect expands arguments into concrete document paths. Files are
// taken as given; directories are walked for prose files, descending
// into subdirectories only when recursive is set. Inaccessible
// arguments are logged and skipped.
func Collect(args []string, recursive bool, observer *observability.StandardObserver) []string {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			observer.LogWarning("paths", "collect", fmt.Errorf("cannot access %s: %w", arg, err))
			continue
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if fi.IsDir() {
				if path != arg && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if IsProseFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
	}
	return paths
}

// LoadDocument reads one input file. JSON files carry annotator output;
// anything else is plain text run through the naive annotation shim.
func LoadDocument(path string) (*annotation.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var doc annotation.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse annotation file %s: %w", path, err)
		}
		return &doc, nil
	}
	return annotation.NaiveAnnotate(string(data)), nil
}
