// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveTable writes a table file, used to seed a tables directory with
// the built-in defaults.
func SaveTable(dir, name string, entries map[string]Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create tables directory: %w", err)
	}
	data, err := yaml.Marshal(tableFile{Version: "1.0", Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal table %q: %w", name, err)
	}
	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write table %q: %w", name, err)
	}
	return nil
}
