// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"stylescan/internal/observability"
)

// Watcher hot-reloads evidence tables when their backing files change.
// It only reloads tables a consumer has already loaded; unknown files in
// the directory are ignored.
type Watcher struct {
	provider *Provider
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher starts watching the provider's table directory. Close must
// be called to release the inotify handle.
func NewWatcher(provider *Provider) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(provider.dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		provider: provider,
		watcher:  fw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), ".yaml")
			if name == filepath.Base(event.Name) {
				continue // not a table file
			}
			if w.isLoaded(name) {
				w.provider.Reload(name)
				w.provider.observer.LogOperation(observabilityReload(name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.provider.observer.LogWarning("evidence_watcher", "watch", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isLoaded(name string) bool {
	for _, loaded := range w.provider.Names() {
		if loaded == name {
			return true
		}
	}
	return false
}

func observabilityReload(name string) observability.StandardObservabilityData {
	return observability.StandardObservabilityData{
		Component: "evidence_watcher",
		Operation: "reload",
		Success:   true,
		Metadata:  map[string]interface{}{"table": name},
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
