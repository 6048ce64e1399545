// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans multi-document analysis out over a bounded
// worker pool. Each worker gets its own analyzer so document-scoped
// state never crosses documents, which is the concurrency contract of
// the state store.
package parallel

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"stylescan/internal/entities"
	"stylescan/internal/findings"
	"stylescan/internal/observability"
)

// AnalyzeFunc analyzes one document path and returns its findings,
// suppressed findings, and resolved entities.
type AnalyzeFunc func(path string) ([]findings.Finding, []findings.SuppressedFinding, []entities.DetectedEntity, error)

// Result represents one document's processing outcome.
type Result struct {
	Path       string
	Findings   []findings.Finding
	Suppressed []findings.SuppressedFinding
	Entities   []entities.DetectedEntity
	Error      error
	Duration   time.Duration
}

// Stats summarizes a pool run.
type Stats struct {
	ProcessedFiles int
	FailedFiles    int
	TotalDuration  time.Duration
}

// Pool processes documents in parallel.
type Pool struct {
	workers  int
	observer *observability.StandardObserver
}

// NewPool creates a pool. Zero workers selects GOMAXPROCS.
func NewPool(workers int, observer *observability.StandardObserver) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers, observer: observer}
}

// Process analyzes every path. newWorker is called once per worker to
// build that worker's private AnalyzeFunc (and thus its private
// analyzer). A failed document is recorded in stats and skipped; it
// never aborts the run. Results come back ordered by path.
func (p *Pool) Process(paths []string, newWorker func() AnalyzeFunc) ([]Result, Stats) {
	start := time.Now()

	jobs := make(chan string)
	resultCh := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analyze := newWorker()
			for path := range jobs {
				resultCh <- p.runOne(analyze, path)
			}
		}()
	}

	go func() {
		for _, path := range paths {
			jobs <- path
		}
		close(jobs)
		wg.Wait()
		close(resultCh)
	}()

	var results []Result
	stats := Stats{}
	for r := range resultCh {
		if r.Error != nil {
			stats.FailedFiles++
			p.observer.LogWarning("parallel", "analyze_document", r.Error)
		} else {
			stats.ProcessedFiles++
		}
		results = append(results, r)
	}
	stats.TotalDuration = time.Since(start)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, stats
}

func (p *Pool) runOne(analyze AnalyzeFunc, path string) Result {
	start := time.Now()
	found, suppressed, ents, err := analyze(path)
	return Result{
		Path:       path,
		Findings:   found,
		Suppressed: suppressed,
		Entities:   ents,
		Error:      err,
		Duration:   time.Since(start),
	}
}
