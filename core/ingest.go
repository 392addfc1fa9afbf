package core

import (
	"fmt"
	"sync"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/internal/csvsource"
	"github.com/cohort-tools/cohort/schema"
)

// ingestRepo processes all CSV files in parallel using a worker pool.
// It spawns cfg.Workers goroutines that each run the full pipeline for one
// file at a time and aggregates the per-file outcomes into an IngestReport.
// Store writes happen inside the workers; each write replaces a distinct
// assessment wholesale, so concurrent files never interleave rows.
func ingestRepo(cfg *contract.Config, store contract.AssessmentStore, files []string) schema.IngestReport {
	fileCh := make(chan string, len(files))
	resultCh := make(chan schema.FileIngestResult, len(files))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for f := range fileCh {
				resultCh <- ingestFile(cfg, store, f)
			}
		})
	}

	for _, f := range files {
		fileCh <- f
	}
	close(fileCh)

	wg.Wait()
	close(resultCh)

	report := schema.IngestReport{Files: make([]schema.FileIngestResult, 0, len(files))}
	for result := range resultCh {
		report.Files = append(report.Files, result)
	}
	sortIngestResults(report.Files)
	return report
}

// ingestFile runs the pipeline for a single CSV file: parse, clean, pick
// best attempts, normalize, then replace the assessment in the store.
func ingestFile(cfg *contract.Config, store contract.AssessmentStore, path string) schema.FileIngestResult {
	src := csvsource.ResolveSource(cfg, path)
	result := schema.FileIngestResult{
		Path:         path,
		AssessmentID: src.AssessmentID,
		Kind:         src.Kind,
	}

	rawRows, err := csvsource.ParseFile(src)
	if err != nil {
		result.Err = fmt.Errorf("failed to parse %s: %w", path, err)
		return result
	}
	result.RawRows = len(rawRows)

	cleaned, drops := CleanRows(rawRows)
	result.Dropped = drops

	best := SelectBestAttempts(cleaned)
	scores := Normalize(best)

	if err := store.Write(src.AssessmentID, src.Kind, scores); err != nil {
		result.Err = fmt.Errorf("failed to store %s: %w", src.AssessmentID, err)
		return result
	}
	result.Written = len(scores)
	return result
}
