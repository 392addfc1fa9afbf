// Package core has core logic for cleaning, scoring and cohort analysis.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/internal/outwriter"
	"github.com/cohort-tools/cohort/schema"
)

// ExecuteIngest runs the full ingestion pipeline over the given CSV files
// and prints a per-file summary to stdout. It serves as the main entry point
// for the 'ingest' command. Partial failure is not fatal: successfully
// ingested files stay in the store even when siblings fail, and the command
// errors only when every file failed.
func ExecuteIngest(cfg *contract.Config, store contract.AssessmentStore, files []string) error {
	start := time.Now()
	report, err := GetIngestResults(cfg, store, files)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintIngestReport(report, cfg, duration)
}

// GetIngestResults runs the ingestion pipeline and returns the raw report.
func GetIngestResults(cfg *contract.Config, store contract.AssessmentStore, files []string) (schema.IngestReport, error) {
	if len(files) == 0 {
		return schema.IngestReport{}, errors.New("no input files given")
	}
	report := ingestRepo(cfg, store, files)
	if failed := report.Failures(); len(failed) == len(report.Files) {
		return report, fmt.Errorf("all %d files failed: %w", len(failed), failed[0].Err)
	}
	return report, nil
}

// ExecuteStats computes cohort statistics for one assessment and prints
// them to stdout. It serves as the main entry point for the 'stats' command.
func ExecuteStats(cfg *contract.Config, store contract.AssessmentStore, assessmentID string) error {
	start := time.Now()
	stats, err := GetStatsResults(store, assessmentID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintCohortStats(stats, cfg, duration)
}

// GetStatsResults returns the whole-assessment mean followed by per-question
// statistics for one assessment.
func GetStatsResults(store contract.AssessmentStore, assessmentID string) ([]schema.CohortStat, error) {
	analyzer := NewCohortAnalyzer(store)
	mean, err := analyzer.AssessmentMean(assessmentID)
	if err != nil {
		return nil, err
	}
	rows, err := analyzer.assessmentRows(assessmentID)
	if err != nil {
		return nil, err
	}
	perQuestion, err := analyzer.QuestionStats(assessmentID)
	if err != nil {
		return nil, err
	}

	stats := make([]schema.CohortStat, 0, len(perQuestion)+1)
	stats = append(stats, schema.CohortStat{
		AssessmentID: assessmentID,
		Mean:         mean,
		SampleSize:   len(rows),
	})
	return append(stats, perQuestion...), nil
}

// ExecuteDetect runs underperformance detection across all stored summative
// assessments and prints ranked flags to stdout. It serves as the main entry
// point for the 'detect' command.
func ExecuteDetect(cfg *contract.Config, store contract.AssessmentStore) error {
	start := time.Now()
	flags, err := GetDetectResults(cfg, store)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintDetectResults(flags, cfg, duration)
}

// GetDetectResults returns ranked underperformance flags, truncated to
// cfg.ResultLimit.
func GetDetectResults(cfg *contract.Config, store contract.AssessmentStore) ([]schema.UnderperformanceFlag, error) {
	analyzer := NewCohortAnalyzer(store)
	detector := NewUnderperformanceDetector(analyzer, store, cfg.MinAttempts)
	flags, err := detector.Detect()
	if err != nil {
		return nil, err
	}
	return limitFlags(flags, cfg.ResultLimit), nil
}

// ExecuteStudentResults prints one student's mean score in every assessment
// they appear in. It serves as the main entry point for the 'results'
// command.
func ExecuteStudentResults(cfg *contract.Config, store contract.AssessmentStore, studentID string) error {
	start := time.Now()
	results, err := GetStudentResults(store, studentID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintStudentResults(studentID, results, cfg, duration)
}

// GetStudentResults returns one student's mean score per stored assessment.
func GetStudentResults(store contract.AssessmentStore, studentID string) ([]schema.StudentResult, error) {
	infos, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	analyzer := NewCohortAnalyzer(store)
	return analyzer.StudentResults(studentID, infos)
}

// ExecuteStudentPerformance prints one student's per-question scores in one
// assessment against the cohort means. It serves as the main entry point for
// the 'performance' command.
func ExecuteStudentPerformance(cfg *contract.Config, store contract.AssessmentStore, studentID, assessmentID string) error {
	start := time.Now()
	perf, err := GetStudentPerformanceResults(store, studentID, assessmentID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintQuestionPerformance(studentID, assessmentID, perf, cfg, duration)
}

// GetStudentPerformanceResults returns per-question deltas for one student
// in one assessment.
func GetStudentPerformanceResults(store contract.AssessmentStore, studentID, assessmentID string) ([]schema.QuestionPerformance, error) {
	analyzer := NewCohortAnalyzer(store)
	return analyzer.StudentQuestionPerformance(studentID, assessmentID)
}
