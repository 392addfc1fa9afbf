package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"
)

// CohortAnalyzer computes aggregate statistics over stored scores. Results
// are pure functions of current store contents; rows are cached only for
// the lifetime of one analyzer instance (one analysis run), so there is no
// cache-invalidation protocol to get wrong.
type CohortAnalyzer struct {
	store contract.AssessmentStore
	rows  map[string][]schema.NormalizedScore
}

// NewCohortAnalyzer creates an analyzer over the given store handle.
func NewCohortAnalyzer(store contract.AssessmentStore) *CohortAnalyzer {
	return &CohortAnalyzer{
		store: store,
		rows:  make(map[string][]schema.NormalizedScore),
	}
}

// assessmentRows reads an assessment's rows, caching within this run.
func (a *CohortAnalyzer) assessmentRows(assessmentID string) ([]schema.NormalizedScore, error) {
	if rows, ok := a.rows[assessmentID]; ok {
		return rows, nil
	}
	rows, err := a.store.Read(assessmentID)
	if err != nil {
		return nil, err
	}
	a.rows[assessmentID] = rows
	return rows, nil
}

// QuestionMean returns the arithmetic mean of all stored scores for one
// question in one assessment. Zero matching rows fail with
// schema.ErrInsufficientData.
func (a *CohortAnalyzer) QuestionMean(assessmentID, questionID string) (float64, error) {
	rows, err := a.assessmentRows(assessmentID)
	if err != nil {
		return 0, err
	}
	sum, n := 0, 0
	for _, r := range rows {
		if r.QuestionID == questionID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("no scores for question %s in assessment %s: %w", questionID, assessmentID, schema.ErrInsufficientData)
	}
	return float64(sum) / float64(n), nil
}

// AssessmentMean returns the mean over all scores across all questions in
// the assessment. The rows are flattened, not averaged per student first, so
// students with more answered questions are not double weighted.
func (a *CohortAnalyzer) AssessmentMean(assessmentID string) (float64, error) {
	rows, err := a.assessmentRows(assessmentID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("no scores in assessment %s: %w", assessmentID, schema.ErrInsufficientData)
	}
	sum := 0
	for _, r := range rows {
		sum += r.Score
	}
	return float64(sum) / float64(len(rows)), nil
}

// StudentAssessmentScore returns the mean of one student's own scores
// within an assessment.
func (a *CohortAnalyzer) StudentAssessmentScore(studentID, assessmentID string) (float64, error) {
	rows, err := a.assessmentRows(assessmentID)
	if err != nil {
		return 0, err
	}
	sum, n := 0, 0
	for _, r := range rows {
		if r.StudentID == studentID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("no scores for student %s in assessment %s: %w", studentID, assessmentID, schema.ErrInsufficientData)
	}
	return float64(sum) / float64(n), nil
}

// Students returns the distinct student ids with at least one score in the
// assessment, sorted.
func (a *CohortAnalyzer) Students(assessmentID string) ([]string, error) {
	rows, err := a.assessmentRows(assessmentID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[r.StudentID] = struct{}{}
	}
	students := make([]string, 0, len(seen))
	for s := range seen {
		students = append(students, s)
	}
	sort.Strings(students)
	return students, nil
}

// StudentResults returns one student's mean score in every stored assessment
// they appear in, in store listing order.
func (a *CohortAnalyzer) StudentResults(studentID string, infos []schema.AssessmentInfo) ([]schema.StudentResult, error) {
	results := make([]schema.StudentResult, 0, len(infos))
	for _, info := range infos {
		score, err := a.StudentAssessmentScore(studentID, info.AssessmentID)
		if errors.Is(err, schema.ErrInsufficientData) {
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, schema.StudentResult{
			AssessmentID: info.AssessmentID,
			Kind:         info.Kind,
			Score:        score,
		})
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no scores for student %s: %w", studentID, schema.ErrInsufficientData)
	}
	return results, nil
}

// StudentQuestionPerformance compares one student's score on each question of
// an assessment against the cohort mean for that question, sorted by question
// id. Questions the student never answered are skipped.
func (a *CohortAnalyzer) StudentQuestionPerformance(studentID, assessmentID string) ([]schema.QuestionPerformance, error) {
	rows, err := a.assessmentRows(assessmentID)
	if err != nil {
		return nil, err
	}
	stats, err := a.QuestionStats(assessmentID)
	if err != nil {
		return nil, err
	}
	own := make(map[string]int)
	for _, r := range rows {
		if r.StudentID == studentID {
			own[r.QuestionID] = r.Score
		}
	}
	if len(own) == 0 {
		return nil, fmt.Errorf("no scores for student %s in assessment %s: %w", studentID, assessmentID, schema.ErrInsufficientData)
	}
	perf := make([]schema.QuestionPerformance, 0, len(own))
	for _, stat := range stats {
		score, ok := own[stat.QuestionID]
		if !ok {
			continue
		}
		perf = append(perf, schema.QuestionPerformance{
			QuestionID: stat.QuestionID,
			Score:      float64(score),
			CohortMean: stat.Mean,
			Delta:      float64(score) - stat.Mean,
		})
	}
	return perf, nil
}

// QuestionStats returns per-question cohort statistics for one assessment,
// sorted by question id.
func (a *CohortAnalyzer) QuestionStats(assessmentID string) ([]schema.CohortStat, error) {
	rows, err := a.assessmentRows(assessmentID)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range rows {
		sums[r.QuestionID] += r.Score
		counts[r.QuestionID]++
	}
	questions := make([]string, 0, len(sums))
	for q := range sums {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questionLess(questions[i], questions[j]) })

	stats := make([]schema.CohortStat, 0, len(questions))
	for _, q := range questions {
		stats = append(stats, schema.CohortStat{
			AssessmentID: assessmentID,
			QuestionID:   q,
			Mean:         float64(sums[q]) / float64(counts[q]),
			SampleSize:   counts[q],
		})
	}
	return stats, nil
}
