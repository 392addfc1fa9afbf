package core

import (
	"errors"
	"fmt"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"
)

// UnderperformanceDetector combines summative deficits with formative
// engagement to rank at-risk students. For each flagged student it surfaces
// the single weakest formative assessment, one actionable data point rather
// than a flood.
type UnderperformanceDetector struct {
	analyzer *CohortAnalyzer
	store    contract.AssessmentStore

	// minAttempts filters out students with fewer formative assessments
	// attempted (any score > 0). Zero disables the filter.
	minAttempts int
}

// NewUnderperformanceDetector creates a detector sharing the analyzer's
// per-run row cache.
func NewUnderperformanceDetector(analyzer *CohortAnalyzer, store contract.AssessmentStore, minAttempts int) *UnderperformanceDetector {
	return &UnderperformanceDetector{
		analyzer:    analyzer,
		store:       store,
		minAttempts: minAttempts,
	}
}

// Detect flags every student scoring below the cohort mean of a summative
// assessment, ordered by descending deficit (largest gap first). That
// ordering is the primary observable contract for reporting; ties fall back
// to student id for determinism.
func (d *UnderperformanceDetector) Detect() ([]schema.UnderperformanceFlag, error) {
	infos, err := d.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	var summatives, formatives []string
	for _, info := range infos {
		switch info.Kind {
		case schema.Summative:
			summatives = append(summatives, info.AssessmentID)
		case schema.Formative:
			formatives = append(formatives, info.AssessmentID)
		}
	}

	var flags []schema.UnderperformanceFlag
	for _, assessmentID := range summatives {
		cohortMean, err := d.analyzer.AssessmentMean(assessmentID)
		if errors.Is(err, schema.ErrInsufficientData) {
			continue // empty summative table, nothing to rank against
		}
		if err != nil {
			return nil, err
		}

		students, err := d.analyzer.Students(assessmentID)
		if err != nil {
			return nil, err
		}
		for _, studentID := range students {
			score, err := d.analyzer.StudentAssessmentScore(studentID, assessmentID)
			if err != nil {
				return nil, err
			}
			deficit := cohortMean - score
			if deficit <= 0 {
				continue // at or above average
			}

			flag := schema.UnderperformanceFlag{
				StudentID:             studentID,
				SummativeAssessmentID: assessmentID,
				StudentScore:          score,
				CohortMean:            cohortMean,
				Deficit:               deficit,
			}
			if err := d.addFormativeSignal(&flag, formatives); err != nil {
				return nil, err
			}
			if d.minAttempts > 0 && flag.FormativeAttempts < d.minAttempts {
				continue // inactive student, excluded on request
			}
			flags = append(flags, flag)
		}
	}

	rankFlags(flags)
	return flags, nil
}

// addFormativeSignal fills in attempt counts and the weakest formative
// assessment for one flagged student. A student with no formative records
// keeps empty formative fields; the summative deficit alone is sufficient
// grounds for the flag.
func (d *UnderperformanceDetector) addFormativeSignal(flag *schema.UnderperformanceFlag, formatives []string) error {
	// formatives arrive sorted by id, so equal scores resolve to the
	// lexicographically earliest assessment.
	for _, assessmentID := range formatives {
		score, err := d.analyzer.StudentAssessmentScore(flag.StudentID, assessmentID)
		if errors.Is(err, schema.ErrInsufficientData) {
			continue // student never sat this one
		}
		if err != nil {
			return err
		}
		if score > 0 {
			flag.FormativeAttempts++
		}
		if flag.WeakestFormativeScore == nil || score < *flag.WeakestFormativeScore {
			s := score
			flag.WeakestFormativeScore = &s
			flag.WeakestFormativeID = assessmentID
		}
	}
	return nil
}
