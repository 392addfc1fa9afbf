package core

import (
	"sort"

	"github.com/cohort-tools/cohort/schema"
)

// attemptKey identifies one (student, question, assessment) group.
type attemptKey struct {
	studentID    string
	questionID   string
	assessmentID string
}

// SelectBestAttempts keeps exactly one attempt per (student, question,
// assessment) group: the one with the highest rawScore/maxScore ratio,
// equal ratios resolved in favor of the highest attempt number (the most
// recent retake wins). Input order is insignificant; output is sorted by
// group key for deterministic downstream processing. Re-running selection
// on its own output returns the same set.
func SelectBestAttempts(attempts []schema.CleanedAttempt) []schema.BestAttempt {
	best := make(map[attemptKey]schema.CleanedAttempt, len(attempts))
	for _, a := range attempts {
		key := attemptKey{a.StudentID, a.QuestionID, a.AssessmentID}
		cur, ok := best[key]
		if !ok || better(a, cur) {
			best[key] = a
		}
	}

	keys := make([]attemptKey, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].assessmentID != keys[j].assessmentID {
			return keys[i].assessmentID < keys[j].assessmentID
		}
		if keys[i].studentID != keys[j].studentID {
			return keys[i].studentID < keys[j].studentID
		}
		return keys[i].questionID < keys[j].questionID
	})

	results := make([]schema.BestAttempt, 0, len(keys))
	for _, k := range keys {
		results = append(results, schema.BestAttempt{CleanedAttempt: best[k]})
	}
	return results
}

// better reports whether a should replace cur within a group.
func better(a, cur schema.CleanedAttempt) bool {
	ar, cr := a.Ratio(), cur.Ratio()
	if ar != cr {
		return ar > cr
	}
	return a.AttemptNumber > cur.AttemptNumber
}
