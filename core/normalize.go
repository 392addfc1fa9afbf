package core

import (
	"math"

	"github.com/cohort-tools/cohort/schema"
)

// NormalizeScore rescales one best attempt to the unified integer scale:
// score = round(rawScore * 10000 / maxScore), rounding half away from zero
// (math.Round), so a ratio of 0.12345 becomes 1235. The cleaner guarantees
// rawScore is in [0, maxScore] and maxScore > 0, so the result is always in
// [0, 10000] and there is no failure path.
func NormalizeScore(attempt schema.BestAttempt) schema.NormalizedScore {
	return schema.NormalizedScore{
		StudentID:    attempt.StudentID,
		QuestionID:   attempt.QuestionID,
		AssessmentID: attempt.AssessmentID,
		Kind:         attempt.Kind,
		Score:        int(math.Round(attempt.RawScore * schema.MaxScale / attempt.MaxScore)),
	}
}

// Normalize rescales a batch of best attempts, preserving order.
func Normalize(attempts []schema.BestAttempt) []schema.NormalizedScore {
	scores := make([]schema.NormalizedScore, len(attempts))
	for i, a := range attempts {
		scores[i] = NormalizeScore(a)
	}
	return scores
}
