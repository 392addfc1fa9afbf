package core

import (
	"strconv"

	"github.com/cohort-tools/cohort/schema"
)

// CleanRows validates raw rows into cleaned attempts in a single pass.
// A row failing any rule is dropped and counted, never raised: tolerating
// messy exports is worth more here than failing fast. Rules are checked in
// a fixed order so a row with multiple defects is counted once, under the
// first rule it trips.
func CleanRows(rows []schema.RawRow) ([]schema.CleanedAttempt, schema.DropReport) {
	cleaned := make([]schema.CleanedAttempt, 0, len(rows))
	drops := make(schema.DropReport)

	for _, row := range rows {
		if row.StudentID == "" || row.QuestionID == "" || row.AssessmentID == "" {
			drops[schema.DropMissingID]++
			continue
		}
		if row.MaxScore <= 0 {
			drops[schema.DropBadMaxScore]++
			continue
		}
		rawScore, err := strconv.ParseFloat(row.RawScore, 64)
		if row.RawScore == "" || err != nil {
			drops[schema.DropMissingScore]++
			continue
		}
		if rawScore < 0 || rawScore > row.MaxScore {
			// Rejected, not clamped: a clamped value would silently mis-score.
			drops[schema.DropScoreOutOfRange]++
			continue
		}
		if row.AttemptNumber < 1 {
			drops[schema.DropBadAttempt]++
			continue
		}

		cleaned = append(cleaned, schema.CleanedAttempt{
			StudentID:     row.StudentID,
			QuestionID:    row.QuestionID,
			AssessmentID:  row.AssessmentID,
			Kind:          row.Kind,
			AttemptNumber: row.AttemptNumber,
			RawScore:      rawScore,
			MaxScore:      row.MaxScore,
		})
	}
	return cleaned, drops
}
