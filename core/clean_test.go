package core

import (
	"testing"

	"github.com/cohort-tools/cohort/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawRow() schema.RawRow {
	return schema.RawRow{
		StudentID:     "s1",
		QuestionID:    "Q1",
		AssessmentID:  "midterm",
		Kind:          schema.Summative,
		AttemptNumber: 1,
		RawScore:      "40",
		MaxScore:      50,
	}
}

// TestCleanRows covers each drop rule and the boundary values that survive.
func TestCleanRows(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*schema.RawRow)
		wantReason schema.DropReason
	}{
		{
			name:   "valid row kept",
			mutate: func(_ *schema.RawRow) {},
		},
		{
			name:       "missing student id",
			mutate:     func(r *schema.RawRow) { r.StudentID = "" },
			wantReason: schema.DropMissingID,
		},
		{
			name:       "missing question id",
			mutate:     func(r *schema.RawRow) { r.QuestionID = "" },
			wantReason: schema.DropMissingID,
		},
		{
			name:       "missing assessment id",
			mutate:     func(r *schema.RawRow) { r.AssessmentID = "" },
			wantReason: schema.DropMissingID,
		},
		{
			name:       "zero max score",
			mutate:     func(r *schema.RawRow) { r.MaxScore = 0 },
			wantReason: schema.DropBadMaxScore,
		},
		{
			name:       "negative max score",
			mutate:     func(r *schema.RawRow) { r.MaxScore = -10 },
			wantReason: schema.DropBadMaxScore,
		},
		{
			name:       "empty raw score",
			mutate:     func(r *schema.RawRow) { r.RawScore = "" },
			wantReason: schema.DropMissingScore,
		},
		{
			name:       "non-numeric raw score",
			mutate:     func(r *schema.RawRow) { r.RawScore = "absent" },
			wantReason: schema.DropMissingScore,
		},
		{
			name:       "negative raw score",
			mutate:     func(r *schema.RawRow) { r.RawScore = "-1" },
			wantReason: schema.DropScoreOutOfRange,
		},
		{
			name:       "raw score above max",
			mutate:     func(r *schema.RawRow) { r.RawScore = "50.5" },
			wantReason: schema.DropScoreOutOfRange,
		},
		{
			name:   "raw score of zero kept",
			mutate: func(r *schema.RawRow) { r.RawScore = "0" },
		},
		{
			name:   "raw score equal to max kept",
			mutate: func(r *schema.RawRow) { r.RawScore = "50" },
		},
		{
			name:       "zero attempt number",
			mutate:     func(r *schema.RawRow) { r.AttemptNumber = 0 },
			wantReason: schema.DropBadAttempt,
		},
		{
			name:       "negative attempt number",
			mutate:     func(r *schema.RawRow) { r.AttemptNumber = -3 },
			wantReason: schema.DropBadAttempt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRawRow()
			tt.mutate(&row)

			cleaned, drops := CleanRows([]schema.RawRow{row})
			if tt.wantReason == "" {
				require.Len(t, cleaned, 1)
				assert.Zero(t, drops.Total())
			} else {
				assert.Empty(t, cleaned)
				assert.Equal(t, 1, drops[tt.wantReason])
				assert.Equal(t, 1, drops.Total())
			}
		})
	}
}

// TestCleanRowsMixedBatch ensures good rows survive a batch with bad siblings.
func TestCleanRowsMixedBatch(t *testing.T) {
	good := validRawRow()
	noStudent := validRawRow()
	noStudent.StudentID = ""
	noScore := validRawRow()
	noScore.RawScore = "-"

	cleaned, drops := CleanRows([]schema.RawRow{good, noStudent, noScore})
	require.Len(t, cleaned, 1)
	assert.Equal(t, "s1", cleaned[0].StudentID)
	assert.Equal(t, 40.0, cleaned[0].RawScore)
	assert.Equal(t, 2, drops.Total())
	assert.Equal(t, 1, drops[schema.DropMissingID])
	assert.Equal(t, 1, drops[schema.DropMissingScore])
}

// TestCleanRowsRulePrecedence checks that the id rule fires before the
// score rules when both apply.
func TestCleanRowsRulePrecedence(t *testing.T) {
	row := validRawRow()
	row.StudentID = ""
	row.RawScore = "garbage"

	cleaned, drops := CleanRows([]schema.RawRow{row})
	assert.Empty(t, cleaned)
	assert.Equal(t, 1, drops[schema.DropMissingID])
	assert.Zero(t, drops[schema.DropMissingScore])
}
