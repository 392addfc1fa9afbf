// Package schema has records, enums and shared value types for all parts of cohort.
package schema

// MaxScale is the upper bound of the unified grading scale. Every retained
// score is rescaled into the integer range [0, MaxScale].
const MaxScale = 10000

// RawRow is one per-question attempt as it came out of a CSV export, before
// any validation. RawScore is kept as the raw cell text so the cleaning stage
// owns all type coercion; blank or placeholder cells ("-") arrive as "".
type RawRow struct {
	StudentID     string  // Student identifier from the source file
	QuestionID    string  // Question identifier (e.g. "Q4")
	AssessmentID  string  // Assessment this row belongs to
	Kind          AssessmentKind
	AttemptNumber int     // 1-based retake counter
	RawScore      string  // Raw cell text, "" when the cell was empty
	MaxScore      float64 // Declared maximum for this question, 0 when unparseable
}

// CleanedAttempt is a RawRow that survived validation. RawScore is numeric
// and within [0, MaxScore], MaxScore is positive, AttemptNumber is >= 1.
type CleanedAttempt struct {
	StudentID     string
	QuestionID    string
	AssessmentID  string
	Kind          AssessmentKind
	AttemptNumber int
	RawScore      float64
	MaxScore      float64
}

// Ratio returns the score fraction used for best-attempt comparison.
func (c CleanedAttempt) Ratio() float64 {
	return c.RawScore / c.MaxScore
}

// BestAttempt is the single retained attempt for one (student, question,
// assessment) group: the one with the highest ratio, latest attempt winning
// ties.
type BestAttempt struct {
	CleanedAttempt
}

// NormalizedScore is the canonical persisted record: one retained attempt
// rescaled to the unified [0, MaxScale] integer scale.
type NormalizedScore struct {
	StudentID    string         `json:"student_id"`
	QuestionID   string         `json:"question_id"`
	AssessmentID string         `json:"assessment_id"`
	Kind         AssessmentKind `json:"kind"`
	Score        int            `json:"score"`
}
