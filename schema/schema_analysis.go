package schema

import "time"

// CohortStat is one aggregate over stored scores. QuestionID is empty for a
// whole-assessment statistic.
type CohortStat struct {
	AssessmentID string  `json:"assessment_id"`
	QuestionID   string  `json:"question_id,omitempty"`
	Mean         float64 `json:"mean"`
	SampleSize   int     `json:"sample_size"`
}

// UnderperformanceFlag marks one student as at-risk in one summative
// assessment. WeakestFormativeID is empty when the student has no formative
// records at all; the summative deficit alone is still grounds for flagging.
type UnderperformanceFlag struct {
	StudentID             string   `json:"student_id"`
	SummativeAssessmentID string   `json:"summative_assessment_id"`
	StudentScore          float64  `json:"student_score"`
	CohortMean            float64  `json:"cohort_mean"`
	Deficit               float64  `json:"deficit"`
	FormativeAttempts     int      `json:"formative_attempts"`
	WeakestFormativeID    string   `json:"weakest_formative_id,omitempty"`
	WeakestFormativeScore *float64 `json:"weakest_formative_score,omitempty"`
}

// StudentResult is one student's mean normalized score in one assessment.
type StudentResult struct {
	AssessmentID string         `json:"assessment_id"`
	Kind         AssessmentKind `json:"kind"`
	Score        float64        `json:"score"`
}

// QuestionPerformance compares one student's question score against the
// cohort mean for the same question.
type QuestionPerformance struct {
	QuestionID string  `json:"question_id"`
	Score      float64 `json:"score"`
	CohortMean float64 `json:"cohort_mean"`
	Delta      float64 `json:"delta"` // Score - CohortMean
}

// AssessmentInfo describes one stored assessment table.
type AssessmentInfo struct {
	AssessmentID string         `json:"assessment_id"`
	Kind         AssessmentKind `json:"kind"`
	RowCount     int            `json:"row_count"`
	IngestedAt   time.Time      `json:"ingested_at"`
}

// DropReport counts rows rejected by the cleaner, by reason.
type DropReport map[DropReason]int

// Total returns the number of dropped rows across all reasons.
func (r DropReport) Total() int {
	n := 0
	for _, c := range r {
		n += c
	}
	return n
}

// FileIngestResult summarizes the pipeline outcome for a single CSV file.
// Err is set when the whole file failed (unreadable, unparseable structure);
// sibling files are unaffected.
type FileIngestResult struct {
	Path         string         `json:"path"`
	AssessmentID string         `json:"assessment_id"`
	Kind         AssessmentKind `json:"kind"`
	RawRows      int            `json:"raw_rows"`
	Dropped      DropReport     `json:"dropped,omitempty"`
	Written      int            `json:"written"`
	Err          error          `json:"-"`
}

// IngestReport aggregates the results of one ingestion run.
type IngestReport struct {
	Files []FileIngestResult
}

// Failures returns the subset of file results that failed outright.
func (r *IngestReport) Failures() []FileIngestResult {
	var failed []FileIngestResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// StoreStatus reports store health and table sizes for the status command.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalAssessments int              `json:"total_assessments"`
	TotalScores      int64            `json:"total_scores"`
	LastIngestedAt   time.Time        `json:"last_ingested_at"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}
