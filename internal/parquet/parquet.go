// Package parquet provides data structures and functions for exporting
// stored assessment data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/cohort-tools/cohort/schema"
	"github.com/parquet-go/parquet-go"
)

// Assessment represents one ingested assessment with registry metadata.
// This struct maps to the cohort_assessments database table.
type Assessment struct {
	// AssessmentID is the unique identifier for this assessment
	AssessmentID string `parquet:"assessment_id,snappy"`

	// Kind is "summative" or "formative"
	Kind string `parquet:"kind,snappy"`

	// RowCount is the number of normalized scores stored for this assessment
	RowCount int32 `parquet:"row_count,snappy"`

	// IngestedAt is when the assessment was last ingested
	IngestedAt time.Time `parquet:"ingested_at,snappy"`
}

// Score represents one normalized score for a student on a question.
// This struct maps to the cohort_scores database table.
type Score struct {
	// AssessmentID references the parent assessment
	AssessmentID string `parquet:"assessment_id,snappy"`

	// StudentID identifies the student
	StudentID string `parquet:"student_id,snappy"`

	// QuestionID identifies the question within the assessment
	QuestionID string `parquet:"question_id,snappy"`

	// Kind is "summative" or "formative"
	Kind string `parquet:"kind,snappy"`

	// Value is the normalized score on the 0-10000 scale
	Value int32 `parquet:"score,snappy"`
}

// WriteAssessmentsParquet writes a slice of Assessment structs to a Parquet file.
func WriteAssessmentsParquet(data []Assessment, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the Assessment struct tags
	writer := parquet.NewGenericWriter[Assessment](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteScoresParquet writes a slice of Score structs to a Parquet file.
func WriteScoresParquet(data []Score, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the Score struct tags
	writer := parquet.NewGenericWriter[Score](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAssessmentInfos converts schema.AssessmentInfo to Assessment for Parquet export.
func ConvertAssessmentInfos(infos []schema.AssessmentInfo) []Assessment {
	result := make([]Assessment, len(infos))
	for i, info := range infos {
		result[i] = Assessment{
			AssessmentID: info.AssessmentID,
			Kind:         string(info.Kind),
			RowCount:     int32(info.RowCount),
			IngestedAt:   info.IngestedAt,
		}
	}
	return result
}

// ConvertNormalizedScores converts schema.NormalizedScore to Score for Parquet export.
func ConvertNormalizedScores(scores []schema.NormalizedScore) []Score {
	result := make([]Score, len(scores))
	for i, score := range scores {
		result[i] = Score{
			AssessmentID: score.AssessmentID,
			StudentID:    score.StudentID,
			QuestionID:   score.QuestionID,
			Kind:         string(score.Kind),
			Value:        int32(score.Score),
		}
	}
	return result
}
