package gradestore

import (
	"errors"
	"fmt"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/internal/parquet"
	"github.com/cohort-tools/cohort/schema"
)

// ExecuteStoreExport exports all stored assessments and scores to Parquet
// files derived from outputFile.
func ExecuteStoreExport(store contract.AssessmentStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalAssessments == 0 {
		return errors.New("no assessment data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total assessments: %d\n", status.TotalAssessments)
	fmt.Printf("Total score records: %d\n", status.TotalScores)

	infos, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list assessments: %w", err)
	}

	var allScores []schema.NormalizedScore
	for _, info := range infos {
		rows, err := store.Read(info.AssessmentID)
		if err != nil {
			return fmt.Errorf("failed to read assessment %s: %w", info.AssessmentID, err)
		}
		allScores = append(allScores, rows...)
	}

	parquetAssessments := parquet.ConvertAssessmentInfos(infos)
	parquetScores := parquet.ConvertNormalizedScores(allScores)

	assessmentsFile := outputFile + ".assessments.parquet"
	if err := parquet.WriteAssessmentsParquet(parquetAssessments, assessmentsFile); err != nil {
		return fmt.Errorf("failed to write assessments: %w", err)
	}
	fmt.Printf("Exported %d assessments to: %s\n", len(parquetAssessments), assessmentsFile)

	scoresFile := outputFile + ".scores.parquet"
	if err := parquet.WriteScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write scores: %w", err)
	}
	fmt.Printf("Exported %d score records to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
