package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDetectResults outputs ranked underperformance flags, dispatching
// based on the output format configured.
func PrintDetectResults(flags []schema.UnderperformanceFlag, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForFlags(w, flags)
		}, "JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFlags(w, flags, fmtFloat)
		}, "CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFlagTable(flags, cfg, fmtFloat, duration, w)
		}, "table")
	}
	return nil
}

// writeFlagTable generates and writes the human-readable table.
func writeFlagTable(flags []schema.UnderperformanceFlag, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Student", "Assessment", "Score", "Cohort", "Deficit", "Label", "Attempts", "Weakest Formative"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for i, f := range flags {
		row := []string{
			strconv.Itoa(i + 1),                          // Rank
			truncateID(f.StudentID, idWidth),             // Student
			truncateID(f.SummativeAssessmentID, idWidth), // Assessment
			fmtFloat(f.StudentScore),                     // Score
			fmtFloat(f.CohortMean),                       // Cohort
			fmtFloat(f.Deficit),                          // Deficit
			contract.GetColorLabel(f.Deficit),            // Label
			strconv.Itoa(f.FormativeAttempts),            // Attempts
			formatWeakestFormative(f, fmtFloat, idWidth), // Weakest Formative
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d flagged students\n", len(flags)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Detection completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// formatWeakestFormative renders the weakest formative column for one flag.
func formatWeakestFormative(f schema.UnderperformanceFlag, fmtFloat func(float64) string, idWidth int) string {
	if f.WeakestFormativeID == "" || f.WeakestFormativeScore == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", truncateID(f.WeakestFormativeID, idWidth), fmtFloat(*f.WeakestFormativeScore))
}

// writeCSVResultsForFlags writes the detection results in CSV format.
func writeCSVResultsForFlags(w io.Writer, flags []schema.UnderperformanceFlag, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"student",
		"assessment",
		"score",
		"cohort_mean",
		"deficit",
		"label",
		"formative_attempts",
		"weakest_formative",
		"weakest_formative_score",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, f := range flags {
			weakestScore := ""
			if f.WeakestFormativeScore != nil {
				weakestScore = fmtFloat(*f.WeakestFormativeScore)
			}
			rec := []string{
				strconv.Itoa(i + 1),               // Rank
				f.StudentID,                       // Student
				f.SummativeAssessmentID,           // Assessment
				fmtFloat(f.StudentScore),          // Score
				fmtFloat(f.CohortMean),            // Cohort Mean
				fmtFloat(f.Deficit),               // Deficit
				contract.GetPlainLabel(f.Deficit), // Label
				strconv.Itoa(f.FormativeAttempts), // Formative Attempts
				f.WeakestFormativeID,              // Weakest Formative
				weakestScore,                      // Weakest Formative Score
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForFlags writes the detection results in JSON format.
func writeJSONResultsForFlags(w io.Writer, flags []schema.UnderperformanceFlag) error {
	type JSONFlagResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.UnderperformanceFlag
	}

	output := make([]JSONFlagResult, len(flags))
	for i, f := range flags {
		output[i] = JSONFlagResult{
			Rank:                 i + 1,
			Label:                contract.GetPlainLabel(f.Deficit),
			UnderperformanceFlag: f,
		}
	}

	return writeJSON(w, output)
}
