package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintStudentResults outputs one student's per-assessment scores,
// dispatching based on the output format configured.
func PrintStudentResults(studentID string, results []schema.StudentResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				StudentID string                 `json:"student_id"`
				Results   []schema.StudentResult `json:"results"`
			}{studentID, results})
		}, "JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"student", "assessment", "kind", "score"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, r := range results {
					rec := []string{studentID, r.AssessmentID, contract.FormatKind(r.Kind), fmtFloat(r.Score)}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStudentResultTable(studentID, results, cfg, fmtFloat, duration, w)
		}, "table")
	}
	return nil
}

// writeStudentResultTable generates and writes the human-readable table.
func writeStudentResultTable(studentID string, results []schema.StudentResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Assessment", "Kind", "Score"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			truncateID(r.AssessmentID, idWidth),
			contract.FormatKind(r.Kind),
			fmtFloat(r.Score),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Student %s appears in %d assessments\n", studentID, len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// PrintQuestionPerformance outputs one student's per-question deltas against
// the cohort, dispatching based on the output format configured.
func PrintQuestionPerformance(studentID, assessmentID string, perf []schema.QuestionPerformance, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtDelta := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				StudentID    string                       `json:"student_id"`
				AssessmentID string                       `json:"assessment_id"`
				Questions    []schema.QuestionPerformance `json:"questions"`
			}{studentID, assessmentID, perf})
		}, "JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"student", "assessment", "question", "score", "cohort_mean", "delta"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, p := range perf {
					rec := []string{studentID, assessmentID, p.QuestionID, fmtFloat(p.Score), fmtFloat(p.CohortMean), fmtDelta(p.Delta)}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePerformanceTable(studentID, assessmentID, perf, cfg, fmtFloat, fmtDelta, duration, w)
		}, "table")
	}
	return nil
}

// writePerformanceTable generates and writes the human-readable table.
func writePerformanceTable(studentID, assessmentID string, perf []schema.QuestionPerformance, cfg *contract.Config, fmtFloat, fmtDelta func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Question", "Score", "Cohort", "Delta"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range perf {
		data = append(data, []string{
			p.QuestionID,
			fmtFloat(p.Score),
			fmtFloat(p.CohortMean),
			fmtDelta(p.Delta),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Student %s answered %d questions in %s\n", studentID, len(perf), assessmentID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}
