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

// overallRowLabel marks the whole-assessment row in stats output.
const overallRowLabel = "(overall)"

// PrintCohortStats outputs cohort statistics, dispatching based on the
// output format configured. The first stat is the whole-assessment mean;
// subsequent entries are per-question.
func PrintCohortStats(stats []schema.CohortStat, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForStats(w, stats, fmtFloat)
		}, "CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(stats, cfg, fmtFloat, duration, w)
		}, "table")
	}
	return nil
}

// writeStatsTable generates and writes the human-readable table.
func writeStatsTable(stats []schema.CohortStat, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Assessment", "Question", "Mean", "Samples"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, s := range stats {
		question := s.QuestionID
		if question == "" {
			question = overallRowLabel
		}
		data = append(data, []string{
			truncateID(s.AssessmentID, idWidth),
			question,
			fmtFloat(s.Mean),
			strconv.Itoa(s.SampleSize),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Computed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForStats writes cohort statistics in CSV format.
func writeCSVResultsForStats(w io.Writer, stats []schema.CohortStat, fmtFloat func(float64) string) error {
	header := []string{"assessment", "question", "mean", "sample_size"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range stats {
			rec := []string{
				s.AssessmentID,
				s.QuestionID,
				fmtFloat(s.Mean),
				strconv.Itoa(s.SampleSize),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
