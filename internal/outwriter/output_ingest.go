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

// PrintIngestReport outputs the per-file ingestion summary, dispatching
// based on the output format configured.
func PrintIngestReport(report schema.IngestReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForIngest(w, report)
		}, "JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForIngest(w, report)
		}, "CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIngestTable(report, cfg, duration, w)
		}, "table")
	}
	return nil
}

// writeIngestTable generates and writes the human-readable table.
func writeIngestTable(report schema.IngestReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"File", "Assessment", "Kind", "Raw", "Dropped", "Written", "Status"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, f := range report.Files {
		status := "ok"
		if f.Err != nil {
			status = "failed"
		}
		data = append(data, []string{
			truncateID(f.Path, idWidth),
			truncateID(f.AssessmentID, idWidth),
			contract.FormatKind(f.Kind),
			strconv.Itoa(f.RawRows),
			strconv.Itoa(f.Dropped.Total()),
			strconv.Itoa(f.Written),
			status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalWritten := 0
	totalDropped := 0
	for _, f := range report.Files {
		totalWritten += f.Written
		totalDropped += f.Dropped.Total()
	}
	if _, err := fmt.Fprintf(writer, "Ingested %d files (%d scores written, %d rows dropped)\n", len(report.Files), totalWritten, totalDropped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Ingestion completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}

	// Surface drop reasons and failures after the table so they are not lost
	// in wide output.
	for _, f := range report.Files {
		for _, reason := range schema.AllDropReasons {
			if count := f.Dropped[reason]; count > 0 {
				if _, err := fmt.Fprintf(writer, "  %s: %d rows dropped (%s)\n", f.Path, count, reason); err != nil {
					return err
				}
			}
		}
	}
	for _, f := range report.Failures() {
		contract.LogWarn(fmt.Sprintf("ingest of %s failed", f.Path), f.Err)
	}
	return nil
}

// writeCSVResultsForIngest writes the ingestion report in CSV format.
func writeCSVResultsForIngest(w io.Writer, report schema.IngestReport) error {
	header := []string{"file", "assessment", "kind", "raw_rows", "dropped", "written", "error"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, f := range report.Files {
			errMsg := ""
			if f.Err != nil {
				errMsg = f.Err.Error()
			}
			rec := []string{
				f.Path,
				f.AssessmentID,
				contract.FormatKind(f.Kind),
				strconv.Itoa(f.RawRows),
				strconv.Itoa(f.Dropped.Total()),
				strconv.Itoa(f.Written),
				errMsg,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForIngest writes the ingestion report in JSON format.
func writeJSONResultsForIngest(w io.Writer, report schema.IngestReport) error {
	type JSONIngestResult struct {
		schema.FileIngestResult
		Error string `json:"error,omitempty"`
	}

	output := make([]JSONIngestResult, len(report.Files))
	for i, f := range report.Files {
		output[i] = JSONIngestResult{FileIngestResult: f}
		if f.Err != nil {
			output[i].Error = f.Err.Error()
		}
	}

	return writeJSON(w, output)
}
