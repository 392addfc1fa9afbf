package cmd

import (
	"github.com/cohort-tools/cohort/core"
	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/spf13/cobra"
)

// ingestCmd runs the full CSV ingestion pipeline.
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Parse, clean, normalize and store assessment CSV exports.",
	Long: `Run the full ingestion pipeline over one or more CSV exports.

For each file, ingest:
- Parses the CSV in long format (one row per attempt) or wide format
  ("Q 1 /100" style headers), using per-source column mappings if configured
- Drops rows with missing ids, invalid max scores, unparseable or
  out-of-range raw scores, or invalid attempt numbers
- Keeps each student's best attempt per question (ties go to the later attempt)
- Normalizes scores onto the unified 0-10000 scale
- Replaces the assessment's stored rows wholesale, so re-ingesting a
  corrected export is safe

Files are processed in parallel. One bad file never blocks its siblings.

The assessment id defaults to the base filename without extension, and the
kind to --kind, unless a matching sources entry in .cohort.yaml overrides
them:

  sources:
    - file: midterm.csv
      assessment: midterm-2026
      kind: summative
      columns:
        student: "Research ID"
        score: "Points"

Examples:
  # Ingest a graded exam and two practice quizzes
  cohort ingest midterm.csv --kind summative
  cohort ingest quiz1.csv quiz2.csv --kind formative

  # Ingest everything at once with per-file specs from .cohort.yaml
  cohort ingest exports/*.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteIngest(cfg, store, args); err != nil {
			contract.LogFatal("Cannot ingest files", err)
		}
	},
}
