package cmd

import (
	"github.com/cohort-tools/cohort/core"
	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/spf13/cobra"
)

// resultsCmd shows one student's scores across all assessments.
var resultsCmd = &cobra.Command{
	Use:   "results <student-id>",
	Short: "Show one student's mean score in every assessment.",
	Long: `Look up one student across every stored assessment and print their mean
normalized score per assessment, summative and formative alike.

This is the per-student view of the same data detect aggregates: use it to
follow up on a flagged student and see their whole trajectory.

Examples:
  # Review a student's record
  cohort results student-42

  # Export the record as JSON
  cohort results student-42 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteStudentResults(cfg, store, args[0]); err != nil {
			contract.LogFatal("Cannot look up student results", err)
		}
	},
}
