package cmd

import (
	"github.com/cohort-tools/cohort/core"
	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/spf13/cobra"
)

// performanceCmd compares one student against the cohort per question.
var performanceCmd = &cobra.Command{
	Use:   "performance <student-id> <assessment-id>",
	Short: "Compare a student's per-question scores against the cohort means.",
	Long: `Break one student's result in one assessment down per question, next to
the cohort mean for that question.

The delta column (student score minus cohort mean) shows exactly which
topics a struggling student should revisit, and which ones they already
handle above average.

Examples:
  # See where a flagged student lost their points
  cohort performance student-42 midterm-2026

  # Export the breakdown for a tutoring session
  cohort performance student-42 midterm-2026 --output csv`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteStudentPerformance(cfg, store, args[0], args[1]); err != nil {
			contract.LogFatal("Cannot compute performance breakdown", err)
		}
	},
}
