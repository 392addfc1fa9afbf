package cmd

import (
	"github.com/cohort-tools/cohort/core"
	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd computes cohort statistics for one assessment.
var statsCmd = &cobra.Command{
	Use:   "stats <assessment-id>",
	Short: "Show the cohort mean and per-question statistics for an assessment.",
	Long: `Compute cohort statistics over the stored scores of one assessment.

The first row is the whole-assessment mean over every stored score, the same
baseline the detect command ranks deficits against. The remaining rows break
the mean down per question, which shows where the cohort as a whole
struggled.

Examples:
  # Inspect the midterm
  cohort stats midterm-2026

  # Feed the per-question means into a spreadsheet
  cohort stats midterm-2026 --output csv --output-file stats.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteStats(cfg, store, args[0]); err != nil {
			contract.LogFatal("Cannot compute stats", err)
		}
	},
}
