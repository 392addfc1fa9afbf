package cmd

import (
	"github.com/cohort-tools/cohort/core"
	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/spf13/cobra"
)

// detectCmd runs underperformance detection over stored summative assessments.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Flag students scoring below the cohort mean, ranked by deficit.",
	Long: `Scan every stored summative assessment and flag students whose mean
score falls below the cohort mean for that assessment.

For each flagged student, detect reports:
- The deficit (cohort mean minus the student's score) on the 0-10000 scale
- A severity label (Critical, High, Moderate, Low) derived from the deficit
- How many formative assessments the student actually attempted
- The student's single weakest formative assessment, as a starting point
  for intervention

Flags are ranked by descending deficit so the students furthest behind
appear first.

Examples:
  # Show the top 25 flagged students
  cohort detect

  # Only consider students who attempted at least 2 practice assessments
  cohort detect --min-attempts 2

  # Export the full ranking for the teaching team
  cohort detect --limit 1000 --output csv --output-file flags.csv`,
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDetect(cfg, store); err != nil {
			contract.LogFatal("Cannot run detection", err)
		}
	},
}
