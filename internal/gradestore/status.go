package gradestore

import (
	"fmt"

	"github.com/cohort-tools/cohort/schema"
)

// PrintStoreStatus prints score store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Assessments: %d\n", status.TotalAssessments)
	fmt.Printf("Total Scores: %d\n", status.TotalScores)
	if status.TotalAssessments > 0 {
		fmt.Printf("Last Ingested: %s\n", status.LastIngestedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
